// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package attachment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/acadia/internal/catalog/attachment"
	"github.com/davitran/acadia/internal/platform/apperr"
)

// fakeRepository is an in-memory [attachment.Repository] for service tests.
type fakeRepository struct {
	course  *attachment.CourseRef
	records map[string]*attachment.Attachment
}

func newFakeRepository(course *attachment.CourseRef) *fakeRepository {
	return &fakeRepository{
		course:  course,
		records: make(map[string]*attachment.Attachment),
	}
}

func (f *fakeRepository) GetCourseRef(_ context.Context, courseID string) (*attachment.CourseRef, error) {
	if f.course == nil || f.course.ID != courseID {
		return nil, apperr.NotFound("Course not found")
	}
	return f.course, nil
}

func (f *fakeRepository) Create(_ context.Context, record *attachment.Attachment) error {
	f.records[record.ID] = record
	return nil
}

func (f *fakeRepository) ListByCourse(_ context.Context, courseID string) ([]*attachment.Attachment, error) {
	var linked []*attachment.Attachment
	for _, record := range f.records {
		if record.CourseID == courseID {
			linked = append(linked, record)
		}
	}
	return linked, nil
}

func (f *fakeRepository) Delete(_ context.Context, courseID, attachmentID string) error {
	record, ok := f.records[attachmentID]
	if !ok || record.CourseID != courseID {
		return apperr.NotFound("Attachment not found")
	}
	delete(f.records, attachmentID)
	return nil
}

// # Test Fixtures

const ownerID = "owner-1"

func newTestService(repository attachment.Repository) *attachment.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return attachment.NewService(repository, logger)
}

func courseRef() *attachment.CourseRef {
	return &attachment.CourseRef{ID: "c-1", OwnerID: ownerID}
}

// # Create

/*
TestCreate verifies URL validation, name derivation, and the ownership gate.
*/
func TestCreate(t *testing.T) {
	t.Run("derives_name_from_url", func(t *testing.T) {
		repository := newFakeRepository(courseRef())
		service := newTestService(repository)

		record, err := service.Create(context.Background(), "c-1", ownerID, "https://cdn.acadia.app/files/syllabus.pdf")

		require.NoError(t, err)
		assert.Equal(t, "syllabus.pdf", record.Name)
		assert.Equal(t, "c-1", record.CourseID)
		assert.NotEmpty(t, record.ID)
		assert.Len(t, repository.records, 1)
	})

	t.Run("bare_host_falls_back_to_url", func(t *testing.T) {
		service := newTestService(newFakeRepository(courseRef()))

		record, err := service.Create(context.Background(), "c-1", ownerID, "https://cdn.acadia.app")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.acadia.app", record.Name)
	})

	t.Run("relative_url_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository(courseRef()))

		_, err := service.Create(context.Background(), "c-1", ownerID, "/files/syllabus.pdf")

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("empty_url_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository(courseRef()))

		_, err := service.Create(context.Background(), "c-1", ownerID, "")

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("non_owner_unauthorized", func(t *testing.T) {
		repository := newFakeRepository(courseRef())
		service := newTestService(repository)

		_, err := service.Create(context.Background(), "c-1", "intruder", "https://cdn.acadia.app/files/syllabus.pdf")

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.Empty(t, repository.records)
	})

	t.Run("unknown_course", func(t *testing.T) {
		service := newTestService(newFakeRepository(courseRef()))

		_, err := service.Create(context.Background(), "ghost", ownerID, "https://cdn.acadia.app/files/syllabus.pdf")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

// # List

/*
TestList verifies the owner-gated listing.
*/
func TestList(t *testing.T) {
	repository := newFakeRepository(courseRef())
	service := newTestService(repository)

	_, err := service.Create(context.Background(), "c-1", ownerID, "https://cdn.acadia.app/files/slides.pdf")
	require.NoError(t, err)

	linked, err := service.List(context.Background(), "c-1", ownerID)
	require.NoError(t, err)
	assert.Len(t, linked, 1)

	_, err = service.List(context.Background(), "c-1", "intruder")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

// # Delete

/*
TestDelete verifies removal, the ownership gate, and the missing-record case.
*/
func TestDelete(t *testing.T) {
	t.Run("owner_removes_attachment", func(t *testing.T) {
		repository := newFakeRepository(courseRef())
		service := newTestService(repository)

		record, err := service.Create(context.Background(), "c-1", ownerID, "https://cdn.acadia.app/files/slides.pdf")
		require.NoError(t, err)

		require.NoError(t, service.Delete(context.Background(), "c-1", record.ID, ownerID))
		assert.Empty(t, repository.records)
	})

	t.Run("non_owner_unauthorized", func(t *testing.T) {
		repository := newFakeRepository(courseRef())
		service := newTestService(repository)

		record, err := service.Create(context.Background(), "c-1", ownerID, "https://cdn.acadia.app/files/slides.pdf")
		require.NoError(t, err)

		err = service.Delete(context.Background(), "c-1", record.ID, "intruder")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.Len(t, repository.records, 1, "record must survive the rejected call")
	})

	t.Run("missing_attachment", func(t *testing.T) {
		service := newTestService(newFakeRepository(courseRef()))

		err := service.Delete(context.Background(), "c-1", "ghost", ownerID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
