// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package purchase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/acadia/internal/commerce/purchase"
	"github.com/davitran/acadia/internal/platform/apperr"
)

// fakeRepository is an in-memory [purchase.Repository] for service tests.
type fakeRepository struct {
	course  *purchase.CourseRef
	records map[string]*purchase.Purchase // keyed by userID+courseID

	lastLimit  int
	lastOffset int
}

func newFakeRepository(course *purchase.CourseRef) *fakeRepository {
	return &fakeRepository{
		course:  course,
		records: make(map[string]*purchase.Purchase),
	}
}

func (f *fakeRepository) Create(_ context.Context, record *purchase.Purchase) error {
	key := record.UserID + record.CourseID
	if _, exists := f.records[key]; exists {
		return apperr.Conflict("Course already purchased")
	}
	f.records[key] = record
	return nil
}

func (f *fakeRepository) GetCourseRef(_ context.Context, courseID string) (*purchase.CourseRef, error) {
	if f.course == nil || f.course.ID != courseID {
		return nil, apperr.NotFound("Course not found")
	}
	return f.course, nil
}

func (f *fakeRepository) Owned(_ context.Context, userID, courseID string) (bool, error) {
	_, ok := f.records[userID+courseID]
	return ok, nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]*purchase.Purchase, int, error) {
	f.lastLimit = limit
	f.lastOffset = offset

	var owned []*purchase.Purchase
	for _, record := range f.records {
		if record.UserID == userID {
			owned = append(owned, record)
		}
	}
	total := len(owned)
	if offset > len(owned) {
		offset = len(owned)
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, total, nil
}

func newTestService(repository purchase.Repository) *purchase.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return purchase.NewService(repository, logger)
}

/*
TestEnroll verifies the enrollment vetting rules: published courses only,
no self-purchase, no double enrollment.
*/
func TestEnroll(t *testing.T) {
	published := &purchase.CourseRef{ID: "course-1", OwnerID: "instructor-1", IsPublished: true}

	t.Run("published_course", func(t *testing.T) {
		service := newTestService(newFakeRepository(published))

		record, err := service.Enroll(context.Background(), "member-1", "course-1")

		require.NoError(t, err)
		assert.Equal(t, "member-1", record.UserID)
		assert.Equal(t, "course-1", record.CourseID)
		assert.NotEmpty(t, record.ID)
	})

	t.Run("draft_course_invisible", func(t *testing.T) {
		draft := &purchase.CourseRef{ID: "course-1", OwnerID: "instructor-1", IsPublished: false}
		service := newTestService(newFakeRepository(draft))

		_, err := service.Enroll(context.Background(), "member-1", "course-1")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code, "drafts must look absent to buyers")
	})

	t.Run("unknown_course", func(t *testing.T) {
		service := newTestService(newFakeRepository(published))

		_, err := service.Enroll(context.Background(), "member-1", "ghost")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("own_course_forbidden", func(t *testing.T) {
		service := newTestService(newFakeRepository(published))

		_, err := service.Enroll(context.Background(), "instructor-1", "course-1")

		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("double_enrollment_conflict", func(t *testing.T) {
		service := newTestService(newFakeRepository(published))

		_, err := service.Enroll(context.Background(), "member-1", "course-1")
		require.NoError(t, err)

		_, err = service.Enroll(context.Background(), "member-1", "course-1")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestOwned verifies the enrollment lookup used by access gating.
*/
func TestOwned(t *testing.T) {
	repository := newFakeRepository(&purchase.CourseRef{ID: "course-1", OwnerID: "instructor-1", IsPublished: true})
	service := newTestService(repository)

	owned, err := service.Owned(context.Background(), "member-1", "course-1")
	require.NoError(t, err)
	assert.False(t, owned)

	_, err = service.Enroll(context.Background(), "member-1", "course-1")
	require.NoError(t, err)

	owned, err = service.Owned(context.Background(), "member-1", "course-1")
	require.NoError(t, err)
	assert.True(t, owned)
}

/*
TestListOwned_Pagination verifies that the page window is handed to storage
and the total reflects the full enrollment count.
*/
func TestListOwned_Pagination(t *testing.T) {
	repository := newFakeRepository(&purchase.CourseRef{ID: "course-1", OwnerID: "instructor-1", IsPublished: true})
	service := newTestService(repository)

	_, err := service.Enroll(context.Background(), "member-1", "course-1")
	require.NoError(t, err)

	records, total, err := service.ListOwned(context.Background(), "member-1", 10, 0)

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, 10, repository.lastLimit)
	assert.Equal(t, 0, repository.lastOffset)
}
