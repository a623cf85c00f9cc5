// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package progress_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/acadia/internal/learning/progress"
)

// fakeRepository is an in-memory [progress.Repository] for service tests.
type fakeRepository struct {
	records        map[string]*progress.UserProgress // keyed by userID+chapterID
	publishedCount int
	completedCount int

	publishedErr error
	completedErr error
	upsertErr    error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: make(map[string]*progress.UserProgress)}
}

func (f *fakeRepository) Upsert(_ context.Context, record *progress.UserProgress) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[record.UserID+record.ChapterID] = record
	return nil
}

func (f *fakeRepository) CountPublishedChapters(_ context.Context, _ string) (int, error) {
	return f.publishedCount, f.publishedErr
}

func (f *fakeRepository) CountCompleted(_ context.Context, _, _ string) (int, error) {
	return f.completedCount, f.completedErr
}

func newTestService(repository progress.Repository) *progress.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return progress.NewService(repository, logger)
}

/*
TestForCourse_Percentage verifies the completion math against the
published chapter set.
*/
func TestForCourse_Percentage(t *testing.T) {
	tests := []struct {
		name      string
		published int
		completed int
		want      float64
	}{
		{"half_done", 4, 2, 50},
		{"all_done", 3, 3, 100},
		{"nothing_done", 5, 0, 0},
		{"single_chapter_done", 1, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newFakeRepository()
			repository.publishedCount = tt.published
			repository.completedCount = tt.completed

			got, err := newTestService(repository).ForCourse(context.Background(), "user-1", "course-1")

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

/*
TestForCourse_NoPublishedChapters verifies that a course with nothing
published reports zero progress, even with stale completion rows.
*/
func TestForCourse_NoPublishedChapters(t *testing.T) {
	repository := newFakeRepository()
	repository.publishedCount = 0
	repository.completedCount = 3 // stale rows from since-unpublished chapters

	got, err := newTestService(repository).ForCourse(context.Background(), "user-1", "course-1")

	require.NoError(t, err)
	assert.Zero(t, got)
}

/*
TestForCourse_StorageFailureDegrades verifies that count failures degrade
to zero progress instead of surfacing an error to the caller.
*/
func TestForCourse_StorageFailureDegrades(t *testing.T) {
	t.Run("published_count_fails", func(t *testing.T) {
		repository := newFakeRepository()
		repository.publishedErr = errors.New("connection reset")

		got, err := newTestService(repository).ForCourse(context.Background(), "user-1", "course-1")

		assert.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("completed_count_fails", func(t *testing.T) {
		repository := newFakeRepository()
		repository.publishedCount = 3
		repository.completedErr = errors.New("connection reset")

		got, err := newTestService(repository).ForCourse(context.Background(), "user-1", "course-1")

		assert.NoError(t, err)
		assert.Zero(t, got)
	})
}

/*
TestMarkChapter verifies the completion upsert and its idempotency.
*/
func TestMarkChapter(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)

	record, err := service.MarkChapter(context.Background(), "user-1", "chapter-1", true)
	require.NoError(t, err)
	assert.True(t, record.IsCompleted)
	assert.NotEmpty(t, record.ID)

	// Re-marking flips the stored state in place
	record, err = service.MarkChapter(context.Background(), "user-1", "chapter-1", false)
	require.NoError(t, err)
	assert.False(t, record.IsCompleted)
	assert.Len(t, repository.records, 1)
}

/*
TestMarkChapter_StorageFailure verifies that upsert failures are surfaced.
*/
func TestMarkChapter_StorageFailure(t *testing.T) {
	repository := newFakeRepository()
	repository.upsertErr = errors.New("insert failed")

	_, err := newTestService(repository).MarkChapter(context.Background(), "user-1", "chapter-1", true)

	assert.Error(t, err)
}
