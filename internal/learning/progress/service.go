// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davitran/acadia/pkg/uuidv7"
)

// Service orchestrates completion tracking and progress derivation.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
MarkChapter records a member's completion state for a chapter.

Description: Idempotent upsert on the (user, chapter) pair. Marking an
already-completed chapter complete again simply refreshes the record.

Parameters:
  - context: context.Context
  - userID: string
  - chapterID: string
  - isCompleted: bool

Returns:
  - *UserProgress: Recorded state
  - err: Storage failures
*/
func (service *Service) MarkChapter(context context.Context, userID, chapterID string, isCompleted bool) (*UserProgress, error) {

	record := &UserProgress{
		ID:          uuidv7.New(),
		UserID:      userID,
		ChapterID:   chapterID,
		IsCompleted: isCompleted,
	}

	if err := service.repository.Upsert(context, record); err != nil {
		return nil, fmt.Errorf("progress_service_mark_failed: %w", err)
	}

	service.logger.Info("chapter_progress_marked",
		slog.String("user_id", userID),
		slog.String("chapter_id", chapterID),
		slog.Bool("is_completed", isCompleted),
	)

	return record, nil
}

/*
ForCourse derives a member's completion percentage for a course.

Description: 100 * completed / published, computed against the course's
currently published chapters only. A course with zero published chapters
reports 0. Storage failures degrade to 0 with a warning rather than
breaking the caller's view.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - float64: Completion percentage in [0, 100]
  - err: Always nil; failures degrade to 0
*/
func (service *Service) ForCourse(context context.Context, userID, courseID string) (float64, error) {

	published, err := service.repository.CountPublishedChapters(context, courseID)
	if err != nil {
		service.logger.Warn("progress_published_count_failed",
			slog.String("course_id", courseID),
			slog.Any("error", err),
		)
		return 0, nil
	}

	// A course with nothing published has no measurable progress
	if published == 0 {
		return 0, nil
	}

	completed, err := service.repository.CountCompleted(context, userID, courseID)
	if err != nil {
		service.logger.Warn("progress_completed_count_failed",
			slog.String("course_id", courseID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return 0, nil
	}

	return 100 * float64(completed) / float64(published), nil
}
