// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package purchase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davitran/acadia/internal/platform/apperr"
	"github.com/davitran/acadia/pkg/uuidv7"
)

// Service orchestrates course enrollments.
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
Enroll purchases a course for a member.

Description: Only published courses can be purchased; unpublished ones are
invisible to buyers, so both absent and draft courses report NotFound.
Instructors cannot purchase their own course, and the unique (user, course)
pair rejects double enrollment.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - *Purchase: Recorded enrollment
  - err: NotFound, Forbidden, Conflict, or storage failures
*/
func (service *Service) Enroll(context context.Context, userID, courseID string) (*Purchase, error) {

	course, err := service.repository.GetCourseRef(context, courseID)
	if err != nil {
		return nil, err
	}

	// Draft courses are not purchasable and must stay invisible
	if !course.IsPublished {
		return nil, apperr.NotFound("Course not found")
	}

	if course.OwnerID == userID {
		return nil, apperr.Forbidden("Instructors cannot purchase their own course")
	}

	record := &Purchase{
		ID:       uuidv7.New(),
		UserID:   userID,
		CourseID: courseID,
	}

	if err := service.repository.Create(context, record); err != nil {
		return nil, err
	}

	service.logger.Info("course_enrolled",
		slog.String("user_id", userID),
		slog.String("course_id", courseID),
	)

	return record, nil
}

/*
Owned reports whether the member has purchased the course.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - bool: True when an enrollment exists
  - err: Storage failures
*/
func (service *Service) Owned(context context.Context, userID, courseID string) (bool, error) {
	return service.repository.Owned(context, userID, courseID)
}

/*
ListOwned returns a page of the member's enrollments, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int
  - offset: int

Returns:
  - []*Purchase: Enrollments
  - int: Total enrollment count
  - err: Storage failures
*/
func (service *Service) ListOwned(context context.Context, userID string, limit, offset int) ([]*Purchase, int, error) {
	purchases, total, err := service.repository.ListByUser(context, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("purchase_service_list_failed: %w", err)
	}
	return purchases, total, nil
}
