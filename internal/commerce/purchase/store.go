// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package purchase

import "context"

// Repository defines the data access contract for enrollments.
type Repository interface {

	/*
		Create persists a new enrollment. The (user, course) pair is
		unique; duplicates surface as a Conflict.

		Parameters:
		  - context: context.Context
		  - purchase: *Purchase

		Returns:
		  - error: Conflict on duplicate pair, or persistence failures
	*/
	Create(context context.Context, purchase *Purchase) error

	/*
		GetCourseRef returns the minimal course projection for enrollment vetting.

		Parameters:
		  - context: context.Context
		  - courseID: string

		Returns:
		  - *CourseRef: Owner and publication state
		  - error: apperr.NotFound or retrieval failures
	*/
	GetCourseRef(context context.Context, courseID string) (*CourseRef, error)

	/*
		Owned reports whether the user has purchased the course.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - courseID: string

		Returns:
		  - bool: True when an enrollment exists
		  - error: Retrieval failures
	*/
	Owned(context context.Context, userID, courseID string) (bool, error)

	/*
		ListByUser returns a page of the member's enrollments, newest
		first, along with the total enrollment count.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Purchase: Enrollments
		  - int: Total enrollment count (ignoring the page window)
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Purchase, int, error)
}
