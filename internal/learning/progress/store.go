// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package progress

import "context"

// Repository defines the data access contract for completion tracking.
type Repository interface {

	/*
		Upsert records or updates a member's completion state for a chapter.
		The (user, chapter) pair is unique; repeated marks update in place.

		Parameters:
		  - context: context.Context
		  - progress: *UserProgress

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, progress *UserProgress) error

	/*
		CountPublishedChapters returns how many published chapters the
		course currently has.

		Parameters:
		  - context: context.Context
		  - courseID: string

		Returns:
		  - int: Published chapter count
		  - error: Retrieval failures
	*/
	CountPublishedChapters(context context.Context, courseID string) (int, error)

	/*
		CountCompleted returns how many of the course's published chapters
		the member has completed.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - courseID: string

		Returns:
		  - int: Completed published chapter count
		  - error: Retrieval failures
	*/
	CountCompleted(context context.Context, userID, courseID string) (int, error)
}
