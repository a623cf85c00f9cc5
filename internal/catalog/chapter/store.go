// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package chapter

import "context"

// PositionUpdate pairs a chapter with its new position during a reorder.
type PositionUpdate struct {
	ChapterID string
	Position  int
}

// Repository defines the data access contract for the chapter aggregate.
//
// Parent-course reads (ownership, sibling counts, publication flips) are
// exposed here so the cascade rules stay inside one storage boundary.
type Repository interface {

	/*
		GetCourseRef returns the minimal parent-course projection.

		Parameters:
		  - context: context.Context
		  - courseID: string

		Returns:
		  - *CourseRef: Owner and publication state
		  - error: apperr.NotFound or retrieval failures
	*/
	GetCourseRef(context context.Context, courseID string) (*CourseRef, error)

	/*
		Create persists a brand-new draft chapter.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		FindByID returns the chapter with the given ID, scoped to a course.

		Parameters:
		  - context: context.Context
		  - courseID: string
		  - chapterID: string

		Returns:
		  - *Chapter: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, courseID, chapterID string) (*Chapter, error)

	/*
		MaxPosition returns the highest position currently used in the course,
		or 0 when the course has no chapters.

		Parameters:
		  - context: context.Context
		  - courseID: string

		Returns:
		  - int: Highest position (0 when empty)
		  - error: Retrieval failures
	*/
	MaxPosition(context context.Context, courseID string) (int, error)

	/*
		Update persists changes to the chapter's mutable fields.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		UpdatePositions applies a batch of independent position writes,
		scoped to the given course.

		Parameters:
		  - context: context.Context
		  - courseID: string
		  - updates: []PositionUpdate

		Returns:
		  - error: Batch execution failures
	*/
	UpdatePositions(context context.Context, courseID string, updates []PositionUpdate) error

	/*
		SetPublished flips a chapter's publication flag.

		Description: Intentionally ignores RowsAffected so unpublishing an
		absent chapter still succeeds (the cascade check runs regardless).

		Parameters:
		  - context: context.Context
		  - chapterID: string
		  - published: bool

		Returns:
		  - error: Execution failures
	*/
	SetPublished(context context.Context, chapterID string, published bool) error

	/*
		CountPublished returns how many published chapters the course has.

		Parameters:
		  - context: context.Context
		  - courseID: string

		Returns:
		  - int: Published chapter count
		  - error: Retrieval failures
	*/
	CountPublished(context context.Context, courseID string) (int, error)

	/*
		SetCoursePublished flips the parent course's publication flag.
		Used only by the empty-course cascade.

		Parameters:
		  - context: context.Context
		  - courseID: string
		  - published: bool

		Returns:
		  - error: Execution failures
	*/
	SetCoursePublished(context context.Context, courseID string, published bool) error

	/*
		Delete permanently removes the chapter row. Progress rows cascade.

		Parameters:
		  - context: context.Context
		  - chapterID: string

		Returns:
		  - error: Execution failures
	*/
	Delete(context context.Context, chapterID string) error

	/*
		FindVideoAsset returns the provider asset linked to a chapter.

		Parameters:
		  - context: context.Context
		  - chapterID: string

		Returns:
		  - *VideoAsset: Hydrated entity
		  - error: apperr.NotFound when no asset is attached
	*/
	FindVideoAsset(context context.Context, chapterID string) (*VideoAsset, error)

	/*
		ReplaceVideoAsset upserts the chapter's provider asset link.
		A chapter holds at most one asset; re-attaching replaces the row.

		Parameters:
		  - context: context.Context
		  - asset: *VideoAsset

		Returns:
		  - error: Persistence failures
	*/
	ReplaceVideoAsset(context context.Context, asset *VideoAsset) error

	/*
		HasPurchase reports whether the user has purchased the course.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - courseID: string

		Returns:
		  - bool: True when an enrollment exists
		  - error: Retrieval failures
	*/
	HasPurchase(context context.Context, userID, courseID string) (bool, error)
}
