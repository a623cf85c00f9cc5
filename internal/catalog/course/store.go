// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package course

import "context"

// # Discovery Filtering

// DiscoveryFilter narrows the published-course listing.
type DiscoveryFilter struct {
	// Title is matched as a case-sensitive substring of the course title.
	Title string
	// CategoryID restricts results to a single category when non-empty.
	CategoryID string
}

// DiscoveryRow is the raw storage projection backing a [CourseCard].
type DiscoveryRow struct {
	Course
	CategoryName *string
	ChapterIDs   []string
	Purchased    bool
}

// # Course Data Access

// Repository defines the data access contract for the course aggregate.
type Repository interface {

	/*
		Create persists a brand-new draft course.

		Parameters:
		  - context: context.Context
		  - course: *Course

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, course *Course) error

	/*
		FindByID returns the course with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Course: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Course, error)

	/*
		Update persists changes to the course's mutable fields.

		Parameters:
		  - context: context.Context
		  - course: *Course

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, course *Course) error

	/*
		SetPublished flips the course's publication flag.

		Parameters:
		  - context: context.Context
		  - id: string
		  - published: bool

		Returns:
		  - error: Persistence failures
	*/
	SetPublished(context context.Context, id string, published bool) error

	/*
		Delete permanently removes the course and its dependent rows
		(chapters, purchases, progress) via FK cascade.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		ListByOwner returns a page of the instructor's courses, newest
		first, along with the total owned count.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Course: Owned courses
		  - int: Total owned count (ignoring the page window)
		  - error: Retrieval failures
	*/
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Course, int, error)

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
		ListVideoAssetIDs returns the remote provider asset IDs referenced
		by the course's chapters.

		Parameters:
		  - context: context.Context
		  - courseID: string

		Returns:
		  - []string: Provider asset identifiers
		  - error: Retrieval failures
	*/
	ListVideoAssetIDs(context context.Context, courseID string) ([]string, error)

	/*
		ListPublished returns a page of published courses matching the
		filter, newest first, with category names, published chapter IDs,
		and the viewer's purchase state resolved in a single round-trip.

		Parameters:
		  - context: context.Context
		  - filter: DiscoveryFilter
		  - viewerID: string (empty for anonymous viewers)
		  - limit: int
		  - offset: int

		Returns:
		  - []*DiscoveryRow: Matched courses
		  - int: Total match count (ignoring the page window)
		  - error: Retrieval failures
	*/
	ListPublished(context context.Context, filter DiscoveryFilter, viewerID string, limit, offset int) ([]*DiscoveryRow, int, error)
}
