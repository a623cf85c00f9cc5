// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package attachment

import "context"

// Repository defines the data access contract for course attachments.
type Repository interface {

	/*
		GetCourseRef returns the minimal parent-course projection.

		Parameters:
		  - context: context.Context
		  - courseID: string

		Returns:
		  - *CourseRef: Owner projection
		  - error: apperr.NotFound or retrieval failures
	*/
	GetCourseRef(context context.Context, courseID string) (*CourseRef, error)

	/*
		Create persists a new attachment.

		Parameters:
		  - context: context.Context
		  - attachment: *Attachment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, attachment *Attachment) error

	/*
		ListByCourse returns the course's attachments, newest first.

		Parameters:
		  - context: context.Context
		  - courseID: string

		Returns:
		  - []*Attachment: Linked files
		  - error: Retrieval failures
	*/
	ListByCourse(context context.Context, courseID string) ([]*Attachment, error)

	/*
		Delete removes an attachment, scoped to its course.

		Parameters:
		  - context: context.Context
		  - courseID: string
		  - attachmentID: string

		Returns:
		  - error: apperr.NotFound when no row matched, or execution failures
	*/
	Delete(context context.Context, courseID, attachmentID string) error
}
