// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
Package attachment manages supplementary course materials.

Attachments are downloadable files (slides, worksheets, source archives) an
instructor links to a course. The platform stores only the file's public URL;
upload itself happens against the object store directly. The display name is
derived from the URL's final path segment.
*/
package attachment

import "time"

// # Domain Entities

// Attachment is a supplementary file linked to a course.
type Attachment struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseRef is the minimal parent-course projection used for ownership checks.
type CourseRef struct {
	ID      string
	OwnerID string
}

// # Field Identifiers

const (
	FieldURL = "url"
)
