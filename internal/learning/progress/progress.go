// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
Package progress tracks per-chapter completion for enrolled members.

Completion is a flat (user, chapter) fact; course-level progress is always
derived at read time as the percentage of the course's currently published
chapters the member has completed. Nothing is stored per course, so
publishing or unpublishing chapters retroactively changes the percentage.
*/
package progress

import "time"

// UserProgress records one member's completion state for one chapter.
type UserProgress struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ChapterID   string    `json:"chapter_id"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldIsCompleted = "is_completed"
)
