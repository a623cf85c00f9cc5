// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
Package chapter manages the ordered content units inside a course.

Chapters carry the actual learning material: a video asset processed by the
external provider, a position within the course, and their own publication
state. The package enforces the catalogue's structural invariants:

  - Positions are assigned append-only (max+1) and rewritten via reorder.
  - A chapter may only be published once its content is complete and its
    video has finished processing.
  - Unpublishing or deleting the last published chapter force-unpublishes
    the parent course so discovery never lists an empty course.
*/
package chapter

import "time"

// # Domain Entities

// Chapter represents a single content unit within a course.
type Chapter struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	Position    int       `json:"position"`
	IsPublished bool      `json:"is_published"`
	IsFree      bool      `json:"is_free"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VideoAsset links a chapter to its remote provider asset.
//
// IsReady flips to true once the provider reports transcoding complete;
// publishing a chapter requires a ready asset.
type VideoAsset struct {
	ID         string    `json:"id"`
	ChapterID  string    `json:"chapter_id"`
	AssetID    string    `json:"asset_id"`
	PlaybackID string    `json:"playback_id"`
	IsReady    bool      `json:"is_ready"`
	CreatedAt  time.Time `json:"created_at"`
}

// CourseRef is the minimal parent-course projection used for ownership
// and publication checks.
type CourseRef struct {
	ID          string
	OwnerID     string
	IsPublished bool
}

// LearnerView is the read-side projection served to enrolled members.
//
// Video is nil when the content is locked (paid chapter without purchase).
type LearnerView struct {
	Chapter
	Video  *VideoAsset `json:"video"`
	Locked bool        `json:"locked"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVideo       = "video"
	FieldPositions   = "positions"
	FieldUploadURL   = "upload_url"
)
