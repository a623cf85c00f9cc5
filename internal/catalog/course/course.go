// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
Package course implements the course catalogue, the heart of the Acadia platform.

It defines the Course aggregate and the business rules governing its lifecycle:
draft creation by instructors, completeness-gated publication, public discovery,
and cascading teardown of remote video assets on deletion.

# Architecture

  - Entities: Course and its read-side projections (CourseCard).
  - Service: Lifecycle orchestration with ownership enforcement.
  - Repository: PostgreSQL access including cross-aggregate reads
    (published chapter counts, video asset references).
*/
package course

import "time"

// # Domain Entities

// Course represents a single course owned by an instructor.
//
// A course starts as a draft (IsPublished=false) and may only be published
// once its required fields are complete and it has at least one published chapter.
type Course struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	CategoryID  *string   `json:"category_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Price       *float64  `json:"price"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseCard is the discovery projection of a published course.
//
// Progress is nil for anonymous viewers and for viewers who have not
// purchased the course; otherwise it carries the completion percentage.
type CourseCard struct {
	Course
	CategoryName *string  `json:"category"`
	ChapterIDs   []string `json:"chapter_ids"`
	Progress     *float64 `json:"progress"`
}

// # Field Identifiers

// Field names for validation and identity mapping in the course domain.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImageURL    = "image_url"
	FieldCategoryID  = "category_id"
	FieldPrice       = "price"
	FieldChapters    = "chapters"
)
