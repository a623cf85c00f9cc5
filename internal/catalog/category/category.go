// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
Package category manages the reference taxonomy used to classify courses.

Categories are a flat, admin-curated list (e.g. "Computer Science", "Music").
Courses reference a category for discovery filtering.
*/
package category

import "time"

// Category represents a single course classification.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
