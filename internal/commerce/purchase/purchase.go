// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
Package purchase manages course enrollments.

A purchase is the (user, course) fact that unlocks paid chapter content and
feeds instructor revenue analytics. The pair is unique: enrolling twice in
the same course is a conflict, not a second sale.
*/
package purchase

import "time"

// Purchase records one member's enrollment in one course.
type Purchase struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CourseID  string    `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseRef is the minimal course projection needed to vet an enrollment.
type CourseRef struct {
	ID          string
	OwnerID     string
	IsPublished bool
}
