// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package sec

// # Authoring Policy

// TeacherPolicy decides whether an authenticated user may author courses.
//
// # Why an injected policy?
//
// The "who is a teacher" decision is an operational concern (an allow-list
// maintained outside the database), not a property of the role claim alone.
// Injecting it keeps the authorization boundary explicit and unit-testable,
// with no global mutable state.
type TeacherPolicy interface {
	// IsTeacher reports whether the given user may create courses.
	IsTeacher(claims *AuthClaims) bool
}

// AllowListTeacherPolicy grants authoring rights to an explicit set of user
// IDs, falling back to the role claim when the list is empty.
type AllowListTeacherPolicy struct {
	allowed map[string]struct{}
}

// NewAllowListTeacherPolicy builds a policy from a list of user IDs
// (typically the TEACHER_IDS environment variable).
func NewAllowListTeacherPolicy(userIDs []string) *AllowListTeacherPolicy {
	allowed := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id != "" {
			allowed[id] = struct{}{}
		}
	}
	return &AllowListTeacherPolicy{allowed: allowed}
}

// IsTeacher implements [TeacherPolicy].
//
// An empty allow-list delegates entirely to the role claim; a non-empty list
// requires membership in addition to authentication.
func (policy *AllowListTeacherPolicy) IsTeacher(claims *AuthClaims) bool {
	if claims == nil {
		return false
	}

	if len(policy.allowed) == 0 {
		return UserRole(claims.Role).AtLeast(RoleTeacher)
	}

	_, ok := policy.allowed[claims.UserID]
	return ok
}
