// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/acadia/internal/platform/apperr"
)

/*
TestConstructors verifies the code and HTTP status of each error kind.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantCode   string
		wantStatus int
	}{
		{"not_found", apperr.NotFound("Course not found"), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("Authentication required"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("Not yours"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", apperr.Conflict("Already exists"), "CONFLICT", http.StatusConflict},
		{"validation", apperr.ValidationError("Validation failed"), "VALIDATION_ERROR", http.StatusBadRequest},
		{"internal", apperr.Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
		})
	}
}

/*
TestInternal_HidesCause verifies that internal causes never leak into the
client-facing message.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause, "cause stays reachable for logging")
}

/*
TestAs verifies extraction through wrapped error chains.
*/
func TestAs(t *testing.T) {
	inner := apperr.Conflict("Course already purchased")
	wrapped := fmt.Errorf("purchase_service_enroll_failed: %w", inner)

	extracted := apperr.As(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, "CONFLICT", extracted.Code)

	assert.Nil(t, apperr.As(errors.New("plain")), "non-app errors yield nil")
	assert.True(t, apperr.IsAppError(wrapped))
}
