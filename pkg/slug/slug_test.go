// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davitran/acadia/pkg/slug"
)

/*
TestFrom verifies the title-to-slug pipeline used for course URLs.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Mastering Go Concurrency", "mastering-go-concurrency"},
		{"accented_characters", "Café Société", "cafe-societe"},
		{"punctuation_stripped", "C++ for Beginners!", "c-for-beginners"},
		{"multiple_spaces_collapse", "Intro   to    Baking", "intro-to-baking"},
		{"leading_trailing_trimmed", "  -- Yoga Basics -- ", "yoga-basics"},
		{"digits_preserved", "Photography 101", "photography-101"},
		{"empty_input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
