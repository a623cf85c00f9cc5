// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package analytics_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/acadia/internal/commerce/analytics"
)

// fakeRepository returns a canned sale listing.
type fakeRepository struct {
	sales []analytics.SaleRecord
	err   error
}

func (f *fakeRepository) ListSales(_ context.Context, _ string) ([]analytics.SaleRecord, error) {
	return f.sales, f.err
}

func newTestService(repository analytics.Repository) *analytics.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return analytics.NewService(repository, logger)
}

/*
TestForInstructor_GroupsByTitle verifies that sales are grouped by course
title in first-sale order, with totals spanning every enrollment.
*/
func TestForInstructor_GroupsByTitle(t *testing.T) {
	repository := &fakeRepository{sales: []analytics.SaleRecord{
		{CourseTitle: "Mathematics", Price: 100},
		{CourseTitle: "Mathematics", Price: 100},
		{CourseTitle: "Art", Price: 50},
		{CourseTitle: "Mathematics", Price: 100},
	}}

	report := newTestService(repository).ForInstructor(context.Background(), "owner-1")

	require.Len(t, report.Data, 2)
	assert.Equal(t, "Mathematics", report.Data[0].CourseTitle, "first-sold title leads the report")
	assert.InDelta(t, 300, report.Data[0].Total, 0.001)
	assert.Equal(t, "Art", report.Data[1].CourseTitle)
	assert.InDelta(t, 50, report.Data[1].Total, 0.001)

	assert.InDelta(t, 350, report.TotalRevenue, 0.001)
	assert.Equal(t, 4, report.TotalSales)
}

/*
TestForInstructor_NoSales verifies the empty report shape: a non-nil,
empty data slice with zeroed totals.
*/
func TestForInstructor_NoSales(t *testing.T) {
	report := newTestService(&fakeRepository{}).ForInstructor(context.Background(), "owner-1")

	assert.NotNil(t, report.Data)
	assert.Empty(t, report.Data)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.TotalSales)
}

/*
TestForInstructor_StorageFailureDegrades verifies that a retrieval failure
yields an empty report rather than an error.
*/
func TestForInstructor_StorageFailureDegrades(t *testing.T) {
	repository := &fakeRepository{err: errors.New("connection reset")}

	report := newTestService(repository).ForInstructor(context.Background(), "owner-1")

	require.NotNil(t, report)
	assert.Empty(t, report.Data)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.TotalSales)
}

/*
TestForInstructor_FreeCoursesCountAsSales verifies that zero-price
enrollments still increment the sale count.
*/
func TestForInstructor_FreeCoursesCountAsSales(t *testing.T) {
	repository := &fakeRepository{sales: []analytics.SaleRecord{
		{CourseTitle: "Free Intro", Price: 0},
		{CourseTitle: "Free Intro", Price: 0},
	}}

	report := newTestService(repository).ForInstructor(context.Background(), "owner-1")

	assert.Equal(t, 2, report.TotalSales)
	assert.Zero(t, report.TotalRevenue)
	require.Len(t, report.Data, 1)
	assert.Zero(t, report.Data[0].Total)
}
