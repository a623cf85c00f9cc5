// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package analytics

import (
	"context"
	"log/slog"
)

// Service computes instructor revenue reports.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
ForInstructor builds the revenue report for an instructor.

Description: Sales are grouped by course title in the order each title first
sold. Total revenue sums the recorded prices and total sales counts every
enrollment. The report is advisory, so a storage failure degrades to an empty
report rather than failing the dashboard.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - *Report: Revenue summary, zeroed when retrieval fails
*/
func (service *Service) ForInstructor(context context.Context, ownerID string) *Report {

	sales, err := service.repository.ListSales(context, ownerID)
	if err != nil {
		service.logger.Warn("analytics_sales_lookup_failed",
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()),
		)
		return &Report{Data: []RevenueGroup{}}
	}

	report := &Report{Data: []RevenueGroup{}}
	positions := make(map[string]int)

	for _, sale := range sales {
		index, seen := positions[sale.CourseTitle]
		if !seen {
			index = len(report.Data)
			positions[sale.CourseTitle] = index
			report.Data = append(report.Data, RevenueGroup{CourseTitle: sale.CourseTitle})
		}

		report.Data[index].Total += sale.Price
		report.TotalRevenue += sale.Price
		report.TotalSales++
	}

	return report
}
