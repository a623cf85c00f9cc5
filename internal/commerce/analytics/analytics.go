// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
Package analytics derives instructor revenue reports from enrollment data.

Each sale contributes the course's price at query time. Revenue is grouped
by course title in first-sale order; total sales counts enrollments, not
distinct courses.
*/
package analytics

// SaleRecord is one enrollment joined with its course's title and price.
type SaleRecord struct {
	CourseTitle string
	Price       float64
}

// RevenueGroup aggregates all sales of one course title.
type RevenueGroup struct {
	CourseTitle string  `json:"course_title"`
	Total       float64 `json:"total"`
}

// Report is an instructor's full revenue summary.
type Report struct {
	Data         []RevenueGroup `json:"data"`
	TotalRevenue float64        `json:"total_revenue"`
	TotalSales   int            `json:"total_sales"`
}
