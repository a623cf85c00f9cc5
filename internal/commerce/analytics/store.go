// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package analytics

import "context"

// Repository defines the data access contract for revenue reporting.
type Repository interface {

	/*
		ListSales returns every enrollment in the instructor's courses as
		flat (title, price) records, oldest first.

		Parameters:
		  - context: context.Context
		  - ownerID: string (instructor)

		Returns:
		  - []SaleRecord: One record per enrollment
		  - error: Retrieval failures
	*/
	ListSales(context context.Context, ownerID string) ([]SaleRecord, error)
}
