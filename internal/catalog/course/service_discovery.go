// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package course

import (
	"context"
	"fmt"
	"log/slog"
)

// ProgressReader resolves a viewer's completion percentage for a course.
//
// Implemented by the learning progress service; declared here so the
// catalogue never imports the learning domain directly.
type ProgressReader interface {
	ForCourse(context context.Context, userID, courseID string) (float64, error)
}

/*
ListPublished returns a page of the discovery catalogue for a viewer.

Description: Published courses matching the filter, newest first. Each card
carries the category name and the ordered published chapter IDs. Progress is
resolved only for courses the viewer has purchased; unpurchased and anonymous
cards carry a nil progress so clients can distinguish "not started" from
"not enrolled".

Parameters:
  - context: context.Context
  - viewerID: string (empty for anonymous viewers)
  - filter: DiscoveryFilter
  - limit: int
  - offset: int

Returns:
  - []*CourseCard: Discovery cards
  - int: Total match count
  - err: Storage failures
*/
func (service *Service) ListPublished(context context.Context, viewerID string, filter DiscoveryFilter, limit, offset int) ([]*CourseCard, int, error) {

	rows, total, err := service.repository.ListPublished(context, filter, viewerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("course_service_discovery_failed: %w", err)
	}

	cards := make([]*CourseCard, 0, len(rows))
	for _, row := range rows {
		card := &CourseCard{
			Course:       row.Course,
			CategoryName: row.CategoryName,
			ChapterIDs:   row.ChapterIDs,
		}

		// Progress is only meaningful for enrolled viewers
		if row.Purchased && service.progressReader != nil {
			percentage, err := service.progressReader.ForCourse(context, viewerID, row.ID)
			if err != nil {
				// Degrade to zero rather than failing the whole catalogue
				service.logger.Warn("course_discovery_progress_failed",
					slog.String("course_id", row.ID),
					slog.String("user_id", viewerID),
					slog.Any("error", err),
				)
				percentage = 0
			}
			card.Progress = &percentage
		}

		cards = append(cards, card)
	}

	return cards, total, nil
}
