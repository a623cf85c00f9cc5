// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package course_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/acadia/internal/catalog/course"
	"github.com/davitran/acadia/internal/platform/apperr"
	"github.com/davitran/acadia/internal/platform/sec"
	"github.com/davitran/acadia/pkg/pointer"
)

// fakeRepository is an in-memory [course.Repository] for service tests.
type fakeRepository struct {
	courses           map[string]*course.Course
	publishedChapters map[string]int
	videoAssetIDs     []string
	discoveryRows     []*course.DiscoveryRow

	lastFilter   course.DiscoveryFilter
	lastViewerID string
	lastLimit    int
	lastOffset   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		courses:           make(map[string]*course.Course),
		publishedChapters: make(map[string]int),
	}
}

func (f *fakeRepository) Create(_ context.Context, entity *course.Course) error {
	f.courses[entity.ID] = entity
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*course.Course, error) {
	entity, ok := f.courses[id]
	if !ok {
		return nil, apperr.NotFound("Course not found")
	}
	return entity, nil
}

func (f *fakeRepository) Update(_ context.Context, entity *course.Course) error {
	f.courses[entity.ID] = entity
	return nil
}

func (f *fakeRepository) SetPublished(_ context.Context, id string, published bool) error {
	if entity, ok := f.courses[id]; ok {
		entity.IsPublished = published
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.courses, id)
	return nil
}

func (f *fakeRepository) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*course.Course, int, error) {
	f.lastLimit = limit
	f.lastOffset = offset

	var owned []*course.Course
	for _, entity := range f.courses {
		if entity.OwnerID == ownerID {
			owned = append(owned, entity)
		}
	}
	total := len(owned)
	if offset > len(owned) {
		offset = len(owned)
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, total, nil
}

func (f *fakeRepository) CountPublishedChapters(_ context.Context, courseID string) (int, error) {
	return f.publishedChapters[courseID], nil
}

func (f *fakeRepository) ListVideoAssetIDs(_ context.Context, _ string) ([]string, error) {
	return f.videoAssetIDs, nil
}

func (f *fakeRepository) ListPublished(_ context.Context, filter course.DiscoveryFilter, viewerID string, limit, offset int) ([]*course.DiscoveryRow, int, error) {
	f.lastFilter = filter
	f.lastViewerID = viewerID
	f.lastLimit = limit
	f.lastOffset = offset

	total := len(f.discoveryRows)
	rows := f.discoveryRows
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, total, nil
}

// allowAllPolicy approves every authenticated caller as a course author.
type allowAllPolicy struct{}

func (allowAllPolicy) IsTeacher(claims *sec.AuthClaims) bool { return claims != nil }

// denyAllPolicy rejects everyone.
type denyAllPolicy struct{}

func (denyAllPolicy) IsTeacher(*sec.AuthClaims) bool { return false }

// fakeVideoProvider records asset deletions.
type fakeVideoProvider struct {
	deleted []string
}

func (f *fakeVideoProvider) DeleteAsset(_ context.Context, assetID string) error {
	f.deleted = append(f.deleted, assetID)
	return nil
}

// fixedProgressReader reports the same percentage for every course.
type fixedProgressReader struct {
	percentage float64
}

func (f fixedProgressReader) ForCourse(_ context.Context, _, _ string) (float64, error) {
	return f.percentage, nil
}

// # Test Fixtures

const ownerID = "owner-1"

func newTestService(repository course.Repository, policy sec.TeacherPolicy, reader course.ProgressReader) (*course.Service, *fakeVideoProvider) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := &fakeVideoProvider{}
	return course.NewService(repository, policy, provider, reader, logger), provider
}

func seedCourse(repository *fakeRepository, id string, complete bool) *course.Course {
	entity := &course.Course{
		ID:      id,
		OwnerID: ownerID,
		Title:   "Course " + id,
		Slug:    "course-" + id,
	}
	if complete {
		entity.Description = "A complete course"
		entity.ImageURL = "https://cdn.example.com/cover.png"
		entity.CategoryID = pointer.To("cat-1")
		entity.Price = pointer.To(49.99)
	}
	repository.courses[id] = entity
	return entity
}

func teacherClaims(userID string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: "instructor", Role: string(sec.RoleTeacher)}
}

// # Draft Lifecycle

/*
TestCreate_PolicyGate verifies that only approved instructors can create
courses, and that fresh drafts get a slug derived from the title.
*/
func TestCreate_PolicyGate(t *testing.T) {
	t.Run("approved_instructor", func(t *testing.T) {
		repository := newFakeRepository()
		service, _ := newTestService(repository, allowAllPolicy{}, nil)

		created, err := service.Create(context.Background(), teacherClaims(ownerID), "Advanced Woodworking")

		require.NoError(t, err)
		assert.Equal(t, ownerID, created.OwnerID)
		assert.False(t, created.IsPublished)
		assert.Contains(t, created.Slug, "advanced-woodworking")
	})

	t.Run("rejected_caller", func(t *testing.T) {
		repository := newFakeRepository()
		service, _ := newTestService(repository, denyAllPolicy{}, nil)

		_, err := service.Create(context.Background(), teacherClaims(ownerID), "Advanced Woodworking")

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.Empty(t, repository.courses)
	})
}

/*
TestUpdate verifies partial updates, category clearing, and price validation.
*/
func TestUpdate(t *testing.T) {
	t.Run("partial_fields_only", func(t *testing.T) {
		repository := newFakeRepository()
		service, _ := newTestService(repository, allowAllPolicy{}, nil)
		entity := seedCourse(repository, "c-1", true)

		updated, err := service.Update(context.Background(), "c-1", ownerID, course.UpdateInput{
			Description: pointer.To("New description"),
		})

		require.NoError(t, err)
		assert.Equal(t, "New description", updated.Description)
		assert.Equal(t, entity.Title, updated.Title, "untouched fields keep their value")
	})

	t.Run("empty_category_clears", func(t *testing.T) {
		repository := newFakeRepository()
		service, _ := newTestService(repository, allowAllPolicy{}, nil)
		seedCourse(repository, "c-1", true)

		updated, err := service.Update(context.Background(), "c-1", ownerID, course.UpdateInput{
			CategoryID: pointer.To(""),
		})

		require.NoError(t, err)
		assert.Nil(t, updated.CategoryID)
	})

	t.Run("negative_price_rejected", func(t *testing.T) {
		repository := newFakeRepository()
		service, _ := newTestService(repository, allowAllPolicy{}, nil)
		seedCourse(repository, "c-1", true)

		_, err := service.Update(context.Background(), "c-1", ownerID, course.UpdateInput{
			Price: pointer.To(-5.0),
		})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

// # Ownership

/*
TestOwnershipGuard verifies that non-owners receive Unauthorized for every
management operation, hiding whether the course exists.
*/
func TestOwnershipGuard(t *testing.T) {
	repository := newFakeRepository()
	service, _ := newTestService(repository, allowAllPolicy{}, nil)
	seedCourse(repository, "c-1", true)

	operations := map[string]func() error{
		"get": func() error {
			_, err := service.Get(context.Background(), "c-1", "intruder")
			return err
		},
		"update": func() error {
			_, err := service.Update(context.Background(), "c-1", "intruder", course.UpdateInput{})
			return err
		},
		"publish":   func() error { return service.Publish(context.Background(), "c-1", "intruder") },
		"unpublish": func() error { return service.Unpublish(context.Background(), "c-1", "intruder") },
		"delete":    func() error { return service.Delete(context.Background(), "c-1", "intruder") },
	}

	for name, operation := range operations {
		t.Run(name, func(t *testing.T) {
			err := operation()
			require.Error(t, err)
			assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		})
	}
}

// # Publication Lifecycle

/*
TestPublish_CompletenessGate verifies every publication precondition: the
required fields and at least one published chapter.
*/
func TestPublish_CompletenessGate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*course.Course)
		chapters  int
		wantField string
	}{
		{"missing_title", func(c *course.Course) { c.Title = "" }, 1, "title"},
		{"missing_description", func(c *course.Course) { c.Description = "" }, 1, "description"},
		{"missing_image", func(c *course.Course) { c.ImageURL = "" }, 1, "image_url"},
		{"missing_category", func(c *course.Course) { c.CategoryID = nil }, 1, "category_id"},
		{"no_published_chapters", func(*course.Course) {}, 0, "chapters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newFakeRepository()
			service, _ := newTestService(repository, allowAllPolicy{}, nil)
			entity := seedCourse(repository, "c-1", true)
			tt.mutate(entity)
			repository.publishedChapters["c-1"] = tt.chapters

			err := service.Publish(context.Background(), "c-1", ownerID)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
			assert.False(t, repository.courses["c-1"].IsPublished)
		})
	}
}

/*
TestPublish_CompleteCourse verifies the happy path.
*/
func TestPublish_CompleteCourse(t *testing.T) {
	repository := newFakeRepository()
	service, _ := newTestService(repository, allowAllPolicy{}, nil)
	seedCourse(repository, "c-1", true)
	repository.publishedChapters["c-1"] = 2

	require.NoError(t, service.Publish(context.Background(), "c-1", ownerID))
	assert.True(t, repository.courses["c-1"].IsPublished)
}

/*
TestUnpublish_Idempotent verifies that unpublishing never checks
completeness and succeeds repeatedly.
*/
func TestUnpublish_Idempotent(t *testing.T) {
	repository := newFakeRepository()
	service, _ := newTestService(repository, allowAllPolicy{}, nil)
	entity := seedCourse(repository, "c-1", false) // incomplete on purpose
	entity.IsPublished = true

	require.NoError(t, service.Unpublish(context.Background(), "c-1", ownerID))
	assert.False(t, entity.IsPublished)

	// Second call on an already-hidden course still succeeds
	require.NoError(t, service.Unpublish(context.Background(), "c-1", ownerID))
}

/*
TestDelete_TearsDownRemoteAssets verifies that course deletion removes the
chapters' provider assets first.
*/
func TestDelete_TearsDownRemoteAssets(t *testing.T) {
	repository := newFakeRepository()
	service, provider := newTestService(repository, allowAllPolicy{}, nil)
	seedCourse(repository, "c-1", true)
	repository.videoAssetIDs = []string{"asset-1", "asset-2"}

	require.NoError(t, service.Delete(context.Background(), "c-1", ownerID))

	assert.Equal(t, []string{"asset-1", "asset-2"}, provider.deleted)
	assert.Empty(t, repository.courses)
}

// # Discovery

/*
TestListPublished_ProgressGating verifies that completion percentages are
attached only to purchased courses; everything else carries nil.
*/
func TestListPublished_ProgressGating(t *testing.T) {
	repository := newFakeRepository()
	service, _ := newTestService(repository, allowAllPolicy{}, fixedProgressReader{percentage: 75})

	purchased := &course.DiscoveryRow{Purchased: true}
	purchased.ID = "c-1"
	browsing := &course.DiscoveryRow{Purchased: false}
	browsing.ID = "c-2"
	repository.discoveryRows = []*course.DiscoveryRow{purchased, browsing}

	cards, total, err := service.ListPublished(context.Background(), "viewer-1", course.DiscoveryFilter{Title: "go"}, 20, 0)

	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, 2, total)

	require.NotNil(t, cards[0].Progress)
	assert.InDelta(t, 75, *cards[0].Progress, 0.001)
	assert.Nil(t, cards[1].Progress, "unpurchased cards must not report progress")

	// The filter and viewer identity are passed through to storage
	assert.Equal(t, "go", repository.lastFilter.Title)
	assert.Equal(t, "viewer-1", repository.lastViewerID)
}

/*
TestListPublished_Pagination verifies that the page window is handed to
storage and the total reflects the full match count, not the page size.
*/
func TestListPublished_Pagination(t *testing.T) {
	repository := newFakeRepository()
	service, _ := newTestService(repository, allowAllPolicy{}, nil)

	for _, id := range []string{"c-1", "c-2", "c-3"} {
		row := &course.DiscoveryRow{}
		row.ID = id
		repository.discoveryRows = append(repository.discoveryRows, row)
	}

	cards, total, err := service.ListPublished(context.Background(), "", course.DiscoveryFilter{}, 2, 2)

	require.NoError(t, err)
	assert.Len(t, cards, 1, "third item lands on the second page")
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, repository.lastLimit)
	assert.Equal(t, 2, repository.lastOffset)
}

/*
TestListOwned_Pagination verifies the page window passthrough for the
instructor's own listing.
*/
func TestListOwned_Pagination(t *testing.T) {
	repository := newFakeRepository()
	service, _ := newTestService(repository, allowAllPolicy{}, nil)
	seedCourse(repository, "c-1", false)
	seedCourse(repository, "c-2", false)

	owned, total, err := service.ListOwned(context.Background(), ownerID, 1, 0)

	require.NoError(t, err)
	assert.Len(t, owned, 1)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, repository.lastLimit)
	assert.Equal(t, 0, repository.lastOffset)
}
