// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package chapter_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/acadia/internal/catalog/chapter"
	"github.com/davitran/acadia/internal/platform/apperr"
	"github.com/davitran/acadia/internal/platform/videohost"
)

// fakeRepository is an in-memory [chapter.Repository] for service tests.
type fakeRepository struct {
	course    *chapter.CourseRef
	chapters  map[string]*chapter.Chapter
	assets    map[string]*chapter.VideoAsset // keyed by chapterID
	purchases map[string]bool                // keyed by userID+courseID

	reorders [][]chapter.PositionUpdate
}

func newFakeRepository(course *chapter.CourseRef) *fakeRepository {
	return &fakeRepository{
		course:    course,
		chapters:  make(map[string]*chapter.Chapter),
		assets:    make(map[string]*chapter.VideoAsset),
		purchases: make(map[string]bool),
	}
}

func (f *fakeRepository) GetCourseRef(_ context.Context, courseID string) (*chapter.CourseRef, error) {
	if f.course == nil || f.course.ID != courseID {
		return nil, apperr.NotFound("Course not found")
	}
	ref := *f.course
	return &ref, nil
}

func (f *fakeRepository) Create(_ context.Context, entity *chapter.Chapter) error {
	f.chapters[entity.ID] = entity
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, courseID, chapterID string) (*chapter.Chapter, error) {
	entity, ok := f.chapters[chapterID]
	if !ok || entity.CourseID != courseID {
		return nil, apperr.NotFound("Chapter not found")
	}
	return entity, nil
}

func (f *fakeRepository) MaxPosition(_ context.Context, courseID string) (int, error) {
	highest := 0
	for _, entity := range f.chapters {
		if entity.CourseID == courseID && entity.Position > highest {
			highest = entity.Position
		}
	}
	return highest, nil
}

func (f *fakeRepository) Update(_ context.Context, entity *chapter.Chapter) error {
	f.chapters[entity.ID] = entity
	return nil
}

func (f *fakeRepository) UpdatePositions(_ context.Context, courseID string, updates []chapter.PositionUpdate) error {
	f.reorders = append(f.reorders, updates)
	for _, update := range updates {
		if entity, ok := f.chapters[update.ChapterID]; ok && entity.CourseID == courseID {
			entity.Position = update.Position
		}
	}
	return nil
}

// SetPublished mirrors production behaviour: flipping an absent chapter
// is not an error.
func (f *fakeRepository) SetPublished(_ context.Context, chapterID string, published bool) error {
	if entity, ok := f.chapters[chapterID]; ok {
		entity.IsPublished = published
	}
	return nil
}

func (f *fakeRepository) CountPublished(_ context.Context, courseID string) (int, error) {
	count := 0
	for _, entity := range f.chapters {
		if entity.CourseID == courseID && entity.IsPublished {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) SetCoursePublished(_ context.Context, courseID string, published bool) error {
	if f.course != nil && f.course.ID == courseID {
		f.course.IsPublished = published
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, chapterID string) error {
	delete(f.chapters, chapterID)
	delete(f.assets, chapterID)
	return nil
}

func (f *fakeRepository) FindVideoAsset(_ context.Context, chapterID string) (*chapter.VideoAsset, error) {
	asset, ok := f.assets[chapterID]
	if !ok {
		return nil, apperr.NotFound("No video attached to this chapter")
	}
	return asset, nil
}

func (f *fakeRepository) ReplaceVideoAsset(_ context.Context, asset *chapter.VideoAsset) error {
	f.assets[asset.ChapterID] = asset
	return nil
}

func (f *fakeRepository) HasPurchase(_ context.Context, userID, courseID string) (bool, error) {
	return f.purchases[userID+courseID], nil
}

// fakeVideoProvider records provider calls without network traffic.
type fakeVideoProvider struct {
	created      []string
	deleted      []string
	statusChecks []string
	ready        bool
	remoteReady  bool
	statusErr    error
}

func (f *fakeVideoProvider) CreateAsset(_ context.Context, uploadURL string) (*videohost.Asset, error) {
	f.created = append(f.created, uploadURL)
	return &videohost.Asset{AssetID: "asset-" + uploadURL, PlaybackID: "playback-1", Ready: f.ready}, nil
}

func (f *fakeVideoProvider) GetAsset(_ context.Context, assetID string) (*videohost.Asset, error) {
	f.statusChecks = append(f.statusChecks, assetID)
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &videohost.Asset{AssetID: assetID, PlaybackID: "playback-1", Ready: f.remoteReady}, nil
}

func (f *fakeVideoProvider) DeleteAsset(_ context.Context, assetID string) error {
	f.deleted = append(f.deleted, assetID)
	return nil
}

// # Test Fixtures

const (
	ownerID  = "owner-1"
	courseID = "course-1"
)

func newTestService(repository chapter.Repository, provider chapter.VideoProvider) *chapter.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return chapter.NewService(repository, provider, logger)
}

func seedChapter(repository *fakeRepository, id string, published bool) *chapter.Chapter {
	entity := &chapter.Chapter{
		ID:          id,
		CourseID:    courseID,
		Title:       "Chapter " + id,
		Description: "About " + id,
		Position:    len(repository.chapters) + 1,
		IsPublished: published,
	}
	repository.chapters[id] = entity
	return entity
}

// # Draft Lifecycle

/*
TestCreate_AppendsAtEnd verifies that new chapters always land after the
existing ones: position 1 for the first, max+1 afterwards.
*/
func TestCreate_AppendsAtEnd(t *testing.T) {
	repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
	service := newTestService(repository, &fakeVideoProvider{})

	first, err := service.Create(context.Background(), courseID, ownerID, "Introduction")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)

	second, err := service.Create(context.Background(), courseID, ownerID, "Setup")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)

	assert.False(t, first.IsPublished, "new chapters start as drafts")
}

/*
TestCreate_NonOwnerRejected verifies that outsiders cannot add chapters and
receive Unauthorized rather than a hint that the course exists.
*/
func TestCreate_NonOwnerRejected(t *testing.T) {
	repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
	service := newTestService(repository, &fakeVideoProvider{})

	_, err := service.Create(context.Background(), courseID, "intruder", "Hijacked")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// # Video Attachment

/*
TestAttachVideo_ReplacesPriorAsset verifies that re-attaching a video tears
down the previous provider asset and stores the replacement link.
*/
func TestAttachVideo_ReplacesPriorAsset(t *testing.T) {
	repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
	provider := &fakeVideoProvider{ready: true}
	service := newTestService(repository, provider)
	seedChapter(repository, "ch-1", false)
	repository.assets["ch-1"] = &chapter.VideoAsset{ID: "old", ChapterID: "ch-1", AssetID: "stale-asset"}

	asset, err := service.AttachVideo(context.Background(), courseID, "ch-1", ownerID, "https://cdn.example.com/v2.mp4")

	require.NoError(t, err)
	assert.Equal(t, []string{"stale-asset"}, provider.deleted)
	assert.True(t, asset.IsReady)
	assert.Equal(t, "https://cdn.example.com/v2.mp4", repository.chapters["ch-1"].VideoURL)
}

// # Ordering

/*
TestReorder verifies validation of the layout payload and that accepted
layouts are handed to storage as-is.
*/
func TestReorder(t *testing.T) {
	repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
	service := newTestService(repository, &fakeVideoProvider{})
	seedChapter(repository, "ch-1", false)
	seedChapter(repository, "ch-2", false)

	t.Run("empty_layout_rejected", func(t *testing.T) {
		err := service.Reorder(context.Background(), courseID, ownerID, nil)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("zero_position_rejected", func(t *testing.T) {
		err := service.Reorder(context.Background(), courseID, ownerID, []chapter.PositionUpdate{
			{ChapterID: "ch-1", Position: 0},
		})
		require.Error(t, err)
	})

	t.Run("valid_layout_applied", func(t *testing.T) {
		updates := []chapter.PositionUpdate{
			{ChapterID: "ch-1", Position: 2},
			{ChapterID: "ch-2", Position: 1},
		}
		require.NoError(t, service.Reorder(context.Background(), courseID, ownerID, updates))

		require.Len(t, repository.reorders, 1)
		assert.Equal(t, updates, repository.reorders[0])
		assert.Equal(t, 2, repository.chapters["ch-1"].Position)
		assert.Equal(t, 1, repository.chapters["ch-2"].Position)
	})
}

// # Publication Lifecycle

/*
TestPublish_CompletenessGate verifies that a chapter cannot go live until
its content is complete and its video has finished processing.
*/
func TestPublish_CompletenessGate(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		asset       *chapter.VideoAsset
		wantField   string
	}{
		{"missing_title", "", "desc", &chapter.VideoAsset{AssetID: "a", IsReady: true}, "title"},
		{"missing_description", "Title", "", &chapter.VideoAsset{AssetID: "a", IsReady: true}, "description"},
		{"no_video", "Title", "desc", nil, "video"},
		{"video_still_processing", "Title", "desc", &chapter.VideoAsset{AssetID: "a", IsReady: false}, "video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
			service := newTestService(repository, &fakeVideoProvider{})

			entity := seedChapter(repository, "ch-1", false)
			entity.Title = tt.title
			entity.Description = tt.description
			if tt.asset != nil {
				tt.asset.ChapterID = "ch-1"
				repository.assets["ch-1"] = tt.asset
			}

			err := service.Publish(context.Background(), courseID, "ch-1", ownerID)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
			assert.False(t, repository.chapters["ch-1"].IsPublished)
		})
	}
}

/*
TestPublish_CompleteChapter verifies the happy path.
*/
func TestPublish_CompleteChapter(t *testing.T) {
	repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
	service := newTestService(repository, &fakeVideoProvider{})
	seedChapter(repository, "ch-1", false)
	repository.assets["ch-1"] = &chapter.VideoAsset{ChapterID: "ch-1", AssetID: "a", IsReady: true}

	require.NoError(t, service.Publish(context.Background(), courseID, "ch-1", ownerID))
	assert.True(t, repository.chapters["ch-1"].IsPublished)
}

/*
TestPublish_RefreshesProcessingVideo verifies that an asset stored while the
provider was still transcoding is re-queried at publish time: once the
provider reports ready, the refreshed state is persisted and the chapter
goes live without a re-upload.
*/
func TestPublish_RefreshesProcessingVideo(t *testing.T) {
	t.Run("transcoding_finished_since_attach", func(t *testing.T) {
		repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
		provider := &fakeVideoProvider{remoteReady: true}
		service := newTestService(repository, provider)
		seedChapter(repository, "ch-1", false)
		repository.assets["ch-1"] = &chapter.VideoAsset{ChapterID: "ch-1", AssetID: "a", IsReady: false}

		require.NoError(t, service.Publish(context.Background(), courseID, "ch-1", ownerID))

		assert.Equal(t, []string{"a"}, provider.statusChecks)
		assert.True(t, repository.assets["ch-1"].IsReady, "refreshed state is persisted")
		assert.True(t, repository.chapters["ch-1"].IsPublished)
	})

	t.Run("still_transcoding", func(t *testing.T) {
		repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
		provider := &fakeVideoProvider{remoteReady: false}
		service := newTestService(repository, provider)
		seedChapter(repository, "ch-1", false)
		repository.assets["ch-1"] = &chapter.VideoAsset{ChapterID: "ch-1", AssetID: "a", IsReady: false}

		err := service.Publish(context.Background(), courseID, "ch-1", ownerID)

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		assert.False(t, repository.assets["ch-1"].IsReady)
	})

	t.Run("provider_unreachable", func(t *testing.T) {
		repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
		provider := &fakeVideoProvider{statusErr: apperr.ServiceUnavailable("Video provider is unreachable")}
		service := newTestService(repository, provider)
		seedChapter(repository, "ch-1", false)
		repository.assets["ch-1"] = &chapter.VideoAsset{ChapterID: "ch-1", AssetID: "a", IsReady: false}

		err := service.Publish(context.Background(), courseID, "ch-1", ownerID)

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code, "stored state wins when the provider cannot be reached")
	})

	t.Run("ready_asset_skips_refresh", func(t *testing.T) {
		repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
		provider := &fakeVideoProvider{}
		service := newTestService(repository, provider)
		seedChapter(repository, "ch-1", false)
		repository.assets["ch-1"] = &chapter.VideoAsset{ChapterID: "ch-1", AssetID: "a", IsReady: true}

		require.NoError(t, service.Publish(context.Background(), courseID, "ch-1", ownerID))
		assert.Empty(t, provider.statusChecks)
	})
}

/*
TestUnpublish_EmptyCourseCascade verifies that hiding the last published
chapter force-unpublishes the course, while hiding a non-last chapter
leaves the course visible.
*/
func TestUnpublish_EmptyCourseCascade(t *testing.T) {
	t.Run("last_chapter_cascades", func(t *testing.T) {
		repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID, IsPublished: true})
		service := newTestService(repository, &fakeVideoProvider{})
		seedChapter(repository, "ch-1", true)

		require.NoError(t, service.Unpublish(context.Background(), courseID, "ch-1", ownerID))

		assert.False(t, repository.chapters["ch-1"].IsPublished)
		assert.False(t, repository.course.IsPublished, "empty course must leave discovery")
	})

	t.Run("remaining_chapter_keeps_course_live", func(t *testing.T) {
		repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID, IsPublished: true})
		service := newTestService(repository, &fakeVideoProvider{})
		seedChapter(repository, "ch-1", true)
		seedChapter(repository, "ch-2", true)

		require.NoError(t, service.Unpublish(context.Background(), courseID, "ch-1", ownerID))

		assert.True(t, repository.course.IsPublished)
	})

	t.Run("absent_chapter_still_runs_cascade", func(t *testing.T) {
		// The flip is idempotent and the cascade check runs regardless of
		// whether the chapter row exists.
		repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID, IsPublished: true})
		service := newTestService(repository, &fakeVideoProvider{})

		require.NoError(t, service.Unpublish(context.Background(), courseID, "ghost", ownerID))
		assert.False(t, repository.course.IsPublished)
	})
}

/*
TestDelete_LastPublishedChapterCascades verifies that deleting the final
published chapter unpublishes the course and tears down the remote asset.
*/
func TestDelete_LastPublishedChapterCascades(t *testing.T) {
	repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID, IsPublished: true})
	provider := &fakeVideoProvider{}
	service := newTestService(repository, provider)
	seedChapter(repository, "ch-1", true)
	repository.assets["ch-1"] = &chapter.VideoAsset{ChapterID: "ch-1", AssetID: "remote-1"}

	require.NoError(t, service.Delete(context.Background(), courseID, "ch-1", ownerID))

	assert.NotContains(t, repository.chapters, "ch-1")
	assert.Equal(t, []string{"remote-1"}, provider.deleted)
	assert.False(t, repository.course.IsPublished)
}

/*
TestDelete_MissingChapter verifies that deletion of an unknown chapter is
reported, unlike the idempotent unpublish flip.
*/
func TestDelete_MissingChapter(t *testing.T) {
	repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID})
	service := newTestService(repository, &fakeVideoProvider{})

	err := service.Delete(context.Background(), courseID, "ghost", ownerID)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Learner Access

/*
TestGetForLearner verifies the paywall: free chapters are open to anyone,
paid chapters unlock only for enrolled members, and drafts stay invisible.
*/
func TestGetForLearner(t *testing.T) {
	setup := func(coursePublished, chapterPublished, isFree bool) (*fakeRepository, *chapter.Service) {
		repository := newFakeRepository(&chapter.CourseRef{ID: courseID, OwnerID: ownerID, IsPublished: coursePublished})
		entity := seedChapter(repository, "ch-1", chapterPublished)
		entity.IsFree = isFree
		repository.assets["ch-1"] = &chapter.VideoAsset{ChapterID: "ch-1", AssetID: "a", PlaybackID: "p", IsReady: true}
		return repository, newTestService(repository, &fakeVideoProvider{})
	}

	t.Run("free_chapter_open_to_anonymous", func(t *testing.T) {
		_, service := setup(true, true, true)

		view, err := service.GetForLearner(context.Background(), "", courseID, "ch-1")

		require.NoError(t, err)
		assert.False(t, view.Locked)
		require.NotNil(t, view.Video)
		assert.Equal(t, "p", view.Video.PlaybackID)
	})

	t.Run("paid_chapter_locked_without_enrollment", func(t *testing.T) {
		_, service := setup(true, true, false)

		view, err := service.GetForLearner(context.Background(), "user-1", courseID, "ch-1")

		require.NoError(t, err)
		assert.True(t, view.Locked)
		assert.Nil(t, view.Video, "locked views never carry playback data")
	})

	t.Run("paid_chapter_unlocked_after_enrollment", func(t *testing.T) {
		repository, service := setup(true, true, false)
		repository.purchases["user-1"+courseID] = true

		view, err := service.GetForLearner(context.Background(), "user-1", courseID, "ch-1")

		require.NoError(t, err)
		assert.False(t, view.Locked)
		assert.NotNil(t, view.Video)
	})

	t.Run("unpublished_course_invisible", func(t *testing.T) {
		_, service := setup(false, true, true)

		_, err := service.GetForLearner(context.Background(), "user-1", courseID, "ch-1")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("draft_chapter_invisible", func(t *testing.T) {
		_, service := setup(true, false, true)

		_, err := service.GetForLearner(context.Background(), "user-1", courseID, "ch-1")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
