package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/response"
)

func TestViewPresetService_SharingLifecycle(t *testing.T) {
	svc := NewViewPresetService(setupTestDB(t))

	p := &models.ViewPreset{
		Name:   "Pending payments",
		Config: models.JSONMap{"status": "refund form submitted"},
	}
	require.NoError(t, svc.Create(p))
	assert.NotEmpty(t, p.ID)
	assert.Empty(t, p.Slug, "unshared presets carry no slug")

	// sharing mints a slug
	shared := *p
	shared.Shared = true
	got, err := svc.Update(p.ID, &shared)
	require.NoError(t, err)
	require.NotEmpty(t, got.Slug)

	bySlug, err := svc.GetShared(got.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)
	assert.Equal(t, "refund form submitted", bySlug.Config["status"])

	// unsharing revokes the link
	unshared := *got
	unshared.Shared = false
	got, err = svc.Update(p.ID, &unshared)
	require.NoError(t, err)
	assert.Empty(t, got.Slug)

	_, err = svc.GetShared(bySlug.Slug)
	assert.True(t, response.IsNotFound(err))
}

func TestViewPresetService_Delete(t *testing.T) {
	svc := NewViewPresetService(setupTestDB(t))

	p := &models.ViewPreset{Name: "temp"}
	require.NoError(t, svc.Create(p))
	require.NoError(t, svc.Delete(p.ID))
	_, err := svc.Get(p.ID)
	assert.True(t, response.IsNotFound(err))
	assert.True(t, response.IsNotFound(svc.Delete(p.ID)))
}

func TestLookupService(t *testing.T) {
	svc := NewLookupService(setupTestDB(t))

	require.NoError(t, svc.SavePlatform(&models.Platform{Name: "Amazon"}))
	require.NoError(t, svc.SaveMediator(&models.Mediator{Name: "M1", Phone: "999"}))
	require.NoError(t, svc.SaveStatus(&models.StatusLabel{Name: "ordered"}))

	platforms, err := svc.Platforms()
	require.NoError(t, err)
	require.Len(t, platforms, 1)
	assert.Equal(t, "Amazon", platforms[0].Name)

	mediators, err := svc.Mediators()
	require.NoError(t, err)
	require.Len(t, mediators, 1)
	assert.Equal(t, "999", mediators[0].Phone)

	require.NoError(t, svc.DeletePlatform(platforms[0].ID))
	assert.True(t, response.IsNotFound(svc.DeletePlatform(platforms[0].ID)))
}
