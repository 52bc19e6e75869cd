package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: "axon_"},
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tag{},
		&models.Asset{},
		&models.AssetVersion{},
	))
	return db
}

func newAsset(id, path, name string) *models.Asset {
	return &models.Asset{
		Id:           id,
		Name:         name,
		Description:  "description of " + name,
		Category:     models.CategoryAutomationWorkflows,
		AssetType:    "workflow",
		Version:      "1.0.0",
		Status:       models.StatusPublished,
		Owner:        "platform-team@axon.internal",
		ContentPath:  &path,
		ContentHash:  "hash-" + id,
		SourceSystem: "github",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestAssetRepository_SaveAndFindByPath(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	require.NoError(t, repo.Save(newAsset("a1", "assets/workflows/a.md", "A")))

	got, err := repo.FindByPath(context.Background(), "assets/workflows/a.md")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.Id)

	missing, err := repo.FindByPath(context.Background(), "assets/workflows/other.md")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAssetRepository_SaveUpsertsOnContentPath(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	require.NoError(t, repo.Save(newAsset("a1", "assets/workflows/a.md", "A")))

	// a second create for the same path must not produce a duplicate row
	dup := newAsset("a2", "assets/workflows/a.md", "A renamed")
	require.NoError(t, repo.Save(dup))

	got, err := repo.FindByPath(context.Background(), "assets/workflows/a.md")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.Id, "the original row wins the race")
	assert.Equal(t, "A renamed", got.Name)
}

func TestAssetRepository_ManualAssetsHaveNoPathConflict(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))

	a := newAsset("a1", "", "A")
	a.ContentPath = nil
	require.NoError(t, repo.Save(a))
	b := newAsset("b1", "", "B")
	b.ContentPath = nil
	require.NoError(t, repo.Save(b))

	got, err := repo.GetAssetByID(context.Background(), "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B", got.Name)
}

func TestAssetRepository_UpdateAsset(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	asset := newAsset("a1", "assets/workflows/a.md", "A")
	require.NoError(t, repo.Save(asset))

	asset.Description = "changed"
	asset.ContentHash = "hash-2"
	require.NoError(t, repo.UpdateAsset(context.Background(), *asset))

	got, err := repo.GetAssetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Description)
	assert.Equal(t, "hash-2", got.ContentHash)
}

func TestAssetRepository_GetAssetByID_Missing(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))

	got, err := repo.GetAssetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAssetRepository_GetAssetsFilters(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	ctx := context.Background()

	a := newAsset("a1", "assets/workflows/a.md", "Invoice matcher")
	require.NoError(t, repo.Save(a))
	b := newAsset("b1", "assets/data/b.md", "Sales dashboard")
	b.Category = models.CategoryDataAnalytics
	b.Status = models.StatusDraft
	require.NoError(t, repo.Save(b))

	tag, err := repo.FindOrCreateTag(ctx, "finance", "")
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceTags(ctx, a, []models.Tag{*tag}))

	category := models.CategoryDataAnalytics
	assets, _, err := repo.GetAssets(ctx, &models.ListAssetsParams{Page: 1, PerPage: 10, Category: &category})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "b1", assets[0].Id)

	status := "draft"
	assets, _, err = repo.GetAssets(ctx, &models.ListAssetsParams{Page: 1, PerPage: 10, Status: &status})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "b1", assets[0].Id, "status filter is case-insensitive")

	tagName := "finance"
	assets, _, err = repo.GetAssets(ctx, &models.ListAssetsParams{Page: 1, PerPage: 10, Tag: &tagName})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "a1", assets[0].Id)

	query := "dashboard"
	assets, _, err = repo.GetAssets(ctx, &models.ListAssetsParams{Page: 1, PerPage: 10, Query: &query})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "b1", assets[0].Id)
}

func TestAssetRepository_Pagination(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(newAsset("a1", "assets/workflows/a.md", "Alpha")))
	require.NoError(t, repo.Save(newAsset("b1", "assets/workflows/b.md", "Beta")))
	require.NoError(t, repo.Save(newAsset("c1", "assets/workflows/c.md", "Gamma")))

	assets, pagination, err := repo.GetAssets(ctx, &models.ListAssetsParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "Alpha", assets[0].Name)
	assert.Equal(t, 3, pagination.TotalRecords)
	assert.Equal(t, 2, pagination.TotalPages)
	require.NotNil(t, pagination.Next)
	assert.Equal(t, 2, *pagination.Next)
	assert.Nil(t, pagination.Previous)

	assets, pagination, err = repo.GetAssets(ctx, &models.ListAssetsParams{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Nil(t, pagination.Next)
	require.NotNil(t, pagination.Previous)
	assert.Equal(t, 1, *pagination.Previous)
}

func TestAssetRepository_FindOrCreateTagIsIdempotent(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	ctx := context.Background()

	first, err := repo.FindOrCreateTag(ctx, "finance", "domain")
	require.NoError(t, err)
	second, err := repo.FindOrCreateTag(ctx, "finance", "domain")
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	tags, err := repo.GetTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestAssetRepository_DeleteTagDetachesAssets(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	ctx := context.Background()

	asset := newAsset("a1", "assets/workflows/a.md", "A")
	require.NoError(t, repo.Save(asset))
	tag, err := repo.FindOrCreateTag(ctx, "finance", "")
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceTags(ctx, asset, []models.Tag{*tag}))

	require.NoError(t, repo.DeleteTag(ctx, tag.Id))

	got, err := repo.GetAssetByID(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Tags)
}

func TestAssetRepository_DeleteAssetRemovesVersions(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(newAsset("a1", "assets/workflows/a.md", "A")))
	require.NoError(t, repo.SaveVersion(ctx, &models.AssetVersion{
		Id: "v1", AssetID: "a1", Version: "1.0.0", ContentHash: "h1", Content: "body", CreatedAt: time.Now(),
	}))

	require.NoError(t, repo.DeleteAsset(ctx, "a1"))

	versions, err := repo.GetVersions(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, versions)
	got, err := repo.GetAssetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAssetRepository_LatestVersions(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(newAsset("a1", "assets/workflows/a.md", "A")))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, repo.SaveVersion(ctx, &models.AssetVersion{
		Id: "v1", AssetID: "a1", Version: "1.0.0", ContentHash: "h1", Content: "old", CreatedAt: old,
	}))
	require.NoError(t, repo.SaveVersion(ctx, &models.AssetVersion{
		Id: "v2", AssetID: "a1", Version: "1.1.0", ContentHash: "h2", Content: "new", CreatedAt: time.Now(),
	}))

	latest, err := repo.LatestVersions(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "v2", latest[0].Id)
}

func TestAssetRepository_GetStatistics(t *testing.T) {
	repo := repositories.NewAssetRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(newAsset("a1", "assets/workflows/a.md", "A")))
	b := newAsset("b1", "assets/data/b.md", "B")
	b.Category = models.CategoryDataAnalytics
	b.Status = models.StatusDraft
	require.NoError(t, repo.Save(b))
	_, err := repo.FindOrCreateTag(ctx, "finance", "")
	require.NoError(t, err)

	stats, err := repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAssets)
	assert.Equal(t, 1, stats.TotalTags)
	assert.Equal(t, 1, stats.ByCategory[models.CategoryAutomationWorkflows])
	assert.Equal(t, 1, stats.ByCategory[models.CategoryDataAnalytics])
	assert.Equal(t, 1, stats.ByStatus[models.StatusDraft])
	require.NotNil(t, stats.LastUpdated)
}
