package mdimport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/repositories"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/services"
	"github.com/axon-catalog/axon-asset-register/pkg/mdimport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const importDoc = `---
name: Deploy pipeline
description: Deploys internal services
category: AUTOMATION_WORKFLOWS
assetType: pipeline
version: 1.0.0
owner: platform-team@axon.internal
---
# Deploy pipeline
`

func newSyncService(t *testing.T) (*services.SyncService, repositories.AssetRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{TablePrefix: "axon_"},
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tag{}, &models.Asset{}, &models.AssetVersion{}))
	repo := repositories.NewAssetRepository(db)
	return services.NewSyncService(repo), repo
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestImportDir(t *testing.T) {
	svc, repo := newSyncService(t)
	dir := writeTree(t, map[string]string{
		"assets/workflows/deploy.md": importDoc,
		"docs/readme.md":             "# not an asset",
	})

	result, err := mdimport.ImportDir(context.Background(), svc, mdimport.Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Discovered)
	assert.Equal(t, 0, result.Invalid)
	require.NotNil(t, result.Sync)
	assert.Equal(t, 1, result.Sync.Stats.Created)

	stored, err := repo.FindByPath(context.Background(), "assets/workflows/deploy.md")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Deploy pipeline", stored.Name)
}

func TestImportDir_DryRunDoesNotWrite(t *testing.T) {
	svc, repo := newSyncService(t)
	dir := writeTree(t, map[string]string{
		"assets/workflows/deploy.md": importDoc,
		"assets/workflows/broken.md": "---\nname: Broken\n---\nmissing fields",
	})

	result, err := mdimport.ImportDir(context.Background(), svc, mdimport.Options{Dir: dir, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Discovered)
	assert.Equal(t, 1, result.Invalid)
	assert.Nil(t, result.Sync)

	stored, err := repo.FindByPath(context.Background(), "assets/workflows/deploy.md")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestImportDir_EmptyDirOption(t *testing.T) {
	svc, _ := newSyncService(t)

	_, err := mdimport.ImportDir(context.Background(), svc, mdimport.Options{Dir: "  "})
	assert.Error(t, err)
}
