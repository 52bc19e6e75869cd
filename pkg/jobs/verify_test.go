package jobs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/hasher"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/repositories"
	"github.com/axon-catalog/axon-asset-register/pkg/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type versionsRepo struct {
	repositories.AssetRepository
	versions []models.AssetVersion
	err      error
}

func (r *versionsRepo) LatestVersions(ctx context.Context) ([]models.AssetVersion, error) {
	return r.versions, r.err
}

func TestVerifyContentIntegrity(t *testing.T) {
	content := "# Deploy pipeline\n"
	repo := &versionsRepo{versions: []models.AssetVersion{
		{Id: "v1", AssetID: "a1", Version: "1.0.0", Content: content, ContentHash: hasher.Hash(content)},
		{Id: "v2", AssetID: "a2", Version: "2.0.0", Content: "drifted body", ContentHash: hasher.Hash("original body")},
	}}

	require.NoError(t, jobs.VerifyContentIntegrity(context.Background(), repo))
}

func TestVerifyContentIntegrity_RepoError(t *testing.T) {
	repo := &versionsRepo{err: errors.New("connection refused")}

	err := jobs.VerifyContentIntegrity(context.Background(), repo)
	assert.Error(t, err)
}
