package changeset

import (
	"testing"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/stretchr/testify/assert"
)

func TestExtract_DedupesWithinCategory(t *testing.T) {
	cs := Extract([]models.Commit{
		{Added: []string{"a.md", "a.md"}},
		{Added: []string{"a.md", "b.md"}},
	})
	assert.Equal(t, []string{"a.md", "b.md"}, cs.Added)
}

func TestExtract_AggregatesAcrossCommits(t *testing.T) {
	cs := Extract([]models.Commit{
		{Added: []string{"assets/code/new.md"}, Modified: []string{"assets/code/old.md"}},
		{Modified: []string{"assets/code/other.md"}, Removed: []string{"assets/code/gone.md"}},
	})
	assert.Equal(t, []string{"assets/code/new.md"}, cs.Added)
	assert.Equal(t, []string{"assets/code/old.md", "assets/code/other.md"}, cs.Modified)
	assert.Equal(t, []string{"assets/code/gone.md"}, cs.Removed)
}

func TestExtract_NoCrossCategoryReconciliation(t *testing.T) {
	// A path added and later removed in the same batch stays in both sets.
	cs := Extract([]models.Commit{
		{Added: []string{"assets/code/x.md"}},
		{Removed: []string{"assets/code/x.md"}},
	})
	assert.Equal(t, []string{"assets/code/x.md"}, cs.Added)
	assert.Equal(t, []string{"assets/code/x.md"}, cs.Removed)
}

func TestExtract_EmptyCommits(t *testing.T) {
	cs := Extract(nil)
	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Modified)
	assert.Empty(t, cs.Removed)
}
