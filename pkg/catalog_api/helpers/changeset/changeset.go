// Package changeset reduces a batch of commit records to the deduplicated
// sets of changed file paths.
package changeset

import "github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"

// ChangeSet holds the deduplicated added/modified/removed paths of one push,
// in first-seen order per category.
type ChangeSet struct {
	Added    []string
	Modified []string
	Removed  []string
}

// Extract concatenates each commit's path lists and dedupes per category.
// A path appearing in more than one category (added in one commit, removed
// in a later one) is kept in both; downstream processing handles the
// categories independently.
func Extract(commits []models.Commit) ChangeSet {
	return ChangeSet{
		Added:    dedupe(commits, func(c models.Commit) []string { return c.Added }),
		Modified: dedupe(commits, func(c models.Commit) []string { return c.Modified }),
		Removed:  dedupe(commits, func(c models.Commit) []string { return c.Removed }),
	}
}

func dedupe(commits []models.Commit, pick func(models.Commit) []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range commits {
		for _, p := range pick(c) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
