package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/changeset"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/frontmatter"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/hasher"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/repositories"
	"github.com/google/uuid"
)

// SyncService reconciles pushed repository content with the asset store.
type SyncService struct {
	repo         repositories.AssetRepository
	sourceSystem string
}

func NewSyncService(repo repositories.AssetRepository) *SyncService {
	return &SyncService{repo: repo, sourceSystem: "github"}
}

// ProcessPush runs one sync over a decoded push payload. Added and modified
// paths are processed first, in input order, then removed paths. A failure
// on one file is recorded and never aborts the rest of the batch.
//
// A path that is both added and removed within the batch is deliberately
// processed by both phases; the categories are not reconciled.
func (s *SyncService) ProcessPush(ctx context.Context, event *models.PushEvent) *models.SyncResult {
	changes := changeset.Extract(event.Commits)

	result := &models.SyncResult{}

	for _, path := range union(changes.Added, changes.Modified) {
		if !frontmatter.IsAssetDocument(path) {
			continue
		}
		result.Stats.Processed++

		if err := s.syncFile(ctx, event, path, &result.Stats); err != nil {
			result.Stats.Failed++
			result.Errors = append(result.Errors, models.SyncFileError{File: path, Error: err.Error()})
			log.Printf("[sync] file=%s failed: %v", path, err)
		}
	}

	for _, path := range changes.Removed {
		if !frontmatter.IsAssetDocument(path) {
			continue
		}
		result.Stats.Processed++

		if err := s.deleteAssetByPath(ctx, path, &result.Stats); err != nil {
			result.Stats.Failed++
			result.Errors = append(result.Errors, models.SyncFileError{File: path, Error: err.Error()})
			log.Printf("[sync] delete file=%s failed: %v", path, err)
		}
	}

	result.Success = result.Stats.Failed == 0
	result.Message = summaryMessage(result.Stats)
	return result
}

// syncFile decides create/update/skip for one added or modified path.
func (s *SyncService) syncFile(ctx context.Context, event *models.PushEvent, path string, stats *models.SyncStats) error {
	content, ok := event.FileContents[path]
	if !ok {
		return fmt.Errorf("content not provided")
	}

	doc := frontmatter.Parse(content)
	meta := frontmatter.ExtractAssetMetadata(doc.Metadata)
	if valid, errs := frontmatter.Validate(meta); !valid {
		return fmt.Errorf("invalid frontmatter: %s", strings.Join(errs, "; "))
	}

	hash := hasher.Hash(content)

	existing, err := s.repo.FindByPath(ctx, path)
	if err != nil {
		return fmt.Errorf("store lookup failed: %w", err)
	}

	if existing == nil {
		asset := &models.Asset{
			Id:           uuid.New().String(),
			Name:         meta.Name,
			Description:  meta.Description,
			Category:     meta.Category,
			AssetType:    meta.AssetType,
			Version:      meta.Version,
			Status:       resolveStatus(doc.Metadata, meta),
			Owner:        meta.Owner,
			ContentPath:  &path,
			ContentHash:  hash,
			SourceSystem: s.sourceSystem,
			SourceLink:   sourceLink(event.Repository, path),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := s.repo.Save(asset); err != nil {
			return fmt.Errorf("store create failed: %w", err)
		}
		if err := s.applyTags(ctx, asset, meta.Tags); err != nil {
			return err
		}
		stats.Created++
		s.recordVersion(ctx, asset, content)
		return nil
	}

	if existing.ContentHash == hash {
		// Unchanged; counted as processed, no write.
		return nil
	}

	existing.Name = meta.Name
	existing.Description = meta.Description
	existing.Category = meta.Category
	existing.AssetType = meta.AssetType
	existing.Version = meta.Version
	existing.Status = resolveStatus(doc.Metadata, meta)
	existing.Owner = meta.Owner
	existing.ContentHash = hash
	if err := s.repo.UpdateAsset(ctx, *existing); err != nil {
		return fmt.Errorf("store update failed: %w", err)
	}
	if err := s.applyTags(ctx, existing, meta.Tags); err != nil {
		return err
	}
	stats.Updated++
	s.recordVersion(ctx, existing, content)
	return nil
}

// deleteAssetByPath removes the asset tracked for path. A path with no
// matching asset is a no-op success, not an error.
func (s *SyncService) deleteAssetByPath(ctx context.Context, path string, stats *models.SyncStats) error {
	existing, err := s.repo.FindByPath(ctx, path)
	if err != nil {
		return fmt.Errorf("store lookup failed: %w", err)
	}
	if existing == nil {
		return nil
	}
	if err := s.repo.DeleteAsset(ctx, existing.Id); err != nil {
		return fmt.Errorf("store delete failed: %w", err)
	}
	stats.Deleted++
	return nil
}

func (s *SyncService) applyTags(ctx context.Context, asset *models.Asset, names []string) error {
	if len(names) == 0 {
		return nil
	}
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.repo.FindOrCreateTag(ctx, name, "")
		if err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}
	return s.repo.ReplaceTags(ctx, asset, tags)
}

// recordVersion appends a content snapshot. Snapshot failures are logged
// only; the asset mutation itself already succeeded.
func (s *SyncService) recordVersion(ctx context.Context, asset *models.Asset, content string) {
	v := &models.AssetVersion{
		Id:          uuid.New().String(),
		AssetID:     asset.Id,
		Version:     asset.Version,
		ContentHash: asset.ContentHash,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.SaveVersion(ctx, v); err != nil {
		log.Printf("[sync] version snapshot failed asset=%s: %v", asset.Id, err)
	}
}

// resolveStatus applies the sync-time default: content arriving through a
// push is presumed ready to publish, so an absent status becomes PUBLISHED
// even though generic metadata extraction defaults to DRAFT.
func resolveStatus(raw map[string]any, meta frontmatter.AssetMetadata) string {
	if v, ok := raw["status"].(string); !ok || strings.TrimSpace(v) == "" {
		return models.StatusPublished
	}
	return meta.Status
}

func sourceLink(repository, path string) string {
	if repository == "" {
		return path
	}
	return fmt.Sprintf("https://github.com/%s/blob/main/%s", repository, path)
}

func union(added, modified []string) []string {
	seen := make(map[string]struct{}, len(added)+len(modified))
	out := make([]string, 0, len(added)+len(modified))
	for _, p := range append(append([]string{}, added...), modified...) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func summaryMessage(stats models.SyncStats) string {
	if stats.Processed == 0 {
		return "nothing to process"
	}
	return fmt.Sprintf("processed %d files: %d created, %d updated, %d deleted, %d failed",
		stats.Processed, stats.Created, stats.Updated, stats.Deleted, stats.Failed)
}
