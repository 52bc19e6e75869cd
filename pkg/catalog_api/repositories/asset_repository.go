package repositories

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/teris-io/shortid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func newTagID() string { return shortid.MustGenerate() }

// AssetRepository is the persistence boundary of the register. The sync
// orchestrator and the CRUD services only ever talk to this interface.
type AssetRepository interface {
	GetAssets(ctx context.Context, p *models.ListAssetsParams) ([]models.Asset, models.Pagination, error)
	GetAssetByID(ctx context.Context, id string) (*models.Asset, error)
	FindByPath(ctx context.Context, contentPath string) (*models.Asset, error)
	Save(asset *models.Asset) error
	UpdateAsset(ctx context.Context, asset models.Asset) error
	DeleteAsset(ctx context.Context, id string) error

	FindOrCreateTag(ctx context.Context, name, category string) (*models.Tag, error)
	GetTags(ctx context.Context) ([]models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	ReplaceTags(ctx context.Context, asset *models.Asset, tags []models.Tag) error
	ReplaceRelations(ctx context.Context, asset *models.Asset, related []models.Asset) error

	SaveVersion(ctx context.Context, version *models.AssetVersion) error
	GetVersions(ctx context.Context, assetID string) ([]models.AssetVersion, error)
	LatestVersions(ctx context.Context) ([]models.AssetVersion, error)

	GetStatistics(ctx context.Context) (*models.Statistics, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) GetAssets(ctx context.Context, p *models.ListAssetsParams) ([]models.Asset, models.Pagination, error) {
	q := r.db.WithContext(ctx).Model(&models.Asset{})

	if p.Category != nil && *p.Category != "" {
		q = q.Where("category = ?", *p.Category)
	}
	if status := p.StatusFilter(); status != nil {
		q = q.Where("status = ?", *status)
	}
	if p.BizDomain != nil && *p.BizDomain != "" {
		q = q.Where("biz_domain = ?", *p.BizDomain)
	}
	if p.Tag != nil && *p.Tag != "" {
		q = q.Where("id IN (?)", r.db.
			Table("axon_asset_tags").
			Select("asset_id").
			Joins("JOIN axon_tags ON axon_tags.id = axon_asset_tags.tag_id").
			Where("axon_tags.name = ?", *p.Tag))
	}
	if search := p.SearchQuery(); search != nil {
		like := "%" + *search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var totalRecords int64
	if err := q.Count(&totalRecords).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	offset := (p.Page - 1) * p.PerPage
	var assets []models.Asset
	if err := q.Preload("Tags").
		Order("name").
		Limit(p.PerPage).
		Offset(offset).
		Find(&assets).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(totalRecords) / float64(p.PerPage)))
	pagination := models.Pagination{
		CurrentPage:    p.Page,
		RecordsPerPage: p.PerPage,
		TotalPages:     totalPages,
		TotalRecords:   int(totalRecords),
	}
	if p.Page < totalPages {
		next := p.Page + 1
		pagination.Next = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		pagination.Previous = &prev
	}

	return assets, pagination, nil
}

func (r *assetRepository) GetAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Relations").
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) FindByPath(ctx context.Context, contentPath string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Tags").
		First(&asset, "content_path = ?", contentPath).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Save inserts an asset. The content_path column carries a unique index and
// the insert upserts on it, so two racing creates for the same path collapse
// into one row instead of a duplicate.
func (r *assetRepository) Save(asset *models.Asset) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_path"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "category", "asset_type", "biz_domain",
			"version", "status", "owner", "content_hash", "source_system",
			"source_link", "updated_at",
		}),
	}).Create(asset).Error
}

func (r *assetRepository) UpdateAsset(ctx context.Context, asset models.Asset) error {
	asset.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Asset{Id: asset.Id}).
		Updates(map[string]any{
			"name":          asset.Name,
			"description":   asset.Description,
			"category":      asset.Category,
			"asset_type":    asset.AssetType,
			"biz_domain":    asset.BizDomain,
			"version":       asset.Version,
			"status":        asset.Status,
			"owner":         asset.Owner,
			"content_hash":  asset.ContentHash,
			"source_system": asset.SourceSystem,
			"source_link":   asset.SourceLink,
			"updated_at":    asset.UpdatedAt,
		}).Error
}

func (r *assetRepository) DeleteAsset(ctx context.Context, id string) error {
	asset := models.Asset{Id: id}
	if err := r.db.WithContext(ctx).Model(&asset).Association("Tags").Clear(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(&asset).Association("Relations").Clear(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("asset_id = ?", id).Delete(&models.AssetVersion{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&asset).Error
}

func (r *assetRepository) FindOrCreateTag(ctx context.Context, name, category string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, "name = ?", name).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Id: newTagID(), Name: name, Category: category}
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *assetRepository) GetTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// DeleteTag removes the tag and its associations; assets are untouched.
func (r *assetRepository) DeleteTag(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM axon_asset_tags WHERE tag_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Tag{Id: id}).Error
}

func (r *assetRepository) ReplaceTags(ctx context.Context, asset *models.Asset, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(asset).Association("Tags").Replace(tags)
}

func (r *assetRepository) ReplaceRelations(ctx context.Context, asset *models.Asset, related []models.Asset) error {
	return r.db.WithContext(ctx).Model(asset).Association("Relations").Replace(related)
}

func (r *assetRepository) SaveVersion(ctx context.Context, version *models.AssetVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

func (r *assetRepository) GetVersions(ctx context.Context, assetID string) ([]models.AssetVersion, error) {
	var versions []models.AssetVersion
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at DESC").
		Find(&versions).Error
	return versions, err
}

// LatestVersions returns the newest snapshot per asset, for the integrity sweep.
func (r *assetRepository) LatestVersions(ctx context.Context) ([]models.AssetVersion, error) {
	var versions []models.AssetVersion
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.
			Model(&models.AssetVersion{}).
			Select("id").
			Where("created_at = (SELECT MAX(created_at) FROM axon_asset_versions v WHERE v.asset_id = axon_asset_versions.asset_id)")).
		Find(&versions).Error
	return versions, err
}

func (r *assetRepository) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{
		ByCategory: map[string]int{},
		ByStatus:   map[string]int{},
	}

	var totalAssets int64
	if err := r.db.WithContext(ctx).Model(&models.Asset{}).Count(&totalAssets).Error; err != nil {
		return nil, err
	}
	stats.TotalAssets = int(totalAssets)

	var totalTags int64
	if err := r.db.WithContext(ctx).Model(&models.Tag{}).Count(&totalTags).Error; err != nil {
		return nil, err
	}
	stats.TotalTags = int(totalTags)

	type bucket struct {
		Key   string
		Count int
	}
	var byCategory []bucket
	if err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Select("category AS key, COUNT(*) AS count").
		Group("category").
		Scan(&byCategory).Error; err != nil {
		return nil, err
	}
	for _, b := range byCategory {
		stats.ByCategory[b.Key] = b.Count
	}

	var byStatus []bucket
	if err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		stats.ByStatus[b.Key] = b.Count
	}

	var last models.Asset
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&last).Error
	if err == nil {
		stats.LastUpdated = &last.UpdatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return stats, nil
}
