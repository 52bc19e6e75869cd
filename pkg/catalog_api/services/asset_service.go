package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	problem "github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/problem"
	util "github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/util"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/repositories"
	"github.com/google/uuid"
)

// AssetService implements the read/write catalog operations on top of the
// asset repository.
type AssetService struct {
	repo repositories.AssetRepository
}

func NewAssetService(repo repositories.AssetRepository) *AssetService {
	return &AssetService{repo: repo}
}

func (s *AssetService) ListAssets(ctx context.Context, p *models.ListAssetsParams) ([]models.AssetSummary, models.Pagination, error) {
	assets, pagination, err := s.repo.GetAssets(ctx, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	dtos := make([]models.AssetSummary, len(assets))
	for i := range assets {
		dtos[i] = util.ToAssetSummary(&assets[i])
	}

	return dtos, pagination, nil
}

func (s *AssetService) RetrieveAsset(ctx context.Context, id string) (*models.AssetDetail, error) {
	asset, err := s.repo.GetAssetByID(ctx, id)
	if err != nil || asset == nil {
		return nil, err
	}
	return util.ToAssetDetail(asset), nil
}

// CreateAsset registers an asset through the write API. Manually registered
// assets default to DRAFT; published status is an explicit caller decision.
func (s *AssetService) CreateAsset(ctx context.Context, body models.AssetPost) (*models.AssetSummary, error) {
	if !models.IsValidCategory(body.Category) {
		return nil, problem.NewBadRequest("category",
			fmt.Sprintf("unknown category %q", body.Category),
			problem.InvalidParam{Name: "category", Reason: "must be one of " + strings.Join(models.Categories(), ", ")})
	}
	status := body.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.IsValidStatus(status) {
		return nil, problem.NewBadRequest("status",
			fmt.Sprintf("unknown status %q", body.Status),
			problem.InvalidParam{Name: "status", Reason: "must be one of " + strings.Join(models.Statuses(), ", ")})
	}

	asset := &models.Asset{
		Id:           uuid.New().String(),
		Name:         body.Name,
		Description:  body.Description,
		Category:     body.Category,
		AssetType:    body.AssetType,
		BizDomain:    body.BizDomain,
		Version:      body.Version,
		Status:       status,
		Owner:        body.Owner,
		SourceSystem: "manual",
		SourceLink:   body.SourceLink,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.repo.Save(asset); err != nil {
		return nil, problem.NewInternalServerError("could not save asset: " + err.Error())
	}
	if err := s.applyTagNames(ctx, asset, body.Tags); err != nil {
		return nil, err
	}
	if err := s.applyRelations(ctx, asset, body.RelatedIds); err != nil {
		return nil, err
	}

	created := util.ToAssetSummary(asset)
	return &created, nil
}

// UpdateAsset applies the non-empty fields of a PUT body. Status stays
// caller-driven; an empty field keeps its stored value.
func (s *AssetService) UpdateAsset(ctx context.Context, body *models.UpdateAssetInput) (*models.AssetSummary, error) {
	asset, err := s.repo.GetAssetByID(ctx, body.Id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, problem.NewNotFound(body.Id, "asset not found")
	}

	if body.Category != "" && !models.IsValidCategory(body.Category) {
		return nil, problem.NewBadRequest("category", fmt.Sprintf("unknown category %q", body.Category))
	}
	if body.Status != "" && !models.IsValidStatus(body.Status) {
		return nil, problem.NewBadRequest("status", fmt.Sprintf("unknown status %q", body.Status))
	}

	apply := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	apply(&asset.Name, body.Name)
	apply(&asset.Description, body.Description)
	apply(&asset.Category, body.Category)
	apply(&asset.AssetType, body.AssetType)
	apply(&asset.BizDomain, body.BizDomain)
	apply(&asset.Version, body.Version)
	apply(&asset.Status, body.Status)
	apply(&asset.Owner, body.Owner)
	apply(&asset.SourceLink, body.SourceLink)

	if err := s.repo.UpdateAsset(ctx, *asset); err != nil {
		return nil, err
	}
	if body.Tags != nil {
		if err := s.applyTagNames(ctx, asset, body.Tags); err != nil {
			return nil, err
		}
	}
	if body.RelatedIds != nil {
		if err := s.applyRelations(ctx, asset, body.RelatedIds); err != nil {
			return nil, err
		}
	}

	updated := util.ToAssetSummary(asset)
	return &updated, nil
}

func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	asset, err := s.repo.GetAssetByID(ctx, id)
	if err != nil {
		return err
	}
	if asset == nil {
		return problem.NewNotFound(id, "asset not found")
	}
	return s.repo.DeleteAsset(ctx, id)
}

func (s *AssetService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.repo.GetTags(ctx)
}

func (s *AssetService) CreateTag(ctx context.Context, body models.TagPost) (*models.Tag, error) {
	if strings.TrimSpace(body.Name) == "" {
		return nil, problem.NewBadRequest("name", "name is required",
			problem.InvalidParam{Name: "name", Reason: "name is required"})
	}
	return s.repo.FindOrCreateTag(ctx, strings.TrimSpace(body.Name), body.Category)
}

func (s *AssetService) DeleteTag(ctx context.Context, id string) error {
	return s.repo.DeleteTag(ctx, id)
}

func (s *AssetService) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	return s.repo.GetStatistics(ctx)
}

func (s *AssetService) applyTagNames(ctx context.Context, asset *models.Asset, names []string) error {
	if len(names) == 0 {
		return nil
	}
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.repo.FindOrCreateTag(ctx, name, "")
		if err != nil {
			return problem.NewInternalServerError(fmt.Sprintf("could not save tag %q: %v", name, err))
		}
		tags = append(tags, *tag)
	}
	if err := s.repo.ReplaceTags(ctx, asset, tags); err != nil {
		return problem.NewInternalServerError("could not attach tags: " + err.Error())
	}
	asset.Tags = tags
	return nil
}

func (s *AssetService) applyRelations(ctx context.Context, asset *models.Asset, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	related := make([]models.Asset, 0, len(ids))
	for _, id := range ids {
		rel, err := s.repo.GetAssetByID(ctx, id)
		if err != nil {
			return err
		}
		if rel == nil {
			return problem.NewBadRequest("relatedIds", fmt.Sprintf("related asset %q not found", id))
		}
		related = append(related, models.Asset{Id: rel.Id})
	}
	if err := s.repo.ReplaceRelations(ctx, asset, related); err != nil {
		return problem.NewInternalServerError("could not attach relations: " + err.Error())
	}
	return nil
}
