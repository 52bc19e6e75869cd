package util

import (
	"fmt"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
)

func ToAssetSummary(asset *models.Asset) models.AssetSummary {
	tags := make([]string, len(asset.Tags))
	for i, t := range asset.Tags {
		tags[i] = t.Name
	}

	return models.AssetSummary{
		Id:          asset.Id,
		Name:        asset.Name,
		Description: asset.Description,
		Category:    asset.Category,
		AssetType:   asset.AssetType,
		Version:     asset.Version,
		Status:      asset.Status,
		Owner:       asset.Owner,
		Tags:        tags,
		Links: &models.Links{
			Self: &models.Link{Href: fmt.Sprintf("/assets/%s", asset.Id)},
		},
	}
}

func ToAssetDetail(asset *models.Asset) *models.AssetDetail {
	relations := make([]models.AssetSummary, len(asset.Relations))
	for i := range asset.Relations {
		relations[i] = ToAssetSummary(&asset.Relations[i])
	}

	return &models.AssetDetail{
		AssetSummary: ToAssetSummary(asset),
		BizDomain:    asset.BizDomain,
		ContentPath:  strValue(asset.ContentPath),
		SourceSystem: asset.SourceSystem,
		SourceLink:   asset.SourceLink,
		Relations:    relations,
		History:      asset.Versions,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
