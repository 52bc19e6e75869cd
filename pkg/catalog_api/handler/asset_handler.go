package handler

import (
	problem "github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/problem"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/util"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/services"
	"github.com/gin-gonic/gin"
)

// AssetsAPIController binds HTTP requests to the AssetService
type AssetsAPIController struct {
	Service *services.AssetService
}

// NewAssetsAPIController creates a new controller
func NewAssetsAPIController(s *services.AssetService) *AssetsAPIController {
	return &AssetsAPIController{Service: s}
}

// ListAssets handles GET /assets
func (c *AssetsAPIController) ListAssets(ctx *gin.Context, p *models.ListAssetsParams) ([]models.AssetSummary, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	assets, pagination, err := c.Service.ListAssets(ctx.Request.Context(), p)
	if err != nil {
		return nil, err
	}
	util.SetPaginationHeaders(ctx.Request, ctx.Header, pagination)

	return assets, nil
}

// RetrieveAsset handles GET /assets/:id
func (c *AssetsAPIController) RetrieveAsset(ctx *gin.Context, params *models.AssetParams) (*models.AssetDetail, error) {
	asset, err := c.Service.RetrieveAsset(ctx.Request.Context(), params.Id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, problem.NewNotFound(params.Id, "Asset not found")
	}
	return asset, nil
}

// CreateAsset handles POST /assets
func (c *AssetsAPIController) CreateAsset(ctx *gin.Context, body *models.AssetPost) (*models.AssetSummary, error) {
	return c.Service.CreateAsset(ctx.Request.Context(), *body)
}

// UpdateAsset handles PUT /assets/:id
func (c *AssetsAPIController) UpdateAsset(ctx *gin.Context, body *models.UpdateAssetInput) (*models.AssetSummary, error) {
	body.Id = ctx.Param("id")
	return c.Service.UpdateAsset(ctx.Request.Context(), body)
}

// DeleteAsset handles DELETE /assets/:id
func (c *AssetsAPIController) DeleteAsset(ctx *gin.Context, params *models.AssetParams) error {
	return c.Service.DeleteAsset(ctx.Request.Context(), params.Id)
}

// ListTags handles GET /tags
func (c *AssetsAPIController) ListTags(ctx *gin.Context) ([]models.Tag, error) {
	return c.Service.ListTags(ctx.Request.Context())
}

// CreateTag handles POST /tags
func (c *AssetsAPIController) CreateTag(ctx *gin.Context, body *models.TagPost) (*models.Tag, error) {
	return c.Service.CreateTag(ctx.Request.Context(), *body)
}

// DeleteTag handles DELETE /tags/:id
func (c *AssetsAPIController) DeleteTag(ctx *gin.Context, params *models.TagParams) error {
	return c.Service.DeleteTag(ctx.Request.Context(), params.Id)
}

// GetStatistics handles GET /statistics
func (c *AssetsAPIController) GetStatistics(ctx *gin.Context) (*models.Statistics, error) {
	return c.Service.GetStatistics(ctx.Request.Context())
}
