package handler

import (
	"encoding/json"
	"io"
	"net/http"

	problem "github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/problem"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/signature"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/services"
	"github.com/gin-gonic/gin"
)

const maxPayloadBytes = 10 << 20 // 10 MB, payloads carry raw file contents

// WebhookController receives GitHub push deliveries and hands them to the
// sync service.
type WebhookController struct {
	Service *services.SyncService
	Secret  string
}

func NewWebhookController(s *services.SyncService, secret string) *WebhookController {
	return &WebhookController{Service: s, Secret: secret}
}

// HandlePush handles POST /webhooks/github. The signature check is a hard
// gate: nothing is parsed or synced when it fails. Full success maps to 200,
// partial failure to 207.
func (c *WebhookController) HandlePush(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxPayloadBytes))
	if err != nil {
		writeProblem(ctx, problem.NewInternalServerError("failed to read body"))
		return
	}

	sig := ctx.GetHeader("X-Hub-Signature-256")
	if !signature.Verify(body, sig, c.Secret) {
		writeProblem(ctx, problem.NewUnauthorized("invalid webhook signature"))
		return
	}

	var event models.PushEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeProblem(ctx, problem.NewBadRequest("body", "malformed push payload: "+err.Error()))
		return
	}

	result := c.Service.ProcessPush(ctx.Request.Context(), &event)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusMultiStatus
	}
	ctx.JSON(status, result)
}

func writeProblem(ctx *gin.Context, apiErr problem.APIError) {
	ctx.Header("Content-Type", "application/problem+json")
	ctx.AbortWithStatusJSON(apiErr.Status, apiErr)
}
