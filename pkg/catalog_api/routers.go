package catalog_api

import (
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/handler"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
)

var (
	apiVersionHeader = fizz.Header(
		"API-Version",
		"API version of the response",
		"", // empty string means: primitive string in the spec
	)

	notFoundResponse = fizz.Response(
		"404",
		"Not Found",
		nil, // no inline schema
		nil, // no content media type
		nil, // no extra headers
	)
)

// NewRouter wires the catalog and webhook endpoints onto a fizz engine.
func NewRouter(apiVersion string, assets *handler.AssetsAPIController, webhook *handler.WebhookController) *fizz.Fizz {
	g := gin.Default()
	g.Use(APIVersionMiddleware(apiVersion))
	f := fizz.NewFromEngine(g)

	f.Generator().SetServers([]*openapi.Server{
		{
			URL:         "https://axon.internal/api/v1",
			Description: "Production",
		},
	})

	gen := f.Generator()
	gen.API().Components.Headers["API-Version"] = &openapi.HeaderOrRef{
		Header: &openapi.Header{
			Description: "API version of the response",
			Schema: &openapi.SchemaOrRef{
				Schema: &openapi.Schema{
					Type: "string",
				},
			},
		},
	}

	info := &openapi.Info{
		Title:       "Axon asset register API v1",
		Description: "Catalog API for internally published automation assets",
		Version:     apiVersion,
		Contact: &openapi.Contact{
			Name:  "Axon platform team",
			Email: "platform-team@axon.internal",
		},
	}

	root := f.Group("/v1", "API v1", "Axon asset register v1 routes")

	// Read endpoints
	read := root.Group("", "Read", "Read-only endpoints", middleware.RequireAccess("assets:read"))
	read.GET("/assets",
		[]fizz.OperationOption{
			fizz.Summary("List all assets"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(assets.ListAssets, 200),
	)

	read.GET("/assets/:id",
		[]fizz.OperationOption{
			fizz.Summary("Retrieve a single asset"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(assets.RetrieveAsset, 200),
	)

	read.GET("/tags",
		[]fizz.OperationOption{
			fizz.Summary("List all tags"),
			apiVersionHeader,
		},
		tonic.Handler(assets.ListTags, 200),
	)

	read.GET("/statistics",
		[]fizz.OperationOption{
			fizz.Summary("Register-wide statistics"),
			apiVersionHeader,
		},
		tonic.Handler(assets.GetStatistics, 200),
	)

	// Write endpoints
	write := root.Group("", "Write", "Asset mutation endpoints", middleware.RequireAccess("assets:write"))
	write.POST("/assets",
		[]fizz.OperationOption{
			fizz.Summary("Register a new asset"),
			apiVersionHeader,
		},
		tonic.Handler(assets.CreateAsset, 201),
	)

	write.PUT("/assets/:id",
		[]fizz.OperationOption{
			fizz.Summary("Update an asset"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(assets.UpdateAsset, 200),
	)

	write.DELETE("/assets/:id",
		[]fizz.OperationOption{
			fizz.Summary("Delete an asset"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(assets.DeleteAsset, 204),
	)

	write.POST("/tags",
		[]fizz.OperationOption{
			fizz.Summary("Create a tag"),
			apiVersionHeader,
		},
		tonic.Handler(assets.CreateTag, 201),
	)

	write.DELETE("/tags/:id",
		[]fizz.OperationOption{
			fizz.Summary("Delete a tag, keeping tagged assets"),
			apiVersionHeader,
		},
		tonic.Handler(assets.DeleteTag, 204),
	)

	// Webhook: authenticated by payload signature, not by bearer token.
	// The handler reads the raw body itself, so it bypasses tonic.
	g.POST("/v1/webhooks/github", webhook.HandlePush)

	// OpenAPI document
	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
