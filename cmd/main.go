package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/handler"
	problem "github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/problem"
	util "github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/util"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/jobs"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/loopfz/gadgeto/tonic"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	api "github.com/axon-catalog/axon-asset-register/pkg/catalog_api"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/database"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/repositories"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/services"
)

func invalidParamsFromBinding(err error, sample any) []problem.InvalidParam {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Not validator errors? Return a generic reason.
		return []problem.InvalidParam{{Name: "body", Reason: err.Error()}}
	}

	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	out := make([]problem.InvalidParam, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// StructField -> json tag
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
				name = strings.Split(tag, ",")[0]
			}
		}
		out = append(out, problem.InvalidParam{
			Name:   name,
			Reason: humanReason(fe),
		})
	}
	return out
}

func humanReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return fe.Error()
	}
}

func init() {
	tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
		// 1) Bind/validate errors -> 400 with proper invalidParams
		var be tonic.BindError
		if errors.As(err, &be) || isValidationErr(err) {
			invalids := invalidParamsFromBinding(err, models.AssetPost{})
			apiErr := problem.NewBadRequest("body", "Invalid input", invalids...)
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		// 2) Our own APIError -> pass-through
		if apiErr, ok := err.(problem.APIError); ok {
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		// 3) Everything else -> 500
		internal := problem.NewInternalServerError(err.Error())
		c.Header("Content-Type", "application/problem+json")
		return internal.Status, internal
	})
}

func isValidationErr(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func main() {
	_ = godotenv.Load()

	version, err := util.LoadAPIVersion("./api/openapi.json")
	if err != nil {
		log.Fatalf("failed to load API version: %v", err)
	}

	secret := os.Getenv("WEBHOOK_SECRET")
	if secret == "" {
		log.Println("[WARN] WEBHOOK_SECRET not set; webhook deliveries will be rejected")
	}

	dbcon := "postgres://" +
		os.Getenv("DB_USERNAME") + ":" +
		os.Getenv("DB_PASSWORD") + "@" +
		os.Getenv("DB_HOSTNAME") + "/" +
		os.Getenv("DB_DBNAME") + "?search_path=" +
		os.Getenv("DB_SCHEMA")
	db, err := database.Connect(dbcon)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	assetRepo := repositories.NewAssetRepository(db)
	assetService := services.NewAssetService(assetRepo)
	syncService := services.NewSyncService(assetRepo)
	assetController := handler.NewAssetsAPIController(assetService)
	webhookController := handler.NewWebhookController(syncService, secret)
	jobs.ScheduleDailyVerify(context.Background(), assetRepo)

	// Start server
	router := api.NewRouter(version, assetController, webhookController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "1337"
	}
	log.Println("Server is running on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
