package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/database"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/repositories"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/services"
	"github.com/axon-catalog/axon-asset-register/pkg/mdimport"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the assets/ tree")
	dryRun := flag.Bool("dry-run", false, "parse and validate without writing to the database")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	db, err := connectDB()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	repo := repositories.NewAssetRepository(db)
	svc := services.NewSyncService(repo)

	result, err := mdimport.ImportDir(context.Background(), svc, mdimport.Options{
		Dir:    *dir,
		DryRun: *dryRun,
	})
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	if result.Invalid > 0 {
		os.Exit(1)
	}
}

func connectDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOSTNAME")
	user := os.Getenv("DB_USERNAME")
	pass := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_DBNAME")
	schema := os.Getenv("DB_SCHEMA")
	if host == "" || user == "" || dbname == "" {
		return nil, fmt.Errorf("missing DB env vars; need DB_HOSTNAME, DB_USERNAME, DB_DBNAME")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   host + ":5432",
		Path:   dbname,
	}
	u.User = url.UserPassword(user, pass)
	if schema != "" {
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
	}

	return database.Connect(u.String())
}
