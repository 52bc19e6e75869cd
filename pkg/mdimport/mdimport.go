// Package mdimport bulk-loads a local directory of Markdown asset documents
// into the register through the regular sync pipeline.
package mdimport

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/helpers/frontmatter"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/services"
)

type Logger interface {
	Printf(format string, v ...any)
}

type Options struct {
	// Dir is the root holding the assets/ tree.
	Dir    string
	DryRun bool
	Logger Logger
}

type Result struct {
	Discovered int
	Invalid    int
	Sync       *models.SyncResult
}

// ImportDir walks dir for asset documents and feeds them to the sync
// service as one synthetic push. With DryRun only parse validation runs.
func ImportDir(ctx context.Context, svc *services.SyncService, opts Options) (Result, error) {
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		return Result{}, errors.New("import dir is empty")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	contents := map[string]string{}
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !frontmatter.IsAssetDocument(rel) {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		contents[rel] = string(data)
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{Discovered: len(paths)}
	for _, p := range paths {
		doc := frontmatter.Parse(contents[p])
		meta := frontmatter.ExtractAssetMetadata(doc.Metadata)
		if valid, errs := frontmatter.Validate(meta); !valid {
			result.Invalid++
			logger.Printf("[import] %s (%s): %s", p, frontmatter.NameFromPath(p), strings.Join(errs, "; "))
		}
	}
	logger.Printf("[import] discovered %d documents, %d invalid", result.Discovered, result.Invalid)

	if opts.DryRun {
		return result, nil
	}

	event := &models.PushEvent{
		Repository:   "local-import",
		Commits:      []models.Commit{{Id: "import", Added: paths}},
		FileContents: contents,
	}
	result.Sync = svc.ProcessPush(ctx, event)
	logger.Printf("[import] %s", result.Sync.Message)
	return result, nil
}
