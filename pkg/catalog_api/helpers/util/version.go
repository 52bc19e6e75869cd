package util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
)

type openAPIInfo struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// LoadAPIVersion reads the published version string from the OpenAPI document.
func LoadAPIVersion(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open OpenAPI file: %w", err)
	}
	defer f.Close()

	var oas openAPIInfo
	if err := json.NewDecoder(f).Decode(&oas); err != nil {
		return "", fmt.Errorf("could not parse OpenAPI file: %w", err)
	}

	if oas.Info.Version == "" {
		return "", fmt.Errorf("version missing from OpenAPI file")
	}

	return oas.Info.Version, nil
}

// SetPaginationHeaders writes Link and X-Total-* headers for a paginated
// listing, pointing next/prev at the request path.
func SetPaginationHeaders(r *http.Request, setHeader func(string, string), p models.Pagination) {
	setHeader("X-Total-Count", strconv.Itoa(p.TotalRecords))
	setHeader("X-Total-Pages", strconv.Itoa(p.TotalPages))

	link := func(page int, rel string) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("perPage", strconv.Itoa(p.RecordsPerPage))
		u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
		return fmt.Sprintf("<%s>; rel=%q", u.String(), rel)
	}

	var links []string
	if p.Next != nil {
		links = append(links, link(*p.Next, "next"))
	}
	if p.Previous != nil {
		links = append(links, link(*p.Previous, "prev"))
	}
	if len(links) > 0 {
		setHeader("Link", strings.Join(links, ", "))
	}
}
