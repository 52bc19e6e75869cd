// Package frontmatter splits Markdown asset documents into a YAML metadata
// block and body content, and maps the metadata onto the asset schema.
package frontmatter

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// RootPrefix is the repository-relative root of syncable documents.
	RootPrefix = "assets/"
	// Extension is the expected document extension.
	Extension = ".md"

	delimiter     = "---"
	excerptLength = 200
)

// Document is a parsed Markdown document.
type Document struct {
	Metadata map[string]any
	Body     string
	Excerpt  string
}

// AssetMetadata is the metadata mapped onto the asset schema. Missing or
// non-string values default to the empty string; a missing status defaults
// to DRAFT and non-list tags are discarded.
type AssetMetadata struct {
	Name        string
	Description string
	Category    string
	AssetType   string
	Version     string
	Owner       string
	Status      string
	Tags        []string
}

// Parse splits raw into metadata and body. When no metadata block is
// present (or the block is not valid YAML) the metadata is empty and the
// body is the entire document. Parse never fails.
func Parse(raw string) Document {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")

	doc := Document{Metadata: map[string]any{}, Body: strings.TrimSpace(normalized)}
	if !strings.HasPrefix(normalized, delimiter+"\n") {
		doc.Excerpt = excerpt(doc.Body)
		return doc
	}

	rest := normalized[len(delimiter)+1:]
	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		doc.Excerpt = excerpt(doc.Body)
		return doc
	}

	block := rest[:end]
	body := rest[end+len(delimiter)+1:]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		doc.Excerpt = excerpt(doc.Body)
		return doc
	}

	doc.Metadata = meta
	doc.Body = strings.TrimSpace(body)
	doc.Excerpt = excerpt(doc.Body)
	return doc
}

// ExtractAssetMetadata maps raw metadata keys onto the asset schema.
func ExtractAssetMetadata(metadata map[string]any) AssetMetadata {
	out := AssetMetadata{
		Name:        str(metadata, "name"),
		Description: str(metadata, "description"),
		Category:    str(metadata, "category"),
		AssetType:   str(metadata, "assetType"),
		Version:     str(metadata, "version"),
		Owner:       str(metadata, "owner"),
		Status:      str(metadata, "status"),
		Tags:        []string{},
	}
	if out.Status == "" {
		out.Status = "DRAFT"
	}
	if list, ok := metadata["tags"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok {
				out.Tags = append(out.Tags, s)
			}
		}
	}
	return out
}

// Validate checks required-field presence. Status enum membership is a
// persistence-layer concern and is deliberately not checked here.
func Validate(m AssetMetadata) (bool, []string) {
	var errs []string
	required := []struct {
		field string
		value string
	}{
		{"name", m.Name},
		{"description", m.Description},
		{"category", m.Category},
		{"assetType", m.AssetType},
		{"version", m.Version},
		{"owner", m.Owner},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Sprintf("missing required field: %s", r.field))
		}
	}
	return len(errs) == 0, errs
}

// IsAssetDocument reports whether a repository path is a syncable asset
// document. Path convention is the sole classification mechanism.
func IsAssetDocument(p string) bool {
	return strings.HasPrefix(p, RootPrefix) && strings.HasSuffix(p, Extension)
}

// CategoryFromPath extracts the first path segment under the root as a
// fallback category hint when frontmatter omits one.
func CategoryFromPath(p string) string {
	if !strings.HasPrefix(p, RootPrefix) {
		return ""
	}
	rest := strings.TrimPrefix(p, RootPrefix)
	if i := strings.Index(rest, "/"); i > 0 {
		return rest[:i]
	}
	return ""
}

// NameFromPath derives a fallback name from the file name.
func NameFromPath(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, Extension)
}

func str(metadata map[string]any, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

func excerpt(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) > excerptLength {
			return line[:excerptLength]
		}
		return line
	}
	return ""
}
