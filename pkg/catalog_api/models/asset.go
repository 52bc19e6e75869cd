/*
 * Axon asset register API v1
 *
 * Catalog API for internally published automation assets
 */

package models

import "time"

// Asset categories (closed set).
const (
	CategoryCodeComponents         = "CODE_COMPONENTS"
	CategoryServicesApis           = "SERVICES_APIS"
	CategoryAutomationWorkflows    = "AUTOMATION_WORKFLOWS"
	CategoryDataAnalytics          = "DATA_ANALYTICS"
	CategoryArchitectureGovernance = "ARCHITECTURE_GOVERNANCE"
	CategoryKnowledgePractices     = "KNOWLEDGE_PRACTICES"
)

// Asset statuses.
const (
	StatusDraft      = "DRAFT"
	StatusPublished  = "PUBLISHED"
	StatusDeprecated = "DEPRECATED"
	StatusArchived   = "ARCHIVED"
)

// Categories lists every valid asset category.
func Categories() []string {
	return []string{
		CategoryCodeComponents,
		CategoryServicesApis,
		CategoryAutomationWorkflows,
		CategoryDataAnalytics,
		CategoryArchitectureGovernance,
		CategoryKnowledgePractices,
	}
}

// Statuses lists every valid asset status.
func Statuses() []string {
	return []string{StatusDraft, StatusPublished, StatusDeprecated, StatusArchived}
}

// IsValidCategory reports whether c is one of the closed category set.
func IsValidCategory(c string) bool {
	for _, v := range Categories() {
		if v == c {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of the closed status set.
func IsValidStatus(s string) bool {
	for _, v := range Statuses() {
		if v == s {
			return true
		}
	}
	return false
}

type Asset struct {
	Id           string         `json:"id" gorm:"column:id;primaryKey"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Category     string         `json:"category" gorm:"index"`
	AssetType    string         `json:"assetType" gorm:"column:asset_type"`
	BizDomain    string         `json:"bizDomain,omitempty" gorm:"column:biz_domain"`
	Version      string         `json:"version"`
	Status       string         `json:"status" gorm:"index"`
	Owner        string         `json:"owner"`
	// ContentPath is nil for manually registered assets; NULLs never
	// collide on the unique index, synced paths do.
	ContentPath  *string        `json:"contentPath,omitempty" gorm:"column:content_path;uniqueIndex"`
	ContentHash  string         `json:"-" gorm:"column:content_hash"`
	SourceSystem string         `json:"sourceSystem,omitempty" gorm:"column:source_system"`
	SourceLink   string         `json:"sourceLink,omitempty" gorm:"column:source_link"`
	Tags         []Tag          `json:"tags,omitempty" gorm:"many2many:asset_tags;"`
	Relations    []Asset        `json:"-" gorm:"many2many:asset_relations;joinForeignKey:AssetID;joinReferences:RelatedAssetID"`
	Versions     []AssetVersion `json:"-" gorm:"foreignKey:AssetID"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Tag has a lifecycle of its own; deleting one only drops the association.
type Tag struct {
	Id       string `json:"id" gorm:"column:id;primaryKey"`
	Name     string `json:"name" gorm:"uniqueIndex"`
	Category string `json:"category,omitempty"`
}

// AssetVersion is a content snapshot recorded on every mutating sync.
type AssetVersion struct {
	Id          string    `json:"id" gorm:"column:id;primaryKey"`
	AssetID     string    `json:"assetId" gorm:"column:asset_id;index"`
	Version     string    `json:"version"`
	ContentHash string    `json:"contentHash" gorm:"column:content_hash"`
	Content     string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Link is a hypermedia link.
type Link struct {
	Href string `json:"href"`
}

// Links carries self/next/prev links, HAL style.
type Links struct {
	Self *Link `json:"self"`
	Next *Link `json:"next,omitempty"`
	Prev *Link `json:"prev,omitempty"`
}

// AssetSummary is the external list view of an asset.
type AssetSummary struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	AssetType   string   `json:"assetType"`
	Version     string   `json:"version"`
	Status      string   `json:"status"`
	Owner       string   `json:"owner"`
	Tags        []string `json:"tags,omitempty"`
	Links       *Links   `json:"_links,omitempty"`
}

// AssetDetail extends the summary with provenance, relations and history.
type AssetDetail struct {
	AssetSummary
	BizDomain    string         `json:"bizDomain,omitempty"`
	ContentPath  string         `json:"contentPath,omitempty"`
	SourceSystem string         `json:"sourceSystem,omitempty"`
	SourceLink   string         `json:"sourceLink,omitempty"`
	Relations    []AssetSummary `json:"relations,omitempty"`
	History      []AssetVersion `json:"history,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type Pagination struct {
	Next           *int `json:"next,omitempty"`
	Previous       *int `json:"previous,omitempty"`
	CurrentPage    int  `json:"currentPage"`
	RecordsPerPage int  `json:"recordsPerPage"`
	TotalPages     int  `json:"totalPages"`
	TotalRecords   int  `json:"totalRecords"`
}

// AssetPost is the write-side input for manual registration.
type AssetPost struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	AssetType   string   `json:"assetType" binding:"required"`
	BizDomain   string   `json:"bizDomain"`
	Version     string   `json:"version" binding:"required"`
	Status      string   `json:"status"`
	Owner       string   `json:"owner" binding:"required,email"`
	SourceLink  string   `json:"sourceLink"`
	Tags        []string `json:"tags"`
	RelatedIds  []string `json:"relatedIds"`
}

// UpdateAssetInput carries the mutable fields of PUT /assets/:id.
type UpdateAssetInput struct {
	Id          string   `path:"id" json:"-"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	AssetType   string   `json:"assetType"`
	BizDomain   string   `json:"bizDomain"`
	Version     string   `json:"version"`
	Status      string   `json:"status"`
	Owner       string   `json:"owner"`
	SourceLink  string   `json:"sourceLink"`
	Tags        []string `json:"tags"`
	RelatedIds  []string `json:"relatedIds"`
}

type AssetParams struct {
	Id string `path:"id"`
}

type TagPost struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

type TagParams struct {
	Id string `path:"id"`
}

// Statistics is the register-wide summary served by GET /statistics.
type Statistics struct {
	TotalAssets int            `json:"totalAssets"`
	TotalTags   int            `json:"totalTags"`
	ByCategory  map[string]int `json:"byCategory"`
	ByStatus    map[string]int `json:"byStatus"`
	LastUpdated *time.Time     `json:"lastUpdated,omitempty"`
}
