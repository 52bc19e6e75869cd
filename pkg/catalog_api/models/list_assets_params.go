package models

import "strings"

type ListAssetsParams struct {
	Page      int     `query:"page"`
	PerPage   int     `query:"perPage"`
	Category  *string `query:"category"`
	Status    *string `query:"status"`
	BizDomain *string `query:"bizDomain"`
	Tag       *string `query:"tag"`
	Query     *string `query:"q"`
}

// SearchQuery returns the trimmed free-text query, or nil when blank.
func (p ListAssetsParams) SearchQuery() *string {
	if p.Query == nil {
		return nil
	}
	q := strings.TrimSpace(*p.Query)
	if q == "" {
		return nil
	}
	return &q
}

// StatusFilter normalizes the status filter to upper case, nil when blank.
func (p ListAssetsParams) StatusFilter() *string {
	if p.Status == nil {
		return nil
	}
	s := strings.ToUpper(strings.TrimSpace(*p.Status))
	if s == "" {
		return nil
	}
	return &s
}

