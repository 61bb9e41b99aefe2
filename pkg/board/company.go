package board

import (
	"context"
	"strings"
)

// Company is the public identity rendered at the top of the board.
type Company struct {
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty" yaml:"logo_url,omitempty"`
	WebsiteURL  string `json:"websiteUrl,omitempty" yaml:"website_url,omitempty"`
	Theme       string `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// CompanyDirectory resolves a company by slug. The upstream API has no company
// resource, so directories are local: config-backed today, anything later.
type CompanyDirectory interface {
	Company(ctx context.Context, slug string) (*Company, error)
}

// StaticDirectory serves a fixed set of companies. The common deployment hosts
// exactly one.
type StaticDirectory struct {
	companies map[string]Company
}

// NewStaticDirectory builds a directory from the given companies. Blank slugs
// are skipped.
func NewStaticDirectory(companies ...Company) *StaticDirectory {
	dir := &StaticDirectory{companies: make(map[string]Company, len(companies))}
	for _, company := range companies {
		slug := strings.TrimSpace(company.Slug)
		if slug == "" {
			continue
		}
		company.Slug = slug
		dir.companies[slug] = company
	}
	return dir
}

// Company implements CompanyDirectory.
func (d *StaticDirectory) Company(_ context.Context, slug string) (*Company, error) {
	if d == nil {
		return nil, ErrNotFound
	}
	company, ok := d.companies[strings.TrimSpace(slug)]
	if !ok {
		return nil, ErrNotFound
	}
	return &company, nil
}
