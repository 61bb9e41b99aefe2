package web

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Branding is the resolved presentation identity for one company: the theme
// tokens flattened into CSS custom properties ready to drop into the layout.
type Branding struct {
	Theme   string            `json:"theme,omitempty"`
	Variant string            `json:"variant,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
	Style   string            `json:"style,omitempty"`
}

// ManifestSelector serves theme selections from a fixed set of manifests,
// keyed by manifest name.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
}

// NewManifestSelector builds a selector over the given manifests. Nil entries
// and blank names are skipped.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	selector := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			continue
		}
		selector.manifests[manifest.Name] = manifest
	}
	return selector
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil {
		return nil, fmt.Errorf("web: no theme manifests configured")
	}
	manifest, ok := s.manifests[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("web: theme %q not found", name)
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// brandingFromSelection flattens a theme selection into CSS custom properties.
// Variant tokens override the base manifest tokens.
func brandingFromSelection(selection *theme.Selection) Branding {
	if selection == nil || selection.Manifest == nil {
		return Branding{}
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+key] = value
	}

	return Branding{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		CSSVars: vars,
		Style:   cssVarsStyle(vars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(":")
		builder.WriteString(vars[key])
		builder.WriteString(";")
	}
	return builder.String()
}

// splitThemeRef parses a company theme reference of the form "name" or
// "name/variant".
func splitThemeRef(ref string) (name, variant string) {
	name = strings.TrimSpace(ref)
	if idx := strings.IndexByte(name, '/'); idx >= 0 {
		return strings.TrimSpace(name[:idx]), strings.TrimSpace(name[idx+1:])
	}
	return name, ""
}
