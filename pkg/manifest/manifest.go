// Package manifest loads and checks the shape of a package's package.json.
package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Manifest is the subset of package.json the validation rules read.
type Manifest struct {
	Name             string            `json:"name"`
	DisplayName      string            `json:"displayName,omitempty"`
	Version          string            `json:"version"`
	Description      string            `json:"description,omitempty"`
	Unity            string            `json:"unity,omitempty"`
	UnityRelease     string            `json:"unityRelease,omitempty"`
	Type             string            `json:"type,omitempty"`
	DocumentationURL string            `json:"documentationUrl,omitempty"`
	ChangelogURL     string            `json:"changelogUrl,omitempty"`
	Author           *Author           `json:"author,omitempty"`
	Samples          []Sample          `json:"samples,omitempty"`
	Repository       map[string]string `json:"repository,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	RelatedPackages  map[string]string `json:"relatedPackages,omitempty"`
	Keywords         []string          `json:"keywords,omitempty"`

	// Path is the package root the manifest was loaded from.
	Path string `json:"-"`
}

// Author accepts both the "Name <email> (url)" string form and the object
// form of the author field.
type Author struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`

	// FromString is set when the manifest used the string form.
	FromString bool `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Author) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Author{Name: s, FromString: true}
		return nil
	}
	type plain Author
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("author: %w", err)
	}
	*a = Author(p)
	return nil
}

// Sample is one entry of the samples array.
type Sample struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
}

// ID returns "name@version".
func (m *Manifest) ID() string {
	return m.Name + "@" + m.Version
}

// SortedDependencies returns "name@version" strings in name order.
func (m *Manifest) SortedDependencies() []string {
	names := slices.Sorted(maps.Keys(m.Dependencies))
	deps := make([]string, 0, len(names))
	for _, name := range names {
		deps = append(deps, name+"@"+m.Dependencies[name])
	}
	return deps
}

// IsTemplate reports whether the manifest declares a project template.
func (m *Manifest) IsTemplate() bool {
	return strings.EqualFold(m.Type, "template")
}
