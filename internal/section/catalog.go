// Package section holds the catalog of counters a deployment serves.
package section

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var DefaultSections = []string{"Bakery", "Butcher", "Fishmonger", "Deli", "Checkout"}

// Catalog is the ordered, read-only set of section names. Ids are 1-based
// positions in that order.
type Catalog struct {
	names []string
	index map[string]int
}

func NewCatalog(names []string) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(names))}
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("section name cannot be empty")
		}
		if _, dup := c.index[strings.ToLower(name)]; dup {
			return nil, fmt.Errorf("duplicate section %q", name)
		}
		c.names = append(c.names, name)
		c.index[strings.ToLower(name)] = len(c.names)
	}
	if len(c.names) == 0 {
		return nil, fmt.Errorf("at least one section is required")
	}
	return c, nil
}

type catalogFile struct {
	Sections []string `yaml:"sections"`
}

// LoadCatalog reads a YAML file of the form:
//
//	sections:
//	  - Bakery
//	  - Deli
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sections file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sections file: %w", err)
	}

	return NewCatalog(f.Sections)
}

// Names returns a copy of the section names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Has reports whether name is a section, matching exactly.
func (c *Catalog) Has(name string) bool {
	id, ok := c.index[strings.ToLower(name)]
	return ok && c.names[id-1] == name
}

func (c *Catalog) ID(name string) int {
	if !c.Has(name) {
		return 0
	}
	return c.index[strings.ToLower(name)]
}

// Resolve maps a transport-supplied reference (exact name, any-case name or
// numeric id) to the canonical section name.
func (c *Catalog) Resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if id, ok := c.index[strings.ToLower(ref)]; ok {
		return c.names[id-1], true
	}
	if id, err := strconv.Atoi(ref); err == nil && id >= 1 && id <= len(c.names) {
		return c.names[id-1], true
	}
	return "", false
}

func (c *Catalog) Len() int {
	return len(c.names)
}
