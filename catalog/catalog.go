// Package catalog holds the menu: an ordered list of categories plus a
// flattened id index built once at load time, so item resolution is O(1)
// and independent of where an id sits in the category list.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tacotown/models"
)

//go:embed menu.yaml
var menuYAML []byte

type Catalog struct {
	categories []models.MenuCategory
	index      map[string]models.MenuItem
}

// Parse builds a catalog from YAML menu data. When an id appears in more than
// one category, the earliest occurrence wins; later ones are ignored.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Categories []models.MenuCategory `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}

	c := &Catalog{
		categories: doc.Categories,
		index:      make(map[string]models.MenuItem),
	}
	for _, cat := range doc.Categories {
		for _, item := range cat.Items {
			if _, exists := c.index[item.ID]; exists {
				continue
			}
			c.index[item.ID] = item
		}
	}
	return c, nil
}

// Load parses the menu embedded in the binary.
func Load() (*Catalog, error) {
	return Parse(menuYAML)
}

// Categories returns the categories in authored order.
func (c *Catalog) Categories() []models.MenuCategory {
	out := make([]models.MenuCategory, len(c.categories))
	copy(out, c.categories)
	return out
}

// Lookup resolves an item id. ok is false for unknown ids.
func (c *Catalog) Lookup(id string) (models.MenuItem, bool) {
	item, ok := c.index[id]
	return item, ok
}

// Len returns the number of distinct item ids.
func (c *Catalog) Len() int {
	return len(c.index)
}
