package combat

import (
	"fmt"
	"strconv"

	"lanesim/internal/config"
)

// Template is the base stat block a unit is created from.
type Template struct {
	Name      string
	Kind      Kind
	Range     int
	Damage    int
	Stability int
	Speed     int
}

// Catalog resolves unit names to templates.
type Catalog struct {
	byName map[string]Template
	byKind [Turret + 1]Template
}

func NewCatalog(uc *config.UnitCatalog) (*Catalog, error) {
	if err := uc.Validate(); err != nil {
		return nil, err
	}
	c := &Catalog{byName: map[string]Template{}}
	for _, d := range uc.Units {
		t := Template{
			Name:      d.Name,
			Kind:      Kind(d.ID),
			Range:     d.Range,
			Damage:    d.Damage,
			Stability: d.Stability,
			Speed:     d.Speed,
		}
		c.byName[d.Name] = t
		c.byKind[t.Kind] = t
	}
	return c, nil
}

// DefaultCatalog wraps the embedded unit catalog.
func DefaultCatalog() *Catalog {
	uc, err := config.DefaultCatalog()
	if err != nil {
		panic(err) // embedded file
	}
	c, err := NewCatalog(uc)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup accepts a catalog name ("ping"), a kind name ("scout") or a type id ("1").
func (c *Catalog) Lookup(name string) (Template, error) {
	if t, ok := c.byName[name]; ok {
		return t, nil
	}
	if k, ok := parseKind(name); ok {
		return c.byKind[k], nil
	}
	if id, err := strconv.Atoi(name); err == nil && id >= int(Scout) && id <= int(Turret) {
		return c.byKind[Kind(id)], nil
	}
	return Template{}, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}

func (c *Catalog) Kind(k Kind) Template {
	if !k.Valid() {
		return Template{}
	}
	return c.byKind[k]
}
