package config

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed units.yaml
var defaultUnits []byte

// Type ids as used by the catalog. 1-3 are mobile, 4-6 structures.
const (
	MinUnitID       = 1
	MaxMobileID     = 3
	MaxUnitID       = 6
	catalogEntryLen = MaxUnitID - MinUnitID + 1
)

type UnitCatalog struct {
	Units []UnitDef `yaml:"units"`
}

type UnitDef struct {
	Name      string `yaml:"name"`
	ID        int    `yaml:"id"`
	Range     int    `yaml:"range"`
	Damage    int    `yaml:"damage"`
	Stability int    `yaml:"stability"`
	Speed     int    `yaml:"speed"`
	Note      string `yaml:"note"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*UnitCatalog, error) {
	return parseCatalog(defaultUnits)
}

// LoadCatalog reads a catalog file; an empty path yields the embedded default.
func LoadCatalog(path string) (*UnitCatalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	var uc UnitCatalog
	if err := loadYAML(path, &uc); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	if err := uc.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &uc, nil
}

func parseCatalog(b []byte) (*UnitCatalog, error) {
	var uc UnitCatalog
	if err := yaml.Unmarshal(b, &uc); err != nil {
		return nil, err
	}
	if err := uc.Validate(); err != nil {
		return nil, err
	}
	return &uc, nil
}

// Validate checks there is exactly one well-formed entry per type id.
func (uc *UnitCatalog) Validate() error {
	var errs []error
	ids := map[int]string{}
	names := map[string]bool{}
	for _, u := range uc.Units {
		switch {
		case u.Name == "":
			errs = append(errs, fmt.Errorf("unit id %d: empty name", u.ID))
		case names[u.Name]:
			errs = append(errs, fmt.Errorf("unit %q: duplicate name", u.Name))
		}
		names[u.Name] = true
		if u.ID < MinUnitID || u.ID > MaxUnitID {
			errs = append(errs, fmt.Errorf("unit %q: id %d outside %d..%d", u.Name, u.ID, MinUnitID, MaxUnitID))
			continue
		}
		if prev, dup := ids[u.ID]; dup {
			errs = append(errs, fmt.Errorf("unit %q: id %d already used by %q", u.Name, u.ID, prev))
		}
		ids[u.ID] = u.Name
		if u.Stability <= 0 {
			errs = append(errs, fmt.Errorf("unit %q: stability must be positive", u.Name))
		}
		if u.Range < 0 || u.Damage < 0 {
			errs = append(errs, fmt.Errorf("unit %q: negative range or damage", u.Name))
		}
		if u.ID <= MaxMobileID && u.Speed < 1 {
			errs = append(errs, fmt.Errorf("unit %q: mobile unit needs speed >= 1", u.Name))
		}
	}
	if len(ids) != catalogEntryLen {
		errs = append(errs, fmt.Errorf("catalog defines %d of %d unit types", len(ids), catalogEntryLen))
	}
	return errors.Join(errs...)
}
