package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadAll reads the settings in dir and the unit catalog they point at. A
// relative catalog path is resolved against dir.
func LoadAll(dir string) (*Settings, *UnitCatalog, error) {
	s, err := Load(dir)
	if err != nil {
		return nil, nil, err
	}
	path := s.Catalog
	if path != "" && !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	uc, err := LoadCatalog(path)
	if err != nil {
		return nil, nil, err
	}
	return s, uc, nil
}
