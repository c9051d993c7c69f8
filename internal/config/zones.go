package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"daycare-dispatch/internal/domain"
)

type zoneFileEntry struct {
	Name        string   `yaml:"name"`
	PostalCodes []string `yaml:"postal_codes"`
	BaseMinutes int      `yaml:"base_delivery_minutes"`
	Inactive    bool     `yaml:"inactive"`
}

type zoneFile struct {
	Zones []zoneFileEntry `yaml:"zones"`
}

// LoadZones reads a YAML zone table. A relative path is resolved against the working directory.
func LoadZones(path string) ([]domain.Zone, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones file: %w", err)
	}
	return ParseZones(data)
}

// ParseZones decodes a YAML zone table.
func ParseZones(data []byte) ([]domain.Zone, error) {
	var f zoneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse zones: %w", err)
	}

	out := make([]domain.Zone, 0, len(f.Zones))
	for i, z := range f.Zones {
		name := strings.TrimSpace(z.Name)
		if name == "" {
			return nil, fmt.Errorf("zone at index %d missing name", i)
		}
		if len(z.PostalCodes) == 0 {
			return nil, fmt.Errorf("zone %q has no postal codes", name)
		}
		minutes := z.BaseMinutes
		if minutes <= 0 {
			minutes = domain.DefaultZoneMinutes
		}
		codes := make([]string, 0, len(z.PostalCodes))
		for _, c := range z.PostalCodes {
			codes = append(codes, strings.TrimSpace(c))
		}
		out = append(out, domain.Zone{
			Name:                name,
			PostalCodes:         codes,
			BaseDeliveryMinutes: minutes,
			Active:              !z.Inactive,
		})
	}
	return out, nil
}
