package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Registry reads a multi-profile INI file (one section per archive profile),
// the format the web server is configured with.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	if !cr.cfg.HasSection(name) {
		return nil, fmt.Errorf("profile %s not found", name)
	}
	section := cr.cfg.Section(name)

	profile := &Profile{
		ReportsDir: section.Key("reports_dir").MustString("reports"),
		FailedDir:  section.Key("failed_dir").MustString("reports/failed"),
		DBPath:     section.Key("db_path").MustString("reportsmith.db"),
	}
	return profile, nil
}
