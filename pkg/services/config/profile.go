package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Profile holds the archive settings for one deployment of the assembler.
type Profile struct {
	ReportsDir string `mapstructure:"reports_dir"`
	FailedDir  string `mapstructure:"failed_dir"`
	DBPath     string `mapstructure:"db_path"`
}

// LoadProfile loads a profile from the specified file path.
func LoadProfile(profilePath string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)
	v.SetDefault("reports_dir", "reports")
	v.SetDefault("failed_dir", "reports/failed")
	v.SetDefault("db_path", "reportsmith.db")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}
