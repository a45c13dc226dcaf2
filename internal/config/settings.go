package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/spf13/viper"
)

// DefaultYear is the tax year used when nothing else is configured
const DefaultYear = 2025

// Settings are the application-level options shared by the CLI and the TUI.
// They are read from COLTAX_* environment variables and an optional coltax.yaml.
type Settings struct {
	Env           string // development -> console logs; anything else -> JSON
	LogLevel      string
	Format        string // table, csv, json
	Year          int
	ParamsFile    string // overrides the bundled year when set
	ActivityGroup string
}

// LoadSettings reads settings with viper. A missing config file is not an error.
func LoadSettings() (*Settings, error) {
	v := viper.New()

	v.SetConfigName("coltax")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/coltax")

	v.SetEnvPrefix("COLTAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	s := &Settings{
		Env:           v.GetString("env"),
		LogLevel:      v.GetString("log_level"),
		Format:        v.GetString("format"),
		Year:          v.GetInt("year"),
		ParamsFile:    v.GetString("params"),
		ActivityGroup: v.GetString("activity_group"),
	}
	if s.Year <= 0 {
		return nil, fmt.Errorf("invalid tax year %d", s.Year)
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("format", "table")
	v.SetDefault("year", DefaultYear)
	v.SetDefault("params", "")
	v.SetDefault("activity_group", "profesiones_liberales")
}

// TaxYear loads the parameters file when set, otherwise the bundled year. The
// second return value names where the parameters came from.
func (s *Settings) TaxYear() (*domain.TaxYear, string, error) {
	parser := NewInputParser()
	if s.ParamsFile != "" {
		ty, err := parser.LoadFromFile(s.ParamsFile)
		if err != nil {
			return nil, "", err
		}
		return ty, s.ParamsFile, nil
	}
	ty, err := parser.LoadYear(s.Year)
	if err != nil {
		return nil, "", err
	}
	return ty, fmt.Sprintf("bundled %d", s.Year), nil
}
