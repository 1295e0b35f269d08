package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pbanos/acorn/catalog"
)

const envPrefix = "ACORN"

// settings are the options shared by all commands, read from flags,
// ACORN_* environment variables and an optional config file, in that
// order of precedence.
type settings struct {
	Verbose   bool   `mapstructure:"verbose"`
	Catalog   string `mapstructure:"catalog"`
	OutputDir string `mapstructure:"output-dir"`
	Dot       string `mapstructure:"dot"`
}

func loadSettings(v *viper.Viper, cmd *cobra.Command, configFile string) (*settings, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", configFile)
		}
	}
	s := &settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Wrap(err, "parsing settings")
	}
	return s, nil
}

func (s *settings) datasetCatalog() (catalog.Catalog, error) {
	if s.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.ReadFile(s.Catalog)
}
