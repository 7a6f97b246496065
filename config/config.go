// Package config registers the configuration fields and loads crosswatch.toml with viper.
package config

import (
	"errors"
	"strings"

	"github.com/crosswatch-cli/crosswatch/constant"
	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer normalizes configuration keys into environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and environment bindings, then reads crosswatch.toml
// from the config directory if present.
func Setup() error {
	viper.SetConfigName(constant.Crosswatch)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Crosswatch)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	sanitize()
	return nil
}
