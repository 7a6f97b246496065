package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/icon"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/crosswatch-cli/crosswatch/store"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// ErrUnknownKey is returned by Parse for keys that are not registered.
var ErrUnknownKey = errors.New("unknown key")

// Rejected lists the configured values that Setup replaced with their defaults.
var Rejected []error

// validators return the canonical value of keys with a closed vocabulary.
var validators = map[string]func(values []string) (any, error){
	key.SearchCountries: func(values []string) (any, error) {
		return region.NormalizeCountries(values)
	},
	key.SearchServices: func(values []string) (any, error) {
		return region.NormalizeServices(values)
	},
	key.SearchKind: func(values []string) (any, error) {
		kind, err := content.ParseKind(values[0])
		return kind.String(), err
	},
	key.CatalogLanguage: func(values []string) (any, error) {
		tag, err := language.Parse(values[0])
		if err != nil {
			return nil, fmt.Errorf("invalid language %q, expected a tag like en-US: %w", values[0], err)
		}
		return tag.String(), nil
	},
	key.TUIViewMode:  oneOf("view mode", string(store.Grid), string(store.List)),
	key.IconsVariant: oneOf("icons variant", icon.AvailableVariants()...),
	key.LogsLevel: oneOf("log level", lo.Map(logrus.AllLevels, func(l logrus.Level, _ int) string {
		return l.String()
	})...),
}

func oneOf(what string, options ...string) func([]string) (any, error) {
	return func(values []string) (any, error) {
		if lo.Contains(options, values[0]) {
			return values[0], nil
		}

		return nil, fmt.Errorf("invalid %s %q, did you mean %s?", what, values[0], region.Closest(values[0], options))
	}
}

// Parse converts command line values to the type of the key's default and
// validates keys with a closed vocabulary.
func Parse(k string, values []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	if len(values) == 0 {
		return nil, errors.New("value is required")
	}

	var v any
	switch field.Value.(type) {
	case string:
		v = values[0]
	case int:
		parsed, err := strconv.Atoi(values[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", values[0])
		}
		v = parsed
	case bool:
		parsed, err := strconv.ParseBool(values[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", values[0])
		}
		v = parsed
	case []string:
		v = values
	default:
		return nil, fmt.Errorf("unsupported type of %s", k)
	}

	if validate, ok := validators[k]; ok {
		return validate(values)
	}

	return v, nil
}

// sanitize checks values coming from the config file or the environment.
// Invalid ones fall back to their defaults and are recorded in Rejected.
func sanitize() {
	Rejected = nil

	for k, validate := range validators {
		var values []string
		if _, ok := Default[k].Value.([]string); ok {
			values = viper.GetStringSlice(k)
		} else if s := viper.GetString(k); s != "" {
			values = []string{s}
		}

		if len(values) == 0 || reflect.DeepEqual(viper.Get(k), Default[k].Value) {
			continue
		}

		normalized, err := validate(values)
		if err != nil {
			Rejected = append(Rejected, fmt.Errorf("%s: %w", k, err))
			viper.Set(k, Default[k].Value)
			continue
		}

		viper.Set(k, normalized)
	}
}
