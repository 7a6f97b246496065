package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate registered defaults", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetString(key.SearchKind), ShouldEqual, "movie")
			So(viper.GetInt(key.CatalogRequestsPerSecond), ShouldEqual, 20)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("catalog.api_key"), ShouldEqual, "catalog_api_key")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		Convey("Env should be prefixed once", func() {
			f := Default[key.CatalogAPIKey]
			So(f.Env(), ShouldEqual, "CROSSWATCH_CATALOG_API_KEY")
		})

		Convey("Every field should have a type", func() {
			for _, f := range Default {
				So(f.Type(), ShouldNotBeEmpty)
			}
		})

		Convey("The API key should be masked", func() {
			f := Default[key.CatalogAPIKey]
			So(f.Secret, ShouldBeTrue)

			viper.Set(key.CatalogAPIKey, "0123456789abcdef")
			defer viper.Set(key.CatalogAPIKey, "")
			So(f.Current(), ShouldEqual, "********")
			So(f.Pretty(), ShouldNotContainSubstring, "0123456789abcdef")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Converts to the type of the default", func() {
			v, err := Parse(key.CatalogTimeout, []string{"30"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 30)
		})

		Convey("Returns the canonical form of closed vocabularies", func() {
			v, err := Parse(key.SearchServices, []string{"Disney+", "hulu"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"disney", "hulu"})

			v, err = Parse(key.LogsLevel, []string{"debug"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "debug")

			_, err = Parse(key.LogsLevel, []string{"verbose"})
			So(err, ShouldNotBeNil)

			v, err = Parse(key.CatalogLanguage, []string{"pt-br"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "pt-BR")

			_, err = Parse(key.CatalogLanguage, []string{"not a language"})
			So(err, ShouldNotBeNil)
		})

		Convey("Wraps ErrUnknownKey", func() {
			_, err := Parse("catalog.token", []string{"x"})
			So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
		})
	})
}

func TestSanitize(t *testing.T) {
	Convey("Given a config file with a bad and a sloppy value", t, func() {
		path := filepath.Join(where.Config(), "crosswatch.toml")
		content := "[search]\ncountries = [\"kr\", \"us\"]\nkind = \"cartoons\"\n"
		So(filesystem.API().WriteFile(path, []byte(content), 0o644), ShouldBeNil)
		defer func() {
			_ = filesystem.API().Remove(path)
			viper.Reset()
		}()

		Convey("When Setup runs", func() {
			So(Setup(), ShouldBeNil)

			Convey("Then valid values should be normalized", func() {
				So(viper.GetStringSlice(key.SearchCountries), ShouldResemble, []string{"KR", "US"})
			})

			Convey("Then invalid values should fall back to defaults and be reported", func() {
				So(viper.GetString(key.SearchKind), ShouldEqual, "movie")
				So(Rejected, ShouldHaveLength, 1)
				So(Rejected[0].Error(), ShouldContainSubstring, key.SearchKind)
			})
		})
	})
}
