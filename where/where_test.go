package where

import (
	"path/filepath"
	"testing"

	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honors the override", func() {
			t.Setenv(EnvConfigPath, "/custom/crosswatch")
			So(Config(), ShouldEqual, "/custom/crosswatch")
			So(lo.Must(filesystem.API().IsDir("/custom/crosswatch")), ShouldBeTrue)
		})

		Convey("Config() ignores an empty override", func() {
			t.Setenv(EnvConfigPath, "")
			So(filepath.Base(Config()), ShouldEqual, "crosswatch")
		})

		Convey("Logs() and Recent() live under State()", func() {
			So(filepath.Dir(Logs()), ShouldEqual, State())
			So(filepath.Dir(Recent()), ShouldEqual, State())
		})

		Convey("Cache() and State() are separate directories", func() {
			So(Cache(), ShouldNotEqual, State())
			So(lo.Must(filesystem.API().IsDir(Cache())), ShouldBeTrue)
		})
	})
}
