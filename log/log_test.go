package log

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/where"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should leave logging off", func() {
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeFalse)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup should create today's log file and accept entries", func() {
			So(Setup(), ShouldBeNil)
			So(logger.GetLevel(), ShouldEqual, logrus.DebugLevel)
			Infof("search %s", "started")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)
			content := lo.Must(filesystem.API().ReadFile(path))
			So(string(content), ShouldContainSubstring, "search started")
		})
	})
}

func TestLevels(t *testing.T) {
	Convey("Given a logger with a test hook", t, func() {
		hook := test.NewLocal(logger)
		logger.SetLevel(logrus.DebugLevel)
		defer hook.Reset()

		Convey("When logging is enabled", func() {
			enabled = true
			defer func() { enabled = false }()

			Warning(Fields{"sourceId": 550}, "title skipped")
			Error(errors.New("page failed"))

			Convey("Then entries should carry their level and fields", func() {
				So(hook.Entries, ShouldHaveLength, 2)
				So(hook.Entries[0].Level, ShouldEqual, logrus.WarnLevel)
				So(hook.Entries[0].Data["sourceId"], ShouldEqual, 550)
				So(hook.LastEntry().Level, ShouldEqual, logrus.ErrorLevel)
				So(hook.LastEntry().Message, ShouldEqual, "page failed")
			})
		})

		Convey("When logging is disabled", func() {
			enabled = false
			WithFields(Fields{"kind": "movie"}, "search initiated")

			Convey("Then nothing should be recorded", func() {
				So(hook.Entries, ShouldBeEmpty)
			})
		})
	})
}
