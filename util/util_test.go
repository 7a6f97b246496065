package util

import (
	"testing"

	"github.com/crosswatch-cli/crosswatch/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "title", "titles"), ShouldEqual, "1 title")
		So(Quantify(0, "title", "titles"), ShouldEqual, "0 titles")
		So(Quantify(20, "title", "titles"), ShouldEqual, "20 titles")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("netflix"), ShouldEqual, "Netflix")
		So(Capitalize("élite"), ShouldEqual, "Élite")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestStack(t *testing.T) {
	Convey("Given an empty stack", t, func() {
		var s Stack[string]

		Convey("Pop should return nothing", func() {
			So(s.Pop().IsAbsent(), ShouldBeTrue)
		})

		Convey("When states are pushed in order", func() {
			s.Push("countries")
			s.Push("services")
			s.Push("results")

			Convey("Pop should return them in reverse", func() {
				So(s.Len(), ShouldEqual, 3)
				So(s.Pop().MustGet(), ShouldEqual, "results")
				So(s.Pop().MustGet(), ShouldEqual, "services")
			})

			Convey("Pushing a state already present should unwind to it", func() {
				s.Push("services")
				So(s.Len(), ShouldEqual, 2)
				So(s.Pop().MustGet(), ShouldEqual, "services")
				So(s.Pop().MustGet(), ShouldEqual, "countries")
				So(s.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete removes files and directories", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/crosswatch/a", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/crosswatch/a/f.json", []byte("{}"), 0o644), ShouldBeNil)

		So(Delete("/tmp/crosswatch/a/f.json"), ShouldBeNil)
		exists, _ := fs.Exists("/tmp/crosswatch/a/f.json")
		So(exists, ShouldBeFalse)

		So(Delete("/tmp/crosswatch"), ShouldBeNil)
		exists, _ = fs.DirExists("/tmp/crosswatch")
		So(exists, ShouldBeFalse)

		So(Delete("/tmp/missing"), ShouldBeNil)
	})
}
