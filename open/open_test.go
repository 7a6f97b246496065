package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestURL(t *testing.T) {
	Convey("Given a link that is not a web page", t, func() {
		Convey("URL should refuse it without starting anything", func() {
			So(URL("file:///etc/passwd"), ShouldNotBeNil)
			So(URL("javascript:alert(1)"), ShouldNotBeNil)
		})
	})
}

func TestCommand(t *testing.T) {
	Convey("Given BROWSER is set", t, func() {
		t.Setenv(EnvBrowser, "firefox --new-tab")

		Convey("command should use it with its arguments", func() {
			cmd, ok := command("https://www.themoviedb.org/movie/550")
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"firefox", "--new-tab", "https://www.themoviedb.org/movie/550"})
		})
	})
}
