package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestAPIKey(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		So(DeleteAPIKey(), ShouldBeNil)

		Convey("GetAPIKey returns an empty key", func() {
			k, err := GetAPIKey()
			So(err, ShouldBeNil)
			So(k, ShouldBeEmpty)
		})

		Convey("A stored key can be read back and removed", func() {
			So(SetAPIKey("secret"), ShouldBeNil)

			k, err := GetAPIKey()
			So(err, ShouldBeNil)
			So(k, ShouldEqual, "secret")

			So(DeleteAPIKey(), ShouldBeNil)
			k, _ = GetAPIKey()
			So(k, ShouldBeEmpty)
		})
	})
}
