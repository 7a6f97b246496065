package network

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crosswatch-cli/crosswatch/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a test server echoing the user agent", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.UserAgent()))
		}))
		defer srv.Close()

		client := New(5 * time.Second)

		Convey("It sets the application user agent", func() {
			resp, err := client.Get(srv.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			buf := make([]byte, 64)
			n, _ := resp.Body.Read(buf)
			So(string(buf[:n]), ShouldEqual, constant.UserAgent)
		})

		Convey("It keeps an explicit user agent", func() {
			req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			buf := make([]byte, 64)
			n, _ := resp.Body.Read(buf)
			So(string(buf[:n]), ShouldEqual, "custom")
		})
	})
}
