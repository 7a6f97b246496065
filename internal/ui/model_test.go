package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Without a notification the view is unchanged", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A notification is appended to the last line", func() {
			So(m.Update(Notify("Copied")()), ShouldNotBeNil)
			So(m.Notification(), ShouldEqual, "Copied")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
			So(m.View("a\nb"), ShouldContainSubstring, "Copied")
		})

		Convey("A stale clear does not hide a newer notification", func() {
			m.Update(NotifyMsg("first"))
			stale := ClearNotificationMsg{id: m.id}
			m.Update(NotifyMsg("second"))

			m.Update(stale)
			So(m.Notification(), ShouldEqual, "second")

			m.Update(ClearNotificationMsg{id: m.id})
			So(m.Notification(), ShouldBeEmpty)
		})
	})
}
