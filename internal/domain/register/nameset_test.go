package register

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNameSet(t *testing.T) {
	Convey("Given an empty name set", t, func() {
		s := newNameSet()

		Convey("Then it contains nothing", func() {
			So(s.size(), ShouldEqual, 0)
			So(s.contains("Alice"), ShouldBeFalse)
			So(s.sorted(), ShouldBeEmpty)
		})

		Convey("When adding names with a duplicate", func() {
			s.add("Diana")
			s.add("Alice")
			s.add("Diana")
			s.add("Bob")

			Convey("Then duplicates collapse and iteration is sorted", func() {
				So(s.size(), ShouldEqual, 3)
				So(s.contains("Diana"), ShouldBeTrue)
				So(s.sorted(), ShouldResemble, []string{"Alice", "Bob", "Diana"})
			})
		})
	})
}
