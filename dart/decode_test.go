// Copyright 2025 DartReader Authors

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dart

import (
	"testing"

	"golang.org/x/text/encoding/korean"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	Convey("decodeText", t, func() {
		Convey("valid UTF-8 is returned as-is", func() {
			text, err := decodeText([]byte("<result>한글</result>"))
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "<result>한글</result>")
		})

		Convey("EUC-KR bytes are transcoded", func() {
			encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte("한글 텍스트"))
			So(err, ShouldBeNil)
			text, err := decodeText(encoded)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "한글 텍스트")
		})
	})

	Convey("extractZipXML", t, func() {
		Convey("decodes the first archive member", func() {
			body := zipBody("doc.xml", []byte("<result>ok</result>"))
			text, err := extractZipXML([]byte(body))
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "<result>ok</result>")
		})

		Convey("fails on a non-archive body", func() {
			_, err := extractZipXML([]byte("not a zip"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("xmlStatusError", t, func() {
		Convey("success status is nil", func() {
			err := xmlStatusError([]byte(
				`<result><status>000</status><message>ok</message></result>`))
			So(err, ShouldBeNil)
		})

		Convey("failure status carries the raw message", func() {
			err := xmlStatusError([]byte(
				`<result><status>020</status><message>limit exceeded</message></result>`))
			So(err, ShouldNotBeNil)
			statusErr, ok := err.(*StatusError)
			So(ok, ShouldBeTrue)
			So(statusErr.Status, ShouldEqual, "020")
			So(statusErr.Message, ShouldEqual, "limit exceeded")
		})

		Convey("malformed XML is an error, not skipped", func() {
			err := xmlStatusError([]byte(`<result><status>`))
			So(err, ShouldNotBeNil)
		})

		Convey("a missing status element is an error", func() {
			err := xmlStatusError([]byte(`<result><message>hm</message></result>`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "status element is missing")
		})
	})

	Convey("flattenXML", t, func() {
		Convey("one record per list element, columns in document order", func() {
			tbl, err := flattenXML(`<result>
				<list><b>1</b><a>2</a></list>
				<list><b>3</b><a>4</a><c>5</c></list>
			</result>`)
			So(err, ShouldBeNil)
			So(tbl.Header, ShouldResemble, []string{"b", "a", "c"})
			So(len(tbl.Rows), ShouldEqual, 2)
			So(tbl.Rows[0].CSV(), ShouldResemble, []string{"1", "2", ""})
			So(tbl.Rows[1].CSV(), ShouldResemble, []string{"3", "4", "5"})
		})

		Convey("no list elements yields an empty table", func() {
			tbl, err := flattenXML(`<result><status>000</status></result>`)
			So(err, ShouldBeNil)
			So(len(tbl.Rows), ShouldEqual, 0)
		})
	})
}
