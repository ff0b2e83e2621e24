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

	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOwnership(t *testing.T) {
	holders := []map[string]interface{}{
		{"repror": "National Pension Service", "stkqy": "50000000"},
	}

	Convey("BulkHolders queries the bulk ownership endpoint", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := testContext(server)

		server.ResponseBody = []string{testPage(StatusOK, "ok", holders, 1, 100, 1)}
		tbl, err := BulkHolders(ctx, "00126380")
		So(err, ShouldBeNil)
		So(len(tbl.Rows), ShouldEqual, 1)
		So(server.RequestPath, ShouldEqual, "/api/majorstock.json")
		So(server.RequestQuery["corp_code"], ShouldResemble, []string{"00126380"})
	})

	Convey("MajorHolders queries the executive ownership endpoint", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		ctx := testContext(server)

		server.ResponseBody = []string{testPage(StatusOK, "ok", holders, 1, 100, 1)}
		tbl, err := MajorHolders(ctx, "00126380")
		So(err, ShouldBeNil)
		So(len(tbl.Rows), ShouldEqual, 1)
		So(server.RequestPath, ShouldEqual, "/api/elestock.json")
		So(server.RequestQuery["corp_code"], ShouldResemble, []string{"00126380"})
	})
}
