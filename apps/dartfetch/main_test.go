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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/wangsookim/DartReader/dart"
)

func TestMain(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_dartfetch")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("parseFlags", t, func() {
		Convey("parses a filings invocation", func() {
			flags, err := parseFlags([]string{
				"-config", "path/to/config.toml", "-log-level", "warning",
				"-filings", "-corp-code", "00126380", "-all-pages", "-csv"})
			So(err, ShouldBeNil)
			So(flags.Config, ShouldEqual, "path/to/config.toml")
			So(flags.LogLevel, ShouldEqual, logging.Warning)
			So(flags.Filings, ShouldBeTrue)
			So(flags.CorpCode, ShouldEqual, "00126380")
			So(flags.AllPages, ShouldBeTrue)
			So(flags.CSV, ShouldBeTrue)
		})

		Convey("requires exactly one operation", func() {
			_, err := parseFlags([]string{"-config", "c.toml"})
			So(err, ShouldNotBeNil)
			_, err = parseFlags([]string{"-config", "c.toml", "-filings", "-registry"})
			So(err, ShouldNotBeNil)
		})
	})

	Convey("printData works", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()

		ctx := fetch.UseClient(context.Background(), server.Client())
		dart.URL = server.URL() + "/api"

		configFile := filepath.Join(tmpdir, "config.toml")
		So(testutil.WriteFile(configFile, `key = "testkey"`+"\n"), ShouldBeNil)

		Convey("profiles as CSV", func() {
			server.ResponseBody = []string{
				`{"status": "000", "message": "ok", "corp_code": "A", "corp_name": "Alpha"}`,
				`{"status": "000", "message": "ok", "corp_code": "B", "corp_name": "Beta"}`,
			}
			flags, err := parseFlags([]string{
				"-config", configFile, "-profile", "A,B", "-csv"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, &buf), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
corp_code,corp_name
A,Alpha
B,Beta
`)
		})

		Convey("missing config file is an error", func() {
			flags, err := parseFlags([]string{
				"-config", filepath.Join(tmpdir, "nonexistent.toml"), "-registry"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, &buf), ShouldNotBeNil)
		})
	})
}
