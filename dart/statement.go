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
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"

	"github.com/wangsookim/DartReader/table"
)

// Consolidation selectors of the full statement endpoint.
const (
	Consolidated = "CFS" // consolidated financial statements
	Separate     = "OFS" // separate (non-consolidated) statements
)

// Statement fetches the summary financial accounts of one or more listed
// companies for a business year. A single identifier queries the
// single-company endpoint; two or more query the multi-company endpoint with
// the identifiers joined. An empty reportType defaults to the annual report.
func Statement(ctx context.Context, corpCodes []string, businessYear int, reportType string) (*table.Table, error) {
	if len(corpCodes) == 0 {
		return nil, errors.Reason("at least one corp code is required")
	}
	endpoint := "fnlttSinglAcnt.json"
	if len(corpCodes) > 1 {
		endpoint = "fnlttMultiAcnt.json"
	}
	if reportType == "" {
		reportType = DefaultReportType
	}
	params := make(url.Values)
	params.Set("corp_code", strings.Join(corpCodes, ","))
	params.Set("bsns_year", strconv.Itoa(businessYear))
	params.Set("reprt_code", reportType)
	return listTable(ctx, endpoint, params)
}

// RawStatement fetches the original XBRL financial statement attached to a
// filing and returns the decoded XML text.
func RawStatement(ctx context.Context, receiptNo, reportType string) (string, error) {
	if reportType == "" {
		reportType = DefaultReportType
	}
	params := make(url.Values)
	params.Set("rcept_no", receiptNo)
	params.Set("reprt_code", reportType)
	body, err := getRaw(ctx, "fnlttXbrl.xml", params)
	if err != nil {
		return "", errors.Annotate(err, "failed to fetch XBRL of %s", receiptNo)
	}
	return unzipXML(body)
}

// FullStatement fetches the complete financial statement of a single company.
// An empty consolidation defaults to consolidated statements and an empty
// reportType to the annual report.
func FullStatement(ctx context.Context, corpCode string, businessYear int, reportType, consolidation string) (*table.Table, error) {
	if reportType == "" {
		reportType = DefaultReportType
	}
	if consolidation == "" {
		consolidation = Consolidated
	}
	params := make(url.Values)
	params.Set("corp_code", corpCode)
	params.Set("bsns_year", strconv.Itoa(businessYear))
	params.Set("reprt_code", reportType)
	params.Set("fs_div", consolidation)
	return listTable(ctx, "fnlttSinglAcntAll.json", params)
}

// Taxonomy fetches the standard IFRS account taxonomy reference table for the
// given statement division (default "BS1", the consolidated balance sheet).
func Taxonomy(ctx context.Context, statementDivision string) (*table.Table, error) {
	if statementDivision == "" {
		statementDivision = "BS1"
	}
	params := make(url.Values)
	params.Set("sj_div", statementDivision)
	return listTable(ctx, "xbrlTaxonomy.json", params)
}
