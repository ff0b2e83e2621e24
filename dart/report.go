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
	"sort"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"

	"github.com/wangsookim/DartReader/table"
)

// DefaultReportType is the report type code of the annual business report.
// Other values: "11012" = half-year, "11013" = Q1, "11014" = Q3.
const DefaultReportType = "11011"

// reportEndpoints maps the human-readable report topic keywords (in Korean,
// as published by DART) to their endpoint names.
var reportEndpoints = map[string]string{
	"증자":     "irdsSttus",               // capital increase/decrease
	"배당":     "alotMatter",              // dividends
	"자기주식":   "tesstkAcqsDspsSttus",     // treasury stock
	"최대주주":   "hyslrSttus",              // major shareholders
	"최대주주변동": "hyslrChgSttus",           // major shareholder changes
	"소액주주":   "mrhlSttus",               // minority shareholders
	"임원":     "exctvSttus",              // executives
	"직원":     "empSttus",                // employees
	"임원개인보수": "hmvAuditIndvdlBySttus",   // individual executive compensation
	"임원전체보수": "hmvAuditAllSttus",        // aggregate executive compensation
	"개인별보수":  "indvdlByPay",             // compensation by individual
	"타법인출자":  "otrCprInvstmntSttus",     // inter-corporate investment
}

// ReportKeywords returns the sorted list of valid report topic keywords.
func ReportKeywords() []string {
	keywords := make([]string, 0, len(reportEndpoints))
	for k := range reportEndpoints {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

// ReportDetail fetches one topic of the periodic business report for a
// company and business year, selected by keyword. An empty reportType
// defaults to the annual report.
func ReportDetail(ctx context.Context, corpCode, keyword string, businessYear int, reportType string) (*table.Table, error) {
	endpoint, ok := reportEndpoints[keyword]
	if !ok {
		return nil, errors.Reason("invalid keyword %q: valid keywords are %s",
			keyword, strings.Join(ReportKeywords(), ", "))
	}
	if reportType == "" {
		reportType = DefaultReportType
	}
	params := make(url.Values)
	params.Set("corp_code", corpCode)
	params.Set("bsns_year", strconv.Itoa(businessYear))
	params.Set("reprt_code", reportType)
	return listTable(ctx, endpoint+".json", params)
}
