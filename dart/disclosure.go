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
	"time"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"golang.org/x/time/rate"

	"github.com/wangsookim/DartReader/table"
)

// filingsPageSize is the number of rows requested per page of the filings
// list endpoint, up to the API maximum of 100.
const filingsPageSize = 100

// FilingsQuery is the set of search parameters for Filings. The zero value
// searches all filings of the last reportable period: start date defaults to
// the beginning of the dataset (left to the server) and end date to today.
type FilingsQuery struct {
	CorpCode   string // corporate identifier; empty = all companies
	Start      string // YYYYMMDD; empty = dataset epoch
	End        string // YYYYMMDD; empty = today
	Kind       string // filing kind code, e.g. "A" = periodic reports
	KindDetail string // detailed filing kind code
	FinalOnly  bool   // only the final version of each report
	AllPages   bool   // accumulate all result pages, not just the first
}

// Values returns the query values for the search, without the page cursor.
func (q FilingsQuery) Values() url.Values {
	end := q.End
	if end == "" {
		end = time.Now().Format("20060102")
	}
	v := make(url.Values)
	v.Set("corp_code", q.CorpCode)
	v.Set("bgn_de", q.Start)
	v.Set("end_de", end)
	last := "N"
	if q.FinalOnly {
		last = "Y"
	}
	v.Set("last_reprt_at", last)
	if q.Kind != "" {
		v.Set("pblntf_ty", q.Kind)
	}
	if q.KindDetail != "" {
		v.Set("pblntf_detail_ty", q.KindDetail)
	}
	v.Set("page_count", strconv.Itoa(filingsPageSize))
	return v
}

// Filings searches the disclosure filings list. With AllPages set it walks
// the page cursor until the reported total page count is reached,
// concatenating rows in page order; otherwise it returns the first page only.
func Filings(ctx context.Context, q FilingsQuery) (*table.Table, error) {
	params := q.Values()
	var all []map[string]interface{}
	for pageNo := 1; ; pageNo++ {
		params.Set("page_no", strconv.Itoa(pageNo))
		var e envelope
		if err := getJSON(ctx, "list.json", params, &e); err != nil {
			return nil, errors.Annotate(err, "failed to query page %d", pageNo)
		}
		if err := e.check(); err != nil {
			return nil, err
		}
		rows, err := e.rows()
		if err != nil {
			return nil, errors.Annotate(err, "failed to parse page %d", pageNo)
		}
		all = append(all, rows...)
		logging.Infof(ctx, "DART: fetched filings page %d of %d with %d rows",
			pageNo, e.totalPages(), len(rows))
		// Terminate on the local page counter, not the server-echoed page
		// number, which some replies omit.
		if !q.AllPages || pageNo >= e.totalPages() {
			break
		}
	}
	return jsonTable(all), nil
}

// CompanyProfiles fetches the company profile for each corporate identifier,
// one request per identifier, and returns one row per identifier in the input
// order. The loop is throttled with a rate limiter sized for the API's bulk
// allowance, so cancelling the context aborts a long run.
func CompanyProfiles(ctx context.Context, corpCodes ...string) (*table.Table, error) {
	limiter := rate.NewLimiter(rate.Limit(10), 100)
	rows := make([]map[string]interface{}, 0, len(corpCodes))
	for i, code := range corpCodes {
		if err := limiter.Wait(ctx); err != nil {
			return nil, errors.Annotate(err, "profile fetch interrupted")
		}
		params := make(url.Values)
		params.Set("corp_code", code)
		var row map[string]interface{}
		if err := getJSON(ctx, "company.json", params, &row); err != nil {
			return nil, errors.Annotate(err, "failed to fetch profile of %s", code)
		}
		status, _ := row["status"].(string)
		if status != StatusOK {
			message, _ := row["message"].(string)
			return nil, &StatusError{Status: status, Message: message}
		}
		// The profile endpoint returns a bare object, not a list; the
		// envelope fields are not part of the profile.
		delete(row, "status")
		delete(row, "message")
		rows = append(rows, row)
		if (i+1)%100 == 0 {
			logging.Infof(ctx, "DART: fetched %d of %d company profiles",
				i+1, len(corpCodes))
		}
	}
	return jsonTable(rows), nil
}

// Document fetches the original filing document by its receipt number and
// returns the decoded XML text.
func Document(ctx context.Context, receiptNo string) (string, error) {
	params := make(url.Values)
	params.Set("rcept_no", receiptNo)
	body, err := getRaw(ctx, "document.xml", params)
	if err != nil {
		return "", errors.Annotate(err, "failed to fetch document %s", receiptNo)
	}
	return unzipXML(body)
}

// CorpCodeRegistry fetches the full registry of corporate identifiers tracked
// by DART and flattens it into a table of identifier, name, stock ticker and
// last-modified date rows.
func CorpCodeRegistry(ctx context.Context) (*table.Table, error) {
	text, err := corpCodeXML(ctx)
	if err != nil {
		return nil, err
	}
	return flattenXML(text)
}

// corpCodeXML fetches and decodes the raw registry XML.
func corpCodeXML(ctx context.Context) (string, error) {
	body, err := getRaw(ctx, "corpCode.xml", nil)
	if err != nil {
		return "", errors.Annotate(err, "failed to fetch corp code registry")
	}
	return unzipXML(body)
}
