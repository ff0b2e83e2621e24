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
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"

	"github.com/wangsookim/DartReader/table"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// URL is the default base URL of the server. It may be overwritten in tests
// before creating a new client.
var URL = "https://opendart.fss.or.kr/api"

// StatusOK is the status code of a successful API response.
const StatusOK = "000"

// Client for querying the DART open disclosure API.
type Client struct {
	baseURL string // the base URL of the server
	apiKey  string // your very own secret key
}

// newClient creates a new client.
func newClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client based on the API key and injects it into the
// context.
func UseClient(ctx context.Context, apiKey string) context.Context {
	return context.WithValue(ctx, clientContextKey, newClient(URL, apiKey))
}

// StatusError is an API-level failure: the server replied, but with a status
// other than StatusOK. It carries the raw status and message of the response.
type StatusError struct {
	Status  string
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("DART API status %s: %s", e.Status, e.Message)
}

// envelope is the common wrapper of all JSON API responses. The list section
// is kept raw to distinguish a missing list from an empty one.
type envelope struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	List       json.RawMessage `json:"list,omitempty"`
	TotalCount int             `json:"total_count,omitempty"`
	PageNo     int             `json:"page_no,omitempty"`
	PageCount  int             `json:"page_count,omitempty"`
}

// check returns a StatusError for a non-success response.
func (e *envelope) check() error {
	if e.Status != StatusOK {
		return &StatusError{Status: e.Status, Message: e.Message}
	}
	return nil
}

// rows unpacks the list section. A response without a list section is an
// error; the server omits it on some otherwise-successful replies, and
// callers that expect that use the envelope directly.
func (e *envelope) rows() ([]map[string]interface{}, error) {
	if len(e.List) == 0 {
		return nil, errors.Reason("list section is missing from the response")
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(e.List, &rows); err != nil {
		return nil, errors.Annotate(err, "failed to parse list section")
	}
	return rows, nil
}

// totalPages derives the number of pages from the reported total row count
// and page size.
func (e *envelope) totalPages() int {
	if e.PageCount <= 0 {
		return 1
	}
	return (e.TotalCount + e.PageCount - 1) / e.PageCount
}

// getJSON issues a single GET request to the endpoint with the given query
// parameters plus the client's API key, and decodes the JSON response into v.
func getJSON(ctx context.Context, endpoint string, params url.Values, v interface{}) error {
	client := GetClient(ctx)
	if client == nil {
		return errors.Reason("no client in context")
	}
	uri := client.baseURL + "/" + endpoint
	query := make(url.Values)
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("crtfc_key", client.apiKey)
	if err := fetch.FetchJSON(ctx, uri, v, query, nil); err != nil {
		return errors.Annotate(err, "failed to fetch URL")
	}
	return nil
}

// getRaw issues a single GET request and returns the raw response body. Used
// by the ZIP-wrapped XML endpoints.
func getRaw(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	client := GetClient(ctx)
	if client == nil {
		return nil, errors.Reason("no client in context")
	}
	uri := client.baseURL + "/" + endpoint
	query := make(url.Values)
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("crtfc_key", client.apiKey)
	resp, err := fetch.GetRetry(ctx, uri, query, nil)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch URL")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Annotate(err, "failed to read response body")
	}
	return body, nil
}

// listTable fetches a JSON endpoint and flattens its list section into a
// table. It fails with a StatusError on a non-success status and with a plain
// error when the list section is missing.
func listTable(ctx context.Context, endpoint string, params url.Values) (*table.Table, error) {
	var e envelope
	if err := getJSON(ctx, endpoint, params, &e); err != nil {
		return nil, err
	}
	if err := e.check(); err != nil {
		return nil, err
	}
	rows, err := e.rows()
	if err != nil {
		return nil, err
	}
	return jsonTable(rows), nil
}

// jsonTable flattens a sequence of decoded JSON objects into a table. JSON
// objects are unordered, so the columns are the sorted union of all field
// names.
func jsonTable(rows []map[string]interface{}) *table.Table {
	seen := make(map[string]bool)
	var columns []string
	records := make([]map[string]string, len(rows))
	for i, row := range rows {
		rec := make(map[string]string, len(row))
		for k, v := range row {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
			rec[k] = cellString(v)
		}
		records[i] = rec
	}
	sort.Strings(columns)
	return table.FromRecords(columns, records)
}

// cellString renders a decoded JSON value as a table cell.
func cellString(v interface{}) string {
	switch v2 := v.(type) {
	case nil:
		return ""
	case string:
		return v2
	case float64:
		return strconv.FormatFloat(v2, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v2)
	default:
		return fmt.Sprintf("%v", v2)
	}
}
