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

	"github.com/wangsookim/DartReader/table"
)

// BulkHolders fetches the bulk ownership reports (holders of 5% or more) of a
// company.
func BulkHolders(ctx context.Context, corpCode string) (*table.Table, error) {
	params := make(url.Values)
	params.Set("corp_code", corpCode)
	return listTable(ctx, "majorstock.json", params)
}

// MajorHolders fetches the ownership reports of executives and major
// shareholders of a company.
func MajorHolders(ctx context.Context, corpCode string) (*table.Table, error) {
	params := make(url.Values)
	params.Set("corp_code", corpCode)
	return listTable(ctx, "elestock.json", params)
}
