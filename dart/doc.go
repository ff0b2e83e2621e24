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

// Package dart implements a client of the DART open disclosure API of
// Korea's Financial Supervisory Service.
//
// Official documentation is at https://opendart.fss.or.kr/intro/main.do .
//
// All endpoints live under https://opendart.fss.or.kr/api/ and require a
// registered API key, carried as the crtfc_key query parameter. JSON
// endpoints wrap their payload in a common status envelope with an optional
// list section; XML endpoints respond with a ZIP archive containing a single
// XML file, or with a bare XML status document on failure.
//
// The column sets of the returned tables are not fixed: whatever fields the
// server includes become the table columns. Results are therefore returned as
// dynamically shaped tables rather than per-endpoint structs.
//
// The client is injected into a context with UseClient, and the HTTP
// transport is taken from the context by the fetch package, which makes the
// request boundary mockable in tests.
package dart
