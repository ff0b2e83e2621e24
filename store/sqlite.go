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

package store

import (
	"database/sql"

	"github.com/stockparfait/errors"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore is the embedded file-backed Store variant.
type SQLiteStore struct {
	sqlStore
}

var _ Store = &SQLiteStore{}

// OpenSQLite opens (creating if needed) the SQLite database file at path.
// The special path ":memory:" opens a transient in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open SQLite database '%s'", path)
	}
	// SQLite serializes writers anyway, and a pool of connections to
	// ":memory:" would each open a separate database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "failed to ping SQLite database '%s'", path)
	}
	return &SQLiteStore{sqlStore{db: db}}, nil
}
