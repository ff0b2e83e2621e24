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

// Package store provides thin relational helpers for persisting fetched
// tables: an embedded file-backed SQLite variant and a networked PostgreSQL
// variant, both exposing create, insert and select.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/stockparfait/errors"

	"github.com/wangsookim/DartReader/table"
)

// Store is the common surface of the relational helpers. A Store holds one
// connection handle, opened at construction; Close releases it
// deterministically.
type Store interface {
	// Create executes a DDL statement, typically CREATE TABLE.
	Create(ctx context.Context, ddl string) error
	// Insert executes the parameterized statement once per row, all rows in a
	// single transaction. A failed row rolls back the whole batch.
	Insert(ctx context.Context, stmt string, rows [][]interface{}) error
	// Select runs a query and returns its result as a table whose header is
	// the driver's reported column set.
	Select(ctx context.Context, query string) (*table.Table, error)
	// Close releases the connection handle.
	Close() error
}

// sqlStore implements Store on top of a database/sql handle. Both variants
// share it; only the driver and data source differ.
type sqlStore struct {
	db *sql.DB
}

func (s *sqlStore) Create(ctx context.Context, ddl string) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return errors.Annotate(err, "failed to execute DDL")
	}
	return nil
}

func (s *sqlStore) Insert(ctx context.Context, stmt string, rows [][]interface{}) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "failed to begin transaction")
	}
	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		tx.Rollback()
		return errors.Annotate(err, "failed to prepare insert statement")
	}
	for i, row := range rows {
		if _, err := prepared.ExecContext(ctx, row...); err != nil {
			prepared.Close()
			tx.Rollback()
			return errors.Annotate(err, "failed to insert row %d", i)
		}
	}
	prepared.Close()
	if err := tx.Commit(); err != nil {
		return errors.Annotate(err, "failed to commit %d rows", len(rows))
	}
	return nil
}

func (s *sqlStore) Select(ctx context.Context, query string) (*table.Table, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Annotate(err, "query failed")
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Annotate(err, "failed to read result columns")
	}
	t := table.NewTable(columns...)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Annotate(err, "failed to scan row")
		}
		row := make(table.RawRow, len(columns))
		for i, v := range values {
			row[i] = cellString(v)
		}
		t.AddRow(row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Annotate(err, "failed to read rows")
	}
	return t, nil
}

func (s *sqlStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Annotate(err, "failed to close database")
	}
	return nil
}

// cellString renders a driver-returned value as a table cell.
func cellString(v interface{}) string {
	switch v2 := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v2)
	case string:
		return v2
	case int64:
		return strconv.FormatInt(v2, 10)
	case float64:
		return strconv.FormatFloat(v2, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v2)
	case time.Time:
		return v2.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v2)
	}
}
