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
	"fmt"
	"net/url"

	"github.com/stockparfait/errors"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// PostgresConfig holds the connection parameters of the networked Store
// variant.
type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"` // default 5432
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

// DSN renders the config as a postgres connection URL.
func (c PostgresConfig) DSN() string {
	port := c.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, port),
		Path:   "/" + c.Database,
	}
	return u.String()
}

// PostgresStore is the networked Store variant. The connection is established
// once at construction and held until Close.
type PostgresStore struct {
	sqlStore
}

var _ Store = &PostgresStore{}

// OpenPostgres connects to the configured PostgreSQL server.
func OpenPostgres(c PostgresConfig) (*PostgresStore, error) {
	db, err := sql.Open("pgx", c.DSN())
	if err != nil {
		return nil, errors.Annotate(err, "failed to open connection to %s", c.Host)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "failed to connect to %s", c.Host)
	}
	return &PostgresStore{sqlStore{db: db}}, nil
}
