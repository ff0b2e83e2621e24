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
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/wangsookim/DartReader/dart"
	"github.com/wangsookim/DartReader/table"
)

type Flags struct {
	Config   string // default: ~/.dartreader/config.toml
	LogLevel logging.Level
	// Exactly one of filings, profile or registry must be present.
	Filings  bool
	Profile  string // comma-separated corp codes to fetch profiles for
	Registry bool
	CorpCode string // filings filter
	Start    string // filings start date, YYYYMMDD
	End      string // filings end date, YYYYMMDD
	AllPages bool   // fetch all filings pages
	CSV      bool   // dump CSV format; default: text.
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("dartfetch", flag.ExitOnError)
	fs.StringVar(&flags.Config, "config",
		filepath.Join(os.Getenv("HOME"), ".dartreader", "config.toml"),
		"path to the config file")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.BoolVar(&flags.Filings, "filings", false, "list disclosure filings")
	fs.StringVar(&flags.Profile, "profile", "", "comma-separated corp codes to print profiles for")
	fs.BoolVar(&flags.Registry, "registry", false, "print the full corp code registry")
	fs.StringVar(&flags.CorpCode, "corp-code", "", "restrict filings to one company")
	fs.StringVar(&flags.Start, "start", "", "filings start date, YYYYMMDD")
	fs.StringVar(&flags.End, "end", "", "filings end date, YYYYMMDD")
	fs.BoolVar(&flags.AllPages, "all-pages", false, "fetch all filings pages")
	fs.BoolVar(&flags.CSV, "csv", false, "print table in CSV format; default: text")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	kinds := 0
	if flags.Filings {
		kinds++
	}
	if flags.Profile != "" {
		kinds++
	}
	if flags.Registry {
		kinds++
	}
	if kinds != 1 {
		return nil, errors.Reason(
			"expected exactly one of -filings, -profile or -registry")
	}
	return &flags, err
}

type Config struct {
	Key string `toml:"key"` // user key for the DART open API
}

func parseConfig(filePath string) (*Config, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sample := `key = "YourSecretDartAPIKey"
`
			return nil, errors.Annotate(err,
				"config file '%s' does not exist.\nPlease create config file containing:\n%s",
				filePath, sample)
		}
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	var c Config
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	return &c, nil
}

func fetchTable(ctx context.Context, flags *Flags) (*table.Table, error) {
	switch {
	case flags.Filings:
		return dart.Filings(ctx, dart.FilingsQuery{
			CorpCode: flags.CorpCode,
			Start:    flags.Start,
			End:      flags.End,
			AllPages: flags.AllPages,
		})
	case flags.Profile != "":
		return dart.CompanyProfiles(ctx, strings.Split(flags.Profile, ",")...)
	default:
		return dart.CorpCodeRegistry(ctx)
	}
}

func printData(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := parseConfig(flags.Config)
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	ctx = dart.UseClient(ctx, config.Key)

	tbl, err := fetchTable(ctx, flags)
	if err != nil {
		return errors.Annotate(err, "failed to fetch data")
	}
	if flags.CSV {
		if err := tbl.WriteCSV(w, table.Params{}); err != nil {
			return errors.Annotate(err, "failed to write CSV")
		}
		return nil
	}
	if err := tbl.WriteText(w, table.Params{}); err != nil {
		return errors.Annotate(err, "failed to write table")
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printData(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
