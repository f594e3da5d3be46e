// Package config parses the command line arguments of the sqwrap shell.
package config

import (
	"fmt"
	"log"

	"github.com/alexflint/go-arg"

	"github.com/sqwrap/sqwrap/internal/version"
)

// Config represents the configuration for the sqwrap shell.
type Config struct {
	DatabasePath string `arg:"positional" help:"Path to the SQLite database file, \":memory:\" for a throwaway in-memory database" default:":memory:"`
	Quiet        bool   `arg:"-q,--quiet" help:"Suppress the startup banner"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.CLIVersion())
}

// MustParse parses and validates the configuration from the command line
// arguments. It returns a Config struct or exits the program with an
// error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	return cfg
}
