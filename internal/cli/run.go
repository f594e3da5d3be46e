// Package cli implements the sqwrap interactive shell.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqwrap/sqwrap"
	"github.com/sqwrap/sqwrap/internal/cli/config"
	"github.com/sqwrap/sqwrap/internal/cli/repl"
	"github.com/sqwrap/sqwrap/internal/version"
)

// Run runs the sqwrap shell until the user quits or the process is
// signalled.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !conf.Quiet {
		fmt.Println(version.CLIVersion())
	}

	// Operational failures surface inside the REPL next to the statement
	// that caused them, not on a global log stream.
	diags := repl.NewDiagRecorder()
	db, err := sqwrap.OpenWith(conf.DatabasePath, sqwrap.Options{Diag: diags.Record})
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	rp := repl.NewRepl(ctx, stop, conf, db, diags)
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}
