// Package bench compares the sqwrap façade against other SQLite drivers
// on identical single-goroutine workloads.
package bench

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sqwrap/sqwrap/internal/version"
)

// Run executes the benchmarks for every driver and prints the results.
func Run() error {
	fmt.Println(version.BenchVersion())

	tmpDir, err := os.MkdirTemp("", "sqwrapbench_*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	creators := []struct {
		name   string
		create func(string) (benchDriver, error)
	}{
		{"sqwrap", createFacadeDriver},
		{"mattn/go-sqlite3", createMattnDriver},
		{"jmoiron/sqlx", createSqlxDriver},
		{"modernc.org/sqlite", createModerncDriver},
	}

	for _, c := range creators {
		drv, err := c.create(tmpDir)
		if err != nil {
			return fmt.Errorf("error opening %s driver: %w", c.name, err)
		}

		fmt.Printf("\n--- Benchmarks for %s ---\n", c.name)
		results, err := runBenchmarks(drv)
		if err != nil {
			_ = drv.Close()
			return fmt.Errorf("error benchmarking %s: %w", c.name, err)
		}
		printResults(results)

		if err := drv.Close(); err != nil {
			return fmt.Errorf("error closing %s driver: %w", c.name, err)
		}
	}

	return nil
}

func printResults(results []benchmarkResult) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{r.Name, r.TotalReads, r.TotalWrites, r.Duration.Round(time.Millisecond)})
	}

	fmt.Println(tw.Render())
}

// runBenchmarks executes all workloads against one driver, recreating the
// schema before each.
func runBenchmarks(drv benchDriver) ([]benchmarkResult, error) {
	cfg := defaultConfig()

	benchs := []func(benchDriver, benchmarksConfig) (benchmarkResult, error){
		runBenchmarkSimple,
		runBenchmarkMany,
		runBenchmarkLarge,
	}

	var results []benchmarkResult

	for _, bench := range benchs {
		if err := recreateSchema(drv); err != nil {
			return nil, err
		}

		res, err := bench(drv, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}
