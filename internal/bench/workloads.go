package bench

import (
	"fmt"
	"strings"
	"time"

	"github.com/sqwrap/sqwrap/internal/bench/benchbar"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  uint64
	TotalWrites uint64
}

// runBenchmarkSimple inserts X users one statement at a time and then
// queries all of them in a single scan.
func runBenchmarkSimple(
	drv benchDriver, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkSimpleConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d users", conf.insertXUsers), conf.insertXUsers,
	)

	for idx := 0; idx < conf.insertXUsers; idx++ {
		affected, err := drv.Exec(
			"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
			time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1,
		)
		if err != nil {
			return benchmarkResult{}, fmt.Errorf("error when inserting: %w", err)
		}
		totalWrites += uint64(affected)
		bar.Inc()
	}
	bar.Finish()

	reads, err := drv.CountRows(
		"SELECT id, created, email, active FROM users ORDER BY id",
	)
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
	}
	totalReads += uint64(reads)

	return benchmarkResult{
		Name:        "Simple",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}

// runBenchmarkMany inserts X users in a single batch and then queries all
// users Y times. This simulates a read-heavy workload.
func runBenchmarkMany(
	drv benchDriver, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkManyConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d users", conf.insertXUsers), conf.insertXUsers,
	)

	err := drv.Batch(func() error {
		for idx := 0; idx < conf.insertXUsers; idx++ {
			affected, err := drv.Exec(
				"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
				time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1,
			)
			if err != nil {
				return err
			}
			totalWrites += uint64(affected)
			bar.Inc()
		}
		return nil
	})
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when inserting: %w", err)
	}
	bar.Finish()

	bar = benchbar.NewBar(
		fmt.Sprintf("Querying all users %d times", conf.queryUsersYTimes),
		conf.queryUsersYTimes,
	)

	for i := 0; i < conf.queryUsersYTimes; i++ {
		reads, err := drv.CountRows(
			"SELECT id, created, email, active FROM users ORDER BY id",
		)
		if err != nil {
			return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
		}
		totalReads += uint64(reads)
		bar.Inc()
	}
	bar.Finish()

	return benchmarkResult{
		Name:        "Many",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}

// runBenchmarkLarge inserts X users carrying Y bytes of payload each and
// then queries all of them in a single scan.
func runBenchmarkLarge(
	drv benchDriver, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkLargeConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d large users", conf.insertXUsers), conf.insertXUsers,
	)

	email := strings.Repeat("Y", conf.insertYBytes)
	for i := 0; i < conf.insertXUsers; i++ {
		affected, err := drv.Exec(
			"INSERT INTO users (created, email, active) VALUES (?, ?, ?)",
			time.Now().Unix(), email, 1,
		)
		if err != nil {
			return benchmarkResult{}, fmt.Errorf("error when inserting: %w", err)
		}
		totalWrites += uint64(affected)
		bar.Inc()
	}
	bar.Finish()

	reads, err := drv.CountRows(
		"SELECT id, created, email, active FROM users ORDER BY id",
	)
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
	}
	totalReads += uint64(reads)

	return benchmarkResult{
		Name:        "Large",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
