package bench

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/sqwrap/sqwrap"
)

// benchDriver is the seam every benchmarked driver plugs into. All
// workloads run single-goroutine: the sqwrap façade is confined to one
// owner by contract, and the others follow so the comparison is fair.
type benchDriver interface {
	Name() string
	// Exec runs one write statement and returns the rows affected.
	Exec(query string, args ...any) (int64, error)
	// CountRows runs one read statement and returns the number of rows
	// scanned.
	CountRows(query string) (int, error)
	// Batch runs fn inside one transaction (or savepoint).
	Batch(fn func() error) error
	Close() error
}

// facadeDriver drives the sqwrap façade directly, caching prepared
// statements so repeated workload statements exercise Reset.
type facadeDriver struct {
	db       *sqwrap.Database
	stmts    map[string]*sqwrap.Statement
	lastDiag string
}

func createFacadeDriver(dir string) (benchDriver, error) {
	dbPath := path.Join(dir, "sqwrap", "bench.db")
	if err := os.MkdirAll(path.Dir(dbPath), 0755); err != nil {
		return nil, err
	}
	fmt.Println("sqwrap db path:", dbPath)

	drv := &facadeDriver{stmts: map[string]*sqwrap.Statement{}}
	db, err := sqwrap.OpenWith(dbPath, sqwrap.Options{
		Diag: func(op, msg string) { drv.lastDiag = op + ": " + msg },
	})
	if err != nil {
		return nil, err
	}
	drv.db = db

	return drv, nil
}

func (d *facadeDriver) Name() string { return "sqwrap" }

func (d *facadeDriver) prepared(query string) (*sqwrap.Statement, error) {
	if stmt, ok := d.stmts[query]; ok {
		stmt.Reset()
		return stmt, nil
	}
	stmt := d.db.Prepare(query)
	if !stmt.Valid() {
		return nil, errors.New(d.lastDiag)
	}
	d.stmts[query] = stmt
	return stmt, nil
}

func (d *facadeDriver) Exec(query string, args ...any) (int64, error) {
	stmt, err := d.prepared(query)
	if err != nil {
		return 0, err
	}
	if !stmt.Execute(args...) {
		return 0, errors.New(d.lastDiag)
	}
	return d.db.RowsAffected(), nil
}

func (d *facadeDriver) CountRows(query string) (int, error) {
	stmt, err := d.prepared(query)
	if err != nil {
		return 0, err
	}

	count := 0
	row := sqwrap.Row{}
	for stmt.Fetch(&row) {
		count++
	}
	if err := stmt.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

func (d *facadeDriver) Batch(fn func() error) error {
	return d.db.Savepoint(fn)
}

func (d *facadeDriver) Close() error {
	for _, stmt := range d.stmts {
		_ = stmt.Close()
	}
	return d.db.Close()
}

// sqlDriver drives a database/sql connection; it backs both the
// mattn/go-sqlite3 and the modernc.org/sqlite entries.
type sqlDriver struct {
	name string
	db   *sql.DB
}

func createSQLDriver(dir, name, driverName string) (benchDriver, error) {
	dbPath := path.Join(dir, name, "bench.db")
	if err := os.MkdirAll(path.Dir(dbPath), 0755); err != nil {
		return nil, err
	}
	fmt.Printf("%s db path: %s\n", name, dbPath)

	db, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, err
	}
	// One connection so BEGIN/COMMIT pairs stay on the same session.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &sqlDriver{name: name, db: db}, nil
}

func createMattnDriver(dir string) (benchDriver, error) {
	return createSQLDriver(dir, "mattn", "sqlite3")
}

func createModerncDriver(dir string) (benchDriver, error) {
	return createSQLDriver(dir, "modernc", "sqlite")
}

func (d *sqlDriver) Name() string { return d.name }

func (d *sqlDriver) Exec(query string, args ...any) (int64, error) {
	res, err := d.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *sqlDriver) CountRows(query string) (int, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	return count, rows.Err()
}

func (d *sqlDriver) Batch(fn func() error) error {
	if _, err := d.db.Exec("BEGIN"); err != nil {
		return err
	}
	if err := fn(); err != nil {
		_, _ = d.db.Exec("ROLLBACK")
		return err
	}
	_, err := d.db.Exec("COMMIT")
	return err
}

func (d *sqlDriver) Close() error {
	return d.db.Close()
}

// sqlxDriver layers sqlx over mattn/go-sqlite3.
type sqlxDriver struct {
	db *sqlx.DB
}

func createSqlxDriver(dir string) (benchDriver, error) {
	dbPath := path.Join(dir, "sqlx", "bench.db")
	if err := os.MkdirAll(path.Dir(dbPath), 0755); err != nil {
		return nil, err
	}
	fmt.Println("sqlx db path:", dbPath)

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	return &sqlxDriver{db: db}, nil
}

func (d *sqlxDriver) Name() string { return "sqlx" }

func (d *sqlxDriver) Exec(query string, args ...any) (int64, error) {
	res, err := d.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *sqlxDriver) CountRows(query string) (int, error) {
	rows, err := d.db.Queryx(query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		if _, err := rows.SliceScan(); err != nil {
			return 0, err
		}
		count++
	}
	return count, rows.Err()
}

func (d *sqlxDriver) Batch(fn func() error) error {
	if _, err := d.db.Exec("BEGIN"); err != nil {
		return err
	}
	if err := fn(); err != nil {
		_, _ = d.db.Exec("ROLLBACK")
		return err
	}
	_, err := d.db.Exec("COMMIT")
	return err
}

func (d *sqlxDriver) Close() error {
	return d.db.Close()
}
