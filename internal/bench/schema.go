package bench

// recreateSchema drops and recreates the benchmark table.
func recreateSchema(drv benchDriver) error {
	stmts := []string{
		`DROP TABLE IF EXISTS users`,

		`CREATE TABLE users (
			id INTEGER PRIMARY KEY NOT NULL,
			created INTEGER NOT NULL,
			email TEXT NOT NULL,
			active INTEGER NOT NULL
		)`,
		`CREATE INDEX users_created ON users(created)`,
	}

	for _, s := range stmts {
		if _, err := drv.Exec(s); err != nil {
			return err
		}
	}

	return nil
}
