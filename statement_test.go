package sqwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB opens an in-memory database whose diagnostics are captured
// into the returned slice instead of being logged.
func openTestDB(t *testing.T) (*Database, *[]string) {
	t.Helper()

	diags := &[]string{}
	db, err := OpenWith(":memory:", Options{
		Diag: func(op, msg string) {
			*diags = append(*diags, op+": "+msg)
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, diags
}

func TestStatement(t *testing.T) {
	t.Run("BindRoundTrip", func(t *testing.T) {
		db, _ := openTestDB(t)
		require.True(t, db.Exec(`
			CREATE TABLE samples (
				num_int INTEGER,
				num_big INTEGER,
				num_real REAL,
				flag INTEGER,
				txt TEXT,
				bytes BLOB,
				raw BLOB,
				nothing TEXT
			)
		`))

		ins := db.Prepare("INSERT INTO samples VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
		require.True(t, ins.Valid())
		defer ins.Close()

		assert.True(t, ins.Bind(1, int32(7)))
		assert.True(t, ins.Bind(2, int64(1)<<40))
		assert.True(t, ins.Bind(3, 3.14))
		assert.True(t, ins.Bind(4, true))
		assert.True(t, ins.Bind(5, "Ada"))
		assert.True(t, ins.Bind(6, Blob{0x01, 0x02, 0x03}))
		assert.True(t, ins.Bind(7, []byte{0xAA}))
		assert.True(t, ins.Bind(8, nil))
		assert.True(t, ins.Execute())

		sel := db.Prepare("SELECT * FROM samples")
		require.True(t, sel.Valid())
		defer sel.Close()

		row := Row{}
		require.True(t, sel.Fetch(&row))

		assert.Equal(t, int32(7), row.Get("num_int").Int())
		assert.Equal(t, int64(1)<<40, row.Get("num_big").Int64())
		assert.Equal(t, 3.14, row.Get("num_real").Float())
		assert.Equal(t, int64(1), row.Get("flag").Int64())
		assert.Equal(t, "Ada", row.Get("txt").Text())
		assert.Equal(t, Blob{0x01, 0x02, 0x03}, row.Get("bytes").Blob())
		assert.Equal(t, 3, row.Get("bytes").Size())
		assert.Equal(t, Blob{0xAA}, row.Get("raw").Blob())
		assert.True(t, row.Get("nothing").IsNull())

		assert.False(t, sel.Fetch(&row))
		assert.Empty(t, row)
	})

	t.Run("BindUnsupportedType", func(t *testing.T) {
		db, diags := openTestDB(t)

		stmt := db.Prepare("SELECT ?1")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		assert.False(t, stmt.Bind(1, struct{ X int }{1}))
		require.Len(t, *diags, 1)
		assert.Contains(t, (*diags)[0], "unsupported parameter type")
	})

	t.Run("BindOutOfRangeIndex", func(t *testing.T) {
		db, diags := openTestDB(t)

		stmt := db.Prepare("SELECT ?1")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		assert.False(t, stmt.Bind(99, int64(1)))
		require.Len(t, *diags, 1)
		assert.Contains(t, (*diags)[0], "bind: ")
		assert.Contains(t, (*diags)[0], "SQLITE_RANGE")
	})

	t.Run("ExecuteBindsPositionally", func(t *testing.T) {
		db, _ := openTestDB(t)
		require.True(t, db.Exec("CREATE TABLE pairs (a INTEGER, b TEXT)"))

		stmt := db.Prepare("INSERT INTO pairs VALUES (?, ?)")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		assert.True(t, stmt.Execute(1, "one"))
		assert.True(t, stmt.Execute(2, "two"))

		count := int64(0)
		outcome := db.Query("SELECT count(*) AS n FROM pairs", func(row Row) bool {
			count = row.Get("n").Int64()
			return true
		})
		assert.Equal(t, QueryCompleted, outcome)
		assert.Equal(t, int64(2), count)
	})

	t.Run("ExecuteRejectsRowProducingSQL", func(t *testing.T) {
		db, diags := openTestDB(t)

		stmt := db.Prepare("SELECT 1")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		assert.False(t, stmt.Execute())
		require.Len(t, *diags, 1)
		assert.Contains(t, (*diags)[0], "produced a result row")
	})

	t.Run("ExecuteReportsStepFailure", func(t *testing.T) {
		db, diags := openTestDB(t)
		require.True(t, db.Exec("CREATE TABLE uniq (val TEXT UNIQUE)"))
		require.True(t, db.Exec("INSERT INTO uniq VALUES ('dup')"))

		stmt := db.Prepare("INSERT INTO uniq VALUES (?)")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		assert.False(t, stmt.Execute("dup"))
		assert.Error(t, stmt.Err())
		require.Len(t, *diags, 1)
		assert.Contains(t, (*diags)[0], "SQLITE_CONSTRAINT")
	})

	t.Run("FetchAll", func(t *testing.T) {
		db, _ := openTestDB(t)
		require.True(t, db.Exec(`
			CREATE TABLE nums (n INTEGER);
			INSERT INTO nums VALUES (1), (2), (3);
		`))

		stmt := db.Prepare("SELECT n FROM nums ORDER BY n")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		rows := stmt.FetchAll()
		require.Len(t, rows, 3)
		for i, row := range rows {
			assert.Equal(t, int64(i+1), row.Get("n").Int64())
		}
	})

	t.Run("FetchAllEmpty", func(t *testing.T) {
		db, _ := openTestDB(t)
		require.True(t, db.Exec("CREATE TABLE empty (n INTEGER)"))

		stmt := db.Prepare("SELECT n FROM empty")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		rows := stmt.FetchAll()
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("ExhaustionLatchesUntilReset", func(t *testing.T) {
		db, _ := openTestDB(t)
		require.True(t, db.Exec("CREATE TABLE one (n INTEGER); INSERT INTO one VALUES (42)"))

		stmt := db.Prepare("SELECT n FROM one")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		row := Row{}
		assert.True(t, stmt.Fetch(&row))
		assert.False(t, stmt.Fetch(&row))
		// Still exhausted, no restart.
		assert.False(t, stmt.Fetch(&row))
		assert.True(t, stmt.Valid())

		stmt.Reset()
		assert.True(t, stmt.Fetch(&row))
		assert.Equal(t, int64(42), row.Get("n").Int64())
	})

	t.Run("ResetPreservesBindings", func(t *testing.T) {
		db, _ := openTestDB(t)

		stmt := db.Prepare("SELECT ?1 AS echo")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		require.True(t, stmt.Bind(1, "bound"))

		for i := 0; i < 2; i++ {
			row := Row{}
			require.True(t, stmt.Fetch(&row))
			assert.Equal(t, "bound", row.Get("echo").Text())
			stmt.Reset()
		}
	})

	t.Run("ColumnIntrospection", func(t *testing.T) {
		db, _ := openTestDB(t)

		stmt := db.Prepare("SELECT 1 AS id, 'Ada' AS name")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		assert.Equal(t, 2, stmt.ColCount())
		assert.Equal(t, "id", stmt.ColName(0))
		assert.Equal(t, "name", stmt.ColName(1))
		assert.Equal(t, "SELECT 1 AS id, 'Ada' AS name", stmt.QueryString())

		row := Row{}
		require.True(t, stmt.Fetch(&row))
		assert.Equal(t, int64(1), stmt.ColValue(0).Int64())
		assert.Equal(t, "Ada", stmt.ColValue(1).Text())
		assert.Equal(t, 3, stmt.ColSize(1))
	})

	t.Run("PointerBindIsNullToSQL", func(t *testing.T) {
		db, _ := openTestDB(t)

		payload := []string{"hidden"}
		stmt := db.Prepare("SELECT ?1 AS p")
		require.True(t, stmt.Valid())
		defer stmt.Close()

		require.True(t, stmt.BindPointer(1, payload))

		row := Row{}
		require.True(t, stmt.Fetch(&row))
		assert.True(t, row.Get("p").IsNull())
	})

	t.Run("InertStatementIsSafe", func(t *testing.T) {
		db, diags := openTestDB(t)

		stmt := db.Prepare("SELECT * FROM missing_table")
		require.NotNil(t, stmt)
		assert.False(t, stmt.Valid())
		assert.Len(t, *diags, 1)

		assert.False(t, stmt.Bind(1, 1))
		assert.False(t, stmt.Execute())
		row := Row{}
		assert.False(t, stmt.Fetch(&row))
		assert.Empty(t, stmt.FetchAll())
		stmt.Reset()
		assert.NoError(t, stmt.Err())
		assert.Equal(t, 0, stmt.ColCount())
		assert.Equal(t, "", stmt.ColName(0))
		assert.True(t, stmt.ColValue(0).IsNull())
		assert.Equal(t, 0, stmt.ColSize(0))
		assert.Equal(t, "", stmt.QueryString())
		assert.NoError(t, stmt.Close())
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		db, _ := openTestDB(t)

		stmt := db.Prepare("SELECT 1")
		require.True(t, stmt.Valid())

		assert.NoError(t, stmt.Close())
		assert.False(t, stmt.Valid())
		assert.NoError(t, stmt.Close())
	})
}
