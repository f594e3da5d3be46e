package capi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCAPI(t *testing.T) {
	t.Run("OpenClose", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NotNil(t, conn)
		assert.NoError(t, conn.Close())
		// Close is a no-op the second time.
		assert.NoError(t, conn.Close())
	})

	t.Run("OpenFailure", func(t *testing.T) {
		conn, err := Open("/nonexistent-sqwrap-dir/test.db")
		assert.Error(t, err)
		assert.Nil(t, conn)
		assert.Contains(t, err.Error(), "SQLITE_CANTOPEN")
	})

	t.Run("ExecAndChanges", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		assert.NoError(t, conn.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY, val TEXT)"))
		assert.NoError(t, conn.Exec("INSERT INTO test (val) VALUES ('a'); INSERT INTO test (val) VALUES ('b')"))
		assert.Equal(t, int64(2), conn.LastInsertRowID())

		assert.NoError(t, conn.Exec("UPDATE test SET val = 'c'"))
		assert.Equal(t, int64(2), conn.Changes())

		err = conn.Exec("NOT A QUERY")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SQLITE_ERROR")
	})

	t.Run("PrepareInvalid", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		stmt, err := conn.Prepare("SELECT * FROM missing_table")
		assert.Error(t, err)
		assert.Nil(t, stmt)
	})

	t.Run("BindStepColumnDatum", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Exec(`
			CREATE TABLE test_types (
				id INTEGER PRIMARY KEY,
				num_int INTEGER,
				num_float REAL,
				txt TEXT,
				bytes BLOB,
				nullable TEXT
			)
		`))

		ins, err := conn.Prepare("INSERT INTO test_types (num_int, num_float, txt, bytes, nullable) VALUES (?, ?, ?, ?, ?)")
		require.NoError(t, err)
		defer ins.Finalize()

		assert.NoError(t, ins.BindInt64(1, 123))
		assert.NoError(t, ins.BindFloat64(2, 3.14))
		assert.NoError(t, ins.BindText(3, "hola"))
		assert.NoError(t, ins.BindBlob(4, []byte{0x01, 0x02, 0x03}))
		assert.NoError(t, ins.BindNull(5))

		hasRow, err := ins.Step()
		assert.NoError(t, err)
		assert.False(t, hasRow)

		sel, err := conn.Prepare("SELECT num_int, num_float, txt, bytes, nullable FROM test_types")
		require.NoError(t, err)
		defer sel.Finalize()

		assert.Equal(t, 5, sel.ColumnCount())
		assert.Equal(t, "num_int", sel.ColumnName(0))
		assert.True(t, sel.ReadOnly())
		assert.False(t, ins.ReadOnly())

		hasRow, err = sel.Step()
		require.NoError(t, err)
		require.True(t, hasRow)

		assert.Equal(t, Datum{Kind: DatumInteger, Int: 123}, sel.ColumnDatum(0))
		assert.Equal(t, Datum{Kind: DatumFloat, Float: 3.14}, sel.ColumnDatum(1))
		assert.Equal(t, Datum{Kind: DatumText, Bytes: []byte("hola")}, sel.ColumnDatum(2))
		assert.Equal(t, Datum{Kind: DatumBlob, Bytes: []byte{0x01, 0x02, 0x03}}, sel.ColumnDatum(3))
		assert.Equal(t, Datum{Kind: DatumNull}, sel.ColumnDatum(4))
		assert.Equal(t, 3, sel.ColumnBytes(3))

		hasRow, err = sel.Step()
		assert.NoError(t, err)
		assert.False(t, hasRow)
	})

	t.Run("ResetKeepsBindings", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		stmt, err := conn.Prepare("SELECT ?1")
		require.NoError(t, err)
		defer stmt.Finalize()

		require.NoError(t, stmt.BindInt64(1, 42))

		for i := 0; i < 2; i++ {
			hasRow, err := stmt.Step()
			require.NoError(t, err)
			require.True(t, hasRow)
			assert.Equal(t, int64(42), stmt.ColumnDatum(0).Int)
			require.NoError(t, stmt.Reset())
		}
	})

	t.Run("StepFailureIncludesErrMsg", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Exec("CREATE TABLE uniq (id INTEGER PRIMARY KEY, val TEXT UNIQUE)"))
		require.NoError(t, conn.Exec("INSERT INTO uniq (val) VALUES ('dup')"))

		stmt, err := conn.Prepare("INSERT INTO uniq (val) VALUES ('dup')")
		require.NoError(t, err)
		defer stmt.Finalize()

		_, err = stmt.Step()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SQLITE_CONSTRAINT")
		assert.Contains(t, err.Error(), "uniq.val")
	})

	t.Run("SQLText", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		stmt, err := conn.Prepare("SELECT 1 + 1")
		require.NoError(t, err)
		defer stmt.Finalize()

		assert.Equal(t, "SELECT 1 + 1", stmt.SQL())
	})

	t.Run("FinalizeNilSafe", func(t *testing.T) {
		// Simulate a nil stmt to check that it doesn't crash.
		stmt := &Stmt{}
		assert.NoError(t, stmt.Finalize())
		assert.NoError(t, stmt.Reset())
		assert.NoError(t, stmt.ClearBindings())
		assert.Error(t, stmt.BindNull(1))
	})

	t.Run("PointerHandleRoundTrip", func(t *testing.T) {
		payload := map[string]int{"answer": 42}
		handle := NewPointerHandle(payload)
		assert.NotZero(t, handle)
		assert.Equal(t, payload, PointerHandleValue(handle).(map[string]int))
		assert.Nil(t, PointerHandleValue(0))

		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		stmt, err := conn.Prepare("SELECT ?1")
		require.NoError(t, err)
		defer stmt.Finalize()

		// SQL sees a pointer-bound parameter as NULL.
		require.NoError(t, stmt.BindPointer(1, handle))
		hasRow, err := stmt.Step()
		require.NoError(t, err)
		require.True(t, hasRow)
		assert.Equal(t, DatumNull, stmt.ColumnDatum(0).Kind)
	})
}
