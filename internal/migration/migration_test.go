package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);")},
		"002_extra.sql":  {Data: []byte("ALTER TABLE kv ADD COLUMN note TEXT;")},
		"README.md":      {Data: []byte("ignored")},
		"subdir/003.sql": {Data: []byte("ignored")},
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, testFS(), SQLite)

	var logs []string
	n, err := r.ApplyMigrations(func(s string) { logs = append(logs, s) })
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NotEmpty(t, logs)

	v, err := r.GetCurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = db.Exec("INSERT INTO kv (key, value, note) VALUES ('a', 'b', 'c')")
	assert.NoError(t, err)

	n, err = r.ApplyMigrations(nil)
	require.NoError(t, err)
	assert.Zero(t, n, "second run applies nothing")
}

func TestReadMigrationFilesErrors(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{name: "no underscore", fs: fstest.MapFS{"001.sql": {Data: []byte("SELECT 1;")}}},
		{name: "non numeric", fs: fstest.MapFS{"abc_init.sql": {Data: []byte("SELECT 1;")}}},
		{name: "zero version", fs: fstest.MapFS{"000_init.sql": {Data: []byte("SELECT 1;")}}},
		{name: "duplicate", fs: fstest.MapFS{
			"001_a.sql":  {Data: []byte("SELECT 1;")},
			"0001_b.sql": {Data: []byte("SELECT 1;")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(openTestDB(t), tt.fs, SQLite)
			_, err := r.ReadMigrationFiles()
			assert.Error(t, err)
		})
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, testFS(), SQLite)
	_, err := r.ApplyMigrations(nil)
	require.NoError(t, err)

	_, err = db.Exec("UPDATE schema_version SET version = 9")
	require.NoError(t, err)

	assert.Error(t, r.ValidateVersion())
	_, err = r.ApplyMigrations(nil)
	assert.Error(t, err)
}

func TestFailedMigrationRollsBack(t *testing.T) {
	db := openTestDB(t)
	fs := fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE kv (key TEXT PRIMARY KEY);")},
		"002_broken.sql": {Data: []byte("THIS IS NOT SQL;")},
	}
	r := NewRunner(db, fs, SQLite)

	n, err := r.ApplyMigrations(nil)
	assert.Error(t, err)
	assert.Equal(t, 1, n)

	v, err := r.GetCurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestBind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{SQLite, "INSERT INTO t (a, b) VALUES (?, ?)", "INSERT INTO t (a, b) VALUES (?, ?)"},
		{Postgres, "INSERT INTO t (a, b) VALUES (?, ?)", "INSERT INTO t (a, b) VALUES ($1, $2)"},
		{Postgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		r := &Runner{dialect: tt.dialect}
		assert.Equal(t, tt.want, r.bind(tt.in))
	}
}
