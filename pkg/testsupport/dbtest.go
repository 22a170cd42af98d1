package testsupport

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewIsolatedSQLiteMemoryDB opens a private in-memory database so tests in
// one package do not see each other's rows.
func NewIsolatedSQLiteMemoryDB(name string) (*sql.DB, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", clean))
}
