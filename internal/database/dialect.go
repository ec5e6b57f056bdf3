package database

// Dialect names the SQL flavour a *sql.DB speaks.  Repositories use it for the
// few statements that differ between MySQL and SQLite.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// ForUpdate returns the row-locking suffix for a SELECT inside a transaction.
// SQLite has no row locks; its immediate transactions already hold the write
// lock for the whole transaction.
func (d Dialect) ForUpdate() string {
	if d == MySQL {
		return " FOR UPDATE"
	}
	return ""
}

// InsertIgnore returns the INSERT verb that skips rows violating a unique key.
func (d Dialect) InsertIgnore() string {
	if d == MySQL {
		return "INSERT IGNORE"
	}
	return "INSERT OR IGNORE"
}
