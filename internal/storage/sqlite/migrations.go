package sqlite

import "database/sql"

// schema holds the tables of an exported library. There is a single
// snapshot per database file; saving replaces it.
const schema = `
CREATE TABLE IF NOT EXISTS library (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL,
    taken_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS authors (
    email TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    email TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    status TEXT NOT NULL,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
    isbn TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    title TEXT NOT NULL,
    author_email TEXT NOT NULL,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS equipment (
    id INTEGER PRIMARY KEY,
    kind TEXT NOT NULL,
    brand TEXT,
    os TEXT,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
    id TEXT PRIMARY KEY,
    member_email TEXT NOT NULL,
    item_key TEXT NOT NULL UNIQUE,
    since INTEGER NOT NULL,
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_loans_member_email ON loans(member_email);
`

// tables lists every snapshot table, in the order they are cleared.
var tables = []string{"loans", "equipment", "documents", "members", "authors", "library"}

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
