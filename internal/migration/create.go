// Package migration holds the SQL that creates the archive schema.
package migration

// Create builds the archive from an empty database. Archives created before
// a column existed get it from the store's schema check.
const Create = `
CREATE TABLE IF NOT EXISTS Report (
  position INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL,
  source TEXT NOT NULL,
  created DATETIME NOT NULL,
  primary_pattern TEXT NOT NULL,
  duration INTEGER NOT NULL,
  body TEXT NOT NULL,
  saved_at DATETIME
);

CREATE INDEX IF NOT EXISTS ReportIdIndex ON Report (id);
`
