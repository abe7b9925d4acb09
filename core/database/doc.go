// Package database manages the relational database connection.
//
// It wraps GORM with two supported drivers: sqlite (the default, matching the
// original single-file deployment) and mysql. Connections are verified with a
// ping before being handed to the application, and GORM's own logging is
// silenced in favour of the application logger.
//
// The inspector utilities (GetTableColumns, VerifySchema) support the
// `doctor` command, which verifies that the migrated schema contains the
// tables the application expects.
package database
