// Package persistence keeps the history of processed jobs. The only backend is SQLite in WAL mode,
// accessed through sqlx. History is optional and disabled unless a database path is configured.
package persistence
