// Package kv provides the device-local key-value store backing the login
// throttle record and the saved session.
//
// The SQLite implementation expects the "kv" table created by the embedded
// migrations (see client.InitDatabase):
//
//	CREATE TABLE kv (
//	  key        TEXT PRIMARY KEY,
//	  value      BLOB NOT NULL,
//	  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
// A store can be bound to either *sql.DB or *sql.Tx through dbx.DBTX, so
// several writes can share one transaction via dbx.WithTx.
package kv
