// Package db provides connection utilities for the audit database.
//
// Secrets and projects are held in memory; PostgreSQL is only used to
// persist audit messages when AUDIT_DATABASE_URL is set.
//
// # Connection
//
//	database, err := db.Connect(db.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
package db
