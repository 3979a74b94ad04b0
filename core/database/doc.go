// Package database handles database connections.
//
// It provides a wrapper around GORM to configure MySQL connections based on
// the application's configuration: DSN construction with encoded credentials,
// connection and I/O timeouts, pool limits, and an initial ping.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
