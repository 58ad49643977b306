package dbconnect

import "database/sql"

// Database is a lazily-connected database handle with liveness checking.
type Database interface {
	Connect() (*sql.DB, error)
	Ping() error
}
