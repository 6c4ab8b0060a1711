package mysql

import (
	"time"
)

// Type should match the package name
const Type = "mysql"

// Storage is a way to store benchmark reports in a MySQL database.
type Storage struct {
	DSN string `json:"dsn"`

	// Issue create statements for database schema
	Create bool `json:"create"`

	// Report files older than ReportExpiry will be
	// deleted on calls to Maintain(). If this is
	// the zero value, no old report files will be
	// deleted.
	ReportExpiry time.Duration `json:"report_expiry,omitempty"`
}

// schema is the expected table schema (can be re-applied)
const schema = "CREATE TABLE IF NOT EXISTS `reports` (`name` VARCHAR(512) NOT NULL, `timestamp` BIGINT NOT NULL, `report` TEXT NULL, PRIMARY KEY (`name`), UNIQUE (`timestamp`)) ENGINE = InnoDB;"
