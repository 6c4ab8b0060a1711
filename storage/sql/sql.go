//go:build sql
// +build sql

package sql

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // Enable postgresql backend
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 backend

	"github.com/evalbench/evalbench/storage/fs"
	"github.com/evalbench/evalbench/types"
)

// schema is the table schema expected by the sqlite3 report storage.
const schema = `
CREATE TABLE reports (
    name TEXT NOT NULL PRIMARY KEY,
    timestamp INT8 NOT NULL,
    report TEXT
);
CREATE UNIQUE INDEX idx_reports_timestamp ON reports(timestamp);
`

// Storage is a way to store benchmark reports in a SQL database.
type Storage struct {
	// SqliteDBFile is the sqlite3 DB where reports will be stored.
	SqliteDBFile string `json:"sqlite_db_file,omitempty"`

	// PostgreSQL contains the Postgres connection settings.
	PostgreSQL *struct {
		Host     string `json:"host,omitempty"`
		Port     int    `json:"port,omitempty"`
		User     string `json:"user"`
		Password string `json:"password,omitempty"`
		DBName   string `json:"dbname"`
		SSLMode  string `json:"sslmode,omitempty"`
	} `json:"postgresql"`

	// Report files older than ReportExpiry will be
	// deleted on calls to Maintain(). If this is
	// the zero value, no old report files will be
	// deleted.
	ReportExpiry time.Duration `json:"report_expiry,omitempty"`
}

// New creates a new Storage instance based on json config
func New(config json.RawMessage) (Storage, error) {
	var storage Storage
	err := json.Unmarshal(config, &storage)
	return storage, err
}

// Type returns the storage driver package name
func (Storage) Type() string {
	return Type
}

func (sql Storage) dbConnect() (*sqlx.DB, error) {
	// Only one SQL backend can be present
	if sql.SqliteDBFile != "" && sql.PostgreSQL != nil {
		return nil, errors.New("several SQL backends are configured")
	}

	// SQLite3 configuration
	if sql.SqliteDBFile != "" {
		return sqlx.Connect("sqlite3", sql.SqliteDBFile)
	}

	// PostgreSQL configuration
	if sql.PostgreSQL != nil {
		var pgOptions string
		if sql.PostgreSQL.DBName == "" {
			return nil, errors.New("missing PostgreSQL database name")
		}
		if sql.PostgreSQL.User == "" {
			return nil, errors.New("missing PostgreSQL username")
		}
		if sql.PostgreSQL.Host != "" {
			pgOptions += " host=" + sql.PostgreSQL.Host
		}
		if sql.PostgreSQL.Port != 0 {
			pgOptions += " port=" + strconv.Itoa(sql.PostgreSQL.Port)
		}
		pgOptions += " user=" + sql.PostgreSQL.User
		if sql.PostgreSQL.Password != "" {
			pgOptions += " password=" + sql.PostgreSQL.Password
		}
		pgOptions += " dbname=" + sql.PostgreSQL.DBName
		if sql.PostgreSQL.SSLMode != "" {
			pgOptions += " sslmode=" + sql.PostgreSQL.SSLMode
		}
		return sqlx.Connect("postgres", pgOptions)
	}

	return nil, errors.New("no configured database backend")
}

// GetIndex returns the list of stored reports in the database.
func (sql Storage) GetIndex() (map[string]int64, error) {
	db, err := sql.dbConnect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	idx := make(map[string]int64)
	var row struct {
		Name      string `db:"name"`
		Timestamp int64  `db:"timestamp"`
	}

	rows, err := db.Queryx(`SELECT name,timestamp FROM "reports"`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		err := rows.StructScan(&row)
		if err != nil {
			rows.Close()
			return nil, err
		}
		idx[row.Name] = row.Timestamp
	}

	return idx, nil
}

// Fetch fetches the report with the given name.
func (sql Storage) Fetch(name string) (types.Report, error) {
	var report types.Report

	db, err := sql.dbConnect()
	if err != nil {
		return report, err
	}
	defer db.Close()

	var contents []byte
	err = db.Get(&contents, db.Rebind(`SELECT report FROM "reports" WHERE name=? LIMIT 1`), name)
	if err != nil {
		return report, err
	}
	if err = json.Unmarshal(contents, &report); err != nil {
		return types.Report{}, err
	}
	return report, nil
}

// Store stores the report in the database.
func (sql Storage) Store(report types.Report) error {
	db, err := sql.dbConnect()
	if err != nil {
		return err
	}
	defer db.Close()

	name := *fs.GenerateFilename()
	contents, err := json.Marshal(report)
	if err != nil {
		return err
	}

	// Insert data
	const insertReport = `INSERT INTO "reports" (name, timestamp, report) VALUES (?, ?, ?)`
	_, err = db.Exec(db.Rebind(insertReport), name, time.Now().UnixNano(), contents)
	return err
}

// Maintain deletes reports that are older than sql.ReportExpiry.
func (sql Storage) Maintain() error {
	if sql.ReportExpiry == 0 {
		return nil
	}

	db, err := sql.dbConnect()
	if err != nil {
		return err
	}
	defer db.Close()

	const st = `DELETE FROM "reports" WHERE timestamp < ?`
	ts := time.Now().Add(-1 * sql.ReportExpiry).UnixNano()
	_, err = db.Exec(db.Rebind(st), ts)
	return err
}

// initialize creates the "reports" table in the database.
func (sql Storage) initialize() error {
	db, err := sql.dbConnect()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(schema)
	return err
}
