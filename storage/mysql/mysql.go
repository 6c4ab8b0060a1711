package mysql

import (
	"encoding/json"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/evalbench/evalbench/storage/fs"
	"github.com/evalbench/evalbench/types"
)

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

func (opts Storage) connectionString() (string, error) {
	if opts.DSN == "" {
		return "", errors.New("missing MySQL DSN")
	}
	return opts.DSN, nil
}

func (opts Storage) dbConnect() (*sqlx.DB, error) {
	dsn, err := opts.connectionString()
	if err != nil {
		return nil, err
	}
	handle, err := sqlx.Connect(opts.Type(), dsn)
	if err != nil {
		return nil, err
	}
	if opts.Create {
		_, err = handle.Exec(schema)
		if err != nil {
			handle.Close()
			return nil, err
		}
	}
	return handle, err
}

// GetIndex returns the list of stored reports in the database.
func (opts Storage) GetIndex() (map[string]int64, error) {
	db, err := opts.dbConnect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	idx := make(map[string]int64)
	var row struct {
		Name      string `db:"name"`
		Timestamp int64  `db:"timestamp"`
	}

	rows, err := db.Queryx(`SELECT name,timestamp FROM reports`)
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
func (opts Storage) Fetch(name string) (types.Report, error) {
	var report types.Report

	db, err := opts.dbConnect()
	if err != nil {
		return report, err
	}
	defer db.Close()

	var contents []byte
	err = db.Get(&contents, `SELECT report FROM reports WHERE name=? LIMIT 1`, name)
	if err != nil {
		return report, err
	}
	if err = json.Unmarshal(contents, &report); err != nil {
		return types.Report{}, err
	}
	return report, nil
}

// Store stores the report in the database.
func (opts Storage) Store(report types.Report) error {
	db, err := opts.dbConnect()
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
	const insertReport = `INSERT INTO reports (name, timestamp, report) VALUES (?, ?, ?)`
	_, err = db.Exec(insertReport, name, time.Now().UnixNano(), contents)
	return err
}

// Maintain deletes reports that are older than opts.ReportExpiry.
func (opts Storage) Maintain() error {
	if opts.ReportExpiry == 0 {
		return nil
	}

	db, err := opts.dbConnect()
	if err != nil {
		return err
	}
	defer db.Close()

	const st = `DELETE FROM reports WHERE timestamp < ?`
	ts := time.Now().Add(-1 * opts.ReportExpiry).UnixNano()
	_, err = db.Exec(st, ts)
	return err
}
