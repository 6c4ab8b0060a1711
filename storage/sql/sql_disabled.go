//go:build !sql
// +build !sql

package sql

import (
	"encoding/json"
	"errors"

	"github.com/evalbench/evalbench/types"
)

type Storage struct{}

var errStoreDisabled = errors.New("sql data store is disabled")

// New creates a new Storage instance based on json config
func New(_ json.RawMessage) (Storage, error) {
	return Storage{}, errStoreDisabled
}

// Type returns the storage driver package name
func (Storage) Type() string {
	return Type
}

func (Storage) Store(report types.Report) error {
	return errStoreDisabled
}
