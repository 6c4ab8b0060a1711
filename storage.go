package evalbench

import (
	"encoding/json"
	"fmt"

	"github.com/evalbench/evalbench/storage/fs"
	"github.com/evalbench/evalbench/storage/github"
	"github.com/evalbench/evalbench/storage/mysql"
	"github.com/evalbench/evalbench/storage/s3"
	"github.com/evalbench/evalbench/storage/sql"
)

func storageDecode(provider string, config json.RawMessage) (Storage, error) {
	switch provider {
	case fs.Type:
		return fs.New(config)
	case sql.Type:
		return sql.New(config)
	case mysql.Type:
		return mysql.New(config)
	case s3.Type:
		return s3.New(config)
	case github.Type:
		return github.New(config)
	default:
		return nil, fmt.Errorf(errUnknownStorageType, provider)
	}
}
