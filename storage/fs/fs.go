package fs

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/evalbench/evalbench/types"
)

// Type should match the package name
const Type = "fs"

// Storage is a way to store benchmark reports on the local filesystem.
type Storage struct {
	// The path to the directory where report files will be stored.
	Dir string `json:"dir"`
	// The URL corresponding to fs.Dir.
	URL string `json:"url"`

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

// GetIndex returns the index from filesystem.
func (fs Storage) GetIndex() (map[string]int64, error) {
	return fs.readIndex()
}

func (fs Storage) readIndex() (map[string]int64, error) {
	index := map[string]int64{}

	f, err := os.Open(filepath.Join(fs.Dir, IndexName))
	if os.IsNotExist(err) {
		return index, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&index)
	return index, err
}

func (fs Storage) writeIndex(index map[string]int64) error {
	f, err := os.Create(filepath.Join(fs.Dir, IndexName))
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(index)
}

// Fetch fetches the report with the specified name from filesystem.
func (fs Storage) Fetch(name string) (types.Report, error) {
	var report types.Report
	f, err := os.Open(filepath.Join(fs.Dir, name))
	if err != nil {
		return report, err
	}
	err = json.NewDecoder(f).Decode(&report)
	f.Close()
	if err != nil {
		return types.Report{}, err
	}

	return report, nil
}

// Store stores the report on filesystem according to the configuration in fs.
func (fs Storage) Store(report types.Report) error {
	// Write report to a new file
	name := *GenerateFilename()
	f, err := os.Create(filepath.Join(fs.Dir, name))
	if err != nil {
		return err
	}
	err = json.NewEncoder(f).Encode(report)
	f.Close()
	if err != nil {
		return err
	}

	// Read current index file
	index, err := fs.readIndex()
	if err != nil {
		return err
	}

	// Add new file to index
	index[name] = time.Now().UnixNano()

	// Write new index
	return fs.writeIndex(index)
}

// Maintain deletes report files that are older than fs.ReportExpiry.
func (fs Storage) Maintain() error {
	if fs.ReportExpiry == 0 {
		return nil
	}

	files, err := ioutil.ReadDir(fs.Dir)
	if err != nil {
		return err
	}

	index, err := fs.readIndex()
	if err != nil {
		return err
	}

	for _, f := range files {
		if f.Name() == IndexName {
			continue
		}

		nsec, ok := index[f.Name()]
		if !ok {
			continue
		}

		if time.Since(time.Unix(0, nsec)) > fs.ReportExpiry {
			if err := os.Remove(filepath.Join(fs.Dir, f.Name())); err != nil {
				return err
			}
			delete(index, f.Name())
		}
	}

	return fs.writeIndex(index)
}
