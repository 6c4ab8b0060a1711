package evalbench

import (
	"github.com/evalbench/evalbench/evaluator"
	"github.com/evalbench/evalbench/types"
)

// Benchmark can produce a types.Result by delegating its
// measured operation to an external evaluator.
type Benchmark interface {
	Kind() string
	Title() string
	Run(ev evaluator.Evaluator) (types.Result, error)
}

// Storage can store reports.
type Storage interface {
	Type() string
	Store(types.Report) error
}

// StorageReader can read reports from the Storage.
type StorageReader interface {
	// Fetch returns the contents of a report file.
	Fetch(reportFile string) (types.Report, error)
	// GetIndex returns the storage index, as a map where keys are report
	// filenames and values are the associated run timestamps.
	GetIndex() (map[string]int64, error)
}

// Maintainer can maintain a store of reports by deleting old
// report files that are no longer needed or performing other
// required tasks.
type Maintainer interface {
	Maintain() error
}

// Notifier can notify whoever owns the benchmarks of
// regressions: benchmarks that failed or ran over their
// iteration budget.
type Notifier interface {
	Type() string
	Notify(types.Report) error
}

// Exporter is a service to send report data for additional
// processing.
type Exporter interface {
	Type() string
	Export(types.Report) error
}

// Provisioner is a type of storage mechanism that can provision
// itself for use with evalbench. Provisioning need only happen
// once and is merely a convenience so that the user can get a
// results dashboard up and running more quickly. The info
// returned from Provision should be used by the dashboard to
// access the report files (like a key pair that is used for
// read-only access).
type Provisioner interface {
	Provision() (types.ProvisionInfo, error)
}
