package evalbench

import (
	"encoding/json"
	"fmt"

	"github.com/evalbench/evalbench/exporter/appinsights"
)

func exporterDecode(provider string, config json.RawMessage) (Exporter, error) {
	switch provider {
	case appinsights.Type:
		return appinsights.New(config)
	default:
		return nil, fmt.Errorf(errUnknownExporterType, provider)
	}
}
