package appinsights

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microsoft/ApplicationInsights-Go/appinsights"

	"github.com/evalbench/evalbench/types"
)

// Type should match the package name
const Type = "appinsights"

// Exporter implements an Exporter by sending benchmark results to an external telemetry tool
type Exporter struct {
	// InstrumentationKey is a GUID used to send trackAvailability()
	// telemetry to Application Insights
	InstrumentationKey string `json:"instrumentation_key"`

	// TestLocation identifies the test location sent
	// in Application Insights trackAvailability() events
	TestLocation string `json:"test_location,omitempty"`

	// Tags will be applied to all telemetry items
	Tags map[string]string `json:"tags,omitempty"`

	// TelemetryClient is the appinsights.Client with which to
	// send Application Insights trackAvailability() events
	// Automatically created if InstrumentationKey is set.
	TelemetryClient appinsights.TelemetryClient
}

// New creates a new Exporter instance based on json config
func New(config json.RawMessage) (Exporter, error) {
	var exporter Exporter
	err := json.Unmarshal(config, &exporter)
	if exporter.TestLocation == "" {
		exporter.TestLocation = "Evalbench Exporter"
	}
	exporter.TelemetryClient = appinsights.NewTelemetryClient(exporter.InstrumentationKey)
	return exporter, err
}

// Type returns the exporter package name
func (Exporter) Type() string {
	return Type
}

// Export sends every result in the report to the configured
// Application Insights instance.
func (c Exporter) Export(report types.Report) error {
	for _, result := range report.Results() {
		c.Send(result)
	}
	return c.Close()
}

// Close will submit all queued telemetry to the configured Application Insights
// service.
// Ref: https://github.com/microsoft/ApplicationInsights-Go#shutdown
func (c Exporter) Close() error {
	select {
	case <-c.TelemetryClient.Channel().Close(10 * time.Second):
		// Ten second timeout for retries.
		return nil
	case <-time.After(30 * time.Second):
		return fmt.Errorf("Failed to submit telemetry after retries")
	}
}

// Send sends a single benchmark result to the exporter
func (c Exporter) Send(result types.Result) {
	message := "Passed"
	if result.OverBudget || result.Failed {
		samples := make([]string, len(result.Samples))
		for i := range result.Samples {
			samples[i] = result.Samples[i].String()
		}
		message = fmt.Sprintf("Iterations = %d x %d reps (%s)",
			result.Iterations, result.Repetitions, strings.Join(samples, " "))
		if result.Notice != "" {
			message = fmt.Sprintf("%s - %s", message, result.Notice)
		}
		if result.Message != "" {
			message = fmt.Sprintf("%s - %s", message, result.Message)
		}
	}

	name := fmt.Sprintf("%s/%s", result.Kind, result.Name)
	availability := appinsights.NewAvailabilityTelemetry(name, result.Stats.Mean, result.WithinBudget)
	availability.RunLocation = c.TestLocation
	availability.Message = message
	availability.Id = uuid.New().String()
	for k, v := range c.Tags {
		c.TelemetryClient.Context().CommonProperties[k] = v
	}

	// Submit the telemetry
	c.TelemetryClient.Track(availability)
}
