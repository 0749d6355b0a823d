// Package metrics records per-run counters and exports them as a Prometheus textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the counters for one report run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	accidentsRead    prometheus.Counter
	accidentsDropped prometheus.Counter
	accidentsKept    prometheus.Counter
	vehiclesRead     prometheus.Counter
	aggregateRows    *prometheus.GaugeVec
	runDuration      prometheus.Gauge
	lastSuccess      prometheus.Gauge
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		accidentsRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "roadsafety_accidents_read_total",
			Help: "Accident rows read from the source",
		}),
		accidentsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "roadsafety_accidents_dropped_total",
			Help: "Accident rows dropped for missing mandatory fields",
		}),
		accidentsKept: factory.NewCounter(prometheus.CounterOpts{
			Name: "roadsafety_accidents_enriched_total",
			Help: "Accident rows that reached the aggregates",
		}),
		vehiclesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "roadsafety_vehicles_read_total",
			Help: "Vehicle rows read from the source",
		}),
		aggregateRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "roadsafety_aggregate_rows",
			Help: "Rows written per BI table",
		}, []string{"table"}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "roadsafety_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "roadsafety_last_success_timestamp_seconds",
			Help: "Unix time the last run completed",
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveInput records the stage counts of a run.
func (r *Recorder) ObserveInput(read, dropped, kept, vehicles int) {
	r.accidentsRead.Add(float64(read))
	r.accidentsDropped.Add(float64(dropped))
	r.accidentsKept.Add(float64(kept))
	r.vehiclesRead.Add(float64(vehicles))
}

// ObserveTable records the size of a written table.
func (r *Recorder) ObserveTable(name string, rows int) {
	r.aggregateRows.WithLabelValues(name).Set(float64(rows))
}

// Finish records the run duration and completion time.
func (r *Recorder) Finish(start, end time.Time) {
	r.runDuration.Set(end.Sub(start).Seconds())
	r.lastSuccess.Set(float64(end.Unix()))
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}

	return nil
}
