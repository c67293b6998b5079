package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds every Voltura collector and is served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	// CatalogLoadTotal counts catalog load attempts by result (success/failed).
	CatalogLoadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voltura_catalog_load_total",
			Help: "Total number of catalog load attempts.",
		},
		[]string{"result"},
	)

	// CatalogVehicles is the number of vehicles in the loaded catalog.
	CatalogVehicles = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "voltura_catalog_vehicles",
			Help: "Number of vehicles in the loaded catalog.",
		},
	)

	// FilterAppliedTotal counts filter actions by caller (session/stateless).
	FilterAppliedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voltura_filter_applied_total",
			Help: "Total number of catalog filter applications.",
		},
		[]string{"kind"},
	)

	// ConfigurationSavedTotal counts saved configurations.
	ConfigurationSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voltura_configuration_saved_total",
			Help: "Total number of saved configurations.",
		},
		[]string{"source", "status"}, // status: success/failed
	)

	// ConfiguredPrice observes the price of every saved configuration.
	ConfiguredPrice = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voltura_configured_price",
			Help:    "Total price of saved configurations in whole currency units.",
			Buckets: prometheus.ExponentialBuckets(50000, 1.5, 10),
		},
	)

	// ActiveSessions is the number of live configurator sessions.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "voltura_active_sessions",
			Help: "Number of live configurator sessions.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		CatalogLoadTotal,
		CatalogVehicles,
		FilterAppliedTotal,
		ConfigurationSavedTotal,
		ConfiguredPrice,
		ActiveSessions,
	)
}
