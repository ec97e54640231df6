package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"heatpump_simulator/internal/planner"
)

// Metrics records sizing and simulation activity. It implements
// planner.Callback so it can sit next to the transports.
type Metrics struct {
	registry *prometheus.Registry

	sizingsTotal      *prometheus.CounterVec
	candidates        prometheus.Histogram
	requiredW         prometheus.Histogram
	simulationsTotal  prometheus.Counter
	simulationSeconds prometheus.Histogram
	annualHeatKWh     prometheus.Histogram
	messagesTotal     *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
	clients           prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sizingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatpump_sizings_total",
			Help: "Completed heat-pump sizings by estimation variant.",
		}, []string{"variant"}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatpump_sizing_candidates",
			Help:    "Number of catalog candidates per sizing.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		requiredW: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatpump_required_capacity_watts",
			Help:    "Required heat-pump capacity per sizing.",
			Buckets: prometheus.LinearBuckets(2000, 2000, 10),
		}),
		simulationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heatpump_simulations_total",
			Help: "Completed annual demand simulations.",
		}),
		simulationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatpump_simulation_duration_seconds",
			Help:    "Wall time of annual demand simulations.",
			Buckets: prometheus.DefBuckets,
		}),
		annualHeatKWh: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatpump_annual_heat_kwh",
			Help:    "Simulated annual heat demand.",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 8),
		}),
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatpump_ws_messages_total",
			Help: "WebSocket messages received by type.",
		}, []string{"type"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatpump_ws_errors_total",
			Help: "Error replies sent to WebSocket clients by code.",
		}, []string{"code"}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heatpump_ws_clients",
			Help: "Connected WebSocket clients.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sizingsTotal,
		m.candidates,
		m.requiredW,
		m.simulationsTotal,
		m.simulationSeconds,
		m.annualHeatKWh,
		m.messagesTotal,
		m.errorsTotal,
		m.clients,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) OnSizing(r planner.SizingResult) {
	m.sizingsTotal.WithLabelValues(string(r.HeatLoad.Variant)).Inc()
	m.candidates.Observe(float64(len(r.Candidates)))
	m.requiredW.Observe(r.HeatLoad.RequiredW)
}

func (m *Metrics) OnSimulation(r planner.SimulationResult) {
	m.simulationsTotal.Inc()
	m.simulationSeconds.Observe(r.Duration.Seconds())
	m.annualHeatKWh.Observe(r.Summary.HeatKWh)
}

func (m *Metrics) MessageReceived(msgType string) {
	m.messagesTotal.WithLabelValues(msgType).Inc()
}

func (m *Metrics) ErrorSent(code string) {
	m.errorsTotal.WithLabelValues(code).Inc()
}

func (m *Metrics) ClientConnected()    { m.clients.Inc() }
func (m *Metrics) ClientDisconnected() { m.clients.Dec() }
