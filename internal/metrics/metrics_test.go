package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatpump_simulator/internal/model"
	"heatpump_simulator/internal/planner"
	"heatpump_simulator/internal/simulator"
)

// family returns the gathered metric family with the given name.
func family(t *testing.T, m *Metrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func counterWithLabel(t *testing.T, m *Metrics, name, label, value string) float64 {
	t.Helper()
	for _, metric := range family(t, m, name).GetMetric() {
		for _, lp := range metric.GetLabel() {
			if lp.GetName() == label && lp.GetValue() == value {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics_OnSizing(t *testing.T) {
	m := New()

	m.OnSizing(planner.SizingResult{
		HeatLoad:   model.HeatLoadResult{RequiredW: 4000, Variant: model.VariantRefined},
		Candidates: make([]model.HeatPumpRating, 3),
	})
	m.OnSizing(planner.SizingResult{
		HeatLoad: model.HeatLoadResult{RequiredW: 6000, Variant: model.VariantSimple},
	})

	assert.Equal(t, 1.0, counterWithLabel(t, m, "heatpump_sizings_total", "variant", "refined"))
	assert.Equal(t, 1.0, counterWithLabel(t, m, "heatpump_sizings_total", "variant", "simple"))

	h := family(t, m, "heatpump_sizing_candidates").GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.Equal(t, 3.0, h.GetSampleSum())
}

func TestMetrics_OnSimulation(t *testing.T) {
	m := New()

	m.OnSimulation(planner.SimulationResult{
		Duration: 20 * time.Millisecond,
		Summary:  simulator.Summary{HeatKWh: 9000},
	})

	assert.Equal(t, 1.0, family(t, m, "heatpump_simulations_total").GetMetric()[0].GetCounter().GetValue())
	h := family(t, m, "heatpump_annual_heat_kwh").GetMetric()[0].GetHistogram()
	assert.Equal(t, 9000.0, h.GetSampleSum())
}

func TestMetrics_TransportCounters(t *testing.T) {
	m := New()

	m.MessageReceived("demand:simulate")
	m.MessageReceived("demand:simulate")
	m.ErrorSent("not_found")
	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()

	assert.Equal(t, 2.0, counterWithLabel(t, m, "heatpump_ws_messages_total", "type", "demand:simulate"))
	assert.Equal(t, 1.0, counterWithLabel(t, m, "heatpump_ws_errors_total", "code", "not_found"))
	assert.Equal(t, 1.0, family(t, m, "heatpump_ws_clients").GetMetric()[0].GetGauge().GetValue())
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.MessageReceived("catalog:match")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `heatpump_ws_messages_total{type="catalog:match"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// two instances must not collide on registration
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
