package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatpump_simulator/internal/logging"
	"heatpump_simulator/internal/model"
	"heatpump_simulator/internal/planner"
	"heatpump_simulator/internal/simulator"
)

func newTestBridge() (*Bridge, *Client) {
	hub := NewHub(logging.Discard())
	client := &Client{hub: hub, send: make(chan []byte, 256)}
	hub.Register(client)
	bridge := NewBridge(hub, logging.Discard())
	return bridge, client
}

func receiveEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	msg := <-c.send
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func TestBridge_OnSimulation(t *testing.T) {
	bridge, client := newTestBridge()

	bridge.OnSimulation(planner.SimulationResult{
		ID:       "run-1",
		Location: 4,
		Region:   "Nordostdeutsches Tiefland",
		Demand:   model.DemandSeries{Location: 4, ThresholdC: 15, PowerW: []float64{100, 200}},
		Summary: simulator.Summary{
			HeatKWh:       9500.5,
			PeakW:         4200,
			HeatingHours:  5100,
			FullLoadHours: 2262,
		},
		Hourly: []simulator.HourlyPoint{{PowerW: 100}, {PowerW: 200}},
	})

	env := receiveEnvelope(t, client)
	assert.Equal(t, TypeDemandSummary, env.Type)

	var p DemandSummaryPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, "run-1", p.ID)
	assert.Equal(t, 4, p.Location)
	assert.Equal(t, "Nordostdeutsches Tiefland", p.Region)
	assert.InDelta(t, 15.0, p.ThresholdC, 0.001)
	assert.InDelta(t, 9500.5, p.Summary.HeatKWh, 0.001)
	assert.InDelta(t, 4200.0, p.Summary.PeakW, 0.001)
	assert.InDelta(t, 5100.0, p.Summary.HeatingHours, 0.001)

	// the broadcast carries no hourly series
	assert.NotContains(t, string(env.Payload), "hourly")
}

func TestBridge_OnSizingIsSilent(t *testing.T) {
	bridge, client := newTestBridge()

	bridge.OnSizing(planner.SizingResult{Location: 4})

	assert.Len(t, client.send, 0)
}
