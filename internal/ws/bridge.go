package ws

import (
	"github.com/sirupsen/logrus"

	"heatpump_simulator/internal/planner"
)

// Bridge implements planner.Callback and broadcasts simulation summaries to
// the WebSocket hub. Sizing results go only to the requesting client.
type Bridge struct {
	hub *Hub
	log logrus.FieldLogger
}

func NewBridge(hub *Hub, logger logrus.FieldLogger) *Bridge {
	return &Bridge{hub: hub, log: logger}
}

func (b *Bridge) OnSizing(planner.SizingResult) {}

func (b *Bridge) OnSimulation(r planner.SimulationResult) {
	msg, err := NewEnvelope(TypeDemandSummary, DemandSummaryFromResult(r))
	if err != nil {
		b.log.WithError(err).Error("marshaling demand summary")
		return
	}
	b.hub.Broadcast(msg)
}
