package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"heatpump_simulator/internal/planner"
	"heatpump_simulator/internal/simulator"
)

const (
	TopicSizing = "sizing"
	TopicDemand = "demand"

	publishTimeout = 5 * time.Second
)

// Client is the part of paho.Client the publisher needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

type CandidateMessage struct {
	Model        string  `json:"model"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	CapacityW    float64 `json:"capacity_w"`
	COP          float64 `json:"cop"`
}

type SizingMessage struct {
	Location   int                `json:"location"`
	Region     string             `json:"region"`
	Variant    string             `json:"variant"`
	RequiredW  float64            `json:"required_w"`
	HeatLoadW  float64            `json:"heat_load_w"`
	ThresholdC float64            `json:"threshold_c"`
	Candidates []CandidateMessage `json:"candidates"`
	Timestamp  time.Time          `json:"timestamp"`
}

type DemandMessage struct {
	ID         string            `json:"id"`
	Location   int               `json:"location"`
	Region     string            `json:"region"`
	ThresholdC float64           `json:"threshold_c"`
	Summary    simulator.Summary `json:"summary"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Publisher implements planner.Callback and publishes results as JSON.
type Publisher struct {
	client Client
	prefix string
	logger logrus.FieldLogger
}

func NewPublisher(client Client, topicPrefix string, logger logrus.FieldLogger) *Publisher {
	return &Publisher{client: client, prefix: topicPrefix, logger: logger}
}

func (p *Publisher) topic(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "/" + name
}

func (p *Publisher) OnSizing(r planner.SizingResult) {
	candidates := make([]CandidateMessage, len(r.Candidates))
	for i, c := range r.Candidates {
		candidates[i] = CandidateMessage{
			Model:        c.Model,
			Manufacturer: c.Manufacturer,
			CapacityW:    c.CapacityW,
			COP:          c.COP,
		}
	}
	p.publish(p.topic(TopicSizing), SizingMessage{
		Location:   r.Location,
		Region:     r.Region,
		Variant:    string(r.HeatLoad.Variant),
		RequiredW:  r.HeatLoad.RequiredW,
		HeatLoadW:  r.HeatLoad.HeatLoadW,
		ThresholdC: r.HeatLoad.ThresholdC,
		Candidates: candidates,
		Timestamp:  time.Now().UTC(),
	})
}

func (p *Publisher) OnSimulation(r planner.SimulationResult) {
	p.publish(p.topic(TopicDemand), DemandMessage{
		ID:         r.ID,
		Location:   r.Location,
		Region:     r.Region,
		ThresholdC: r.Demand.ThresholdC,
		Summary:    r.Summary,
		Timestamp:  time.Now().UTC(),
	})
}

func (p *Publisher) publish(topic string, msg any) {
	if err := p.Publish(topic, msg); err != nil {
		p.logger.WithError(err).WithField("topic", topic).Error("MQTT publish failed")
	}
}

// Publish marshals msg and waits for the broker to accept it.
func (p *Publisher) Publish(topic string, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling %s message: %w", topic, err)
	}

	token := p.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	p.logger.WithField("topic", topic).Debug("published")
	return nil
}
