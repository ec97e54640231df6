package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"heatpump_simulator/internal/catalog"
	"heatpump_simulator/internal/climate"
	"heatpump_simulator/internal/heatload"
	"heatpump_simulator/internal/model"
	"heatpump_simulator/internal/planner"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Observer counts transport activity. metrics.Metrics satisfies it.
type Observer interface {
	MessageReceived(msgType string)
	ErrorSent(code string)
	ClientConnected()
	ClientDisconnected()
}

type nopObserver struct{}

func (nopObserver) MessageReceived(string) {}
func (nopObserver) ErrorSent(string)       {}
func (nopObserver) ClientConnected()       {}
func (nopObserver) ClientDisconnected()    {}

// requestError is a client-visible failure with an error code.
type requestError struct {
	code string
	err  error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{code: CodeBadRequest, err: err}
}

// errorCode maps domain errors onto protocol error codes.
func errorCode(err error) string {
	var re *requestError
	switch {
	case errors.As(err, &re):
		return re.code
	case errors.Is(err, climate.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, heatload.ErrInvalidInput):
		return CodeInvalidInput
	default:
		return CodeInternal
	}
}

// Handler manages WebSocket connections and routes requests to the planner.
type Handler struct {
	hub      *Hub
	engine   *planner.Engine
	observer Observer
	log      logrus.FieldLogger
}

func NewHandler(hub *Hub, engine *planner.Engine, observer Observer, logger logrus.FieldLogger) *Handler {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Handler{hub: hub, engine: engine, observer: observer, log: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	h.observer.ClientConnected()
	go client.writePump()

	h.sendDataLoaded(client)

	h.readPump(r.Context(), client)
}

func (h *Handler) readPump(ctx context.Context, c *Client) {
	defer func() {
		h.hub.Unregister(c)
		h.observer.ClientDisconnected()
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("WebSocket read error")
			}
			return
		}

		h.handleMessage(ctx, c, msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.sendError(c, "", badRequest(err))
		return
	}
	h.observer.MessageReceived(env.Type)

	switch env.Type {
	case TypeHeatLoadEstimate:
		var p EstimatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "", badRequest(err))
			return
		}
		req, err := p.Request()
		if err != nil {
			h.sendError(c, p.RequestID, err)
			return
		}
		hl, zone, err := h.engine.Estimate(req)
		if err != nil {
			h.sendError(c, p.RequestID, err)
			return
		}
		h.send(c, TypeHeatLoadResult, HeatLoadFromResult(p.RequestID, req.Location, hl, zone))

	case TypeCatalogMatch:
		var p MatchPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "", badRequest(err))
			return
		}
		req, err := p.Request()
		if err != nil {
			h.sendError(c, p.RequestID, err)
			return
		}
		if p.RequiredW > 0 {
			direct, err := h.matchDirect(p.RequestID, req, p.RequiredW)
			if err != nil {
				h.sendError(c, p.RequestID, err)
				return
			}
			h.send(c, TypeCatalogCandidates, direct)
			return
		}
		res, err := h.engine.Size(req)
		if err != nil {
			h.sendError(c, p.RequestID, err)
			return
		}
		h.send(c, TypeCatalogCandidates, CandidatesFromSizing(p.RequestID, res))

	case TypeDemandSimulate:
		var p SimulatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "", badRequest(err))
			return
		}
		locations, err := p.Targets()
		if err != nil {
			h.sendError(c, p.RequestID, err)
			return
		}
		results, err := h.engine.SimulateLocations(ctx, locations, p.Building.Profile())
		if err != nil {
			h.sendError(c, p.RequestID, err)
			return
		}
		for _, r := range results {
			h.send(c, TypeDemandResult, DemandResultFromResult(p.RequestID, r))
		}

	default:
		h.sendError(c, "", badRequest(errors.New("unknown message type: "+env.Type)))
	}
}

// matchDirect matches the catalog against a capacity the client already knows.
// The band follows the variant, refined when none is given.
func (h *Handler) matchDirect(requestID string, req planner.Request, requiredW float64) (CandidatesPayload, error) {
	variant := req.Variant
	switch variant {
	case "":
		variant = model.VariantRefined
	case model.VariantSimple, model.VariantRefined:
	default:
		return CandidatesPayload{}, fmt.Errorf("unknown variant %q: %w", variant, heatload.ErrInvalidInput)
	}
	q := catalog.Query{
		Location:    req.Location,
		SupplyTempC: req.Building.SupplyTempC,
		RequiredW:   requiredW,
		Band:        catalog.BandFor(variant),
	}
	lower, upper := q.Bounds()
	return CandidatesPayload{
		RequestID:   requestID,
		Location:    q.Location,
		SupplyTempC: q.SupplyTempC,
		RequiredW:   q.RequiredW,
		LowerW:      lower,
		UpperW:      upper,
		Candidates:  CandidatesFromRatings(h.engine.Match(q)),
	}, nil
}

func (h *Handler) send(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		h.log.WithError(err).WithField("type", msgType).Error("marshaling reply")
		return
	}
	c.trySend(msg, h.log)
}

func (h *Handler) sendError(c *Client, requestID string, err error) {
	code := errorCode(err)
	h.observer.ErrorSent(code)
	h.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"code":       code,
	}).WithError(err).Info("request failed")
	h.send(c, TypeError, ErrorPayload{
		RequestID: requestID,
		Code:      code,
		Message:   err.Error(),
	})
}

func (h *Handler) dataLoaded() DataLoadedPayload {
	zones := h.engine.Regions()
	regions := make([]RegionInfo, len(zones))
	for i, z := range zones {
		regions[i] = RegionInfo{
			Index:       z.Index,
			Name:        z.Name,
			DesignTempC: z.DesignTempC,
			SupplyTemps: h.engine.SupplyTemps(z.Index),
		}
	}
	return DataLoadedPayload{
		Regions:          regions,
		WeatherLocations: h.engine.WeatherLocations(),
		CatalogSize:      h.engine.CatalogSize(),
	}
}

func (h *Handler) sendDataLoaded(c *Client) {
	h.send(c, TypeDataLoaded, h.dataLoaded())
}
