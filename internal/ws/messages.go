package ws

import (
	"encoding/json"
	"fmt"

	"heatpump_simulator/internal/climate"
	"heatpump_simulator/internal/model"
	"heatpump_simulator/internal/planner"
	"heatpump_simulator/internal/simulator"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> Server messages

type BuildingPayload struct {
	AnnualEnergyKWh  float64 `json:"annual_energy_kwh"`
	SupplyTempC      int     `json:"supply_temp_c"`
	ConstructionYear int     `json:"construction_year,omitempty"`
	Occupants        int     `json:"occupants,omitempty"`
	DHW              string  `json:"dhw,omitempty"` // low, medium (default), high
}

type EstimatePayload struct {
	RequestID string          `json:"request_id,omitempty"`
	Location  int             `json:"location"`
	Region    string          `json:"region,omitempty"`  // region name, alternative to location
	Variant   string          `json:"variant,omitempty"` // empty picks from the profile
	Building  BuildingPayload `json:"building"`
}

// MatchPayload either sizes the building or, when RequiredW is set, matches
// the catalog directly against that capacity.
type MatchPayload struct {
	EstimatePayload
	RequiredW float64 `json:"required_w,omitempty"`
}

type SimulatePayload struct {
	RequestID string          `json:"request_id,omitempty"`
	Location  int             `json:"location,omitempty"`
	Region    string          `json:"region,omitempty"`
	Locations []int           `json:"locations,omitempty"`
	Building  BuildingPayload `json:"building"`
}

// Server -> Client messages

type RegionInfo struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	DesignTempC float64 `json:"design_temp_c"`
	SupplyTemps []int   `json:"supply_temps,omitempty"` // rated in the catalog
}

type DataLoadedPayload struct {
	Regions          []RegionInfo `json:"regions"`
	WeatherLocations []int        `json:"weather_locations"`
	CatalogSize      int          `json:"catalog_size"`
}

type HeatLoadPayload struct {
	RequestID   string  `json:"request_id,omitempty"`
	Location    int     `json:"location"`
	Region      string  `json:"region"`
	Variant     string  `json:"variant"`
	RequiredW   float64 `json:"required_w"`
	HeatLoadW   float64 `json:"heat_load_w"`
	ThresholdC  float64 `json:"threshold_c"`
	DesignTempC float64 `json:"design_temp_c"`
}

type CandidateInfo struct {
	Model        string  `json:"model"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	SupplyTempC  int     `json:"supply_temp_c"`
	CapacityW    float64 `json:"capacity_w"`
	COP          float64 `json:"cop"`
}

type CandidatesPayload struct {
	RequestID   string           `json:"request_id,omitempty"`
	Location    int              `json:"location"`
	SupplyTempC int              `json:"supply_temp_c"`
	RequiredW   float64          `json:"required_w"`
	LowerW      float64          `json:"lower_w"`
	UpperW      float64          `json:"upper_w"`
	HeatLoad    *HeatLoadPayload `json:"heat_load,omitempty"`
	Candidates  []CandidateInfo  `json:"candidates"`
}

type DemandSummaryPayload struct {
	ID         string            `json:"id"`
	Location   int               `json:"location"`
	Region     string            `json:"region"`
	ThresholdC float64           `json:"threshold_c"`
	Summary    simulator.Summary `json:"summary"`
}

type DemandResultPayload struct {
	RequestID string `json:"request_id,omitempty"`
	DemandSummaryPayload
	Hourly []simulator.HourlyPoint `json:"hourly"`
}

type ErrorPayload struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Message type constants
const (
	// Client -> Server
	TypeHeatLoadEstimate = "heatload:estimate"
	TypeCatalogMatch     = "catalog:match"
	TypeDemandSimulate   = "demand:simulate"

	// Server -> Client
	TypeDataLoaded        = "data:loaded"
	TypeHeatLoadResult    = "heatload:result"
	TypeCatalogCandidates = "catalog:candidates"
	TypeDemandResult      = "demand:result"
	TypeDemandSummary     = "demand:summary"
	TypeError             = "error"
)

// Error codes
const (
	CodeNotFound     = "not_found"
	CodeInvalidInput = "invalid_input"
	CodeBadRequest   = "bad_request"
	CodeInternal     = "internal"
)

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func (b BuildingPayload) Profile() model.BuildingProfile {
	dhw := model.DHWClass(b.DHW)
	if dhw == "" {
		dhw = model.DHWMedium
	}
	return model.BuildingProfile{
		AnnualEnergyKWh:  b.AnnualEnergyKWh,
		SupplyTempC:      b.SupplyTempC,
		ConstructionYear: b.ConstructionYear,
		Occupants:        b.Occupants,
		DHW:              dhw,
	}
}

func (p EstimatePayload) Request() (planner.Request, error) {
	location, err := resolveLocation(p.Location, p.Region)
	if err != nil {
		return planner.Request{}, err
	}
	return planner.Request{
		Location: location,
		Building: p.Building.Profile(),
		Variant:  model.Variant(p.Variant),
	}, nil
}

// Targets returns the locations to simulate: the explicit list, or the single
// location or region.
func (p SimulatePayload) Targets() ([]int, error) {
	if len(p.Locations) > 0 {
		return p.Locations, nil
	}
	location, err := resolveLocation(p.Location, p.Region)
	if err != nil {
		return nil, err
	}
	return []int{location}, nil
}

// resolveLocation looks the location up by region name when one is given.
func resolveLocation(location int, region string) (int, error) {
	if region == "" {
		return location, nil
	}
	idx, ok := model.RegionIndex[region]
	if !ok {
		return 0, fmt.Errorf("region %q: %w", region, climate.ErrNotFound)
	}
	if location != 0 && location != idx {
		return 0, badRequest(fmt.Errorf("region %q is location %d, not %d", region, idx, location))
	}
	return idx, nil
}

func HeatLoadFromResult(requestID string, location int, hl model.HeatLoadResult, zone model.ClimateZone) HeatLoadPayload {
	return HeatLoadPayload{
		RequestID:   requestID,
		Location:    location,
		Region:      zone.Name,
		Variant:     string(hl.Variant),
		RequiredW:   hl.RequiredW,
		HeatLoadW:   hl.HeatLoadW,
		ThresholdC:  hl.ThresholdC,
		DesignTempC: zone.DesignTempC,
	}
}

func CandidatesFromRatings(ratings []model.HeatPumpRating) []CandidateInfo {
	out := make([]CandidateInfo, len(ratings))
	for i, r := range ratings {
		out[i] = CandidateInfo{
			Model:        r.Model,
			Manufacturer: r.Manufacturer,
			SupplyTempC:  r.SupplyTempC,
			CapacityW:    r.CapacityW,
			COP:          r.COP,
		}
	}
	return out
}

func CandidatesFromSizing(requestID string, r planner.SizingResult) CandidatesPayload {
	hl := HeatLoadFromResult(requestID, r.Location, r.HeatLoad, r.Zone)
	return CandidatesPayload{
		RequestID:   requestID,
		Location:    r.Location,
		SupplyTempC: r.SupplyTempC,
		RequiredW:   r.HeatLoad.RequiredW,
		LowerW:      r.LowerW,
		UpperW:      r.UpperW,
		HeatLoad:    &hl,
		Candidates:  CandidatesFromRatings(r.Candidates),
	}
}

func DemandSummaryFromResult(r planner.SimulationResult) DemandSummaryPayload {
	return DemandSummaryPayload{
		ID:         r.ID,
		Location:   r.Location,
		Region:     r.Region,
		ThresholdC: r.Demand.ThresholdC,
		Summary:    r.Summary,
	}
}

func DemandResultFromResult(requestID string, r planner.SimulationResult) DemandResultPayload {
	return DemandResultPayload{
		RequestID:            requestID,
		DemandSummaryPayload: DemandSummaryFromResult(r),
		Hourly:               r.Hourly,
	}
}
