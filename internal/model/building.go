package model

// DHWClass is the efficiency class of the domestic hot-water system.
type DHWClass string

const (
	DHWLow    DHWClass = "low"
	DHWMedium DHWClass = "medium"
	DHWHigh   DHWClass = "high"
)

// DHWFactor maps every known DHWClass to its efficiency factor.
var DHWFactor = map[DHWClass]float64{
	DHWLow:    0.6,
	DHWMedium: 0.75,
	DHWHigh:   0.9,
}

// BuildingProfile is the input of one estimation or simulation request.
type BuildingProfile struct {
	AnnualEnergyKWh  float64 // heating + hot water
	SupplyTempC      int
	ConstructionYear int // 0 when unknown
	Occupants        int
	DHW              DHWClass
}

// Variant names the estimation strategy that produced a result.
type Variant string

const (
	VariantSimple  Variant = "simple"
	VariantRefined Variant = "refined"
)

// HeatLoadResult is the output of a heat-load estimation.
type HeatLoadResult struct {
	RequiredW  float64 // capacity the heat pump must deliver
	HeatLoadW  float64 // space-heating load before the hot-water margin
	ThresholdC float64
	Variant    Variant
}
