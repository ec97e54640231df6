package model

// HeatPumpRating is one catalog row: a model's rated operating point at a location.
type HeatPumpRating struct {
	Location     int
	SupplyTempC  int
	CapacityW    float64 // Normheizlast
	COP          float64
	Model        string
	Manufacturer string
}
