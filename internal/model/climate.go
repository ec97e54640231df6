package model

// ClimateZone holds the reference statistics of one weather region.
type ClimateZone struct {
	Index       int // 1-based location index
	Name        string
	DesignTempC float64 // design outdoor temperature

	// Degree-zone factors (Kd) for the 15, 12 and 10 °C heating thresholds.
	DegreeDays15 float64
	DegreeDays12 float64
	DegreeDays10 float64
}

// ReferenceYear selects which reference weather year a climate table describes.
type ReferenceYear string

const (
	ReferenceAverage       ReferenceYear = "a"
	ReferenceExtremeWinter ReferenceYear = "w"
)

// RegionNames lists the German test-reference-year regions by location index - 1.
var RegionNames = []string{
	"Nordseeküste",
	"Ostseeküste",
	"Nordwestdeutsches Tiefland",
	"Nordostdeutsches Tiefland",
	"Niederrheinisch-westfälische Bucht und Emsland",
	"Nördliche und westliche Mittelgebirge, Randgebiete",
	"Nördliche und westliche Mittelgebirge, zentrale Bereiche",
	"Oberharz und Schwarzwald (mittlere Lagen)",
	"Thüringer Becken und Sächsisches Hügelland",
	"Südöstliche Mittelgebirge bis 1000 m",
	"Erzgebirge, Böhmer- und Schwarzwald oberhalb 1000 m",
	"Oberrheingraben und unteres Neckartal",
	"Schwäbisch-fränkisches Stufenland und Alpenvorland",
	"Schwäbische Alb und Baar",
	"Alpenrand und -täler",
}

// RegionIndex is the reverse of RegionNames (name -> 1-based index).
var RegionIndex map[string]int

func init() {
	RegionIndex = make(map[string]int, len(RegionNames))
	for i, name := range RegionNames {
		RegionIndex[name] = i + 1
	}
}

// RegionName returns the display name for a location index, or "" when unknown.
func RegionName(index int) string {
	if index < 1 || index > len(RegionNames) {
		return ""
	}
	return RegionNames[index-1]
}
