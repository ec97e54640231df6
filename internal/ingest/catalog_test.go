package ingest

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogParser_Parse(t *testing.T) {
	input := `Standort,Vorlauftemperatur,Normheizlast,COP,Model,Manufacturer
4,55,4500,3.4,Aero 45,Nordwind
4,35,4200,4.5,Aero 42 LT,Nordwind`

	ratings, err := (&CatalogParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ratings, 2)

	assert.Equal(t, 4, ratings[0].Location)
	assert.Equal(t, 55, ratings[0].SupplyTempC)
	assert.InDelta(t, 4500.0, ratings[0].CapacityW, 1e-9)
	assert.InDelta(t, 3.4, ratings[0].COP, 1e-9)
	assert.Equal(t, "Aero 45", ratings[0].Model)
	assert.Equal(t, "Nordwind", ratings[0].Manufacturer)
}

func TestCatalogParser_OptionalMetadata(t *testing.T) {
	input := `COP,Normheizlast,Vorlauftemperatur,Standort
3.4,4500,55,4`

	ratings, err := (&CatalogParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].Location)
	assert.Empty(t, ratings[0].Model)
}

func TestCatalogParser_SkipsBadRows(t *testing.T) {
	input := `Standort,Vorlauftemperatur,Normheizlast,COP
4,55,4500,3.4
4,55.5,4500,3.4
4,55,unknown,3.4
4,35,4200,4.5`

	ratings, err := (&CatalogParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, 35, ratings[1].SupplyTempC)
}

func TestCatalogParser_InvalidHeader(t *testing.T) {
	input := `Standort,Vorlauf,Normheizlast,COP
4,55,4500,3.4`

	_, err := (&CatalogParser{}).Parse(strings.NewReader(input))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Vorlauftemperatur")
}

func TestCatalogParser_EmptyInput(t *testing.T) {
	_, err := (&CatalogParser{}).Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCatalogParser_SampleFile(t *testing.T) {
	f, err := os.Open("../../testdata/catalog_sample.csv")
	require.NoError(t, err)
	defer f.Close()

	ratings, err := (&CatalogParser{}).Parse(f)
	require.NoError(t, err)
	// 8 rows, one with a broken capacity.
	require.Len(t, ratings, 7)
	assert.Equal(t, "Aero 40", ratings[0].Model)
	assert.Equal(t, 1, ratings[len(ratings)-1].Location)
}
