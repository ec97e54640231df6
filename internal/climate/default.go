package climate

import "heatpump_simulator/internal/model"

// Built-in values for the 15 German reference regions. Deployments with the
// licensed TRY table load it through ingest.ClimateParser instead.
// Columns: design temperature, gtz 15 °C, gtz 12 °C, gtz 10 °C.
var averageYear = [][4]float64{
	{-9.9, 3620, 2970, 2460},
	{-10.6, 3720, 3050, 2530},
	{-11.4, 3680, 3020, 2500},
	{-13.3, 3850, 3160, 2620},
	{-10.0, 3470, 2850, 2360},
	{-12.7, 3870, 3170, 2630},
	{-13.8, 4280, 3510, 2910},
	{-14.2, 4520, 3710, 3070},
	{-13.3, 3890, 3190, 2650},
	{-14.7, 4230, 3470, 2880},
	{-17.0, 5210, 4270, 3540},
	{-11.4, 3420, 2800, 2330},
	{-14.3, 3980, 3260, 2710},
	{-16.1, 4600, 3770, 3130},
	{-14.9, 4300, 3530, 2920},
}

var extremeWinterYear = [][4]float64{
	{-12.5, 4018, 3325, 2782},
	{-13.2, 4129, 3416, 2858},
	{-14.0, 4085, 3380, 2828},
	{-15.9, 4274, 3536, 2958},
	{-12.6, 3852, 3187, 2666},
	{-15.3, 4296, 3554, 2974},
	{-16.4, 4751, 3931, 3289},
	{-16.8, 5017, 4151, 3473},
	{-15.9, 4318, 3573, 2989},
	{-17.3, 4695, 3885, 3250},
	{-19.6, 5783, 4785, 4003},
	{-14.0, 3796, 3141, 2628},
	{-16.9, 4418, 3655, 3058},
	{-18.7, 5106, 4225, 3535},
	{-17.5, 4773, 3949, 3304},
}

// Default returns the built-in reference tables.
func Default() Reference {
	return Reference{
		Average:       mustTable(averageYear),
		ExtremeWinter: mustTable(extremeWinterYear),
	}
}

func mustTable(rows [][4]float64) *Table {
	zones := make([]model.ClimateZone, len(rows))
	for i, r := range rows {
		zones[i] = model.ClimateZone{
			Index:        i + 1,
			Name:         model.RegionName(i + 1),
			DesignTempC:  r[0],
			DegreeDays15: r[1],
			DegreeDays12: r[2],
			DegreeDays10: r[3],
		}
	}
	t, err := NewTable(zones)
	if err != nil {
		panic(err)
	}
	return t
}
