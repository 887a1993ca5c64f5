package weather

// solarRadiationFloor is the raw reading below which the sensor value is
// treated as noise and counted as zero.
const solarRadiationFloor = 100

// ConvertWindSpeed converts m/s to km/h.
func ConvertWindSpeed(raw float64) float64 {
	return raw * 3.6
}

// ConvertSolarRadiation converts a raw 10-minute W/m² reading to kWh/m².
// Raw values below 100 count as zero.
func ConvertSolarRadiation(raw float64) float64 {
	if raw < solarRadiationFloor {
		raw = 0
	}
	return (raw * (1.0 / 6.0)) / 1000.0
}
