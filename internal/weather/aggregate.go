package weather

// Aggregate reduces 12 month buckets into 12 summaries, ordered by calendar month.
// Wind speed is averaged and solar radiation summed; an empty sample sequence
// yields NoData.
func Aggregate(buckets Buckets) []MonthSummary {
	summaries := make([]MonthSummary, MonthsPerYear)
	for i, b := range buckets {
		summaries[i] = MonthSummary{
			WindSpeedAverage:    average(b.WindSpeed),
			SolarRadiationTotal: total(b.SolarRadiation),
		}
	}
	return summaries
}

func sum(samples []float64) float64 {
	var s float64
	for _, v := range samples {
		s += v
	}
	return s
}

func average(samples []float64) float64 {
	if len(samples) == 0 {
		return NoData
	}
	return sum(samples) / float64(len(samples))
}

func total(samples []float64) float64 {
	if len(samples) == 0 {
		return NoData
	}
	return sum(samples)
}
