package weather

// NoData marks a month without samples. It is distinct from a measured zero.
const NoData = -1.0

// MonthsPerYear is the fixed number of buckets and summaries per request.
const MonthsPerYear = 12

// Format describes one supported yearly record encoding.
type Format struct {
	Name string
	Ext  string
}

var (
	FormatXML  = Format{Name: "xml", Ext: ".xml"}
	FormatJSON = Format{Name: "json", Ext: ".json"}
)

// SupportedFormats lists formats in preference order. Remote attempts and local
// cache lookups both follow this order.
var SupportedFormats = []Format{FormatXML, FormatJSON}

// Date is a day/month/year triple as written in the record files ("D/M/Y").
// Components that could not be parsed are left at zero.
type Date struct {
	Day   int
	Month int
	Year  int
}

// DailyRecord is one parsed reading, still in raw sensor units.
type DailyRecord struct {
	Date           Date
	WindSpeed      float64
	SolarRadiation float64
}

// MonthBucket accumulates converted samples for one calendar month.
type MonthBucket struct {
	Month          int // 0-11
	WindSpeed      []float64
	SolarRadiation []float64
}

// Buckets holds one bucket per calendar month, indexed 0-11.
type Buckets [MonthsPerYear]MonthBucket

// NewBuckets returns 12 empty buckets with their month indices set.
func NewBuckets() Buckets {
	var b Buckets
	for i := range b {
		b[i].Month = i
	}
	return b
}

// MonthSummary is the per-month result sent to the dashboard.
type MonthSummary struct {
	WindSpeedAverage    float64 `json:"windSpeedAverage"`
	SolarRadiationTotal float64 `json:"solarRadiationTotal"`
}

// MonthRange is an inclusive 1-based month filter. Ordering is not enforced;
// a range with Start > End simply matches nothing.
type MonthRange struct {
	Start int
	End   int
}

// Contains reports whether a 1-based month lies in the range.
func (r MonthRange) Contains(month int) bool {
	return month >= r.Start && month <= r.End
}

// Query is a validated pipeline request.
type Query struct {
	Year   int
	Months MonthRange
}
