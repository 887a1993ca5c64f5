package weather

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

var errNoRecords = errors.New("no record collection in payload")

// ParseResult is the outcome of decoding one yearly payload.
type ParseResult struct {
	Records []DailyRecord
	Format  Format
	// Skipped counts records dropped because a reading was not numeric.
	Skipped int
}

type decoder struct {
	format Format
	decode func(data []byte) ([]rawRecord, error)
}

// decoders run in order; the first one that yields a record collection wins.
var decoders = []decoder{
	{format: FormatXML, decode: decodeXML},
	{format: FormatJSON, decode: decodeJSON},
}

// ParseRecords decodes a yearly payload. XML is attempted first and JSON is
// attempted on the same bytes when the XML structure is missing or malformed.
func ParseRecords(data []byte) (ParseResult, error) {
	var errs []error
	for _, d := range decoders {
		raw, err := d.decode(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.format.Name, err))
			continue
		}

		res := ParseResult{
			Records: make([]DailyRecord, 0, len(raw)),
			Format:  d.format,
		}
		for _, r := range raw {
			rec, err := r.toDaily()
			if err != nil {
				res.Skipped++
				continue
			}
			res.Records = append(res.Records, rec)
		}
		return res, nil
	}
	return ParseResult{}, fmt.Errorf("%w: %w", ErrParse, errors.Join(errs...))
}

// FillBuckets keeps the records whose month lies in months, converts their
// readings and appends them to the matching bucket.
func FillBuckets(records []DailyRecord, months MonthRange) Buckets {
	buckets := NewBuckets()
	for _, r := range records {
		m := r.Date.Month
		if m < 1 || m > MonthsPerYear || !months.Contains(m) {
			continue
		}
		b := &buckets[m-1]
		b.WindSpeed = append(b.WindSpeed, ConvertWindSpeed(r.WindSpeed))
		b.SolarRadiation = append(b.SolarRadiation, ConvertSolarRadiation(r.SolarRadiation))
	}
	return buckets
}

// ParseBuckets decodes data and fills the month buckets for the given range.
func ParseBuckets(data []byte, months MonthRange) (Buckets, ParseResult, error) {
	res, err := ParseRecords(data)
	if err != nil {
		return Buckets{}, res, err
	}
	return FillBuckets(res.Records, months), res, nil
}

// reading holds the textual form of a numeric field. XML delivers element
// text; JSON may deliver either a number or a numeric string.
type reading string

func (r *reading) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = reading(s)
	default:
		*r = reading(b)
	}
	return nil
}

// float parses the reading. An empty value counts as zero.
func (r reading) float() (float64, error) {
	s := strings.TrimSpace(string(r))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

type rawRecord struct {
	Date           string  `xml:"date" json:"date"`
	WindSpeed      reading `xml:"ws" json:"ws"`
	SolarRadiation reading `xml:"sr" json:"sr"`
}

func (r rawRecord) toDaily() (DailyRecord, error) {
	ws, err := r.WindSpeed.float()
	if err != nil {
		return DailyRecord{}, fmt.Errorf("wind speed %q: %w", r.WindSpeed, err)
	}
	sr, err := r.SolarRadiation.float()
	if err != nil {
		return DailyRecord{}, fmt.Errorf("solar radiation %q: %w", r.SolarRadiation, err)
	}
	return DailyRecord{
		Date:           parseDate(r.Date),
		WindSpeed:      ws,
		SolarRadiation: sr,
	}, nil
}

// parseDate splits "D/M/Y". Missing or non-numeric components stay zero,
// which keeps the record out of every month range.
func parseDate(s string) Date {
	parts := strings.Split(strings.TrimSpace(s), "/")
	component := func(i int) int {
		if i >= len(parts) {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0
		}
		return n
	}
	return Date{Day: component(0), Month: component(1), Year: component(2)}
}

type xmlDocument struct {
	XMLName xml.Name    `xml:"weather"`
	Records []rawRecord `xml:"record"`
}

// decodeXML requires a <weather> root. A root without records is an empty
// collection, matching an empty JSON record array.
func decodeXML(data []byte) ([]rawRecord, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var doc xmlDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Records == nil {
		return []rawRecord{}, nil
	}
	return doc.Records, nil
}

// recordList accepts either an array of records or a single record object,
// the shape XML-to-JSON converters emit for one-element collections.
type recordList []rawRecord

func (l *recordList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '{':
		var r rawRecord
		if err := json.Unmarshal(b, &r); err != nil {
			return err
		}
		*l = recordList{r}
		return nil
	}
	var rs []rawRecord
	if err := json.Unmarshal(b, &rs); err != nil {
		return err
	}
	if rs == nil {
		rs = []rawRecord{}
	}
	*l = rs
	return nil
}

type jsonDocument struct {
	Weather *struct {
		Record recordList `json:"record"`
	} `json:"weather"`
}

func decodeJSON(data []byte) ([]rawRecord, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Weather == nil || doc.Weather.Record == nil {
		return nil, errNoRecords
	}
	return doc.Weather.Record, nil
}
