package eventlog

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/wippyai/vk-perflayers/errors"
)

// Record is one parsed row of the secondary event log:
//
//	event_type,timestamp_nanos[,payload...]
type Record struct {
	Timestamp time.Time
	Type      string
	Payload   []string
}

// ReadRecords parses an event log. Quoted cells such as "[0x1,0x2]" are
// returned unquoted as a single payload field.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, errors.ParseFailed("event log row", err)
		}
		rec, err := parseRecord(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return records, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("line %d", line).
				Cause(err).
				Build()
		}
		records = append(records, rec)
	}
}

func parseRecord(row []string) (Record, error) {
	if len(row) < 2 {
		return Record{}, errors.InvalidInput(errors.PhaseParse, "expected event type and timestamp")
	}
	nanos, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Type:      row[0],
		Timestamp: time.Unix(0, nanos),
		Payload:   row[2:],
	}, nil
}

// TypeSummary aggregates the records of one event type.
type TypeSummary struct {
	First time.Time
	Last  time.Time
	Type  string
	Count int
}

// Span returns the time between the first and last record.
func (s TypeSummary) Span() time.Duration {
	return s.Last.Sub(s.First)
}

// Summarize groups records by type, sorted by type name.
func Summarize(records []Record) []TypeSummary {
	byType := make(map[string]*TypeSummary)
	for _, r := range records {
		s, ok := byType[r.Type]
		if !ok {
			s = &TypeSummary{Type: r.Type, First: r.Timestamp, Last: r.Timestamp}
			byType[r.Type] = s
		}
		s.Count++
		if r.Timestamp.Before(s.First) {
			s.First = r.Timestamp
		}
		if r.Timestamp.After(s.Last) {
			s.Last = r.Timestamp
		}
	}

	out := make([]TypeSummary, 0, len(byType))
	for _, s := range byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Filter returns the records of the given type.
func Filter(records []Record, eventType string) []Record {
	var out []Record
	for _, r := range records {
		if r.Type == eventType {
			out = append(out, r)
		}
	}
	return out
}
