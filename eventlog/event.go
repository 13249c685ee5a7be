package eventlog

import (
	"strings"
	"time"
)

// LogLevel orders events by importance. Loggers may drop low events.
type LogLevel uint8

const (
	LevelLow LogLevel = iota
	LevelHigh
)

func (l LogLevel) String() string {
	if l == LevelHigh {
		return "high"
	}
	return "low"
}

// Event is a named occurrence with attributes in declaration order.
type Event struct {
	Timestamp  time.Time
	Name       string
	Attributes []Attribute
	Level      LogLevel
}

// NewEvent creates an event stamped with ts.
func NewEvent(name string, level LogLevel, ts time.Time, attrs ...Attribute) *Event {
	return &Event{
		Name:       name,
		Level:      level,
		Timestamp:  ts,
		Attributes: attrs,
	}
}

// Attr returns the first attribute called name.
func (e *Event) Attr(name string) (Attribute, bool) {
	for _, a := range e.Attributes {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// ToCommonLogStr renders e in the common log format:
//
//	event_name,attr1:value1,attr2:value2,...
func ToCommonLogStr(e *Event) string {
	var b strings.Builder
	b.WriteString(e.Name)
	for _, a := range e.Attributes {
		b.WriteByte(',')
		b.WriteString(a.Name())
		b.WriteByte(':')
		b.WriteString(a.String())
	}
	return b.String()
}

// ToCSV renders the attribute values of e as one CSV row.
func ToCSV(e *Event) string {
	var b strings.Builder
	for i, a := range e.Attributes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	return b.String()
}
