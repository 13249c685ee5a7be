package eventlog

import (
	"strconv"
	"strings"
	"time"

	"github.com/wippyai/vk-perflayers/internal/csvline"
	"github.com/wippyai/vk-perflayers/shaderhash"
	"github.com/wippyai/vk-perflayers/timing"
)

// AttrType identifies the value type of an Attribute.
type AttrType uint8

const (
	AttrInt64 AttrType = iota
	AttrString
	AttrBool
	AttrDuration
	AttrTimestamp
	AttrHash
	AttrHashVector
	AttrInt64Vector
)

var attrTypeNames = [...]string{
	AttrInt64:       "int64",
	AttrString:      "string",
	AttrBool:        "bool",
	AttrDuration:    "duration",
	AttrTimestamp:   "timestamp",
	AttrHash:        "hash",
	AttrHashVector:  "hash_vector",
	AttrInt64Vector: "int64_vector",
}

func (t AttrType) String() string {
	if int(t) < len(attrTypeNames) {
		return attrTypeNames[t]
	}
	return "attr(" + strconv.Itoa(int(t)) + ")"
}

// Attribute is one named value of an Event.
type Attribute interface {
	Name() string
	Type() AttrType
	// String renders the value for log lines.
	String() string
}

type Int64Attr struct {
	Key   string
	Value int64
}

func Int64(key string, v int64) Int64Attr { return Int64Attr{Key: key, Value: v} }

func (a Int64Attr) Name() string   { return a.Key }
func (a Int64Attr) Type() AttrType { return AttrInt64 }
func (a Int64Attr) String() string { return strconv.FormatInt(a.Value, 10) }

type StringAttr struct {
	Key   string
	Value string
}

func String(key, v string) StringAttr { return StringAttr{Key: key, Value: v} }

func (a StringAttr) Name() string   { return a.Key }
func (a StringAttr) Type() AttrType { return AttrString }
func (a StringAttr) String() string { return a.Value }

type BoolAttr struct {
	Key   string
	Value bool
}

func Bool(key string, v bool) BoolAttr { return BoolAttr{Key: key, Value: v} }

func (a BoolAttr) Name() string   { return a.Key }
func (a BoolAttr) Type() AttrType { return AttrBool }
func (a BoolAttr) String() string { return strconv.FormatBool(a.Value) }

// DurationAttr renders as integer nanoseconds.
type DurationAttr struct {
	Key   string
	Value time.Duration
}

func Duration(key string, v time.Duration) DurationAttr { return DurationAttr{Key: key, Value: v} }

func (a DurationAttr) Name() string   { return a.Key }
func (a DurationAttr) Type() AttrType { return AttrDuration }
func (a DurationAttr) String() string { return strconv.FormatInt(int64(a.Value), 10) }

// TimestampAttr renders as nanoseconds since the Unix epoch.
type TimestampAttr struct {
	Key   string
	Value time.Time
}

func Timestamp(key string, v time.Time) TimestampAttr { return TimestampAttr{Key: key, Value: v} }

func (a TimestampAttr) Name() string   { return a.Key }
func (a TimestampAttr) Type() AttrType { return AttrTimestamp }
func (a TimestampAttr) String() string {
	return strconv.FormatInt(timing.ToUnixNanos(a.Value), 10)
}

type HashAttr struct {
	Key   string
	Value uint64
}

func Hash(key string, v uint64) HashAttr { return HashAttr{Key: key, Value: v} }

func (a HashAttr) Name() string   { return a.Key }
func (a HashAttr) Type() AttrType { return AttrHash }
func (a HashAttr) String() string { return shaderhash.ToString(a.Value) }

// HashVectorAttr renders as a quoted "[0x1,0x2]" cell.
type HashVectorAttr struct {
	Key   string
	Value shaderhash.HashVector
}

func HashVector(key string, v shaderhash.HashVector) HashVectorAttr {
	return HashVectorAttr{Key: key, Value: v}
}

func (a HashVectorAttr) Name() string   { return a.Key }
func (a HashVectorAttr) Type() AttrType { return AttrHashVector }
func (a HashVectorAttr) String() string {
	return csvline.Quote(shaderhash.VectorToString(a.Value))
}

// Int64VectorAttr renders as a quoted "[1,2]" cell.
type Int64VectorAttr struct {
	Key   string
	Value []int64
}

func Int64Vector(key string, v []int64) Int64VectorAttr { return Int64VectorAttr{Key: key, Value: v} }

func (a Int64VectorAttr) Name() string   { return a.Key }
func (a Int64VectorAttr) Type() AttrType { return AttrInt64Vector }
func (a Int64VectorAttr) String() string {
	parts := make([]string, len(a.Value))
	for i, v := range a.Value {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return csvline.Quote("[" + strings.Join(parts, ",") + "]")
}
