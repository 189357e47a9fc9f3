package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/atech/cms/internal/shape"
)

// ID identifies a collection record. File and KV stores derive it from the
// creation time in milliseconds; the SQL store uses a sequence.
type ID int64

// ParseID parses a route parameter. Surrounding whitespace is ignored.
func ParseID(s string) (ID, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return ID(n), true
}

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// UnmarshalJSON accepts a number or a numeric string. Anything else
// decodes to zero.
func (id *ID) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*id = 0
	s := shape.IDString(v)
	if n, ok := ParseID(s); ok {
		*id = n
		return nil
	}
	// Large ids written by JavaScript may carry an exponent.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*id = ID(f)
	}
	return nil
}

// Flag is the canonical boolean. It decodes true, "true", 1 and "1" as true
// and anything else as false, and always encodes as a JSON boolean.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Flag(shape.Truthy(v))
	return nil
}

// Media is the canonical image reference: a single URL string. Any of the
// nested CMS image shapes decode to their URL; unknown shapes decode empty.
type Media string

func (m *Media) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	u, _ := shape.ImageURL(v)
	*m = Media(u)
	return nil
}

// MediaList is the canonical image list. It always encodes as an array.
type MediaList []string

func (l *MediaList) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*l = MediaList(shape.ImageURLs(v))
	return nil
}

func (l MediaList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Int is a tolerant integer. It decodes numbers and numeric strings
// ("5", "4.0"); anything else decodes to zero.
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*n = 0
	var s string
	switch x := v.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	default:
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		*n = Int(i)
	} else if f, err := strconv.ParseFloat(s, 64); err == nil {
		*n = Int(f)
	}
	return nil
}

// StringList is a tolerant list of strings. It decodes an array (numbers
// are kept as text, other elements dropped), a comma-separated string or
// a single string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*l = nil
	case string:
		out := StringList{}
		for _, part := range strings.Split(x, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*l = out
	case []any:
		out := make(StringList, 0, len(x))
		for _, item := range x {
			switch t := item.(type) {
			case string:
				out = append(out, t)
			case json.Number:
				out = append(out, t.String())
			}
		}
		*l = out
	default:
		*l = StringList{}
	}
	return nil
}

// Text is a tolerant string. Numbers and booleans decode to their literal
// text; objects, arrays and null decode empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*t = Text(x)
	case json.Number:
		*t = Text(x.String())
	case bool:
		*t = Text(strconv.FormatBool(x))
	default:
		*t = ""
	}
	return nil
}

// Timestamp is a tolerant time value. It decodes RFC 3339 (with or without
// zone), plain dates and Unix milliseconds; empty values decode to zero,
// which encodes as null.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// At wraps t, dropping the monotonic reading and sub-millisecond precision
// so the value survives every backend unchanged.
func At(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

// ParseTimestamp parses s with the tolerant layouts.
func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t.UTC()}, true
		}
	}
	return Timestamp{}, false
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*t = Timestamp{}
	switch x := v.(type) {
	case string:
		if ts, ok := ParseTimestamp(x); ok {
			*t = ts
		}
	case json.Number:
		if ms, err := x.Int64(); err == nil {
			*t = Timestamp{time.UnixMilli(ms).UTC()}
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// Ptr returns nil for the zero value, for nullable columns.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// TimestampFrom is the inverse of Ptr.
func TimestampFrom(p *time.Time) Timestamp {
	if p == nil {
		return Timestamp{}
	}
	return Timestamp{p.UTC()}
}
