// Package shape converts content records between the flat internal shape
// and the headless-CMS wrapper shape ({id, attributes} records, {data: ...}
// envelopes and nested image objects).
//
// Every function here accepts arbitrary decoded JSON. Values that match no
// known shape pass through or yield an empty result; nothing panics.
package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entity is the wrapped record shape: {"id": ..., "attributes": {...}}.
type Entity struct {
	ID         any            `json:"id"`
	Attributes map[string]any `json:"attributes"`
}

// Flatten turns {id, attributes: {...}} into {id, ...attributes}. Maps
// without an attributes object are returned unchanged. The id outside the
// attributes wins over one inside.
func Flatten(m map[string]any) map[string]any {
	attrs, ok := m["attributes"].(map[string]any)
	if !ok {
		return m
	}
	out := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	if id, ok := m["id"]; ok && id != nil {
		out["id"] = id
	}
	return out
}

// FlattenJSON is Flatten over raw JSON. Arrays are flattened element-wise;
// null and scalars pass through.
func FlattenJSON(raw []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	switch t := v.(type) {
	case map[string]any:
		v = Flatten(t)
	case []any:
		for i, item := range t {
			if m, ok := item.(map[string]any); ok {
				t[i] = Flatten(m)
			}
		}
	default:
		return raw, nil
	}
	return json.Marshal(v)
}

// ImageURL extracts a single URL from any of the known image shapes:
//
//	"/x.png"
//	{"url": "/x.png"}
//	{"attributes": {"url": "/x.png"}}
//	{"data": "/x.png"}
//	{"data": {"url": "/x.png"}}
//	{"data": {"attributes": {"url": "/x.png"}}}
//
// The boolean is false when no non-empty URL could be found.
func ImageURL(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case map[string]any:
		if data, ok := t["data"]; ok {
			return ImageURL(data)
		}
		if attrs, ok := t["attributes"].(map[string]any); ok {
			return ImageURL(attrs)
		}
		if u, ok := t["url"].(string); ok && u != "" {
			return u, true
		}
	}
	return "", false
}

// ImageURLs extracts a list of URLs from an images-like field: an array of
// image values, {"data": [...]}, {"data": <image>}, or a single image value.
// Entries that are not images are dropped. The result is never nil.
func ImageURLs(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if u, ok := ImageURL(item); ok {
				out = append(out, u)
			}
		}
	case map[string]any:
		if data, ok := t["data"]; ok {
			if list, ok := data.([]any); ok {
				return ImageURLs(list)
			}
		}
		if u, ok := ImageURL(t); ok {
			out = append(out, u)
		}
	case string:
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Truthy applies the tolerant boolean rule used for flags such as
// "featured": true, "true", 1 and "1" are true; everything else is false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case float64:
		return t == 1
	case json.Number:
		return t.String() == "1"
	case int:
		return t == 1
	case int64:
		return t == 1
	}
	return false
}

type wrapOptions struct {
	mediaEnvelope bool
}

// WrapOption tunes Wrap.
type WrapOption func(*wrapOptions)

// WithMediaEnvelope re-wraps "thumbnail" and "images" as {"data": ...}, or
// null when empty, for consumers written against the CMS media convention.
func WithMediaEnvelope() WrapOption {
	return func(o *wrapOptions) { o.mediaEnvelope = true }
}

// Wrap converts a flat record (any JSON-marshalable value carrying an "id")
// into an Entity. Every key of the record is kept in the attributes,
// including the id, and the image fields are copied explicitly so they
// survive even when null.
func Wrap(record any, opts ...WrapOption) (Entity, error) {
	var o wrapOptions
	for _, fn := range opts {
		fn(&o)
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return Entity{}, fmt.Errorf("encode record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return Entity{}, fmt.Errorf("record is not an object: %w", err)
	}
	if attrs == nil {
		return Entity{}, fmt.Errorf("record is null")
	}
	attrs = Flatten(attrs)

	thumb, images := attrs["thumbnail"], attrs["images"]
	if o.mediaEnvelope {
		thumb = envelope(thumb)
		images = envelope(images)
	}
	if _, ok := attrs["thumbnail"]; ok || o.mediaEnvelope {
		attrs["thumbnail"] = thumb
	}
	if _, ok := attrs["images"]; ok || o.mediaEnvelope {
		attrs["images"] = images
	}
	return Entity{ID: attrs["id"], Attributes: attrs}, nil
}

func envelope(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
	case []any:
		if len(t) == 0 {
			return nil
		}
	}
	return map[string]any{"data": v}
}

// Unenvelope extracts the payload of a {"data": ...} response body. A bare
// JSON array is accepted as its own payload. A body carrying "error"
// instead of "data" is reported as an error.
func Unenvelope(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil
	}
	var env struct {
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Error != "" {
		return nil, fmt.Errorf("api error: %s", env.Error)
	}
	if len(env.Data) == 0 {
		return json.RawMessage("null"), nil
	}
	return env.Data, nil
}

// IDString renders a decoded id (number or string) for comparisons with
// route parameters.
func IDString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
