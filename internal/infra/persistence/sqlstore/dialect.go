// Package sqlstore implements the table store over database/sql. The SQLite
// and Postgres backends share it and differ only in their Dialect.
package sqlstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aisumo/internal/schema"
)

// Dialect captures the placeholder syntax and value encodings of one engine.
type Dialect struct {
	Name string
	// Numbered selects $1, $2, ... placeholders instead of ?.
	Numbered bool
	// NativeBool stores booleans as BOOLEAN instead of 0/1 integers.
	NativeBool bool
	// NativeTime stores timestamps as TIMESTAMPTZ instead of RFC3339 text.
	NativeTime bool
	// JSONCast is appended to JSON placeholders (for example "::jsonb").
	JSONCast string
}

// textTime is a fixed-width RFC3339 layout so text timestamps sort correctly.
const textTime = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite stores JSON as text, booleans as 0/1 and timestamps as RFC3339 text.
var SQLite = Dialect{Name: "sqlite"}

// Postgres stores JSON as JSONB and uses native booleans and timestamps.
var Postgres = Dialect{Name: "postgres", Numbered: true, NativeBool: true, NativeTime: true, JSONCast: "::jsonb"}

func (d Dialect) placeholder(n int, kind schema.Kind) string {
	p := "?"
	if d.Numbered {
		p = "$" + strconv.Itoa(n)
	}
	if kind == schema.KindJSON {
		p += d.JSONCast
	}
	return p
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// encode converts a row value into its column representation.
func (d Dialect) encode(col schema.Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch col.Kind {
	case schema.KindJSON:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", col.Name, err)
		}
		return string(raw), nil
	case schema.KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("encode %s: expected bool, got %T", col.Name, v)
		}
		if d.NativeBool {
			return b, nil
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case schema.KindTime:
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("encode %s: expected time, got %T", col.Name, v)
		}
		if d.NativeTime {
			return t.UTC(), nil
		}
		return t.UTC().Format(textTime), nil
	default:
		return v, nil
	}
}

// decode normalizes a scanned value so every backend yields the same Go
// types: string, bool, int, []any and time.Time.
func decode(col schema.Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	switch col.Kind {
	case schema.KindJSON:
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		if s == "" {
			return nil, nil
		}
		var out any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", col.Name, err)
		}
		return out, nil
	case schema.KindBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case int64:
			return b != 0, nil
		case string:
			return strconv.ParseBool(b)
		}
	case schema.KindInt:
		switch n := v.(type) {
		case int64:
			return int(n), nil
		case int32:
			return int(n), nil
		case float64:
			return int(n), nil
		case string:
			return strconv.Atoi(n)
		}
	case schema.KindTime:
		switch t := v.(type) {
		case time.Time:
			return t.UTC(), nil
		case string:
			for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
				if parsed, err := time.Parse(layout, t); err == nil {
					return parsed.UTC(), nil
				}
			}
			return nil, fmt.Errorf("decode %s: unrecognised timestamp %q", col.Name, t)
		}
	default:
		return v, nil
	}
	return nil, fmt.Errorf("decode %s: unexpected %T", col.Name, v)
}
