package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"sync"

	"go.trai.ch/zerr"
)

// TargetKind identifies the shape of an exports or imports value.
type TargetKind uint8

const (
	// TargetNull is an explicit JSON null.
	TargetNull TargetKind = iota
	// TargetString is a single path or specifier.
	TargetString
	// TargetArray is an ordered fallback list.
	TargetArray
	// TargetMap is a subpath or condition mapping. Key order is significant.
	TargetMap
	// TargetInvalid is a number or boolean. Raw holds its literal text.
	TargetInvalid
)

// String returns the string representation of the TargetKind.
func (k TargetKind) String() string {
	switch k {
	case TargetNull:
		return "null"
	case TargetString:
		return "string"
	case TargetArray:
		return "array"
	case TargetMap:
		return "map"
	default:
		return "invalid"
	}
}

// Target is a structured exports/imports value.
type Target struct {
	Kind    TargetKind
	Value   string
	Items   []Target
	Entries []TargetEntry
	Raw     string
}

// TargetEntry is a single key of a TargetMap.
type TargetEntry struct {
	Key   string
	Value Target
}

// Get returns the value stored under key in a TargetMap.
func (t Target) Get(key string) (Target, bool) {
	for _, e := range t.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Target{}, false
}

// Keys returns the keys of a TargetMap in document order.
func (t Target) Keys() []string {
	keys := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		keys[i] = e.Key
	}
	return keys
}

// ParseTarget parses raw JSON into a Target, preserving object key order.
// A key repeated within one object keeps its first position and takes the last value.
func ParseTarget(raw []byte) (Target, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	t, err := decodeTarget(dec)
	if err != nil {
		return Target{}, errors.Join(ErrTargetParseFailed, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Target{}, zerr.Wrap(ErrTargetParseFailed, "trailing data after value")
	}

	return t, nil
}

func decodeTarget(dec *json.Decoder) (Target, error) {
	tok, err := dec.Token()
	if err != nil {
		return Target{}, err
	}

	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return decodeArray(dec)
		}
		if v == '{' {
			return decodeObject(dec)
		}
		return Target{}, zerr.With(zerr.New("unexpected delimiter"), "delimiter", v.String())
	case string:
		return Target{Kind: TargetString, Value: v}, nil
	case nil:
		return Target{Kind: TargetNull}, nil
	case json.Number:
		return Target{Kind: TargetInvalid, Raw: v.String()}, nil
	case bool:
		return Target{Kind: TargetInvalid, Raw: strconv.FormatBool(v)}, nil
	default:
		return Target{}, zerr.New("unexpected token")
	}
}

func decodeArray(dec *json.Decoder) (Target, error) {
	items := make([]Target, 0)
	for dec.More() {
		item, err := decodeTarget(dec)
		if err != nil {
			return Target{}, err
		}
		items = append(items, item)
	}
	// Closing ']'.
	if _, err := dec.Token(); err != nil {
		return Target{}, err
	}
	return Target{Kind: TargetArray, Items: items}, nil
}

func decodeObject(dec *json.Decoder) (Target, error) {
	entries := make([]TargetEntry, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Target{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Target{}, zerr.New("object key is not a string")
		}

		value, err := decodeTarget(dec)
		if err != nil {
			return Target{}, err
		}

		if i, dup := index[key]; dup {
			entries[i].Value = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, TargetEntry{Key: key, Value: value})
	}
	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return Target{}, err
	}
	return Target{Kind: TargetMap, Entries: entries}, nil
}

// LazyTarget defers parsing of an exports or imports field until first access.
// The raw bytes are parsed at most once; every later call returns the same Target.
type LazyTarget struct {
	raw   []byte
	value func() (Target, error)
}

// NewLazyTarget wraps raw JSON for deferred parsing. raw must not be modified afterwards.
func NewLazyTarget(raw []byte) *LazyTarget {
	l := &LazyTarget{raw: raw}
	l.value = sync.OnceValues(func() (Target, error) {
		return ParseTarget(l.raw)
	})
	return l
}

// Raw returns the unparsed JSON text.
func (l *LazyTarget) Raw() []byte {
	return l.raw
}

// Value materializes the target, parsing it on the first call.
func (l *LazyTarget) Value() (Target, error) {
	return l.value()
}
