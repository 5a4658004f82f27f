// Package document reads and writes the small JSON documents stored in
// quest requirements, rewards and progress fields.
//
// The accessors are permissive: a missing key, a value of the wrong type, or
// a malformed document reads as absent or zero and never as an error. Gates
// built on Count therefore fail closed. Lookups address top-level keys only.
package document

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Empty is the empty document.
const Empty = "{}"

// Raw is JSON text that With embeds verbatim instead of quoting.
type Raw string

// Entry is one key/count pair of a flat counter object.
type Entry struct {
	Key   string
	Count uint32
}

func lookup(doc, key string) gjson.Result {
	return gjson.Get(doc, gjson.Escape(key))
}

// digits parses the leading run of ASCII digits of a numeric value.
func digits(v gjson.Result) (uint32, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	raw := v.Raw
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(raw[:end], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Number returns the unsigned integer stored under key. It reports false
// when the key is absent or its value does not start with a digit.
func Number(doc, key string) (uint32, bool) {
	return digits(lookup(doc, key))
}

// Count is Number with zero on a miss.
func Count(doc, key string) uint32 {
	n, _ := Number(doc, key)
	return n
}

// Object returns the raw text of the object stored under key.
func Object(doc, key string) (string, bool) {
	v := lookup(doc, key)
	if !v.IsObject() {
		return "", false
	}
	return v.Raw, true
}

// Objects returns the raw text of every object element of the array stored
// under key. Elements that are not objects are skipped.
func Objects(doc, key string) []string {
	v := lookup(doc, key)
	if !v.IsArray() {
		return nil
	}
	var out []string
	for _, el := range v.Array() {
		if el.IsObject() {
			out = append(out, el.Raw)
		}
	}
	return out
}

// String returns the string stored under key.
func String(doc, key string) (string, bool) {
	v := lookup(doc, key)
	if v.Type != gjson.String {
		return "", false
	}
	return v.Str, true
}

// Counts returns the key/count pairs of a flat object in document order.
// Values that are not numbers count as zero.
func Counts(obj string) []Entry {
	v := gjson.Parse(obj)
	if !v.IsObject() {
		return nil
	}
	var out []Entry
	v.ForEach(func(k, val gjson.Result) bool {
		n, _ := digits(val)
		out = append(out, Entry{Key: k.String(), Count: n})
		return true
	})
	return out
}

// Normalize returns doc when it is an object, Empty for blank input, and
// reports false for anything else.
func Normalize(doc string) (string, bool) {
	if strings.TrimSpace(doc) == "" {
		return Empty, true
	}
	if !gjson.Valid(doc) || !gjson.Parse(doc).IsObject() {
		return doc, false
	}
	return doc, true
}

// SetNumber writes value under key, replacing an existing value in place or
// appending a new pair before the closing brace. Blank input is treated as
// Empty; anything that is not an object is returned unchanged.
func SetNumber(doc, key string, value uint32) string {
	return With(doc, key, value)
}

// With writes an arbitrary JSON value under key with the same rules as
// SetNumber.
func With(doc, key string, value any) string {
	doc, ok := Normalize(doc)
	if !ok {
		return doc
	}
	var (
		out string
		err error
	)
	if raw, isRaw := value.(Raw); isRaw {
		out, err = sjson.SetRaw(doc, gjson.Escape(key), string(raw))
	} else {
		out, err = sjson.Set(doc, gjson.Escape(key), value)
	}
	if err != nil {
		return doc
	}
	return out
}

// Increment adds delta to the counter under key, treating a miss as zero.
// The sum saturates at the largest uint32.
func Increment(doc, key string, delta uint32) string {
	cur := Count(doc, key)
	next := cur + delta
	if next < cur {
		next = ^uint32(0)
	}
	return SetNumber(doc, key, next)
}

// Raise writes value under key when it exceeds the stored counter. A miss
// counts as zero, so raising to zero never adds a key.
func Raise(doc, key string, value uint32) string {
	if value <= Count(doc, key) {
		return doc
	}
	return SetNumber(doc, key, value)
}
