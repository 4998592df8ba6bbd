package primitives

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Canonicalize renders v into a deterministic byte form: map keys sorted,
// strings UTF-8 quoted, integers decimal, booleans true/false, nil as
// null. Every hash the kernel computes — snapshot hashes and the evidence
// hash chain alike — goes through this one function, so two callers never
// disagree about what "the same value" serializes to.
func Canonicalize(v any) []byte {
	var b strings.Builder
	writeCanonical(&b, v)
	return []byte(b.String())
}

// Hash returns the SHA-256 digest of v's canonical form, hex-encoded.
func Hash(v any) string {
	sum := sha256.Sum256(Canonicalize(v))
	return hex.EncodeToString(sum[:])
}

// HashBytes returns the SHA-256 digest of raw bytes, hex-encoded. Used to
// chain a hash against an already-canonicalized predecessor without
// re-canonicalizing it.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func writeCanonical(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case string:
		writeCanonicalString(b, t)
	case int:
		b.WriteString(strconv.Itoa(t))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	case []byte:
		writeCanonicalString(b, hex.EncodeToString(t))
	case []string:
		b.WriteByte('[')
		for i, s := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonicalString(b, s)
		}
		b.WriteByte(']')
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, e)
		}
		b.WriteByte(']')
	case map[string]any:
		writeCanonicalMap(b, t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = val
		}
		writeCanonicalMap(b, m)
	default:
		// Fallback for any type without a dedicated case: fmt's %v is
		// stable for a given Go value and deterministic across calls.
		writeCanonicalString(b, fmt.Sprintf("%v", t))
	}
}

func writeCanonicalMap(b *strings.Builder, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCanonicalString(b, k)
		b.WriteByte(':')
		writeCanonical(b, m[k])
	}
	b.WriteByte('}')
}

func writeCanonicalString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
