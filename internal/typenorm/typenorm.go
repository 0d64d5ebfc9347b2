// # internal/typenorm/typenorm.go
package typenorm

import "strings"

// Canonical is the closed set of type categories both sides normalize
// into before comparison.
type Canonical string

const (
	String  Canonical = "string"
	Number  Canonical = "number"
	Boolean Canonical = "boolean"
	Object  Canonical = "object"
	Unknown Canonical = "unknown"
)

// builtin maps lowercased raw tokens to their canonical category.
// Covers the textual, numeric and boolean spellings seen across the
// supported languages plus the common doc-prose ones.
var builtin = map[string]Canonical{
	"string": String, "str": String, "&str": String, "&string": String,
	"text": String, "char": String, "uuid": String,

	"number": Number, "integer": Number, "int": Number, "uint": Number,
	"i8": Number, "i16": Number, "i32": Number, "i64": Number, "i128": Number,
	"isize": Number, "u8": Number, "u16": Number, "u32": Number, "u64": Number,
	"u128": Number, "usize": Number, "f32": Number, "f64": Number,
	"float": Number, "float32": Number, "float64": Number, "double": Number,
	"int8": Number, "int16": Number, "int32": Number, "int64": Number,
	"uint8": Number, "uint16": Number, "uint32": Number, "uint64": Number,

	"boolean": Boolean, "bool": Boolean,

	"object": Object, "map": Object, "dict": Object, "struct": Object,
	"record": Object,

	"unknown": Unknown,
}

// Aliases is a caller-supplied extension of the built-in table; its
// entries win over the built-in ones. Keys are raw tokens, values are
// canonical category names. Invalid values fall back to Unknown.
type Aliases map[string]string

// Normalize maps a raw type token to its canonical category. Matching
// is case-insensitive and the function is idempotent: feeding a
// canonical name back in returns the same category. Tokens nobody
// recognizes normalize to Unknown, which never participates in a
// mismatch.
func Normalize(raw string, aliases Aliases) Canonical {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return Unknown
	}

	for alias, target := range aliases {
		if strings.ToLower(strings.TrimSpace(alias)) == token {
			return canonicalOf(target)
		}
	}

	if c, ok := builtin[token]; ok {
		return c
	}
	return Unknown
}

// Comparable reports whether two raw tokens can disagree at all: both
// must normalize to a known category.
func Comparable(a, b string, aliases Aliases) bool {
	return Normalize(a, aliases) != Unknown && Normalize(b, aliases) != Unknown
}

func canonicalOf(name string) Canonical {
	switch Canonical(strings.ToLower(strings.TrimSpace(name))) {
	case String:
		return String
	case Number:
		return Number
	case Boolean:
		return Boolean
	case Object:
		return Object
	default:
		return Unknown
	}
}
