// # internal/typenorm/typenorm_test.go
package typenorm

import "testing"

func TestNormalizeBuiltins(t *testing.T) {
	cases := []struct {
		raw  string
		want Canonical
	}{
		{"string", String},
		{"str", String},
		{"&str", String},
		{"String", String},
		{"uuid", String},
		{"i32", Number},
		{"u64", Number},
		{"usize", Number},
		{"f64", Number},
		{"Integer", Number},
		{"int64", Number},
		{"bool", Boolean},
		{"Boolean", Boolean},
		{"dict", Object},
		{"struct", Object},
		{"MyCustomType", Unknown},
		{"", Unknown},
		{"  ", Unknown},
	}

	for _, c := range cases {
		if got := Normalize(c.raw, nil); got != c.want {
			t.Errorf("Normalize(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, canonical := range []Canonical{String, Number, Boolean, Object, Unknown} {
		if got := Normalize(string(canonical), nil); got != canonical {
			t.Errorf("Normalize(%q) = %s, expected the same category back", canonical, got)
		}
	}
}

func TestNormalizeAliases(t *testing.T) {
	aliases := Aliases{
		"MyID":   "string",
		"Amount": "number",
		"int":    "string", // overrides the built-in mapping
	}

	if got := Normalize("myid", aliases); got != String {
		t.Errorf("alias myid = %s, want string", got)
	}
	if got := Normalize("AMOUNT", aliases); got != Number {
		t.Errorf("alias AMOUNT = %s, want number", got)
	}
	if got := Normalize("int", aliases); got != String {
		t.Errorf("alias should win over built-in, got %s", got)
	}
	if got := Normalize("Amount", Aliases{"Amount": "bogus"}); got != Unknown {
		t.Errorf("invalid alias target = %s, want unknown", got)
	}
}

func TestComparable(t *testing.T) {
	if !Comparable("str", "Integer", nil) {
		t.Error("str vs Integer should be comparable")
	}
	if Comparable("str", "MyCustomType", nil) {
		t.Error("an unknown side must not be comparable")
	}
	if Comparable("", "i32", nil) {
		t.Error("an empty side must not be comparable")
	}
}
