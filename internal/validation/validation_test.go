package validation

import (
	"strings"
	"testing"
)

func newTestForm() *Form {
	return NewForm(
		FieldSpec{Name: "name", Rule: TextRule(2, 30)},
		FieldSpec{Name: "link", Rule: URLRule()},
	)
}

func TestNewForm_StartsDisabled(t *testing.T) {
	f := newTestForm()

	if f.Valid() {
		t.Error("fresh form must not be valid")
	}
	if f.FieldError("name") != "" {
		t.Errorf("fresh form must show no errors, got %q", f.FieldError("name"))
	}
}

func TestForm_ValidAfterAllFieldsSet(t *testing.T) {
	f := newTestForm()

	f.Set("name", "Lake Karelia")
	if f.Valid() {
		t.Error("form with one unset required field must not be valid")
	}

	f.Set("link", "https://example.com/lake.jpg")
	if !f.Valid() {
		t.Error("form with all fields valid must be valid")
	}
}

func TestForm_OverallEqualsAndOfFields(t *testing.T) {
	f := newTestForm()

	rules := map[string]Rule{"name": TextRule(2, 30), "link": URLRule()}
	values := map[string]string{"name": "", "link": ""}

	// Arbitrary edit sequence; after every edit the overall flag must equal
	// the AND of the per-field validities.
	edits := []struct{ field, value string }{
		{"name", "a"},
		{"name", "ab"},
		{"link", "not-a-url"},
		{"link", "https://pics.example.com/1.png"},
		{"name", strings.Repeat("x", 31)},
		{"name", "Winter"},
		{"link", ""},
		{"link", "http://example.org/2.jpg"},
		{"name", "Lakeside"},
	}

	for _, e := range edits {
		f.Set(e.field, e.value)
		values[e.field] = e.value

		want := true
		for name, value := range values {
			if rules[name].check(value) != "" {
				want = false
			}
		}
		if got := f.Valid(); got != want {
			t.Errorf("after Set(%q, %q): Valid()=%v, AND of field validities=%v", e.field, e.value, got, want)
		}
	}
}

func TestForm_ErrorMessages(t *testing.T) {
	f := newTestForm()

	f.Set("name", "")
	if f.FieldError("name") != "this field is required" {
		t.Errorf("unexpected required message: %q", f.FieldError("name"))
	}

	f.Set("name", "a")
	if got := f.FieldError("name"); got != "must be at least 2 characters" {
		t.Errorf("unexpected min-length message: %q", got)
	}

	f.Set("name", strings.Repeat("x", 40))
	if got := f.FieldError("name"); got != "must be at most 30 characters" {
		t.Errorf("unexpected max-length message: %q", got)
	}

	f.Set("link", "ftp://example.com/x.jpg")
	if got := f.FieldError("link"); got != "must be a valid http(s) URL" {
		t.Errorf("unexpected pattern message: %q", got)
	}

	f.Set("name", "Good name")
	if got := f.FieldError("name"); got != "" {
		t.Errorf("valid field must clear its error, got %q", got)
	}
}

func TestForm_ResetClearsErrorsAndDisablesSubmit(t *testing.T) {
	f := newTestForm()

	f.Set("name", "x")
	f.Set("link", "https://example.com/a.jpg")
	if f.FieldError("name") == "" {
		t.Fatal("expected an error before reset")
	}

	f.Reset()

	if f.FieldError("name") != "" {
		t.Error("reset must clear error messages")
	}
	if f.Valid() {
		t.Error("reset must disable submission")
	}
}

func TestForm_PopulateThenResetEnablesAfterOneEdit(t *testing.T) {
	// A form opened prefilled with valid values stays disabled until the
	// user edits something; a single edit then enables it.
	f := NewForm(
		FieldSpec{Name: "name", Rule: TextRule(2, 40)},
		FieldSpec{Name: "about", Rule: TextRule(2, 200)},
	)

	f.Populate(map[string]string{"name": "Marie Curie", "about": "Physicist"})
	f.Reset()

	if f.Valid() {
		t.Error("prefilled form must stay disabled until edited")
	}

	f.Set("name", "Marie Curie-Sklodowska")
	if !f.Valid() {
		t.Error("one valid edit over valid prefilled values must enable submission")
	}
}

func TestForm_UnknownFieldIgnored(t *testing.T) {
	f := newTestForm()
	f.Set("bogus", "value")
	if f.FieldError("bogus") != "" {
		t.Error("unknown field must not grow state")
	}
}

func TestRule_RuneCounting(t *testing.T) {
	f := NewForm(FieldSpec{Name: "name", Rule: TextRule(2, 4)})

	// 3 runes, more than 4 bytes
	f.Set("name", "ёлка")
	if f.FieldError("name") != "" {
		t.Errorf("length must count runes, got %q", f.FieldError("name"))
	}
}
