// Package validation tracks per-field validity for the client's forms.
// It is pure and synchronous: no I/O, idempotent per invocation.
package validation

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"
)

// urlPattern accepts http(s) URLs, the only link shape the service stores.
var urlPattern = regexp.MustCompile(`^https?://\S+\.\S+`)

// Rule is the constraint set for a single field.
type Rule struct {
	Required   bool
	MinLen     int
	MaxLen     int
	Pattern    *regexp.Regexp
	PatternMsg string
}

// URLRule returns the rule used for image and avatar links.
func URLRule() Rule {
	return Rule{
		Required:   true,
		Pattern:    urlPattern,
		PatternMsg: "must be a valid http(s) URL",
	}
}

// TextRule returns a required text rule with length bounds.
func TextRule(minLen, maxLen int) Rule {
	return Rule{Required: true, MinLen: minLen, MaxLen: maxLen}
}

// check validates value against the rule and returns an error message,
// empty when valid.
func (r Rule) check(value string) string {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		if r.Required {
			return "this field is required"
		}
		return ""
	}
	if r.MinLen > 0 && n < r.MinLen {
		return fmt.Sprintf("must be at least %d characters", r.MinLen)
	}
	if r.MaxLen > 0 && n > r.MaxLen {
		return fmt.Sprintf("must be at most %d characters", r.MaxLen)
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		if r.PatternMsg != "" {
			return r.PatternMsg
		}
		return "invalid value"
	}
	return ""
}

// FieldSpec names a field and its rule.
type FieldSpec struct {
	Name string
	Rule Rule
}

type fieldState struct {
	rule   Rule
	value  string
	valid  bool
	errMsg string
}

func (fs *fieldState) revalidate(showError bool) {
	msg := fs.rule.check(fs.value)
	fs.valid = msg == ""
	if showError {
		fs.errMsg = msg
	} else {
		fs.errMsg = ""
	}
}

// Form tracks validity per field. The overall Valid flag is always derived
// as the AND of the field validities; it is never stored independently.
// A freshly created or reset form is pristine: no error messages and the
// submit affordance disabled until an input changes.
type Form struct {
	mu       sync.RWMutex
	order    []string
	fields   map[string]*fieldState
	pristine bool
}

// NewForm creates a form in the reset state.
func NewForm(specs ...FieldSpec) *Form {
	f := &Form{fields: make(map[string]*fieldState), pristine: true}
	for _, s := range specs {
		f.order = append(f.order, s.Name)
		fs := &fieldState{rule: s.Rule}
		fs.revalidate(false)
		f.fields[s.Name] = fs
	}
	return f
}

// Set records an input change: the field is revalidated, its error message
// updated, and the form leaves the pristine state. Unknown fields are
// ignored.
func (f *Form) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fs, ok := f.fields[name]
	if !ok {
		return
	}
	fs.value = value
	fs.revalidate(true)
	f.pristine = false
}

// Populate seeds field values without surfacing errors or leaving the
// pristine state; used when a form opens prefilled with current data.
func (f *Form) Populate(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, value := range values {
		if fs, ok := f.fields[name]; ok {
			fs.value = value
			fs.revalidate(false)
		}
	}
}

// FieldError returns the field's error message, empty when valid or not
// yet edited.
func (f *Form) FieldError(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if fs, ok := f.fields[name]; ok {
		return fs.errMsg
	}
	return ""
}

// Valid reports whether submission may proceed: every field valid and at
// least one input change since the last reset.
func (f *Form) Valid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.pristine {
		return false
	}
	for _, fs := range f.fields {
		if !fs.valid {
			return false
		}
	}
	return true
}

// Reset clears all error messages and disables the submit affordance until
// the next input change. Used whenever a form is freshly opened and after
// a successful submission that clears its fields.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pristine = true
	for _, fs := range f.fields {
		fs.errMsg = ""
	}
}

// Fields returns the field names in declaration order.
func (f *Form) Fields() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}
