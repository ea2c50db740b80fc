// internal/app/system/inputval/inputval.go
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// FieldError is one failed rule. Field is the JSON path of the value,
// e.g. "emergencyContact.phone".
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects validation failures in struct field order.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Map returns field -> message, keeping the first message per field.
func (r *Result) Map() map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Add appends a failure that was found outside struct tags.
func (r *Result) Add(field, tag, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Tag: tag, Message: message})
}

// Validate checks s against its `validate` tags. Messages use the field's
// `label` tag, falling back to the Go field name.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Add("", "invalid", err.Error())
		return res
	}
	root := reflect.TypeOf(s)
	for root.Kind() == reflect.Pointer {
		root = root.Elem()
	}
	for _, fe := range verrs {
		sf, _ := lookupField(root, fe.StructNamespace())
		res.Add(jsonPath(fe.Namespace()), fe.Tag(), message(fe, sf))
	}
	return res
}

// jsonPath drops the root type name from a namespace.
func jsonPath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return rest
}

func lookupField(root reflect.Type, structNS string) (reflect.StructField, bool) {
	parts := strings.Split(structNS, ".")
	t := root
	var sf reflect.StructField
	for _, p := range parts[1:] {
		if i := strings.IndexByte(p, '['); i >= 0 {
			p = p[:i]
		}
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}
		f, ok := t.FieldByName(p)
		if !ok {
			return reflect.StructField{}, false
		}
		sf, t = f, f.Type
	}
	return sf, true
}

func label(fe validator.FieldError, sf reflect.StructField) string {
	if l := sf.Tag.Get("label"); l != "" {
		return l
	}
	return fe.StructField()
}

// bounds returns the params of the named rules on a field's validate tag.
func bounds(sf reflect.StructField, rules ...string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(sf.Tag.Get("validate"), ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		for _, r := range rules {
			if k == r {
				out[k] = v
			}
		}
	}
	return out
}

func message(fe validator.FieldError, sf reflect.StructField) string {
	l := label(fe, sf)
	kind := fe.Kind()
	if kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map {
		switch fe.Tag() {
		case "required", "min":
			return "Select at least one " + strings.ToLower(l)
		}
	}
	switch fe.Tag() {
	case "required", "required_unless", "required_if":
		return l + " is required"
	case "emailaddr", "email":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number"
	case "httpurl", "url":
		return "Please enter a valid web address"
	case "oneof":
		return "Please select a valid " + strings.ToLower(l)
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", l, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", l, groupDigits(fe.Param()))
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", l, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", l, groupDigits(fe.Param()))
	case "gte", "lte":
		b := bounds(sf, "gte", "lte")
		if lo, hi := b["gte"], b["lte"]; lo != "" && hi != "" {
			return fmt.Sprintf("%s must be between %s and %s", l, groupDigits(lo), groupDigits(hi))
		}
		if fe.Tag() == "gte" {
			return fmt.Sprintf("%s must be at least %s", l, groupDigits(fe.Param()))
		}
		return fmt.Sprintf("%s must be at most %s", l, groupDigits(fe.Param()))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", l, groupDigits(fe.Param()))
	case "lt":
		return fmt.Sprintf("%s must be less than %s", l, groupDigits(fe.Param()))
	}
	return l + " is invalid"
}

// groupDigits inserts thousands separators into an integer string.
func groupDigits(s string) string {
	if len(s) <= 3 || strings.ContainsAny(s, ".eE") {
		return s
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

/*─────────────────────────────────────────────────────────────────────────────*
| Single-value checks                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// IsValidEmail accepts a bare addr-spec: no display name, no spaces, no
// leading, trailing or doubled dots in either part.
func IsValidEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t<>") || strings.Count(s, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	for _, part := range []string{local, domain} {
		if part == "" || strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)

// IsValidPhone accepts an optional leading + followed by at least ten
// digits, spaces, dashes or parentheses.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidHTTPURL reports whether s (trimmed) is an absolute http(s) URL
// with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
