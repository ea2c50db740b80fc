package models

// Result reports whether an update or delete found its target record.
// A NotFound mutation leaves the collection unchanged.
type Result int

const (
	NotFound Result = iota
	Found
)

func (r Result) String() string {
	if r == Found {
		return "found"
	}
	return "not_found"
}
