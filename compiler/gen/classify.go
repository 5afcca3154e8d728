package gen

import (
	"regexp"

	"github.com/syssam/protogen/compiler/load"
)

// Tag classifies a type definition and selects the interface the
// generated type is asserted against.
type Tag int

const (
	// TagRecord is a plain protocol record.
	TagRecord Tag = iota
	// TagEnum is an enumeration.
	TagEnum
	// TagSearchRequest is a paginated search request record.
	TagSearchRequest
	// TagSearchResponse is a paginated search response record.
	TagSearchResponse
)

// String returns a human-readable tag name.
func (t Tag) String() string {
	switch t {
	case TagEnum:
		return "enum"
	case TagSearchRequest:
		return "search request"
	case TagSearchResponse:
		return "search response"
	default:
		return "record"
	}
}

var (
	searchRequestRE  = regexp.MustCompile(`Search.+Request`)
	searchResponseRE = regexp.MustCompile(`Search.+Response`)
)

// Classify tags a definition by kind and name pattern. Record names
// matching Search.+Request or Search.+Response are classified as the
// corresponding search pair member; everything else is a plain
// record or an enum.
func Classify(s *load.Schema) Tag {
	switch {
	case s.Kind == load.KindEnum:
		return TagEnum
	case searchRequestRE.MatchString(s.Name):
		return TagSearchRequest
	case searchResponseRE.MatchString(s.Name):
		return TagSearchResponse
	default:
		return TagRecord
	}
}
