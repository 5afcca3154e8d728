package gen

import (
	"regexp"
	"sort"
	"strings"

	"github.com/syssam/protogen/protocol"
)

// searchObjectRE captures the object name shared by a search
// request/response pair.
var searchObjectRE = regexp.MustCompile(`Search(.+)Request`)

// Endpoints pairs the classified search request and response types
// and derives the POST endpoint table. Both name lists are sorted
// independently before pairing; by the protocol's naming convention
// the i-th request and i-th response then share the same object name.
// The table is sorted by URL.
func (g *Graph) Endpoints() []protocol.Endpoint {
	var requests, responses []string
	for _, t := range g.Nodes {
		switch t.Tag {
		case TagSearchRequest:
			requests = append(requests, t.Name)
		case TagSearchResponse:
			responses = append(responses, t.Name)
		}
	}
	sort.Strings(requests)
	sort.Strings(responses)

	n := len(requests)
	if len(responses) < n {
		n = len(responses)
	}
	endpoints := make([]protocol.Endpoint, 0, n)
	for i := 0; i < n; i++ {
		m := searchObjectRE.FindStringSubmatch(requests[i])
		if m == nil {
			continue
		}
		endpoints = append(endpoints, protocol.Endpoint{
			URL:      "/" + strings.ToLower(m[1]) + "/search",
			Request:  requests[i],
			Response: responses[i],
		})
	}
	sort.Slice(endpoints, func(i, j int) bool { return endpoints[i].URL < endpoints[j].URL })
	return endpoints
}
