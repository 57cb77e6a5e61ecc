package qna

import (
	"net/url"
	"strconv"

	"quill/cmd/internal/fault"
)

const (
	// DefaultLimit applies when the caller omits "limit".
	DefaultLimit = 20

	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Page is a validated limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads "limit" and "offset" from query parameters. Omitted
// parameters take defaults; unparsable or negative values are malformed
// faults whose detail names the offending parameter.
func ParsePage(query url.Values) (Page, error) {
	const op = "qna.pagination"

	p := Page{Limit: DefaultLimit}

	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Page{}, fault.New(op, fault.ErrMalformed, "invalid limit parameter: "+strconv.Quote(raw))
		}
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if raw := query.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Page{}, fault.New(op, fault.ErrMalformed, "invalid offset parameter: "+strconv.Quote(raw))
		}
		p.Offset = n
	}

	return p, nil
}
