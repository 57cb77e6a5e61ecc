package qna

import (
	"net/url"
	"strings"
	"testing"

	"quill/cmd/internal/fault"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Page
	}{
		{"defaults", "", Page{Limit: DefaultLimit, Offset: 0}},
		{"explicit", "limit=5&offset=10", Page{Limit: 5, Offset: 10}},
		{"limit only", "limit=3", Page{Limit: 3, Offset: 0}},
		{"offset only", "offset=40", Page{Limit: DefaultLimit, Offset: 40}},
		{"capped limit", "limit=5000", Page{Limit: MaxLimit, Offset: 0}},
		{"zero limit kept", "limit=0", Page{Limit: 0, Offset: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ParsePage(q)
			if err != nil {
				t.Fatalf("ParsePage(%q): %v", tc.query, err)
			}
			if got != tc.want {
				t.Errorf("ParsePage(%q) = %+v, want %+v", tc.query, got, tc.want)
			}
		})
	}
}

func TestParsePageMalformed(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		detail string
	}{
		{"non-numeric limit", "limit=abc", "limit"},
		{"negative limit", "limit=-1", "limit"},
		{"non-numeric offset", "offset=1.5", "offset"},
		{"negative offset", "offset=-20", "offset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatal(err)
			}
			_, err = ParsePage(q)
			if !fault.IsMalformed(err) {
				t.Fatalf("ParsePage(%q) err = %v, want ErrMalformed", tc.query, err)
			}
			// The echoed detail names the offending parameter.
			if d := fault.Detail(err); !strings.Contains(d, tc.detail) {
				t.Errorf("detail = %q, want mention of %q", d, tc.detail)
			}
		})
	}
}
