// Package journal holds the Hoverfly journal DTOs and local helpers to
// filter, query and export journal entries.
package journal

import (
	"net/url"
	"strconv"
	"time"

	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

// Journal is a page of journal entries as returned by /api/v2/journal.
type Journal struct {
	Journal []Entry `json:"journal" yaml:"journal"`
	Indexes []Index `json:"indexes" yaml:"indexes"`
	Offset  int     `json:"offset" yaml:"offset"`
	Limit   int     `json:"limit" yaml:"limit"`
	Total   int     `json:"total" yaml:"total"`
}

// Index is a named journal index.
type Index struct {
	Name    string       `json:"name" yaml:"name"`
	Entries []IndexEntry `json:"entries" yaml:"entries"`
}

// IndexEntry maps an index key to a journal entry.
type IndexEntry struct {
	Key            string `json:"key" yaml:"key"`
	JournalEntryID string `json:"journalEntryId" yaml:"journalEntryId"`
}

// Entry is a single request served by Hoverfly.
type Entry struct {
	Request         Request  `json:"request" yaml:"request"`
	Response        Response `json:"response" yaml:"response"`
	Mode            string   `json:"mode" yaml:"mode"`
	TimeStarted     string   `json:"timeStarted" yaml:"timeStarted"`
	Latency         float64  `json:"latency" yaml:"latency"`
	ID              string   `json:"id" yaml:"id"`
	PostServeAction string   `json:"postServeAction,omitempty" yaml:"postServeAction,omitempty"`
}

// Request is the request side of a journal entry.
type Request struct {
	Path        string              `json:"path" yaml:"path"`
	Method      string              `json:"method" yaml:"method"`
	Destination string              `json:"destination" yaml:"destination"`
	Scheme      string              `json:"scheme" yaml:"scheme"`
	Query       string              `json:"query" yaml:"query"`
	FormData    map[string][]string `json:"formData" yaml:"formData"`
	Body        string              `json:"body" yaml:"body"`
	Headers     map[string][]string `json:"headers" yaml:"headers"`
}

// URL reconstructs the absolute request URL.
func (r Request) URL() string {
	u := url.URL{Scheme: r.Scheme, Host: r.Destination, Path: r.Path, RawQuery: r.Query}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	return u.String()
}

// Response is the response side of a journal entry.
type Response struct {
	Status      int                 `json:"status" yaml:"status"`
	Body        string              `json:"body" yaml:"body"`
	EncodedBody bool                `json:"encodedBody" yaml:"encodedBody"`
	Headers     map[string][]string `json:"headers" yaml:"headers"`
}

// DecodedBody returns the plaintext response body.
func (r Response) DecodedBody() (string, error) {
	return simulation.DecodeBody(r.Body, r.EncodedBody, r.Headers)
}

// SearchPayload is the body of a journal search.
type SearchPayload struct {
	Request simulation.RequestMatcher `json:"request" yaml:"request"`
}

// Page selects a window of the journal. Zero fields are left to the server.
type Page struct {
	Offset int
	Limit  int
	From   time.Time
	To     time.Time
	// Sort is "field:order", e.g. "timeStarted:desc".
	Sort string
}

// Values encodes the page as query parameters.
func (p Page) Values() url.Values {
	q := url.Values{}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if !p.From.IsZero() {
		q.Set("from", strconv.FormatInt(p.From.Unix(), 10))
	}
	if !p.To.IsZero() {
		q.Set("to", strconv.FormatInt(p.To.Unix(), 10))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	return q
}
