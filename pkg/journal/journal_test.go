package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

func sampleJournal(t *testing.T) *Journal {
	t.Helper()
	gzipped, err := simulation.EncodeBody(`{"ok":true}`, simulation.EncodingGzip)
	require.NoError(t, err)

	return &Journal{
		Journal: []Entry{
			{
				ID:          "1",
				Mode:        "simulate",
				TimeStarted: "2024-10-31T08:40:30.000Z",
				Latency:     1.5,
				Request: Request{
					Scheme: "https", Destination: "www.npmjs.com", Path: "/", Method: "GET",
					Headers: map[string][]string{"Accept": {"text/html"}},
				},
				Response: Response{Status: 200, Body: "Forged NPMJS"},
			},
			{
				ID:          "2",
				Mode:        "simulate",
				TimeStarted: "2024-10-31T08:40:31.000Z",
				Latency:     3,
				Request: Request{
					Scheme: "http", Destination: "api.local", Path: "/orders", Method: "POST",
					Query: "page=2&tag=a&tag=b", Body: `{"id":1}`,
					Headers: map[string][]string{"Content-Type": {"application/json"}},
				},
				Response: Response{
					Status: 502, Body: gzipped, EncodedBody: true,
					Headers: map[string][]string{"Content-Encoding": {"gzip"}, "Content-Type": {"application/json"}},
				},
			},
		},
		Offset: 0, Limit: 25, Total: 2,
	}
}

func TestJournal_DecodeServerDocument(t *testing.T) {
	raw := `{
		"journal": [{
			"request": {"path": "/", "method": "GET", "destination": "www.npmjs.com", "scheme": "https",
				"query": "", "formData": null, "body": "", "headers": {"Accept": ["*/*"]}},
			"response": {"status": 200, "body": "Forged NPMJS", "encodedBody": false, "headers": {}},
			"id": "abc", "mode": "simulate", "timeStarted": "2024-10-31T08:40:30.000Z", "latency": 0.2
		}],
		"indexes": null, "offset": 0, "limit": 25, "total": 1
	}`

	var j Journal
	require.NoError(t, json.Unmarshal([]byte(raw), &j))
	require.Len(t, j.Journal, 1)
	assert.Equal(t, "https://www.npmjs.com/", j.Journal[0].Request.URL())
	assert.Nil(t, j.Indexes)
	assert.Equal(t, 1, j.Total)
}

func TestPage_Values(t *testing.T) {
	assert.Empty(t, Page{}.Values())

	from := time.Unix(1497361935, 0)
	to := time.Unix(1497361966, 0)
	q := Page{Offset: 5, Limit: 10, From: from, To: to, Sort: "timeStarted:desc"}.Values()

	assert.Equal(t, "5", q.Get("offset"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "1497361935", q.Get("from"))
	assert.Equal(t, "1497361966", q.Get("to"))
	assert.Equal(t, "timeStarted:desc", q.Get("sort"))
}

func TestResponse_DecodedBody(t *testing.T) {
	j := sampleJournal(t)

	body, err := j.Journal[1].Response.DecodedBody()
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, body)
}

func TestFilter(t *testing.T) {
	j := sampleJournal(t)

	tests := []struct {
		expression string
		wantIDs    []string
	}{
		{`request.method == "POST"`, []string{"2"}},
		{`response.status >= 500`, []string{"2"}},
		{`latency < 2`, []string{"1"}},
		{`mode == "simulate"`, []string{"1", "2"}},
		{`request.destination contains "npmjs"`, []string{"1"}},
		{`id == "nope"`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := Filter(j.Journal, tt.expression)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilter_InvalidExpression(t *testing.T) {
	_, err := Filter(nil, `request.method ==`)
	assert.Error(t, err)

	_, err = Filter(nil, `"not a bool"`)
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	j := sampleJournal(t)

	paths, err := Select(j, "$.journal[*].request.path")
	require.NoError(t, err)
	assert.Equal(t, []any{"/", "/orders"}, paths)

	statuses, err := Select(j, "$.journal[?(@.request.method == 'POST')].response.status")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(502)}, statuses)

	_, err = Select(j, "$.journal[")
	assert.Error(t, err)

	empty, err := Select(nil, "$.journal")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestToHAR(t *testing.T) {
	har := ToHAR(sampleJournal(t), "1.0.0")

	assert.Equal(t, "1.2", har.Log.Version)
	assert.Equal(t, "1.0.0", har.Log.Creator.Version)
	require.Len(t, har.Log.Entries, 2)

	first := har.Log.Entries[0]
	assert.Equal(t, "https://www.npmjs.com/", first.Request.URL)
	assert.Equal(t, "Forged NPMJS", first.Response.Content.Text)
	assert.Nil(t, first.Request.PostData)

	second := har.Log.Entries[1]
	assert.Equal(t, "http://api.local/orders?page=2&tag=a&tag=b", second.Request.URL)
	assert.Equal(t, []HARNameVal{{"page", "2"}, {"tag", "a"}, {"tag", "b"}}, second.Request.QueryString)
	require.NotNil(t, second.Request.PostData)
	assert.Equal(t, "application/json", second.Request.PostData.MimeType)
	assert.Equal(t, `{"ok":true}`, second.Response.Content.Text)
	assert.Equal(t, "Bad Gateway", second.Response.StatusText)
	assert.Equal(t, 3.0, second.Timings.Wait)
}

func TestToHAR_UndecodableBodyKeptAsBase64(t *testing.T) {
	j := &Journal{Journal: []Entry{{
		Response: Response{Status: 200, Body: "bm90IGd6aXA=", EncodedBody: true,
			Headers: map[string][]string{"Content-Encoding": {"gzip"}}},
	}}}

	content := ToHAR(j, "dev").Log.Entries[0].Response.Content
	assert.Equal(t, "base64", content.Encoding)
	assert.Equal(t, "bm90IGd6aXA=", content.Text)
}

func TestToHAR_Nil(t *testing.T) {
	har := ToHAR(nil, "dev")
	assert.NotNil(t, har.Log.Entries)
	assert.Empty(t, har.Log.Entries)
}
