package journal

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// HAR is an HTTP Archive 1.2 document.
type HAR struct {
	Log HARLog `json:"log"`
}

// HARLog contains the HAR log data.
type HARLog struct {
	Version string     `json:"version"`
	Creator HARCreator `json:"creator"`
	Entries []HAREntry `json:"entries"`
}

// HARCreator names the tool that wrote the archive.
type HARCreator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HAREntry is a single request/response pair.
type HAREntry struct {
	StartedDateTime string      `json:"startedDateTime"`
	Time            float64     `json:"time"`
	Request         HARRequest  `json:"request"`
	Response        HARResponse `json:"response"`
	Cache           struct{}    `json:"cache"`
	Timings         HARTimings  `json:"timings"`
	Comment         string      `json:"comment,omitempty"`
}

// HARRequest is the request of an entry.
type HARRequest struct {
	Method      string       `json:"method"`
	URL         string       `json:"url"`
	HTTPVersion string       `json:"httpVersion"`
	Cookies     []struct{}   `json:"cookies"`
	Headers     []HARNameVal `json:"headers"`
	QueryString []HARNameVal `json:"queryString"`
	PostData    *HARPostData `json:"postData,omitempty"`
	HeadersSize int          `json:"headersSize"`
	BodySize    int          `json:"bodySize"`
}

// HARResponse is the response of an entry.
type HARResponse struct {
	Status      int          `json:"status"`
	StatusText  string       `json:"statusText"`
	HTTPVersion string       `json:"httpVersion"`
	Cookies     []struct{}   `json:"cookies"`
	Headers     []HARNameVal `json:"headers"`
	Content     HARContent   `json:"content"`
	RedirectURL string       `json:"redirectURL"`
	HeadersSize int          `json:"headersSize"`
	BodySize    int          `json:"bodySize"`
}

// HARNameVal is a header or query parameter.
type HARNameVal struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HARPostData is a request body.
type HARPostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// HARContent is a response body.
type HARContent struct {
	Size     int    `json:"size"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
	Encoding string `json:"encoding,omitempty"`
}

// HARTimings are the phases of an entry in milliseconds. Only wait is known.
type HARTimings struct {
	Send    float64 `json:"send"`
	Wait    float64 `json:"wait"`
	Receive float64 `json:"receive"`
}

// ToHAR converts journal entries into an HTTP Archive. Response bodies are
// decoded; a body that fails to decode is kept as base64 text.
func ToHAR(j *Journal, version string) *HAR {
	har := &HAR{Log: HARLog{
		Version: "1.2",
		Creator: HARCreator{Name: "hfctl", Version: version},
		Entries: []HAREntry{},
	}}
	if j == nil {
		return har
	}

	for _, e := range j.Journal {
		// Hoverfly reports latency in milliseconds.
		entry := HAREntry{
			StartedDateTime: e.TimeStarted,
			Time:            e.Latency,
			Request:         harRequest(e.Request),
			Response:        harResponse(e.Response),
			Timings:         HARTimings{Wait: e.Latency},
			Comment:         e.Mode,
		}
		har.Log.Entries = append(har.Log.Entries, entry)
	}
	return har
}

func harRequest(r Request) HARRequest {
	out := HARRequest{
		Method:      r.Method,
		URL:         r.URL(),
		HTTPVersion: "HTTP/1.1",
		Cookies:     []struct{}{},
		Headers:     nameValues(r.Headers),
		QueryString: []HARNameVal{},
		HeadersSize: -1,
		BodySize:    len(r.Body),
	}
	if values, err := url.ParseQuery(r.Query); err == nil {
		out.QueryString = nameValues(values)
	}
	if r.Body != "" {
		out.PostData = &HARPostData{MimeType: headerValue(r.Headers, "Content-Type"), Text: r.Body}
	}
	return out
}

func harResponse(r Response) HARResponse {
	content := HARContent{MimeType: headerValue(r.Headers, "Content-Type")}
	if text, err := r.DecodedBody(); err == nil {
		content.Text = text
		content.Size = len(text)
	} else {
		content.Text = r.Body
		content.Encoding = "base64"
		content.Size = -1
	}

	return HARResponse{
		Status:      r.Status,
		StatusText:  http.StatusText(r.Status),
		HTTPVersion: "HTTP/1.1",
		Cookies:     []struct{}{},
		Headers:     nameValues(r.Headers),
		Content:     content,
		RedirectURL: headerValue(r.Headers, "Location"),
		HeadersSize: -1,
		BodySize:    -1,
	}
}

// nameValues flattens a multi-valued map into pairs sorted by name.
func nameValues(m map[string][]string) []HARNameVal {
	out := make([]HARNameVal, 0, len(m))
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range m[name] {
			out = append(out, HARNameVal{Name: name, Value: v})
		}
	}
	return out
}

func headerValue(headers map[string][]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
