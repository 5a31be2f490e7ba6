package simulation

import "time"

// Defaults written into the meta block of simulations built by this package.
const (
	DefaultSchemaVersion   = "v5.2"
	DefaultHoverflyVersion = "v1.9.0"
)

// now is swapped in tests to get a stable export timestamp.
var now = time.Now

// Simulation is an exported Hoverfly configuration.
type Simulation struct {
	Data Data `json:"data" yaml:"data"`
	Meta Meta `json:"meta" yaml:"meta"`
}

// Data holds the pairs and global actions of a simulation.
type Data struct {
	Pairs         []Pair        `json:"pairs" yaml:"pairs"`
	GlobalActions GlobalActions `json:"globalActions" yaml:"globalActions"`
}

// GlobalActions holds delay settings applied across all pairs.
type GlobalActions struct {
	Delays          []Delay          `json:"delays" yaml:"delays"`
	DelaysLogNormal []DelayLogNormal `json:"delaysLogNormal" yaml:"delaysLogNormal"`
}

// Delay adds a fixed latency (milliseconds) to matching requests.
type Delay struct {
	URLPattern string `json:"urlPattern" yaml:"urlPattern"`
	HTTPMethod string `json:"httpMethod,omitempty" yaml:"httpMethod,omitempty"`
	Delay      int    `json:"delay" yaml:"delay"`
}

// DelayLogNormal adds a log-normally distributed latency (milliseconds).
type DelayLogNormal struct {
	URLPattern string `json:"urlPattern" yaml:"urlPattern"`
	HTTPMethod string `json:"httpMethod,omitempty" yaml:"httpMethod,omitempty"`
	Min        int    `json:"min" yaml:"min"`
	Max        int    `json:"max" yaml:"max"`
	Mean       int    `json:"mean" yaml:"mean"`
	Median     int    `json:"median" yaml:"median"`
}

// Meta is the export metadata of a simulation.
type Meta struct {
	SchemaVersion   string `json:"schemaVersion" yaml:"schemaVersion"`
	HoverflyVersion string `json:"hoverflyVersion" yaml:"hoverflyVersion"`
	TimeExported    string `json:"timeExported" yaml:"timeExported"`
}

// Pair is a request matcher together with the response served for it.
type Pair struct {
	Request  RequestMatcher `json:"request" yaml:"request"`
	Response ResponseData   `json:"response" yaml:"response"`
}

// Matcher describes how one request field is compared, e.g. {"exact", "GET"}.
type Matcher struct {
	Matcher string         `json:"matcher" yaml:"matcher"`
	Value   any            `json:"value" yaml:"value"`
	Config  map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	DoMatch *Matcher       `json:"doMatch,omitempty" yaml:"doMatch,omitempty"`
}

// Common matcher strategies.
const (
	MatcherExact       = "exact"
	MatcherGlob        = "glob"
	MatcherRegex       = "regex"
	MatcherJSON        = "json"
	MatcherJSONPartial = "jsonPartial"
	MatcherJSONPath    = "jsonpath"
	MatcherXML         = "xml"
	MatcherXPath       = "xpath"
)

// RequestMatcher lists the matchers a request has to satisfy. A nil field
// places no constraint on that part of the request.
type RequestMatcher struct {
	Path          []Matcher            `json:"path,omitempty" yaml:"path,omitempty"`
	Method        []Matcher            `json:"method,omitempty" yaml:"method,omitempty"`
	Destination   []Matcher            `json:"destination,omitempty" yaml:"destination,omitempty"`
	Scheme        []Matcher            `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Body          []Matcher            `json:"body,omitempty" yaml:"body,omitempty"`
	Query         map[string][]Matcher `json:"query,omitempty" yaml:"query,omitempty"`
	Headers       map[string][]Matcher `json:"headers,omitempty" yaml:"headers,omitempty"`
	RequiresState map[string]string    `json:"requiresState,omitempty" yaml:"requiresState,omitempty"`
}

// ResponseData is the canned response of a pair.
type ResponseData struct {
	Status           int                 `json:"status" yaml:"status"`
	Body             string              `json:"body" yaml:"body"`
	EncodedBody      bool                `json:"encodedBody" yaml:"encodedBody"`
	Headers          map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Templated        bool                `json:"templated" yaml:"templated"`
	TransitionsState map[string]string   `json:"transitionsState,omitempty" yaml:"transitionsState,omitempty"`
	RemovesState     []string            `json:"removesState,omitempty" yaml:"removesState,omitempty"`
	FixedDelay       int                 `json:"fixedDelay,omitempty" yaml:"fixedDelay,omitempty"`
	BodyFile         string              `json:"bodyFile,omitempty" yaml:"bodyFile,omitempty"`
}

// Exact is shorthand for a single exact matcher.
func Exact(value string) []Matcher {
	return []Matcher{{Matcher: MatcherExact, Value: value}}
}

// Build wraps pairs into a simulation with empty global actions and default meta.
func Build(pairs []Pair) *Simulation {
	if pairs == nil {
		pairs = []Pair{}
	}
	return &Simulation{
		Data: Data{
			Pairs: pairs,
			GlobalActions: GlobalActions{
				Delays:          []Delay{},
				DelaysLogNormal: []DelayLogNormal{},
			},
		},
		Meta: Meta{
			SchemaVersion:   DefaultSchemaVersion,
			HoverflyVersion: DefaultHoverflyVersion,
			TimeExported:    now().UTC().Format(time.RFC3339),
		},
	}
}
