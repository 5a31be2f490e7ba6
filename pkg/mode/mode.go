// Package mode defines the Hoverfly operating modes and the payloads of the
// /api/v2/hoverfly/mode endpoint.
package mode

import (
	"fmt"
	"strings"
)

// Mode is a Hoverfly operating mode.
type Mode string

// Modes accepted by Hoverfly.
const (
	Capture    Mode = "capture"
	Simulate   Mode = "simulate"
	Spy        Mode = "spy"
	Modify     Mode = "modify"
	Synthesize Mode = "synthesize"
)

// All lists every known mode in display order.
var All = []Mode{Capture, Simulate, Spy, Modify, Synthesize}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	for _, known := range All {
		if m == known {
			return true
		}
	}
	return false
}

func (m Mode) String() string {
	return string(m)
}

// Parse converts a string to a Mode, ignoring case and surrounding spaces.
func Parse(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q (want one of %s)", s, joinModes())
	}
	return m, nil
}

func joinModes() string {
	names := make([]string, len(All))
	for i, m := range All {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Payload is what Hoverfly reports for the current mode.
type Payload struct {
	Mode      Mode      `json:"mode" yaml:"mode"`
	Arguments Arguments `json:"arguments" yaml:"arguments"`
}

// Arguments are the mode arguments reported by Hoverfly.
type Arguments struct {
	MatchingStrategy string `json:"matchingStrategy,omitempty" yaml:"matchingStrategy,omitempty"`
}

// SetPayload is the body sent to change the mode.
type SetPayload struct {
	Mode      Mode          `json:"mode" yaml:"mode"`
	Arguments *SetArguments `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// SetArguments tune capture behaviour. Hoverfly ignores them in other modes.
type SetArguments struct {
	HeadersWhitelist   []string `json:"headersWhitelist,omitempty" yaml:"headersWhitelist,omitempty"`
	Stateful           bool     `json:"stateful,omitempty" yaml:"stateful,omitempty"`
	OverwriteDuplicate bool     `json:"overwriteDuplicate,omitempty" yaml:"overwriteDuplicate,omitempty"`
}

// Set is shorthand for a SetPayload without arguments.
func Set(m Mode) SetPayload {
	return SetPayload{Mode: m}
}
