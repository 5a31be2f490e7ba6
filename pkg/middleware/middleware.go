// Package middleware holds the payload of the /api/v2/hoverfly/middleware endpoint.
package middleware

// Payload configures Hoverfly middleware. Either Binary with Script runs a
// local executable, or Remote names an HTTP middleware endpoint.
type Payload struct {
	Binary string `json:"binary" yaml:"binary"`
	Script string `json:"script" yaml:"script"`
	Remote string `json:"remote" yaml:"remote"`
}

// Empty returns the payload that disables middleware.
func Empty() Payload {
	return Payload{}
}

// IsEmpty reports whether p disables middleware.
func (p Payload) IsEmpty() bool {
	return p == Payload{}
}
