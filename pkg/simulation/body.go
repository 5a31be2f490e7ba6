package simulation

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

// Content-Encoding values understood by DecodeBody and EncodeBody.
const (
	EncodingIdentity = ""
	EncodingGzip     = "gzip"
	EncodingBrotli   = "br"
)

// DecodeBody returns the plaintext of a response body.
//
// Bodies that are not encoded come back unchanged. Encoded bodies are base64
// decoded first, then decompressed with brotli when Content-Encoding mentions
// "br", else with gzip when it mentions "gzip". Any other or missing
// Content-Encoding leaves the base64-decoded bytes as the result.
func DecodeBody(body string, encoded bool, headers map[string][]string) (string, error) {
	if !encoded {
		return body, nil
	}

	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 body: %w", err)
	}

	encoding := contentEncoding(headers)
	switch {
	case strings.Contains(encoding, EncodingBrotli):
		out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return "", fmt.Errorf("failed to decompress brotli body: %w", err)
		}
		return string(out), nil
	case strings.Contains(encoding, EncodingGzip):
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return "", fmt.Errorf("failed to open gzip body: %w", err)
		}
		defer func() { _ = zr.Close() }()
		out, err := io.ReadAll(zr)
		if err != nil {
			return "", fmt.Errorf("failed to decompress gzip body: %w", err)
		}
		return string(out), nil
	default:
		return string(raw), nil
	}
}

// EncodeBody compresses plain with the given Content-Encoding ("", "gzip" or
// "br") and returns it base64 encoded, ready for an encodedBody response.
func EncodeBody(plain, encoding string) (string, error) {
	var buf bytes.Buffer
	switch encoding {
	case EncodingIdentity:
		buf.WriteString(plain)
	case EncodingGzip:
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write([]byte(plain)); err != nil {
			return "", fmt.Errorf("failed to gzip body: %w", err)
		}
		if err := zw.Close(); err != nil {
			return "", fmt.Errorf("failed to gzip body: %w", err)
		}
	case EncodingBrotli:
		bw := brotli.NewWriter(&buf)
		if _, err := bw.Write([]byte(plain)); err != nil {
			return "", fmt.Errorf("failed to brotli body: %w", err)
		}
		if err := bw.Close(); err != nil {
			return "", fmt.Errorf("failed to brotli body: %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported content encoding: %q", encoding)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodedBody returns the plaintext body of the response.
func (r ResponseData) DecodedBody() (string, error) {
	return DecodeBody(r.Body, r.EncodedBody, r.Headers)
}

// SetEncodedBody stores plain as an encoded body and records the
// Content-Encoding header when one is used.
func (r *ResponseData) SetEncodedBody(plain, encoding string) error {
	body, err := EncodeBody(plain, encoding)
	if err != nil {
		return err
	}
	r.Body = body
	r.EncodedBody = true
	if encoding != EncodingIdentity {
		if r.Headers == nil {
			r.Headers = make(map[string][]string)
		}
		r.Headers["Content-Encoding"] = []string{encoding}
	}
	return nil
}

// contentEncoding joins every Content-Encoding value, matching the header
// name case-insensitively.
func contentEncoding(headers map[string][]string) string {
	var values []string
	for name, v := range headers {
		if strings.EqualFold(name, "Content-Encoding") {
			values = append(values, v...)
		}
	}
	return strings.ToLower(strings.Join(values, ","))
}
