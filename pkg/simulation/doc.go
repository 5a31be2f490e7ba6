// Package simulation models a Hoverfly simulation document and the helpers
// that operate on it without talking to a server.
//
// A Simulation is an ordered list of request matcher / response pairs plus
// global delay settings and export metadata. The package provides:
//
//   - Merge and Subtract, which de-duplicate pairs by request matcher
//     signature (see Signature)
//   - DecodeBody and EncodeBody for base64, gzip and brotli response bodies
//   - LoadFromFile, SaveToFile and LoadGlob for JSON and YAML files
//   - Validate, a JSON Schema check of a raw simulation document
//
// # Signatures
//
// Two request matchers are the same when their JSON serializations are
// identical. No semantic comparison is attempted: two regex matchers that
// accept the same language still have different signatures.
package simulation
