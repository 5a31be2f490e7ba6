package simulation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Signature returns the hex SHA-256 of the matcher's JSON serialization.
// Struct fields serialize in declaration order and map keys sorted, so equal
// matchers always hash equally. Nil and empty fields are both omitted.
func Signature(req RequestMatcher) string {
	data, err := json.Marshal(req)
	if err != nil {
		// Only reachable with unmarshalable Value/Config contents.
		data = []byte(fmt.Sprintf("%#v", req))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Subtract returns a simulation holding the pairs of left whose request
// signature does not appear in right, in their original order.
func Subtract(left, right *Simulation) *Simulation {
	return Build(subtractPairs(pairsOf(left), pairsOf(right)))
}

// Merge returns the pairs of left not overridden by right, followed by all
// pairs of right. A matcher present in both ends up once, with right's response.
func Merge(left, right *Simulation) *Simulation {
	kept := subtractPairs(pairsOf(left), pairsOf(right))
	rightPairs := pairsOf(right)
	merged := make([]Pair, 0, len(kept)+len(rightPairs))
	merged = append(merged, kept...)
	merged = append(merged, rightPairs...)
	return Build(merged)
}

func subtractPairs(left, right []Pair) []Pair {
	signatures := make(map[string]struct{}, len(right))
	for _, p := range right {
		signatures[Signature(p.Request)] = struct{}{}
	}

	kept := make([]Pair, 0, len(left))
	for _, p := range left {
		if _, found := signatures[Signature(p.Request)]; !found {
			kept = append(kept, p)
		}
	}
	return kept
}

func pairsOf(s *Simulation) []Pair {
	if s == nil {
		return nil
	}
	return s.Data.Pairs
}
