package journal

import (
	"encoding/json"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/ohler55/ojg/jp"
)

// Filter returns the entries for which expression evaluates to true.
//
// The expression sees each entry under its JSON field names: request, response,
// mode, timeStarted, latency, id and postServeAction. For example:
//
//	request.method == "POST" && response.status >= 500
func Filter(entries []Entry, expression string) ([]Entry, error) {
	sample, err := envOf(Entry{})
	if err != nil {
		return nil, err
	}
	program, err := expr.Compile(expression, expr.Env(sample), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}

	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		env, err := envOf(e)
		if err != nil {
			return nil, err
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("eval %q on entry %s: %w", expression, e.ID, err)
		}
		if ok, _ := out.(bool); ok {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Select evaluates a JSONPath expression against the journal document, e.g.
// "$.journal[*].request.path".
func Select(j *Journal, path string) ([]any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}
	if j == nil {
		return []any{}, nil
	}
	doc, err := generic(j)
	if err != nil {
		return nil, err
	}
	return x.Get(doc), nil
}

func envOf(e Entry) (map[string]any, error) {
	doc, err := generic(e)
	if err != nil {
		return nil, err
	}
	env, _ := doc.(map[string]any)
	return env, nil
}

// generic converts v into the plain maps, slices and scalars of its JSON form.
func generic(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}
	return doc, nil
}
