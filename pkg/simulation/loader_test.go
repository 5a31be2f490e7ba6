package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSimulation(t *testing.T) *Simulation {
	t.Helper()
	gz := ResponseData{Status: 200, Headers: map[string][]string{"Content-Type": {"text/plain"}}}
	require.NoError(t, gz.SetEncodedBody("compressed", EncodingGzip))

	sim := Build([]Pair{
		{
			Request: RequestMatcher{
				Path:          Exact("/users"),
				Method:        Exact("GET"),
				Query:         map[string][]Matcher{"page": Exact("1")},
				RequiresState: map[string]string{"logged-in": "true"},
			},
			Response: ResponseData{
				Status:           200,
				Body:             `{"users":[]}`,
				Headers:          map[string][]string{"Content-Type": {"application/json"}},
				TransitionsState: map[string]string{"seen": "yes"},
			},
		},
		{Request: RequestMatcher{Destination: Exact("example.com")}, Response: gz},
	})
	sim.Data.GlobalActions.Delays = []Delay{{URLPattern: "example\\.com", Delay: 50}}
	return sim
}

func TestLoadFromFile_Fixture(t *testing.T) {
	sim, err := LoadFromFile("testdata/npmjs.json")
	require.NoError(t, err)

	require.Len(t, sim.Data.Pairs, 1)
	assert.Equal(t, "Forged NPMJS", sim.Data.Pairs[0].Response.Body)
	assert.Equal(t, "v1.9.0", sim.Meta.HoverflyVersion)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"sim.json", "sim.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			original := sampleSimulation(t)

			require.NoError(t, SaveToFile(path, original))
			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, original, loaded)
			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
		})
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"data": {`), 0644))
	brokenYAML := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(brokenYAML, []byte("data: [unclosed"), 0644))

	_, err := LoadFromFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, ErrFileNotFound), "got %v", err)

	_, err = LoadFromFile(empty)
	assert.True(t, errors.Is(err, ErrEmptyFile), "got %v", err)

	_, err = LoadFromFile(broken)
	assert.True(t, errors.Is(err, ErrInvalidJSON), "got %v", err)

	_, err = LoadFromFile(brokenYAML)
	assert.True(t, errors.Is(err, ErrInvalidYAML), "got %v", err)

	_, err = LoadFromFile(dir)
	assert.Error(t, err)
}

func TestLoadFromFile_SchemaViolation(t *testing.T) {
	_, err := LoadFromFile("testdata/bad_status.json")

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
	assert.Contains(t, schemaErr.Location, "/data/pairs/0/response/status")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]byte(`{"data": {"pairs": null}}`)))
	assert.NoError(t, Validate([]byte(`{"data": {"pairs": []}, "meta": {"schemaVersion": "v5.2"}}`)))

	var schemaErr *SchemaError
	assert.True(t, errors.As(Validate([]byte(`{"meta": {}}`)), &schemaErr))
	assert.True(t, errors.As(Validate([]byte(`{"data": {"pairs": [{"request": {}}]}}`)), &schemaErr))
	assert.True(t, errors.Is(Validate([]byte(`not json`)), ErrInvalidJSON))
}

func TestToJSON_Nil(t *testing.T) {
	_, err := ToJSON(nil)
	assert.Error(t, err)
	_, err = ToYAML(nil)
	assert.Error(t, err)
	assert.Error(t, SaveToFile(filepath.Join(t.TempDir(), "x.json"), nil))
}

func TestLoadGlob_MergesInLexicalOrder(t *testing.T) {
	sim, err := LoadGlob("testdata/fixtures/**/*.{json,yaml}")
	require.NoError(t, err)

	require.Len(t, sim.Data.Pairs, 2)
	assert.Equal(t, "/users", sim.Data.Pairs[0].Request.Path[0].Value)
	// users.json sorts after nested/health.yaml, so its /health wins.
	assert.Equal(t, "/health", sim.Data.Pairs[1].Request.Path[0].Value)
	assert.Equal(t, 200, sim.Data.Pairs[1].Response.Status)
}

func TestLoadGlob_NoMatch(t *testing.T) {
	_, err := LoadGlob(filepath.Join(t.TempDir(), "**", "*.json"))
	assert.True(t, errors.Is(err, ErrFileNotFound), "got %v", err)
}
