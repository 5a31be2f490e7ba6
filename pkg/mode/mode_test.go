package mode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"capture", Capture, false},
		{"SIMULATE", Simulate, false},
		{" spy ", Spy, false},
		{"Modify", Modify, false},
		{"synthesize", Synthesize, false},
		{"", "", true},
		{"replay", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "capture, simulate, spy, modify, synthesize")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetPayload_JSON(t *testing.T) {
	data, err := json.Marshal(Set(Simulate))
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"simulate"}`, string(data))

	data, err = json.Marshal(SetPayload{
		Mode:      Capture,
		Arguments: &SetArguments{HeadersWhitelist: []string{"*"}, Stateful: true},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"capture","arguments":{"headersWhitelist":["*"],"stateful":true}}`, string(data))
}

func TestPayload_Decode(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"spy","arguments":{"matchingStrategy":"strongest"}}`), &p))
	assert.Equal(t, Spy, p.Mode)
	assert.Equal(t, "strongest", p.Arguments.MatchingStrategy)
}
