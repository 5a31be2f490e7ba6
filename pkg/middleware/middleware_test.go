package middleware

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	data, err := json.Marshal(Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `{"binary":"","script":"","remote":""}`, string(data))
	assert.True(t, Empty().IsEmpty())
	assert.False(t, Payload{Remote: "http://localhost:9000/process"}.IsEmpty())
}
