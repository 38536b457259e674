package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatJSON(t *testing.T) {
	payload := struct {
		Mean Float `json:"mean"`
		Std  Float `json:"std"`
		Inf  Float `json:"inf"`
	}{Mean: 12.5, Std: Undefined(), Inf: Float(math.Inf(1))}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mean":12.5,"std":null,"inf":null}`, string(data))

	var back struct {
		Mean Float `json:"mean"`
		Std  Float `json:"std"`
	}
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Float(12.5), back.Mean)
	assert.False(t, back.Std.Defined())
}
