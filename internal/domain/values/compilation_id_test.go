package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompilationID(t *testing.T) {
	id1 := NewCompilationID()
	id2 := NewCompilationID()

	assert.False(t, id1.IsZero())
	assert.NotEqual(t, id1.String(), id2.String())
}

func TestParseCompilationID(t *testing.T) {
	id, err := ParseCompilationID("123e4567-e89b-12d3-a456-426614174000")
	require.NoError(t, err)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", id.String())

	_, err = ParseCompilationID("not-a-uuid")
	assert.Error(t, err)
}

func TestCompilationID_JSON(t *testing.T) {
	original := NewCompilationID()

	data, err := json.Marshal(struct {
		ID CompilationID `json:"id"`
	}{original})
	require.NoError(t, err)
	assert.Contains(t, string(data), original.String())

	var decoded struct {
		ID CompilationID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded.ID)
}

func TestCompilationID_ZeroValue(t *testing.T) {
	var id CompilationID
	assert.True(t, id.IsZero())
}
