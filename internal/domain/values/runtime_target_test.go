package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntimeTarget(t *testing.T) {
	tests := []struct {
		name       string
		pkg        string
		version    string
		wantMarker string
		wantErr    bool
	}{
		{name: "major only", pkg: "vue", version: "3", wantMarker: "vue@3"},
		{name: "full version", pkg: "vue", version: "3.4.21", wantMarker: "vue@3.4.21"},
		{name: "v prefix", pkg: "vue", version: "v3.2", wantMarker: "vue@3.2"},
		{name: "too old", pkg: "vue", version: "2.7.0", wantErr: true},
		{name: "garbage version", pkg: "vue", version: "latest", wantErr: true},
		{name: "missing package", pkg: "", version: "3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := NewRuntimeTarget(tt.pkg, tt.version)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMarker, rt.Marker())
			assert.Equal(t, uint64(3), rt.Major())
		})
	}
}

func TestDefaultRuntimeTarget(t *testing.T) {
	rt := DefaultRuntimeTarget()
	assert.False(t, rt.IsZero())
	assert.Equal(t, "vue", rt.Package())
	assert.Equal(t, "vue@3", rt.String())
}
