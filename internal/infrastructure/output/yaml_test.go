package output

import (
	"bytes"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLFormatter_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewYAMLFormatter(buf).Format(sampleCompileResponse()))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	artifact := decoded["artifact"].(map[string]interface{})
	assert.Equal(t, "Login <Demo>", artifact["title"])
	assert.Equal(t, "<div id=\"app\">\n  <form @submit.prevent=\"submitLogin\"></form>\n</div>", artifact["markup"])
	assert.Contains(t, buf.String(), "markup: |", "multiline strings use literal style")
}

func TestYAMLFormatter_FormatReport(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewYAMLFormatter(buf).FormatReport(sampleAnalyzeResponse()))
	assert.Contains(t, buf.String(), "kind: inconsistent_indentation")
	assert.Contains(t, buf.String(), "strategy: hybrid")
}
