package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf, true).Format(sampleCompileResponse()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	artifact := decoded["artifact"].(map[string]interface{})
	assert.Equal(t, "hybrid", artifact["strategy_used"])
	assert.Equal(t, true, artifact["degraded"])
	assert.Contains(t, buf.String(), `<form @submit.prevent=\"submitLogin\">`, "HTML must not be escaped")

	metadata := decoded["metadata"].(map[string]interface{})
	assert.Equal(t, "cmp-1", metadata["compilation_id"])
}

func TestJSONFormatter_FormatReport(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf, false).FormatReport(sampleAnalyzeResponse()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "login.apml", decoded["source"])
	issues := decoded["issues"].([]interface{})
	require.Len(t, issues, 1)
	assert.Equal(t, "inconsistent_indentation", issues[0].(map[string]interface{})["kind"])
}
