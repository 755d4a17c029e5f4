package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterFactory_Create(t *testing.T) {
	factory := NewFormatterFactory()
	buf := &bytes.Buffer{}

	tests := []struct {
		name        string
		format      string
		wantErr     bool
		wantType    interface{}
		errContains string
	}{
		{name: "html format", format: "html", wantType: &HTMLFormatter{}},
		{name: "table format", format: "table", wantType: &TableFormatter{}},
		{name: "json format", format: "json", wantType: &JSONFormatter{}},
		{name: "yaml format", format: "yaml", wantType: &YAMLFormatter{}},
		{name: "sarif format", format: "sarif", wantType: &SARIFFormatter{}},
		{name: "unknown format", format: "invalid", wantErr: true, errContains: "unknown format: invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter, err := factory.Create(tt.format, buf)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, formatter)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, formatter)
		})
	}
}

func TestFormatterFactory_CreateReport(t *testing.T) {
	factory := NewFormatterFactory()
	buf := &bytes.Buffer{}

	for _, format := range factory.SupportedReportFormats() {
		t.Run(format, func(t *testing.T) {
			formatter, err := factory.CreateReport(format, buf)
			require.NoError(t, err)
			assert.NotNil(t, formatter)
		})
	}

	_, err := factory.CreateReport("html", buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format: html")
}

func TestFormatterFactory_SupportedFormats(t *testing.T) {
	factory := NewFormatterFactory()
	assert.Equal(t, []string{"html", "table", "json", "yaml", "sarif"}, factory.SupportedFormats())
}
