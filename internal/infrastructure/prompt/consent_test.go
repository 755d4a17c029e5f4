package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsentPrompter(t *testing.T) {
	tests := []struct {
		name        string
		assumeYes   bool
		interactive bool
		answer      bool
		answerErr   error
		want        bool
		wantErr     bool
		asked       bool
	}{
		{name: "assume yes", assumeYes: true, want: true},
		{name: "non-interactive declines", interactive: false, want: false},
		{name: "user accepts", interactive: true, answer: true, want: true, asked: true},
		{name: "user declines", interactive: true, answer: false, want: false, asked: true},
		{name: "prompt fails", interactive: true, answerErr: errors.New("tty closed"), wantErr: true, asked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewConsentPrompter(tt.assumeYes, nil)
			p.interactive = func() bool { return tt.interactive }
			var gotTitle string
			asked := false
			p.confirm = func(title, _ string) (bool, error) {
				asked = true
				gotTitle = title
				return tt.answer, tt.answerErr
			}

			ok, err := p.ConfirmExternalCall(context.Background(), "anthropic (m)")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.asked, asked)
			if tt.asked {
				assert.Equal(t, "Send document to anthropic (m)?", gotTitle)
			}
		})
	}
}

func TestConsentPrompter_CancelledContext(t *testing.T) {
	p := NewConsentPrompter(false, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ConfirmExternalCall(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
