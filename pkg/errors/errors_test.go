package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsMessageSeparateFromCause(t *testing.T) {
	cause := errors.New("upstream said no")
	err := Wrap("provider_error", "Summarization failed.", cause)

	require.Equal(t, "Summarization failed.: upstream said no", err.Error())
	require.Equal(t, "Summarization failed.", MessageOf(err))
	require.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "direct", err: Wrap("invalid_key", "Invalid API key.", nil), want: "invalid_key"},
		{name: "wrapped", err: fmt.Errorf("gate: %w", Wrap("invalid_mode", "Invalid mode.", nil)), want: "invalid_mode"},
		{name: "plain error", err: errors.New("boom"), want: ""},
		{name: "nil", err: nil, want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, CodeOf(tt.err))
			if tt.want != "" {
				require.True(t, IsCode(tt.err, tt.want))
			}
		})
	}
}
