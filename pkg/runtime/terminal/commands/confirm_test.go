package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptConfirmer(t *testing.T) {
	selected := []domain.DiagnosticResult{
		{Check: domain.CheckEncryption, FixDescription: "Enable default encryption"},
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full word mixed case", input: "  YES \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty answer declines", input: "\n", want: false},
		{name: "end of input declines", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewPromptConfirmer(strings.NewReader(tt.input), &out, export.NewReporter(&out))

			ok, err := c.Confirm(context.Background(), "assets", selected)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, out.String(), "Found 1 auto-fixable issues:")
			assert.Contains(t, out.String(), "Apply these fixes to assets? [y/N]: ")
		})
	}
}

func TestPromptConfirmer_NotInteractive(t *testing.T) {
	var out bytes.Buffer
	c := NewPromptConfirmer(strings.NewReader("y\n"), &out, export.NewReporter(&out))
	c.interactive = false

	ok, err := c.Confirm(context.Background(), "assets", nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "--auto-approve")
}
