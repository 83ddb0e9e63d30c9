package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/runtime/terminal/export"
	"golang.org/x/term"
)

// PromptConfirmer asks on the terminal before fixes are applied. It declines
// when the input is not interactive.
type PromptConfirmer struct {
	in          *bufio.Reader
	out         io.Writer
	reporter    *export.Reporter
	interactive bool
}

func NewPromptConfirmer(in io.Reader, out io.Writer, reporter *export.Reporter) *PromptConfirmer {
	interactive := true
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &PromptConfirmer{
		in:          bufio.NewReader(in),
		out:         out,
		reporter:    reporter,
		interactive: interactive,
	}
}

func (p *PromptConfirmer) Confirm(_ context.Context, bucket string, selected []domain.DiagnosticResult) (bool, error) {
	p.reporter.FixPlan(selected)
	if !p.interactive {
		p.reporter.Info("Input is not a terminal, skipping fixes. Use --auto-approve to apply them.")
		return false, nil
	}

	fmt.Fprintf(p.out, "Apply these fixes to %s? [y/N]: ", bucket)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
