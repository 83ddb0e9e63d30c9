package export

import (
	"fmt"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

// Progress prints one line per finished check while a scan runs.
type Progress struct {
	reporter *Reporter
}

func NewProgress(reporter *Reporter) *Progress {
	return &Progress{reporter: reporter}
}

func (p *Progress) CheckStarted(_ domain.CheckID, index, total int) {
	if index == 0 {
		p.reporter.Info(fmt.Sprintf("Running %d checks...", total))
	}
}

func (p *Progress) CheckFinished(result domain.DiagnosticResult) {
	s := p.reporter.styles
	p.reporter.println("  ", s.status(result.Status).Render(statusLabel(result.Status)), " ", result.CheckName())
}
