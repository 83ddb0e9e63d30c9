package export

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/bucket-doctor/pkg/adapters"
	"github.com/de-tools/bucket-doctor/pkg/models/api"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

//go:embed report.html.tmpl
var htmlTemplate string

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"lower": strings.ToLower,
	"statusLabel": func(status string) string {
		return statusLabel(domain.CheckStatus(status))
	},
	"scoreClass": func(score int) string {
		switch {
		case score >= 90:
			return "score-healthy"
		case score >= 70:
			return "score-good"
		case score >= 50:
			return "score-attention"
		case score >= 30:
			return "score-unhealthy"
		default:
			return "score-critical"
		}
	},
	"details": func(v any) string {
		if v == nil {
			return ""
		}
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return ""
		}
		return string(b)
	},
}).Parse(htmlTemplate))

// FileWriter saves reports as <bucket>_<YYYYmmdd_HHMMSS>.<ext> files.
type FileWriter struct {
	dir string
	now func() time.Time
}

func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir, now: time.Now}
}

func (w *FileWriter) path(bucket, ext string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s.%s", bucket, w.now().UTC().Format("20060102_150405"), ext)
	return filepath.Join(w.dir, name), nil
}

func (w *FileWriter) WriteJSON(report domain.BucketReport) (string, error) {
	path, err := w.path(report.BucketName, "json")
	if err != nil {
		return "", err
	}
	doc, err := json.MarshalIndent(adapters.MapBucketReportDomainToApi(report), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

type htmlData struct {
	Report      api.BucketReport
	GeneratedAt time.Time
}

func (w *FileWriter) WriteHTML(report domain.BucketReport) (string, error) {
	path, err := w.path(report.BucketName, "html")
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	data := htmlData{
		Report:      adapters.MapBucketReportDomainToApi(report),
		GeneratedAt: w.now().UTC(),
	}
	if err := htmlReport.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return path, nil
}
