package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

const analysisSystemPrompt = `You are an expert AWS S3 troubleshooting AI. Analyze diagnostic results and provide actionable recommendations.

Respond in valid JSON with this structure:
{
    "summary": "Brief overall health summary",
    "health_assessment": "CRITICAL|POOR|FAIR|GOOD|EXCELLENT",
    "analysis": "Detailed analysis of all findings",
    "priority_actions": [
        {"priority": 1, "action": "What to do", "reason": "Why", "commands": ["aws cli command"]}
    ],
    "security_recommendations": ["recommendation 1", "recommendation 2"],
    "cost_optimization": ["tip 1", "tip 2"]
}`

const (
	troubleshootSystemPrompt = "You are an expert AWS S3 troubleshooting assistant. " +
		"Provide step-by-step guidance with AWS CLI commands."
	policySystemPrompt = "You are an AWS S3 security expert. " +
		"Generate secure, least-privilege bucket policies."
	remainingSystemPrompt = "You are an AWS S3 expert. For each issue provide: " +
		"1) Exact steps to fix 2) AWS CLI commands 3) AWS documentation link 4) Why it matters."
)

type promptItem struct {
	Check    string `json:"check"`
	Status   string `json:"status"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func analysisPrompt(report domain.BucketReport) string {
	items := make([]promptItem, 0, len(report.Results))
	for _, r := range report.Results {
		items = append(items, promptItem{
			Check:    r.CheckName(),
			Status:   string(r.Status),
			Severity: r.Severity.String(),
			Message:  r.Message,
		})
	}
	encoded, _ := json.MarshalIndent(items, "", "  ")
	return fmt.Sprintf("Analyze this S3 diagnostic report:\nBucket: %s | Region: %s | Score: %d/100\nResults: %s",
		report.BucketName, report.Region, report.Score, encoded)
}

func troubleshootPrompt(issue, bucket string, extra map[string]any) string {
	ctx := "None"
	if len(extra) > 0 {
		if encoded, err := json.MarshalIndent(extra, "", "  "); err == nil {
			ctx = string(encoded)
		}
	}
	return fmt.Sprintf("Bucket: %s\nIssue: %s\nContext: %s\n\n"+
		"Provide: 1) Root causes 2) Step-by-step fix 3) AWS CLI commands 4) Prevention",
		bucket, issue, ctx)
}

func policyPrompt(bucket, useCase string) string {
	return fmt.Sprintf("Generate a secure S3 bucket policy for bucket '%s'. Use case: %s", bucket, useCase)
}

func remainingPrompt(bucket string, issues []domain.DiagnosticResult) string {
	lines := make([]string, 0, len(issues))
	for _, r := range issues {
		lines = append(lines, r.CheckName()+": "+r.Message)
	}
	return fmt.Sprintf("Bucket: %s\n\nRemaining issues after auto-fix:\n%s", bucket, strings.Join(lines, "\n"))
}
