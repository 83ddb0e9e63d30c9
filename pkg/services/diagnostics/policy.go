package diagnostics

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

var sensitiveActions = map[string]bool{
	"s3:DeleteBucket":    true,
	"s3:DeleteObject":    true,
	"s3:PutBucketPolicy": true,
}

// AnalyzePolicy parses a bucket policy document and reports risky statements.
func AnalyzePolicy(document string) (domain.PolicyAnalysis, error) {
	var policy map[string]any
	if err := json.Unmarshal([]byte(document), &policy); err != nil {
		return domain.PolicyAnalysis{}, fmt.Errorf("failed to parse bucket policy: %w", err)
	}
	if policy == nil {
		return domain.PolicyAnalysis{}, fmt.Errorf("failed to parse bucket policy: document is not a JSON object")
	}

	analysis := domain.PolicyAnalysis{Policy: policy, Issues: []domain.PolicyIssue{}}
	for _, statement := range statements(policy["Statement"]) {
		effect, _ := statement["Effect"].(string)
		action := statement["Action"]

		if effect == "Allow" && isWildcardPrincipal(statement["Principal"]) {
			analysis.Issues = append(analysis.Issues, domain.PolicyIssue{
				Type:     domain.PolicyIssueOpenAccess,
				Severity: domain.SeverityCritical,
				Detail:   fmt.Sprintf("Statement allows access to everyone (*). Actions: %v", action),
			})
		}

		actions := stringList(action)
		if slices.Contains(actions, "s3:*") {
			analysis.Issues = append(analysis.Issues, domain.PolicyIssue{
				Type:     domain.PolicyIssueWildcardActions,
				Severity: domain.SeverityHigh,
				Detail:   "Statement uses wildcard action s3:* and is overly permissive.",
			})
		}

		if _, isList := action.([]any); !isList {
			continue
		}
		if _, hasCondition := statement["Condition"]; hasCondition {
			continue
		}
		for _, name := range actions {
			if sensitiveActions[name] {
				analysis.Issues = append(analysis.Issues, domain.PolicyIssue{
					Type:     domain.PolicyIssueMissingCondition,
					Severity: domain.SeverityMedium,
					Detail:   fmt.Sprintf("Sensitive action '%s' has no Condition block.", name),
				})
			}
		}
	}

	return analysis, nil
}

// statements accepts both the list form and the single-object form.
func statements(raw any) []map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if s, ok := item.(map[string]any); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func isWildcardPrincipal(principal any) bool {
	switch p := principal.(type) {
	case string:
		return p == "*"
	case map[string]any:
		return len(p) == 1 && slices.Contains(stringList(p["AWS"]), "*")
	default:
		return false
	}
}

// stringList normalizes a policy value that may be a string or a list of strings.
func stringList(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
