package advisor

import (
	"encoding/json"
	"strings"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

const fallbackSummaryLen = 500

func stripFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// ParseAdvice decodes a model response. Fenced or bare JSON is tried first,
// then YAML. Anything else becomes the analysis text.
func ParseAdvice(text string) domain.Advice {
	clean := stripFences(text)

	var advice domain.Advice
	if err := json.Unmarshal([]byte(clean), &advice); err == nil && advice.Populated() {
		return advice.Normalized()
	}

	advice = domain.Advice{}
	if err := yaml.Unmarshal([]byte(clean), &advice); err == nil && advice.Populated() {
		return advice.Normalized()
	}

	summary := text
	if r := []rune(text); len(r) > fallbackSummaryLen {
		summary = string(r[:fallbackSummaryLen])
	}
	return domain.Advice{Analysis: text, Summary: summary}.Normalized()
}
