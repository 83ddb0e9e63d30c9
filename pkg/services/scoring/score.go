package scoring

import (
	"math"

	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

var statusWeights = map[domain.CheckStatus]float64{
	domain.StatusPass:    1.0,
	domain.StatusWarning: 0.6,
	domain.StatusSkipped: 0.5,
	domain.StatusFail:    0.0,
	domain.StatusError:   0.0,
}

// StatusWeight returns the share of a result's severity weight that counts
// towards the score. Statuses without a weight, INFO included, count as zero.
func StatusWeight(status domain.CheckStatus) float64 {
	return statusWeights[status]
}

// CalculateScore aggregates results into a 0-100 score and its health label.
func CalculateScore(results []domain.DiagnosticResult) (int, domain.Health) {
	if len(results) == 0 {
		return 0, domain.HealthUnknown
	}

	var weighted, total float64
	for _, r := range results {
		multiplier := r.Severity.Multiplier()
		weighted += StatusWeight(r.Status) * multiplier
		total += multiplier
	}

	score := int(math.Floor(weighted / total * 100))
	return score, HealthForScore(score)
}

func HealthForScore(score int) domain.Health {
	switch {
	case score >= 90:
		return domain.HealthHealthy
	case score >= 70:
		return domain.HealthGood
	case score >= 50:
		return domain.HealthNeedsAttention
	case score >= 30:
		return domain.HealthUnhealthy
	default:
		return domain.HealthCritical
	}
}
