package domain

const (
	AdviceUnavailable        = "AI analysis unavailable (no provider)."
	AdviceUnavailableSummary = "N/A"
)

type PriorityAction struct {
	Priority int      `json:"priority" yaml:"priority"`
	Action   string   `json:"action" yaml:"action"`
	Reason   string   `json:"reason" yaml:"reason"`
	Commands []string `json:"commands" yaml:"commands"`
}

// Advice is the structured output of the advisory engine.
type Advice struct {
	Summary                 string           `json:"summary" yaml:"summary"`
	HealthAssessment        string           `json:"health_assessment" yaml:"health_assessment"`
	Analysis                string           `json:"analysis" yaml:"analysis"`
	PriorityActions         []PriorityAction `json:"priority_actions" yaml:"priority_actions"`
	SecurityRecommendations []string         `json:"security_recommendations" yaml:"security_recommendations"`
	CostOptimization        []string         `json:"cost_optimization" yaml:"cost_optimization"`
}

func UnavailableAdvice() Advice {
	return Advice{
		Analysis:        AdviceUnavailable,
		Summary:         AdviceUnavailableSummary,
		PriorityActions: []PriorityAction{},
	}
}

// Populated reports whether a decoded response carried any advice fields.
func (a Advice) Populated() bool {
	return a.Summary != "" || a.Analysis != "" || len(a.PriorityActions) > 0
}

// Normalized returns a copy whose slices are never nil.
func (a Advice) Normalized() Advice {
	if a.PriorityActions == nil {
		a.PriorityActions = []PriorityAction{}
	}
	if a.SecurityRecommendations == nil {
		a.SecurityRecommendations = []string{}
	}
	if a.CostOptimization == nil {
		a.CostOptimization = []string{}
	}
	return a
}
