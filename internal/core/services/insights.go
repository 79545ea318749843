package services

import (
	"strings"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// insightRule fires when the report mentions a topic together with at
// least one trigger term. Rules with no triggers fire on topic alone.
type insightRule struct {
	topics   []string
	triggers []string
	insight  domain.Insight
}

var insightRules = []insightRule{
	{
		topics:   []string{"cholesterol"},
		triggers: []string{"high", "elevated", "200", "220", "240"},
		insight: domain.Insight{
			Category:       "Cholesterol",
			Recommendation: "Consider a heart-healthy diet low in saturated fats. Include more fiber-rich foods like oats, beans, and vegetables.",
			Priority:       "High",
		},
	},
	{
		topics:   []string{"blood pressure", "hypertension", "bp"},
		triggers: []string{"high", "elevated", "140", "150", "160"},
		insight: domain.Insight{
			Category:       "Blood Pressure",
			Recommendation: "Reduce sodium intake, increase physical activity, and consider stress management techniques.",
			Priority:       "High",
		},
	},
	{
		topics:   []string{"glucose", "diabetes", "blood sugar", "hba1c"},
		triggers: []string{"high", "elevated", "diabetes", "pre-diabetic"},
		insight: domain.Insight{
			Category:       "Blood Sugar",
			Recommendation: "Monitor carbohydrate intake, maintain regular meal times, and increase physical activity.",
			Priority:       "High",
		},
	},
	{
		topics: []string{"weight", "bmi", "obesity", "overweight"},
		insight: domain.Insight{
			Category:       "Weight Management",
			Recommendation: "Consider a balanced diet with portion control and regular exercise routine.",
			Priority:       "Medium",
		},
	},
}

// defaultInsight is returned when no rule fires.
var defaultInsight = domain.Insight{
	Category:       "General Health",
	Recommendation: "Maintain a balanced diet, regular exercise, and follow up with your healthcare provider.",
	Priority:       "Low",
}

// GenerateInsights produces rule-based lifestyle insights from report
// text. Works without any reasoning backend, so users always get at
// least one actionable pointer.
func GenerateInsights(text string) []domain.Insight {
	lower := strings.ToLower(text)

	var insights []domain.Insight
	for _, rule := range insightRules {
		if !containsAny(lower, rule.topics) {
			continue
		}
		if len(rule.triggers) > 0 && !containsAny(lower, rule.triggers) {
			continue
		}
		insights = append(insights, rule.insight)
	}

	if len(insights) == 0 {
		insights = append(insights, defaultInsight)
	}
	return insights
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
