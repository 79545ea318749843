package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInsightsRules(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category string
	}{
		{name: "elevated cholesterol", text: "Total cholesterol elevated at 240 mg/dL", category: "Cholesterol"},
		{name: "high blood pressure", text: "BP high at 150/95, known hypertension", category: "Blood Pressure"},
		{name: "diabetes", text: "HbA1c consistent with diabetes", category: "Blood Sugar"},
		{name: "weight no trigger needed", text: "BMI 31, advised on weight", category: "Weight Management"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := GenerateInsights(tt.text)
			require.NotEmpty(t, insights)
			categories := make([]string, 0, len(insights))
			for _, in := range insights {
				categories = append(categories, in.Category)
			}
			assert.Contains(t, categories, tt.category)
		})
	}
}

func TestGenerateInsightsTopicWithoutTrigger(t *testing.T) {
	// Cholesterol mentioned but not elevated: rule must not fire.
	insights := GenerateInsights("Cholesterol within normal limits.")
	require.Len(t, insights, 1)
	assert.Equal(t, "General Health", insights[0].Category)
}

func TestGenerateInsightsDefault(t *testing.T) {
	insights := GenerateInsights("Routine checkup, all clear.")
	require.Len(t, insights, 1)
	assert.Equal(t, "General Health", insights[0].Category)
	assert.Equal(t, "Low", insights[0].Priority)
}

func TestGenerateInsightsMultiple(t *testing.T) {
	text := "Elevated cholesterol at 240 and high blood pressure at 160/100; BMI suggests overweight."
	insights := GenerateInsights(text)
	assert.GreaterOrEqual(t, len(insights), 3)
}
