package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// Naive keyword extraction. A clinical NER model would do better, but
// keyword matching covers the common discharge-summary vocabulary
// without another model dependency.
var (
	medicationPattern = regexp.MustCompile(`(?i)\b(amlodipine|metformin|atorvastatin|aspirin|losartan)\b`)
	conditionPattern  = regexp.MustCompile(`(?i)\b(stroke|hypertension|diabetes|avm|hemorrhage|hemiplegia|aphasia)\b`)

	// Captures lab readings like "Hb: 13.2 g/dL".
	labPattern = regexp.MustCompile(`(?i)\b(Hb|HbA1c|Glucose|Creatinine|LDL|HDL)\b[:\s]+([0-9]+\.?[0-9]*)\s*([a-zA-Z/%]+)?`)
)

// ExtractEntities pulls medications, lab values and conditions out of
// raw report text. Medication and condition matches are deduplicated
// case-insensitively; lab readings keep every occurrence.
func ExtractEntities(text string) domain.Entities {
	entities := domain.Entities{
		Medications: uniqueMatches(medicationPattern, text),
		Conditions:  uniqueMatches(conditionPattern, text),
	}

	for _, m := range labPattern.FindAllStringSubmatch(text, -1) {
		value := m[2]
		if unit := m[3]; unit != "" {
			value += " " + unit
		}
		entities.Labs = append(entities.Labs, domain.LabValue{
			Name:  m[1],
			Value: value,
		})
	}

	return entities
}

func uniqueMatches(pattern *regexp.Regexp, text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range pattern.FindAllString(text, -1) {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
