package domain

// LabValue is a lab name/value pair captured by entity extraction.
type LabValue struct {
	Name  string
	Value string
}

// Entities holds the clinical entities extracted from report text.
// Extraction is pattern-based, so empty slices are common.
type Entities struct {
	Medications []string
	Labs        []LabValue
	Conditions  []string
}

// Empty reports whether no entities were extracted.
func (e Entities) Empty() bool {
	return len(e.Medications) == 0 && len(e.Labs) == 0 && len(e.Conditions) == 0
}
