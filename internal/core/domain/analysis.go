package domain

// Analysis is the structured clinical analysis produced by the
// reasoning backend for a single report.
type Analysis struct {
	Summary         string        `json:"summary"`
	KeyFindings     []string      `json:"key_findings"`
	Recommendations []string      `json:"recommendations"`
	Patient         PatientInfo   `json:"patient"`
	Encounter       Encounter     `json:"encounter"`
	Vitals          []Measurement `json:"vitals"`
	Labs            []LabResult   `json:"labs"`
	Diagnoses       []Diagnosis   `json:"diagnoses"`
	Procedures      []string      `json:"procedures"`
	ImagingFindings []string      `json:"imaging_findings"`
	RedFlags        []string      `json:"red_flags"`
	FollowUp        []FollowUp    `json:"follow_up"`
	Medications     []Medication  `json:"medications"`
	Lifestyle       []Lifestyle   `json:"lifestyle"`
	Disclaimer      string        `json:"disclaimer"`
}

// PatientInfo holds patient identifiers extracted from the report.
type PatientInfo struct {
	Name string `json:"name"`
	Age  string `json:"age"`
	Sex  string `json:"sex"`
	UHID string `json:"uhid"`
	MRN  string `json:"mrn"`
}

// Encounter describes the admission the report covers.
type Encounter struct {
	AdmissionDate string `json:"admission_date"`
	DischargeDate string `json:"discharge_date"`
	Department    string `json:"department"`
	DischargeType string `json:"discharge_type"`
}

// Measurement is a named vital sign reading.
type Measurement struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
	Flag  string `json:"flag"`
}

// LabResult is a laboratory value with its reference range.
type LabResult struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Unit      string `json:"unit"`
	Reference string `json:"reference"`
	Flag      string `json:"flag"`
}

// Diagnosis is a named condition with status and severity.
type Diagnosis struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Severity string `json:"severity"`
}

// FollowUp is a recommended follow-up action.
type FollowUp struct {
	Action    string `json:"action"`
	Timeframe string `json:"timeframe"`
}

// Medication is a prescribed drug with dosing details.
type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes"`
}

// Lifestyle is a category-tagged lifestyle suggestion.
type Lifestyle struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
}

// Insight is a rule-derived recommendation generated without the
// reasoning backend.
type Insight struct {
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
	Priority       string `json:"priority"`
}
