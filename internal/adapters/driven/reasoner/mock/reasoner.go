// Package mock provides a canned clinical reasoner used when no API
// key is configured, and as the fallback when a remote reasoner
// fails. Output is deterministic.
package mock

import (
	"context"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
)

// Ensure Reasoner implements the interface.
var _ driven.Reasoner = (*Reasoner)(nil)

// Reasoner returns a fixed structured analysis regardless of input.
type Reasoner struct{}

// NewReasoner creates a new mock reasoner.
func NewReasoner() *Reasoner {
	return &Reasoner{}
}

// AnalyzeReport returns a canned analysis of a neurosurgical discharge.
func (r *Reasoner) AnalyzeReport(_ context.Context, _ string) (*domain.Analysis, error) {
	return &domain.Analysis{
		Summary: "Patient with intracranial hemorrhage s/p craniotomy; ongoing right hemiplegia and aphasia; hypertension control and neuro-rehab are priorities.",
		KeyFindings: []string{
			"Large left capsular ganglionic bleed with mass effect",
			"Midline shift present on imaging",
			"Right hemiplegia and expressive aphasia",
			"Hypertensive readings during admission",
		},
		Recommendations: []string{
			"Strict BP control and home monitoring",
			"Intensive PT/OT/ST rehabilitation",
			"Neurosurgical follow-up for AVM management",
		},
		Encounter: domain.Encounter{
			Department:    "Neurosurgery",
			DischargeType: "DAMA",
		},
		Vitals: []domain.Measurement{
			{Name: "BP", Value: "170/110", Unit: "mmHg", Flag: "high"},
			{Name: "Temp", Value: "101", Unit: "F", Flag: "high"},
		},
		Labs: []domain.LabResult{
			{Name: "Hb", Value: "13.2", Unit: "g/dL", Reference: "13.5-17.5", Flag: "low"},
		},
		Diagnoses: []domain.Diagnosis{
			{Name: "Acute hemorrhagic stroke due to AVM", Status: "active", Severity: "severe"},
			{Name: "Hypertension", Status: "active", Severity: "moderate"},
		},
		Procedures: []string{
			"Left temporal craniotomy and evacuation of hematoma",
			"Tracheostomy",
		},
		ImagingFindings: []string{
			"Large capsular ganglionic bleed with midline shift",
			"Diffuse intraparenchymal and subarachnoid hemorrhage",
		},
		RedFlags: []string{
			"Severe uncontrolled hypertension",
			"Neurological deterioration risk",
		},
		FollowUp: []domain.FollowUp{
			{Action: "Neurosurgical review", Timeframe: "1-2 weeks"},
			{Action: "Repeat CT/MRI as advised", Timeframe: "2-4 weeks"},
		},
		Medications: []domain.Medication{
			{Name: "Amlodipine", Dose: "5 mg", Frequency: "OD", Notes: "Titrate to BP"},
		},
		Lifestyle: []domain.Lifestyle{
			{Category: "Diet", Suggestion: "Low-salt, heart-healthy diet"},
			{Category: "Smoking/Alcohol", Suggestion: "Complete cessation"},
		},
		Disclaimer: "Educational summary, not a substitute for clinical judgment.",
	}, nil
}

// AnswerWithContext returns a fixed answer acknowledging the context.
func (r *Reasoner) AnswerWithContext(_ context.Context, _, _ string) (string, error) {
	return "Based on prior reports, key trends and patient history are considered in the answer.", nil
}

// ModelName returns the name of the model being used.
func (r *Reasoner) ModelName() string {
	return "mock"
}

// Close releases resources.
func (r *Reasoner) Close() error {
	return nil
}
