package records

import "fmt"

// ContactRecord is a known person connected to the patient. It has no
// lifecycle of its own and only ever appears nested in a PatientIdentity.
type ContactRecord struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Location     string `json:"location"`
	PhoneNumber  string `json:"phone_number"`
}

// PatientIdentity mirrors patientinfo/room<N>.json as produced by the
// video-to-profile generator.
type PatientIdentity struct {
	FullName              string          `json:"full_name"`
	Location              string          `json:"location"`
	Age                   int             `json:"age"`
	PreExistingConditions []string        `json:"pre_existing_conditions"`
	CurrentSymptoms       []string        `json:"current_symptoms"`
	Diagnosis             string          `json:"diagnosis"`
	Allergies             string          `json:"allergies"`
	Medications           []string        `json:"medications"`
	CloseContacts         []ContactRecord `json:"close_contacts"`
}

// Validate checks the schema invariants. List fields must be present in the
// source document; an absent list decodes to nil and is a failure, an empty
// list is fine.
func (p *PatientIdentity) Validate() error {
	if p.FullName == "" {
		return fmt.Errorf("missing required field %q", "full_name")
	}
	if p.Age < 0 {
		return fmt.Errorf("field %q must be non-negative, got %d", "age", p.Age)
	}
	if p.PreExistingConditions == nil {
		return fmt.Errorf("missing required field %q", "pre_existing_conditions")
	}
	if p.CurrentSymptoms == nil {
		return fmt.Errorf("missing required field %q", "current_symptoms")
	}
	if p.Medications == nil {
		return fmt.Errorf("missing required field %q", "medications")
	}
	if p.CloseContacts == nil {
		return fmt.Errorf("missing required field %q", "close_contacts")
	}
	return nil
}

// VitalsSnapshot is one point-in-time set of physiological readings.
type VitalsSnapshot struct {
	HeartRate       float64 `json:"heart_rate"`
	BloodPressure   string  `json:"blood_pressure"`
	BloodOxygen     float64 `json:"blood_oxygen"`
	BloodGlucose    float64 `json:"blood_glucose"`
	Temperature     float64 `json:"temperature"`
	RespiratoryRate float64 `json:"respiratory_rate"`
	PulseRate       float64 `json:"pulse_rate"`
}

// ObservationWindow is one time-bounded clinical observation. Start and end
// times are opaque display strings; end_time following start_time is trusted,
// not enforced, because the windows come from an external generator.
type ObservationWindow struct {
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Symptoms    []string `json:"symptoms"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
	DangerLevel string   `json:"danger_level"`
}

func (o *ObservationWindow) Validate() error {
	if o.Symptoms == nil {
		return fmt.Errorf("missing required field %q", "symptoms")
	}
	if o.Confidence < 0.0 || o.Confidence > 1.0 {
		return fmt.Errorf("field %q must be in [0.0, 1.0], got %v", "confidence", o.Confidence)
	}
	return nil
}

// PatientTimeline mirrors timelineinfo/room<N>.json as produced by the
// video-to-timeline generator. The room number is the natural key used for
// file lookup.
type PatientTimeline struct {
	RoomNumber        string              `json:"room_number"`
	PredictedSymptoms []string            `json:"predicted_symptoms"`
	Timestamps        []ObservationWindow `json:"timestamps"`
	DangerLevel       string              `json:"danger_level"`
	Description       string              `json:"description"`
	Vitals            *VitalsSnapshot     `json:"vitals"`
	AdmissionDate     string              `json:"admission_date"`
}

func (t *PatientTimeline) Validate() error {
	if t.RoomNumber == "" {
		return fmt.Errorf("missing required field %q", "room_number")
	}
	if t.PredictedSymptoms == nil {
		return fmt.Errorf("missing required field %q", "predicted_symptoms")
	}
	if t.Timestamps == nil {
		return fmt.Errorf("missing required field %q", "timestamps")
	}
	if t.Vitals == nil {
		return fmt.Errorf("missing required field %q", "vitals")
	}
	for i := range t.Timestamps {
		if err := t.Timestamps[i].Validate(); err != nil {
			return fmt.Errorf("timestamps[%d]: %w", i, err)
		}
	}
	return nil
}

// CombinedPatientRecord pairs exactly one identity with exactly one timeline
// for a single room. It is assembled fresh per request, read-only, and
// discarded once the response has been produced.
type CombinedPatientRecord struct {
	PatientInfo     PatientIdentity `json:"patient_info"`
	PatientTimeline PatientTimeline `json:"patient_timeline"`
}
