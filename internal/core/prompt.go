package core

import (
	"fmt"
	"strings"

	"carecam.com/patient-chat/internal/records"
)

// ComposePrompt renders a combined patient record into the system prompt for
// the text-generation service. It is a pure function: identical input yields
// byte-identical output. Every contact and every observation window is
// rendered in input order; empty lists render as empty joins.
func ComposePrompt(rec *records.CombinedPatientRecord) string {
	info := rec.PatientInfo
	timeline := rec.PatientTimeline

	var b strings.Builder

	b.WriteString("You are Florence, an AI medical assistant that has analyzed a patient through a surveillance camera system.\n")
	b.WriteString("You have access to the following patient information:\n\n")

	fmt.Fprintf(&b, "Patient Name: %s\n", info.FullName)
	fmt.Fprintf(&b, "Age: %d\n", info.Age)
	fmt.Fprintf(&b, "Location: %s\n", info.Location)
	fmt.Fprintf(&b, "Diagnosis: %s\n", info.Diagnosis)
	fmt.Fprintf(&b, "Pre-existing Conditions: %s\n", strings.Join(info.PreExistingConditions, ", "))
	fmt.Fprintf(&b, "Current Symptoms: %s\n", strings.Join(info.CurrentSymptoms, ", "))
	fmt.Fprintf(&b, "Allergies: %s\n", info.Allergies)
	fmt.Fprintf(&b, "Medications: %s\n", strings.Join(info.Medications, ", "))

	b.WriteString("\nClose Contacts:\n")
	b.WriteString(renderContacts(info.CloseContacts))

	fmt.Fprintf(&b, "\nRoom Number: %s\n", timeline.RoomNumber)
	fmt.Fprintf(&b, "Admission Date: %s\n", timeline.AdmissionDate)
	fmt.Fprintf(&b, "Predicted Symptoms: %s\n", strings.Join(timeline.PredictedSymptoms, ", "))
	fmt.Fprintf(&b, "Overall Danger Level: %s\n", timeline.DangerLevel)
	fmt.Fprintf(&b, "Overall Description: %s\n", timeline.Description)

	b.WriteString("\nVitals:\n")
	b.WriteString(renderVitals(timeline.Vitals))

	b.WriteString("\nDetailed Observations:\n")
	b.WriteString(renderObservations(timeline.Timestamps))

	b.WriteString("\nRespond to the user's questions about this patient in a clear, concise, and medically appropriate manner.\n")
	b.WriteString("Base your answers strictly on the data provided. If information is not available, say so rather than making assumptions.\n")

	return b.String()
}

// renderContacts emits one line per contact, preserving input order.
func renderContacts(contacts []records.ContactRecord) string {
	var b strings.Builder
	for _, c := range contacts {
		fmt.Fprintf(&b, "- %s (%s): %s, %s\n", c.Name, c.Relationship, c.PhoneNumber, c.Location)
	}
	return b.String()
}

// renderVitals emits one line per reading with fixed units.
func renderVitals(v *records.VitalsSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Heart Rate: %g bpm\n", v.HeartRate)
	fmt.Fprintf(&b, "- Blood Pressure: %s\n", v.BloodPressure)
	fmt.Fprintf(&b, "- Blood Oxygen: %g%%\n", v.BloodOxygen)
	fmt.Fprintf(&b, "- Blood Glucose: %g mg/dL\n", v.BloodGlucose)
	fmt.Fprintf(&b, "- Temperature: %g°C\n", v.Temperature)
	fmt.Fprintf(&b, "- Respiratory Rate: %g breaths/min\n", v.RespiratoryRate)
	fmt.Fprintf(&b, "- Pulse Rate: %g bpm\n", v.PulseRate)
	return b.String()
}

// renderObservations emits one numbered block per observation window,
// preserving input order.
func renderObservations(windows []records.ObservationWindow) string {
	var b strings.Builder
	for i, w := range windows {
		fmt.Fprintf(&b, "Observation %d (%s to %s):\n", i+1, w.StartTime, w.EndTime)
		fmt.Fprintf(&b, "- Symptoms: %s\n", strings.Join(w.Symptoms, ", "))
		fmt.Fprintf(&b, "- Confidence: %g\n", w.Confidence)
		fmt.Fprintf(&b, "- Danger Level: %s\n", w.DangerLevel)
		fmt.Fprintf(&b, "- Description: %s\n\n", w.Description)
	}
	return b.String()
}
