package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	patientInfoDir = "patientinfo"
	timelineDir    = "timelineinfo"
)

// NotFoundError reports that one of the two backing JSON files for a room is
// absent. Kind identifies which one ("patient info" or "timeline info").
type NotFoundError struct {
	RoomNumber string
	Kind       string
	Path       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for room %s (%s)", e.Kind, e.RoomNumber, e.Path)
}

// ValidationError reports that a backing file exists but is not valid JSON or
// does not satisfy the record schema.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid patient data in %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Loader reads the two per-room JSON documents from the data directory and
// assembles them into a CombinedPatientRecord. It holds no state between
// calls; every Load reads fresh from disk.
type Loader struct {
	dataDir string
}

func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// Load builds and validates the combined record for a room. Failures are
// typed: *NotFoundError when a file is missing (patient info is checked
// first), *ValidationError for malformed JSON or schema violations. Absence
// is terminal; nothing is defaulted or retried.
func (l *Loader) Load(roomNumber string) (*CombinedPatientRecord, error) {
	infoPath := filepath.Join(l.dataDir, patientInfoDir, "room"+roomNumber+".json")
	timelinePath := filepath.Join(l.dataDir, timelineDir, "room"+roomNumber+".json")

	if _, err := os.Stat(infoPath); err != nil {
		return nil, &NotFoundError{RoomNumber: roomNumber, Kind: "patient info", Path: infoPath}
	}
	if _, err := os.Stat(timelinePath); err != nil {
		return nil, &NotFoundError{RoomNumber: roomNumber, Kind: "timeline info", Path: timelinePath}
	}

	var info PatientIdentity
	if err := decodeFile(infoPath, &info); err != nil {
		return nil, err
	}
	if err := info.Validate(); err != nil {
		return nil, &ValidationError{Path: infoPath, Err: err}
	}

	var timeline PatientTimeline
	if err := decodeFile(timelinePath, &timeline); err != nil {
		return nil, err
	}
	if err := timeline.Validate(); err != nil {
		return nil, &ValidationError{Path: timelinePath, Err: err}
	}

	return &CombinedPatientRecord{
		PatientInfo:     info,
		PatientTimeline: timeline,
	}, nil
}

func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ValidationError{Path: path, Err: err}
	}
	return nil
}
