package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the milestone an Event represents.
type Stage string

// Supported progress stages.
const (
	StageRunStart    Stage = "RUN_START"
	StageRunDone     Stage = "RUN_DONE"
	StageRunError    Stage = "RUN_ERROR"
	StageFetchDone   Stage = "FETCH_DONE"
	StageFeedDone    Stage = "FEED_DONE"
	StageDomainAdded Stage = "DOMAIN_ADDED"
)

// Outcome classifies how a fetch through the gate ended.
type Outcome string

// Fetch outcomes reported with StageFetchDone.
const (
	OutcomeOK      Outcome = "ok"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Event captures a single harvest milestone.
type Event struct {
	// RunID identifies the harvest run in 16-byte UUID form.
	RunID [16]byte
	// TS is the UTC time the emitter recorded the event.
	TS time.Time
	Stage Stage
	// Domain is the registrable domain the event concerns, if any.
	Domain string
	URL    string
	// Total is the registry size after a DOMAIN_ADDED, or the number of
	// domains a feed contributed for FEED_DONE.
	Total int64
	// Bytes is the body size of a completed fetch.
	Bytes   int64
	Outcome Outcome
	Dur     time.Duration
	// Note carries low-volume context such as error text.
	Note string
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.RunID == [16]byte{} {
		return errors.New("run id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageRunStart, StageRunDone, StageRunError:
	case StageFetchDone:
		if e.URL == "" {
			return errors.New("fetch done requires url")
		}
		if e.Outcome == "" {
			return errors.New("fetch done requires outcome")
		}
	case StageFeedDone:
		if e.URL == "" {
			return errors.New("feed done requires url")
		}
	case StageDomainAdded:
		if e.Domain == "" {
			return errors.New("domain added requires domain")
		}
		if e.Total <= 0 {
			return errors.New("domain added requires a positive total")
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Dur < 0 {
		return errors.New("duration must be >= 0")
	}
	return nil
}

// RunUUID converts the binary run ID back to a uuid.UUID.
func (e Event) RunUUID() uuid.UUID {
	return uuid.UUID(e.RunID)
}

// UUIDToBytes encodes a uuid.UUID into the Event form.
func UUIDToBytes(id uuid.UUID) [16]byte {
	var dest [16]byte
	copy(dest[:], id[:])
	return dest
}
