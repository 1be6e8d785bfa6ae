package games

import (
	"fmt"
	"time"
)

// TrackedGame is the persisted minimal record of a monitored game.
type TrackedGame struct {
	ID                 string    `json:"id"`
	Start              time.Time `json:"start"`
	State              State     `json:"state"`
	LiveThreadEligible bool      `json:"liveThreadEligible"`
	LiveThreadID       *string   `json:"liveThreadId"`
	SummaryThreadID    *string   `json:"summaryThreadId,omitempty"`
}

// NewTrackedGame schedules a game for tracking. Only pre and live games can be scheduled.
func NewTrackedGame(id string, start time.Time, state State, eligible bool) (TrackedGame, error) {
	if id == "" {
		return TrackedGame{}, fmt.Errorf("tracked game id required")
	}
	if _, err := Advance(StateNone, state); err != nil {
		return TrackedGame{}, err
	}
	return TrackedGame{
		ID:                 id,
		Start:              start.UTC(),
		State:              state,
		LiveThreadEligible: eligible,
	}, nil
}

// Clone returns a deep copy so thread references are not shared.
func (g TrackedGame) Clone() TrackedGame {
	out := g
	out.LiveThreadID = cloneRef(g.LiveThreadID)
	out.SummaryThreadID = cloneRef(g.SummaryThreadID)
	return out
}

// HasLiveThread reports whether a live thread was created.
func (g TrackedGame) HasLiveThread() bool {
	return g.LiveThreadID != nil && *g.LiveThreadID != ""
}

// HasSummaryThread reports whether a summary thread was created.
func (g TrackedGame) HasSummaryThread() bool {
	return g.SummaryThreadID != nil && *g.SummaryThreadID != ""
}

// Ref returns a pointer to a copy of the thread reference.
func Ref(id string) *string {
	return &id
}

func cloneRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := *ref
	return &v
}
