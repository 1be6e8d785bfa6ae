package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/preston-bernstein/gameday-threads/internal/domain/games"
)

// ErrSnapshotMismatch is returned when the feed answers for a different game.
var ErrSnapshotMismatch = errors.New("snapshot does not match tracked game")

// PlanKind selects which branch of the reconciliation applies.
type PlanKind string

const (
	// PlanUpdate refreshes the record and may open a live thread.
	PlanUpdate PlanKind = "update"
	// PlanFinalize posts the summary, locks the live thread and deletes the record.
	PlanFinalize PlanKind = "finalize"
	// PlanRetire deletes a record whose summary was already posted.
	PlanRetire PlanKind = "retire"
)

// Plan is the decision for one record. Effects are keyed off Stored; Next is the value to
// persist once effects have run.
type Plan struct {
	Kind             PlanKind
	Transition       games.Transition
	Stored           games.TrackedGame
	Next             games.TrackedGame
	CreateLiveThread bool
	CreateSummary    bool
	LockThreadID     string
	Delete           bool
	// Refused is the fetched state when the feed moved the game backward. The stored state is
	// kept and only the start time is refreshed.
	Refused          games.State
}

// Decide computes the plan for a stored record and its freshly fetched snapshot.
func Decide(stored games.TrackedGame, fetched games.Snapshot, now time.Time) (Plan, error) {
	if fetched.ID != "" && fetched.ID != stored.ID {
		return Plan{}, fmt.Errorf("%w: stored %s, fetched %s", ErrSnapshotMismatch, stored.ID, fetched.ID)
	}

	if IsPendingRetire(stored) {
		t, err := games.Advance(stored.State, games.StateRetired)
		if err != nil {
			return Plan{}, err
		}
		return Plan{
			Kind:       PlanRetire,
			Transition: t,
			Stored:     stored,
			Next:       stored.Clone(),
			Delete:     true,
		}, nil
	}

	// Finalize is checked first so a freshly final game is never also an in-flight update.
	if IsPostGame(stored, now) && ReadyForSummary(fetched) {
		t, err := games.Advance(stored.State, games.StateRetired)
		if err != nil {
			return Plan{}, err
		}
		p := Plan{
			Kind:          PlanFinalize,
			Transition:    t,
			Stored:        stored,
			Next:          stored.Clone(),
			CreateSummary: true,
			Delete:        true,
		}
		if stored.HasLiveThread() {
			p.LockThreadID = *stored.LiveThreadID
		}
		return p, nil
	}

	t, err := games.Advance(stored.State, fetched.State)
	if errors.Is(err, games.ErrIllegalTransition) && isBackward(stored.State, fetched.State) {
		next := stored.Clone()
		next.Start = fetched.Start.UTC()
		return Plan{
			Kind:       PlanUpdate,
			Transition: games.TransitionHold,
			Stored:     stored,
			Next:       next,
			Refused:    fetched.State,
		}, nil
	}
	if err != nil {
		return Plan{}, err
	}
	next := stored.Clone()
	next.State = fetched.State
	next.Start = fetched.Start.UTC()

	return Plan{
		Kind:             PlanUpdate,
		Transition:       t,
		Stored:           stored,
		Next:             next,
		CreateLiveThread: IsImminent(stored, now),
	}, nil
}

// gameOrder ranks the states a feed can report.
var gameOrder = map[games.State]int{games.StatePre: 1, games.StateLive: 2, games.StateFinal: 3}

// isBackward reports a feed move from a later game state to an earlier one, such as a
// postponement or correction. Unknown states are never backward.
func isBackward(from, to games.State) bool {
	f, t := gameOrder[from], gameOrder[to]
	return f != 0 && t != 0 && t < f
}

// WithLiveThread records the created live thread on the proposed record.
func (p Plan) WithLiveThread(id string) Plan {
	p.Next = p.Next.Clone()
	p.Next.LiveThreadID = games.Ref(id)
	return p
}

// WithSummaryThread records the created summary thread on the proposed record.
func (p Plan) WithSummaryThread(id string) Plan {
	p.Next = p.Next.Clone()
	p.Next.SummaryThreadID = games.Ref(id)
	return p
}

// Changed reports whether the proposed record differs from the stored one.
func (p Plan) Changed() bool {
	return !SameRecord(p.Stored, p.Next)
}
