// room/track.go
package room

import (
	"errors"

	"github.com/generalChaos/partyroom/logger"
	"github.com/generalChaos/partyroom/protocol"
)

// ErrAlreadyVoted is returned when a second vote is attempted after one has
// been recorded locally. The emission is suppressed, not just the flag.
var ErrAlreadyVoted = errors.New("vote already submitted for this round")

// Emitter is the outbound half of the connection the tracker needs.
type Emitter interface {
	SubmitAnswer(answer string) error
	SubmitVote(choiceID string) error
}

// Confirmed holds submission state that is only ever derived from server
// snapshots. An answer's recorded identity (which bluff entry "is" this
// client's) is not knowable until the snapshot arrives, so the answer flag
// lives here and is never set optimistically.
type Confirmed struct {
	HasSubmittedAnswer bool
}

// Optimistic holds state reflected before server confirmation. A vote is
// terminal and cannot be retracted, so mirroring it instantly is safe.
type Optimistic struct {
	HasVoted         bool
	SelectedChoiceID string
}

// Tracker keeps the two submission-state tracks and funnels outbound
// actions through the emitter. The two tracks are reconciled, never
// conflated: Reconcile rewrites both from the authoritative snapshot.
type Tracker struct {
	emitter    Emitter
	reconciler Reconciler
	confirmed  Confirmed
	optimistic Optimistic
}

func NewTracker(emitter Emitter) *Tracker {
	return &Tracker{emitter: emitter}
}

// SubmitAnswer emits the answer and nothing else. The confirmed flag flips
// only when a snapshot proves the server recorded the submission.
func (t *Tracker) SubmitAnswer(answer string) error {
	return t.emitter.SubmitAnswer(answer)
}

// SubmitVote emits the vote and records it optimistically. Once a vote is
// locally recorded no second emission is allowed.
func (t *Tracker) SubmitVote(choiceID string) error {
	if t.optimistic.HasVoted {
		logger.Log.Debugf("Suppressed duplicate vote for choice %s", choiceID)
		return ErrAlreadyVoted
	}
	if err := t.emitter.SubmitVote(choiceID); err != nil {
		return err
	}
	t.optimistic.HasVoted = true
	t.optimistic.SelectedChoiceID = choiceID
	return nil
}

// Reconcile runs the reconciler against a new snapshot and installs the
// resulting flags on both tracks. Must be called from the room event
// handler, before the snapshot is rendered.
func (t *Tracker) Reconcile(state *protocol.RoomState, playerID string) {
	flags := t.reconciler.Apply(t.Flags(), state, playerID)
	t.confirmed.HasSubmittedAnswer = flags.HasSubmittedAnswer
	t.optimistic.HasVoted = flags.HasVoted
	t.optimistic.SelectedChoiceID = flags.SelectedChoiceID
}

// Flags returns the combined view of both tracks.
func (t *Tracker) Flags() Flags {
	return Flags{
		HasSubmittedAnswer: t.confirmed.HasSubmittedAnswer,
		HasVoted:           t.optimistic.HasVoted,
		SelectedChoiceID:   t.optimistic.SelectedChoiceID,
	}
}

func (t *Tracker) HasSubmittedAnswer() bool { return t.confirmed.HasSubmittedAnswer }
func (t *Tracker) HasVoted() bool           { return t.optimistic.HasVoted }
func (t *Tracker) SelectedChoiceID() string { return t.optimistic.SelectedChoiceID }
