// room/reconcile.go
package room

import (
	"github.com/generalChaos/partyroom/protocol"
)

// Flags is the local-only submission state derived from authoritative
// snapshots. It exists purely to drive UI affordances and must always be
// re-derivable from a fresh snapshot, e.g. after a reconnect wipes client
// memory.
type Flags struct {
	HasSubmittedAnswer bool
	HasVoted           bool
	SelectedChoiceID   string
}

// Reconciler decides which local flags survive each incoming snapshot.
//
// Submission state races the server: a client emits an answer, the phase
// may advance before the confirming snapshot arrives, and a naive
// reset-on-phase-change would erase a submission the server already
// recorded. The reconciler compares the previous processed snapshot's
// phase and round against the new one and applies deterministic reset
// rules instead. It never errors: any snapshot, however unexpected, is
// absorbed by the same rules.
type Reconciler struct {
	prevPhase protocol.Phase // empty until the first snapshot is processed
	prevRound int
}

// HasSubmittedIn reports whether the authoritative round data already
// contains a contribution from the given player, either as an authored
// bluff or as a correct answer. This is the single derivation used both on
// phase transitions and on the reconnect path; local memory is never
// trusted over it.
func HasSubmittedIn(current *protocol.RoundState, playerID string) bool {
	if current == nil || playerID == "" {
		return false
	}
	for _, b := range current.Bluffs {
		if b.By == playerID {
			return true
		}
	}
	for _, id := range current.CorrectAnswerPlayers {
		if id == playerID {
			return true
		}
	}
	return false
}

// VoteBy returns the player's recorded vote in the round data, if any.
func VoteBy(current *protocol.RoundState, playerID string) (protocol.Vote, bool) {
	if current == nil || playerID == "" {
		return protocol.Vote{}, false
	}
	for _, v := range current.Votes {
		if v.Voter == playerID {
			return v, true
		}
	}
	return protocol.Vote{}, false
}

// Apply runs the reset rules for one snapshot and returns the new flags.
// All inputs are explicit parameters; the latest flags and player id are
// threaded in rather than read from ambient state, so a handler can never
// act on a stale closure. Apply must run synchronously inside the room
// event handler.
func (r *Reconciler) Apply(flags Flags, state *protocol.RoomState, playerID string) Flags {
	next := flags

	// Reset rules fire only on an observed phase change, never on the very
	// first snapshot: a fresh client derives everything from authoritative
	// data below.
	if r.prevPhase != "" && r.prevPhase != state.Phase {
		switch state.Phase {
		case protocol.PhasePrompt:
			// Entering a new prompt. A submission the server has already
			// recorded under this round must not be erased by the
			// transition; voting never carries across rounds.
			if !HasSubmittedIn(state.Current, playerID) {
				next.HasSubmittedAnswer = false
			}
			next.HasVoted = false
			next.SelectedChoiceID = ""
		case protocol.PhaseChoose:
			// A voting round always starts clean. The answer flag is left
			// alone: a player who answered must not be re-prompted
			// mid-transition.
			next.HasVoted = false
			next.SelectedChoiceID = ""
		}
	}

	// Coarser guard: a round boundary entered at prompt resets everything,
	// catching transitions the phase comparison missed because the locally
	// recorded phase was stale (an intermediate snapshot never processed).
	// The reset is final for a continuing client: whatever round data the
	// snapshot carries, entering a new round at prompt means starting over.
	roundReset := r.prevRound != state.Round && state.Phase == protocol.PhasePrompt
	if roundReset {
		next = Flags{}
	}

	// Authoritative derivation. The snapshot is a full replacement, so its
	// round data is the truth for the current round: if it carries this
	// client's contribution the flag is set regardless of local memory.
	// This is also the reconnect path: a fresh client whose memory was
	// wiped (prevPhase still empty) recovers its flags here from the first
	// snapshot alone. It never overrides the round-change force reset.
	if !roundReset || r.prevPhase == "" {
		if HasSubmittedIn(state.Current, playerID) {
			next.HasSubmittedAnswer = true
		}
		if v, ok := VoteBy(state.Current, playerID); ok {
			next.HasVoted = true
			next.SelectedChoiceID = v.ChoiceID
		}
	}

	r.prevPhase = state.Phase
	r.prevRound = state.Round
	return next
}
