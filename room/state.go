// room/state.go
package room

import (
	"github.com/generalChaos/partyroom/protocol"
)

// Mirror is the client-local copy of the authoritative room state. It is a
// pure data holder: every room push replaces the snapshot wholesale, there
// is no incremental merge. The single-writer rule applies: only the room
// event handler may call Replace, everything else reads. That rule, not a
// lock, is what keeps the mirror race-free on the event loop.
type Mirror struct {
	state    *protocol.RoomState
	timeLeft int
}

func NewMirror() *Mirror {
	return &Mirror{}
}

// Replace installs a new authoritative snapshot, superseding all prior
// state. The snapshot's timeLeft reseeds the timer mirror.
func (m *Mirror) Replace(state *protocol.RoomState) {
	m.state = state
	if state != nil {
		m.timeLeft = state.TimeLeft
	}
}

// State returns the latest snapshot, or nil before the first room push.
func (m *Mirror) State() *protocol.RoomState {
	return m.state
}

// SetTimeLeft records a server countdown push. The server is the sole
// source of truth for time remaining; the value is stored verbatim with no
// local ticking or drift correction.
func (m *Mirror) SetTimeLeft(seconds int) {
	m.timeLeft = seconds
}

func (m *Mirror) TimeLeft() int {
	return m.timeLeft
}

// IsHost reports whether the given player id drives the shared display.
func (m *Mirror) IsHost(playerID string) bool {
	return m.state != nil && m.state.HostID != "" && m.state.HostID == playerID
}
