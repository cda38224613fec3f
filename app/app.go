// app/app.go
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/generalChaos/partyroom/games"
	"github.com/generalChaos/partyroom/logger"
	"github.com/generalChaos/partyroom/monitor"
	"github.com/generalChaos/partyroom/protocol"
	"github.com/generalChaos/partyroom/room"
	"github.com/generalChaos/partyroom/session"
)

// Client is the state shared by the host and player applications: one
// session, the room mirror, the submission tracker and the phase router.
// Server events arrive on the session's read loop while stdin commands
// arrive on their own goroutine, so the mutable client state is guarded by
// a single mutex.
type Client struct {
	mu sync.Mutex

	sess     *session.Session
	mirror   *room.Mirror
	tracker  *room.Tracker
	registry *games.Registry
	metrics  *monitor.Monitor
	out      io.Writer

	roomCode string
	isHost   bool
	nickname string
	avatar   string

	playerID string
	joined   bool
	choices  []protocol.Choice
	scores   []protocol.ScoreTotal
	winners  []protocol.Winner

	// onGameOver runs after the terminal event is processed; the host app
	// archives the finished game here.
	onGameOver func(data protocol.GameOverData)
}

func newClient(sess *session.Session, roomCode, nickname, avatar string, isHost bool, metrics *monitor.Monitor, out io.Writer) *Client {
	c := &Client{
		sess:     sess,
		mirror:   room.NewMirror(),
		tracker:  room.NewTracker(sess),
		registry: games.NewRegistry(),
		metrics:  metrics,
		out:      out,
		roomCode: roomCode,
		isHost:   isHost,
		nickname: nickname,
		avatar:   avatar,
	}
	c.bind()
	return c
}

// bind registers every event handler this client observes. All room
// mutations flow through the room handler; nothing else writes the mirror.
func (c *Client) bind() {
	c.sess.On(protocol.EventConnect, func(json.RawMessage) {
		if c.metrics != nil {
			c.metrics.SetConnected(true)
		}
		if err := c.sess.Join(c.nickname, c.avatar); err != nil {
			logger.Log.Errorf("Failed to join room %s: %v", c.roomCode, err)
		}
	})

	c.sess.On(protocol.EventConnectError, func(data json.RawMessage) {
		if c.metrics != nil {
			c.metrics.SetConnected(false)
		}
		var e protocol.ErrorData
		json.Unmarshal(data, &e)
		// Transport failure is terminal for this session; reconnection is a
		// fresh join, never a resume.
		fmt.Fprintf(c.out, "\nConnection error: %s\n", e.Msg)
	})

	c.sess.On(protocol.EventJoined, func(data json.RawMessage) {
		var joined protocol.JoinedData
		if err := json.Unmarshal(data, &joined); err != nil {
			logger.Log.Warnf("Bad joined payload: %v", err)
			return
		}
		c.mu.Lock()
		c.joined = joined.OK
		c.playerID = joined.PlayerID
		c.mu.Unlock()
		logger.Log.Infof("Joined room %s as %s (player %s)", c.roomCode, c.nickname, joined.PlayerID)
	})

	c.sess.On(protocol.EventError, func(data json.RawMessage) {
		var e protocol.ErrorData
		json.Unmarshal(data, &e)
		// Logical errors are shown inline and do not tear down the session.
		fmt.Fprintf(c.out, "\n%s\n", e.Msg)
	})

	c.sess.On(protocol.EventRoom, c.handleRoom)

	c.sess.On(protocol.EventTimer, func(data json.RawMessage) {
		c.countEvent()
		var t protocol.TimerData
		if err := json.Unmarshal(data, &t); err != nil {
			return
		}
		c.mu.Lock()
		c.mirror.SetTimeLeft(t.TimeLeft)
		c.mu.Unlock()
		c.render()
	})

	c.sess.On(protocol.EventPrompt, func(data json.RawMessage) {
		c.countEvent()
		var p protocol.PromptData
		json.Unmarshal(data, &p)
		// Informational: state arrives via the room snapshot.
		logger.Log.Infof("Prompt received: %s", p.Question)
	})

	c.sess.On(protocol.EventChoices, func(data json.RawMessage) {
		c.countEvent()
		var payload protocol.ChoicesData
		if err := json.Unmarshal(data, &payload); err != nil {
			logger.Log.Warnf("Bad choices payload: %v", err)
			return
		}
		if err := protocol.ValidateChoices(payload.Choices); err != nil {
			logger.Log.Warnf("Server sent %v", err)
		}
		c.mu.Lock()
		c.choices = payload.Choices
		c.mu.Unlock()
	})

	c.sess.On(protocol.EventScores, func(data json.RawMessage) {
		c.countEvent()
		var payload protocol.ScoresData
		if err := json.Unmarshal(data, &payload); err != nil {
			logger.Log.Warnf("Bad scores payload: %v", err)
			return
		}
		c.mu.Lock()
		c.scores = payload.Totals
		c.mu.Unlock()
		c.render()
	})

	c.sess.On(protocol.EventGameOver, func(data json.RawMessage) {
		c.countEvent()
		var payload protocol.GameOverData
		if err := json.Unmarshal(data, &payload); err != nil {
			logger.Log.Warnf("Bad gameOver payload: %v", err)
			return
		}
		c.mu.Lock()
		c.winners = payload.Winners
		hook := c.onGameOver
		c.mu.Unlock()
		c.render()
		if hook != nil {
			hook(payload)
		}
	})
}

// handleRoom is the single place room state is mutated. Reconciliation runs
// synchronously before the snapshot is installed, so the render that
// follows never sees half-applied flags.
func (c *Client) handleRoom(data json.RawMessage) {
	c.countEvent()
	started := time.Now()

	var state protocol.RoomState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Log.Warnf("Bad room snapshot, ignoring: %v", err)
		return
	}

	c.mu.Lock()
	before := c.tracker.Flags()
	c.tracker.Reconcile(&state, c.playerID)
	after := c.tracker.Flags()
	c.mirror.Replace(&state)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.IncSnapshotsApplied()
		if (before.HasSubmittedAnswer && !after.HasSubmittedAnswer) ||
			(before.HasVoted && !after.HasVoted) {
			c.metrics.IncReconcileResets()
		}
		c.metrics.ObserveApplyLatency(time.Since(started))
	}

	c.render()
}

func (c *Client) render() {
	c.mu.Lock()
	state := c.mirror.State()
	if state == nil {
		c.mu.Unlock()
		return
	}
	view := games.View{
		RoomCode: c.roomCode,
		IsHost:   c.isHost,
		PlayerID: c.playerID,
		State:    state,
		Flags:    c.tracker.Flags(),
		TimeLeft: c.mirror.TimeLeft(),
		Choices:  c.choices,
		Scores:   c.scores,
		Winners:  c.winners,
	}
	gameType := state.GameType
	phase := state.Phase
	c.mu.Unlock()

	if out, ok := c.registry.Render(gameType, phase, view); ok {
		fmt.Fprint(c.out, "\n"+out)
	}
}

func (c *Client) countEvent() {
	if c.metrics != nil {
		c.metrics.IncEventsReceived()
	}
}

// view returns a consistent copy of the render inputs for callers outside
// the event loop (stdin loops, the rpc status service).
func (c *Client) view() games.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return games.View{
		RoomCode: c.roomCode,
		IsHost:   c.isHost,
		PlayerID: c.playerID,
		State:    c.mirror.State(),
		Flags:    c.tracker.Flags(),
		TimeLeft: c.mirror.TimeLeft(),
		Choices:  c.choices,
		Scores:   c.scores,
		Winners:  c.winners,
	}
}
