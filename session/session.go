// session/session.go
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/generalChaos/partyroom/logger"
	"github.com/generalChaos/partyroom/network"
	"github.com/generalChaos/partyroom/protocol"
)

// Handler receives the raw payload of one event.
type Handler func(data json.RawMessage)

// Session owns exactly one connection to the room server for one room-join
// attempt. Server events are observed only through registered handlers; the
// client never polls. A reconnect is a brand-new Session, never a resume.
type Session struct {
	ID  string
	URL string

	conn  network.Connection
	clock clockwork.Clock

	guardDelay  time.Duration
	joinTimeout time.Duration

	handlerMutex sync.RWMutex
	handlers     map[string][]Handler

	joinedOnce sync.Once
	joinedChan chan struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

type Option func(*Session)

// WithClock substitutes the wall clock, used by tests to drive the join
// guard delay and join timeout deterministically.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithConnection supplies an established connection; Run will not dial.
func WithConnection(conn network.Connection) Option {
	return func(s *Session) { s.conn = conn }
}

// WithJoinGuardDelay overrides the wait between connection establishment
// and the join emission.
func WithJoinGuardDelay(d time.Duration) Option {
	return func(s *Session) { s.guardDelay = d }
}

// WithJoinTimeout overrides how long to wait for the joined acknowledgement.
func WithJoinTimeout(d time.Duration) Option {
	return func(s *Session) { s.joinTimeout = d }
}

func New(url string, opts ...Option) *Session {
	s := &Session{
		ID:          uuid.New().String(),
		URL:         url,
		clock:       clockwork.NewRealClock(),
		guardDelay:  100 * time.Millisecond,
		joinTimeout: 10 * time.Second,
		handlers:    make(map[string][]Handler),
		joinedChan:  make(chan struct{}),
		closed:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// On registers a handler for an event. Registration must happen before Run;
// handlers for the same event run in registration order.
func (s *Session) On(event string, h Handler) {
	s.handlerMutex.Lock()
	defer s.handlerMutex.Unlock()
	s.handlers[event] = append(s.handlers[event], h)
}

// Emit sends an event to the server. Fire-and-forget: no acknowledgement is
// awaited, the next room snapshot confirms or corrects the action.
func (s *Session) Emit(event string, payload any) error {
	return s.conn.Emit(event, payload)
}

// Run dials (unless a connection was supplied), dispatches the synthetic
// connect event and then pumps server events to handlers until the
// connection drops or ctx is cancelled. Dispatch is synchronous: each
// handler completes before the next event is read.
func (s *Session) Run(ctx context.Context) error {
	if s.conn == nil {
		conn, err := network.Dial(ctx, s.URL)
		if err != nil {
			logger.Log.Errorf("Session %s failed to connect to %s: %v", s.ID, s.URL, err)
			s.dispatch(protocol.EventConnectError, errorPayload(err.Error()))
			return err
		}
		s.conn = conn
	}
	defer s.conn.Close()

	logger.Log.Infof("Session %s connected to %s", s.ID, s.URL)
	s.dispatch(protocol.EventConnect, nil)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.closed:
			return nil
		default:
		}

		env, err := s.conn.ReadEvent()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-s.closed:
				return nil
			default:
			}
			logger.Log.Warnf("Session %s connection lost: %v", s.ID, err)
			s.dispatch(protocol.EventConnectError, errorPayload(err.Error()))
			return err
		}
		s.dispatch(env.Event, env.Data)
	}
}

// Join emits the join handshake. The guard delay gives the server time to
// finish registering the socket; joining immediately after connect can race
// that and lose the join. A watcher surfaces an error event if no joined
// acknowledgement arrives within the join timeout.
func (s *Session) Join(nickname, avatar string) error {
	s.clock.Sleep(s.guardDelay)
	if err := s.Emit(protocol.EventJoin, protocol.JoinData{Nickname: nickname, Avatar: avatar}); err != nil {
		return err
	}

	go func() {
		select {
		case <-s.joinedChan:
		case <-s.closed:
		case <-s.clock.After(s.joinTimeout):
			select {
			case <-s.joinedChan:
				// Acknowledgement landed while the timer fired.
			default:
				logger.Log.Warnf("Session %s join timed out after %v", s.ID, s.joinTimeout)
				s.dispatch(protocol.EventError, errorPayload("join timed out: the room may not exist or the host may not be online"))
			}
		}
	}()
	return nil
}

// StartGame asks the server to start the selected game. Host only.
func (s *Session) StartGame(gameType string) error {
	return s.Emit(protocol.EventStartGame, protocol.StartGameData{GameType: gameType})
}

// SubmitAnswer sends this client's answer for the current prompt.
func (s *Session) SubmitAnswer(answer string) error {
	return s.Emit(protocol.EventSubmitAnswer, protocol.SubmitAnswerData{Answer: answer})
}

// SubmitVote sends this client's vote for a choice.
func (s *Session) SubmitVote(choiceID string) error {
	return s.Emit(protocol.EventSubmitVote, protocol.SubmitVoteData{ChoiceID: choiceID})
}

// Close tears the session down. No in-flight emission is retried.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.conn != nil {
			s.conn.Close()
		}
	})
}

func (s *Session) dispatch(event string, data json.RawMessage) {
	if event == protocol.EventJoined {
		s.joinedOnce.Do(func() { close(s.joinedChan) })
	}

	s.handlerMutex.RLock()
	handlers := s.handlers[event]
	s.handlerMutex.RUnlock()

	for _, h := range handlers {
		h(data)
	}
}

func errorPayload(msg string) json.RawMessage {
	data, _ := json.Marshal(protocol.ErrorData{Msg: msg})
	return data
}
