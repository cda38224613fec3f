package session

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/generalChaos/partyroom/protocol"
)

// MockConnection is a test double for the network.Connection interface.
// Incoming events are fed through a channel; emissions are captured on
// another.
type MockConnection struct {
	events  chan *protocol.Envelope
	emitted chan *protocol.Envelope
}

func NewMockConnection() *MockConnection {
	return &MockConnection{
		events:  make(chan *protocol.Envelope, 16),
		emitted: make(chan *protocol.Envelope, 16),
	}
}

func (m *MockConnection) Emit(event string, payload any) error {
	env, err := protocol.NewEnvelope(event, payload)
	if err != nil {
		return err
	}
	m.emitted <- env
	return nil
}

func (m *MockConnection) ReadEvent() (*protocol.Envelope, error) {
	env, ok := <-m.events
	if !ok {
		return nil, io.EOF
	}
	return env, nil
}

func (m *MockConnection) Close() error         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr { return &net.TCPAddr{} }

func (m *MockConnection) push(t *testing.T, event string, payload any) {
	t.Helper()
	env, err := protocol.NewEnvelope(event, payload)
	if err != nil {
		t.Fatalf("failed to build %s envelope: %v", event, err)
	}
	m.events <- env
}

func waitEmit(t *testing.T, conn *MockConnection) *protocol.Envelope {
	t.Helper()
	select {
	case env := <-conn.emitted:
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an emission")
		return nil
	}
}

func TestSession_DispatchOrder(t *testing.T) {
	conn := NewMockConnection()
	s := New("ws://test", WithConnection(conn))

	var seen []string
	for _, event := range []string{protocol.EventConnect, protocol.EventJoined, protocol.EventRoom, protocol.EventConnectError} {
		event := event
		s.On(event, func(data json.RawMessage) { seen = append(seen, event) })
	}

	conn.push(t, protocol.EventJoined, protocol.JoinedData{OK: true, PlayerID: "A"})
	conn.push(t, protocol.EventRoom, protocol.RoomState{Phase: protocol.PhaseLobby})
	close(conn.events)

	err := s.Run(context.Background())
	if err != io.EOF {
		t.Fatalf("Run should return the read error, got %v", err)
	}

	want := []string{protocol.EventConnect, protocol.EventJoined, protocol.EventRoom, protocol.EventConnectError}
	if len(seen) != len(want) {
		t.Fatalf("expected %d dispatches, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("dispatch %d: expected %s, got %s", i, want[i], seen[i])
		}
	}
}

func TestSession_JoinWaitsGuardDelay(t *testing.T) {
	fc := clockwork.NewFakeClock()
	conn := NewMockConnection()
	s := New("ws://test",
		WithConnection(conn),
		WithClock(fc),
		WithJoinGuardDelay(100*time.Millisecond),
		WithJoinTimeout(10*time.Second),
	)

	done := make(chan error, 1)
	go func() { done <- s.Join("alice", "fox") }()

	// Join is sleeping out the guard delay; nothing must be emitted yet.
	fc.BlockUntil(1)
	select {
	case env := <-conn.emitted:
		t.Fatalf("join emitted before the guard delay elapsed: %v", env)
	default:
	}

	fc.Advance(100 * time.Millisecond)

	env := waitEmit(t, conn)
	if env.Event != protocol.EventJoin {
		t.Fatalf("expected join event, got %s", env.Event)
	}
	var data protocol.JoinData
	if err := env.Decode(&data); err != nil {
		t.Fatalf("failed to decode join payload: %v", err)
	}
	if data.Nickname != "alice" || data.Avatar != "fox" {
		t.Errorf("unexpected join payload: %+v", data)
	}

	if err := <-done; err != nil {
		t.Fatalf("Join failed: %v", err)
	}
}

func TestSession_JoinTimeoutSurfacesError(t *testing.T) {
	fc := clockwork.NewFakeClock()
	conn := NewMockConnection()
	s := New("ws://test",
		WithConnection(conn),
		WithClock(fc),
		WithJoinGuardDelay(100*time.Millisecond),
		WithJoinTimeout(10*time.Second),
	)

	errCh := make(chan protocol.ErrorData, 1)
	s.On(protocol.EventError, func(data json.RawMessage) {
		var e protocol.ErrorData
		if err := json.Unmarshal(data, &e); err == nil {
			errCh <- e
		}
	})

	go s.Join("alice", "")
	fc.BlockUntil(1)
	fc.Advance(100 * time.Millisecond)
	waitEmit(t, conn)

	// The watcher is now waiting on the join timeout.
	fc.BlockUntil(1)
	fc.Advance(10 * time.Second)

	select {
	case e := <-errCh:
		if e.Msg == "" {
			t.Error("timeout error should carry a message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected an error event after the join timeout")
	}
}

func TestSession_JoinedCancelsTimeout(t *testing.T) {
	fc := clockwork.NewFakeClock()
	conn := NewMockConnection()
	s := New("ws://test",
		WithConnection(conn),
		WithClock(fc),
		WithJoinGuardDelay(0),
		WithJoinTimeout(10*time.Second),
	)

	errCh := make(chan struct{}, 1)
	s.On(protocol.EventError, func(data json.RawMessage) { errCh <- struct{}{} })
	joinedCh := make(chan struct{}, 1)
	s.On(protocol.EventJoined, func(data json.RawMessage) { joinedCh <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	if err := s.Join("alice", ""); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	waitEmit(t, conn)

	conn.push(t, protocol.EventJoined, protocol.JoinedData{OK: true, PlayerID: "A"})
	select {
	case <-joinedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("joined event never dispatched")
	}

	// The timeout firing after the acknowledgement must stay silent.
	fc.Advance(10 * time.Second)
	select {
	case <-errCh:
		t.Fatal("timeout error dispatched after a successful join")
	case <-time.After(100 * time.Millisecond):
	}

	s.Close()
	close(conn.events)
}
