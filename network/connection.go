// network/connection.go
package network

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/generalChaos/partyroom/protocol"
)

// Connection is one bidirectional link to the room server. Emit is
// fire-and-forget: there is no per-message acknowledgement, correctness
// comes from the next authoritative room snapshot.
type Connection interface {
	Emit(event string, payload any) error
	ReadEvent() (*protocol.Envelope, error)
	Close() error
	RemoteAddr() net.Addr
}

type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
}

// Dial establishes the single websocket connection for a room-join attempt.
func Dial(ctx context.Context, url string) (*WSConnection, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewWSConnection(conn), nil
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

func (c *WSConnection) Emit(event string, payload any) error {
	env, err := protocol.NewEnvelope(event, payload)
	if err != nil {
		return err
	}

	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()
	return c.conn.WriteJSON(env)
}

func (c *WSConnection) ReadEvent() (*protocol.Envelope, error) {
	var env protocol.Envelope
	if err := c.conn.ReadJSON(&env); err != nil {
		return nil, err
	}
	if env.Event == "" {
		return nil, fmt.Errorf("received frame without event name")
	}
	return &env, nil
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
