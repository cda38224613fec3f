package rpc

import (
	"net"
	"net/rpc"

	"github.com/generalChaos/partyroom/logger"
	"github.com/generalChaos/partyroom/protocol"
)

// Server manages the RPC listener. The host client exposes its room status
// here for venue integrations (signage, automation) on the local network.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// Status is a read-only summary of the mirrored room.
type Status struct {
	RoomCode    string
	GameType    string
	Phase       string
	Round       int
	MaxRounds   int
	TimeLeft    int
	PlayerCount int
	Totals      []protocol.ScoreTotal
}

// StatusProvider is implemented by the host application.
type StatusProvider interface {
	Status() Status
}

// RoomStatusService exposes the mirrored room state over net/rpc. Methods
// follow the net/rpc signature convention.
type RoomStatusService struct {
	provider StatusProvider
}

func NewRoomStatusService(provider StatusProvider) *RoomStatusService {
	return &RoomStatusService{provider: provider}
}

type StatusArgs struct{}

func (s *RoomStatusService) Get(args *StatusArgs, reply *Status) error {
	*reply = s.provider.Status()
	return nil
}
