// app/host.go
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	netrpc "net/rpc"
	"strings"
	"time"

	"github.com/generalChaos/partyroom/archive"
	"github.com/generalChaos/partyroom/games"
	"github.com/generalChaos/partyroom/logger"
	"github.com/generalChaos/partyroom/models"
	"github.com/generalChaos/partyroom/monitor"
	"github.com/generalChaos/partyroom/protocol"
	"github.com/generalChaos/partyroom/rpc"
	"github.com/generalChaos/partyroom/session"
)

// Host drives the shared display. It joins the room as the controlling
// client, starts the selected game, archives finished games and serves the
// local status RPC.
type Host struct {
	*Client

	db        archive.Database
	rpcServer *rpc.Server
	selected  string
}

// HostOptions configures the host application. DB, RPC and Metrics are
// optional.
type HostOptions struct {
	RoomCode string
	Nickname string
	Avatar   string
	DB       archive.Database
	RPC      *rpc.Server
	Metrics  *monitor.Monitor
	Out      io.Writer
}

func NewHost(sess *session.Session, opts HostOptions) *Host {
	h := &Host{
		Client:    newClient(sess, opts.RoomCode, opts.Nickname, opts.Avatar, true, opts.Metrics, opts.Out),
		db:        opts.DB,
		rpcServer: opts.RPC,
		selected:  games.GameTypeFibbingIt,
	}
	h.onGameOver = h.archiveGame
	return h
}

// Run pumps the session and the stdin command loop until either ends.
func (h *Host) Run(ctx context.Context, input io.Reader) error {
	if h.rpcServer != nil {
		if err := netrpc.Register(rpc.NewRoomStatusService(h)); err != nil {
			logger.Log.Errorf("Failed to register status service: %v", err)
		}
		go h.rpcServer.Start()
		defer h.rpcServer.Stop()
	}

	errs := make(chan error, 1)
	go func() { errs <- h.sess.Run(ctx) }()

	go h.commandLoop(ctx, input)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		h.sess.Close()
		return nil
	}
}

// commandLoop reads operator commands: "start" begins the selected game,
// "start <gameType>" selects and begins another one.
func (h *Host) commandLoop(ctx context.Context, input io.Reader) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "start":
			if len(fields) > 1 {
				h.selected = fields[1]
			}
			logger.Log.Infof("Starting game %s in room %s", h.selected, h.roomCode)
			if err := h.sess.StartGame(h.selected); err != nil {
				fmt.Fprintf(h.out, "Failed to start game: %v\n", err)
			}
		case "history":
			h.printHistory()
		case "quit":
			h.sess.Close()
			return
		default:
			fmt.Fprintf(h.out, "Unknown command %q. Commands: start [gameType], history, quit\n", fields[0])
		}
	}
}

// printHistory lists recent archived games for this room.
func (h *Host) printHistory() {
	if h.db == nil {
		fmt.Fprintln(h.out, "No archive configured.")
		return
	}
	records, err := h.db.LoadGameRecords(h.roomCode, 10)
	if err != nil {
		fmt.Fprintf(h.out, "Failed to load archive: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Fprintf(h.out, "No archived games for room %s yet.\n", h.roomCode)
		return
	}
	for _, r := range records {
		line := fmt.Sprintf("%s  %s  %d round(s)", r.CreatedAt.Format("2006-01-02 15:04"), r.GameType, r.Rounds)
		if len(r.Winners) > 0 {
			line += "  winner: " + r.Winners[0].Name
		}
		fmt.Fprintln(h.out, line)
	}
}

// archiveGame writes the finished game to the local archive.
func (h *Host) archiveGame(data protocol.GameOverData) {
	if h.db == nil {
		return
	}

	v := h.view()
	record := &models.GameRecord{
		RoomCode:  h.roomCode,
		CreatedAt: time.Now(),
	}
	if v.State != nil {
		record.GameType = v.State.GameType
		record.Rounds = v.State.Round
	}
	for _, w := range data.Winners {
		record.Winners = append(record.Winners, models.PlayerResult{PlayerID: w.ID, Name: w.Name, Score: w.Score})
	}
	for _, t := range v.Scores {
		record.Totals = append(record.Totals, models.PlayerResult{PlayerID: t.PlayerID, Score: t.Score})
	}

	if err := h.db.SaveGameRecord(record); err != nil {
		logger.Log.Errorf("Failed to archive game for room %s: %v", h.roomCode, err)
		return
	}
	logger.Log.Infof("Archived game for room %s (%d winners)", h.roomCode, len(record.Winners))
}

// Status implements rpc.StatusProvider.
func (h *Host) Status() rpc.Status {
	v := h.view()
	status := rpc.Status{
		RoomCode: h.roomCode,
		Totals:   v.Scores,
		TimeLeft: v.TimeLeft,
	}
	if v.State != nil {
		status.GameType = v.State.GameType
		status.Phase = string(v.State.Phase)
		status.Round = v.State.Round
		status.MaxRounds = v.State.MaxRounds
		status.PlayerCount = len(v.State.Players)
	}
	return status
}
