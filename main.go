package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/generalChaos/partyroom/app"
	"github.com/generalChaos/partyroom/archive"
	"github.com/generalChaos/partyroom/config"
	"github.com/generalChaos/partyroom/logger"
	"github.com/generalChaos/partyroom/monitor"
	"github.com/generalChaos/partyroom/rpc"
	"github.com/generalChaos/partyroom/session"
)

func main() {
	role := flag.String("role", "player", "client role: host or player")
	roomCode := flag.String("room", "", "room code to join")
	nickname := flag.String("name", "", "nickname (overrides config)")
	configPath := flag.String("config", ".", "config directory")
	flag.Parse()

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	if *roomCode == "" {
		logger.Log.Fatal("A room code is required (-room)")
	}
	code := strings.ToUpper(*roomCode)

	name := cfg.Player.Nickname
	if *nickname != "" {
		name = *nickname
	}
	if name == "" {
		logger.Log.Fatal("A nickname is required (-name or player.nickname in config)")
	}

	url := strings.TrimRight(cfg.Server.URL, "/") + "/" + code

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		logger.Log.Info("Interrupt received, closing session.")
		cancel()
	}()

	sess := session.New(url,
		session.WithJoinGuardDelay(cfg.Server.JoinGuardDelay()),
		session.WithJoinTimeout(cfg.Server.JoinTimeout()),
	)

	var metrics *monitor.Monitor
	if cfg.Metrics.Enabled {
		metrics = monitor.NewMonitor("partyroom")
		metrics.StartServer(cfg.Metrics.Address)
	}

	switch *role {
	case "host":
		runHost(ctx, cfg, sess, code, name, metrics)
	case "player":
		runPlayer(ctx, cfg, sess, code, name, metrics)
	default:
		logger.Log.Fatalf("Unknown role %q, want host or player", *role)
	}
}

func runHost(ctx context.Context, cfg *config.Config, sess *session.Session, code, name string, metrics *monitor.Monitor) {
	var db archive.Database
	if cfg.Archive.Enabled {
		pg := cfg.Archive.Postgres
		gdb, err := archive.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		if err != nil {
			logger.Log.Fatalf("Failed to open game archive: %v", err)
		}
		db = gdb
		defer gdb.Close()
		logger.Log.Info("Game archive connected.")
	}

	var rpcServer *rpc.Server
	if cfg.RPC.Enabled {
		server, err := rpc.NewServer(cfg.RPC.Address)
		if err != nil {
			logger.Log.Fatalf("Failed to create RPC server: %v", err)
		}
		rpcServer = server
	}

	host := app.NewHost(sess, app.HostOptions{
		RoomCode: code,
		Nickname: name,
		Avatar:   cfg.Player.Avatar,
		DB:       db,
		RPC:      rpcServer,
		Metrics:  metrics,
		Out:      os.Stdout,
	})

	logger.Log.Infof("Hosting room %s", code)
	if err := host.Run(ctx, os.Stdin); err != nil {
		logger.Log.Fatalf("Session ended with error: %v", err)
	}
}

func runPlayer(ctx context.Context, cfg *config.Config, sess *session.Session, code, name string, metrics *monitor.Monitor) {
	player := app.NewPlayer(sess, app.PlayerOptions{
		RoomCode: code,
		Nickname: name,
		Avatar:   cfg.Player.Avatar,
		Metrics:  metrics,
		Out:      os.Stdout,
	})

	logger.Log.Infof("Joining room %s as %s", code, name)
	if err := player.Run(ctx, os.Stdin); err != nil {
		logger.Log.Fatalf("Session ended with error: %v", err)
	}
}
