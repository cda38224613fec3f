// games/games.go
package games

import (
	"github.com/generalChaos/partyroom/logger"
	"github.com/generalChaos/partyroom/protocol"
	"github.com/generalChaos/partyroom/room"
)

// View is everything a renderer may draw from. Totals come exclusively
// from the scores event; renderers must never tally votes into displayed
// totals, that is the server's job.
type View struct {
	RoomCode string
	IsHost   bool
	PlayerID string
	State    *protocol.RoomState
	Flags    room.Flags
	TimeLeft int
	Choices  []protocol.Choice
	Scores   []protocol.ScoreTotal
	Winners  []protocol.Winner
}

// Renderer draws one phase for one role as terminal text.
type Renderer func(v View) string

// Game is a flat per-phase function table, one per role. Every game shares
// the same phase vocabulary; a missing entry means the game has nothing to
// show for that phase.
type Game struct {
	Type   string
	Host   map[protocol.Phase]Renderer
	Player map[protocol.Phase]Renderer
}

// Registry maps game types to their dispatch tables. An unrecognized game
// type falls back to the default game rather than failing closed; a front
// end must never strand users on a blank screen over one malformed push.
type Registry struct {
	games    map[string]*Game
	fallback string
}

// NewRegistry builds the registry with all supported games installed.
// Bluff trivia is the fallback.
func NewRegistry() *Registry {
	r := &Registry{games: make(map[string]*Game)}
	r.Register(NewBluffTrivia())
	r.Register(NewFibbingIt())
	r.Register(NewWordAssociation())
	r.fallback = GameTypeBluffTrivia
	return r
}

func (r *Registry) Register(g *Game) {
	r.games[g.Type] = g
}

// Render resolves (gameType, phase, role) to a renderer and runs it. The
// second return is false when the game has no view for the phase; the
// caller renders nothing. Neither an unknown game type nor an unknown
// phase ever panics.
func (r *Registry) Render(gameType string, phase protocol.Phase, v View) (string, bool) {
	g, ok := r.games[gameType]
	if !ok {
		logger.Log.Warnf("Unknown game type %q, falling back to %s", gameType, r.fallback)
		g = r.games[r.fallback]
	}

	table := g.Player
	if v.IsHost {
		table = g.Host
	}

	render, ok := table[phase]
	if !ok {
		logger.Log.Warnf("Game %s has no %s view for phase %q", g.Type, roleName(v.IsHost), phase)
		return "", false
	}
	return render(v), true
}

func roleName(isHost bool) string {
	if isHost {
		return "host"
	}
	return "player"
}
