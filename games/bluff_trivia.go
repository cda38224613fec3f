// games/bluff_trivia.go
package games

import (
	"github.com/generalChaos/partyroom/protocol"
)

const GameTypeBluffTrivia = "bluff-trivia"

// NewBluffTrivia builds the default game: trivia prompts where players
// plant bluffs and then hunt the real answer.
func NewBluffTrivia() *Game {
	return &Game{
		Type: GameTypeBluffTrivia,
		Host: map[protocol.Phase]Renderer{
			protocol.PhaseLobby:   renderLobbyHost("Bluff Trivia"),
			protocol.PhasePrompt:  renderPromptHost,
			protocol.PhaseChoose:  renderChooseHost,
			protocol.PhaseScoring: renderScoring,
			protocol.PhaseOver:    renderGameOver,
		},
		Player: map[protocol.Phase]Renderer{
			protocol.PhaseLobby:   renderLobbyPlayer("Bluff Trivia"),
			protocol.PhasePrompt:  renderPromptPlayer,
			protocol.PhaseChoose:  renderChoosePlayer,
			protocol.PhaseScoring: renderScoring,
			protocol.PhaseOver:    renderGameOver,
		},
	}
}
