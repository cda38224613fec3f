// games/fibbing_it.go
package games

import (
	"fmt"
	"strings"

	"github.com/generalChaos/partyroom/protocol"
)

const GameTypeFibbingIt = "fibbing-it"

// NewFibbingIt builds the fib-writing variant. Same phase vocabulary as
// bluff trivia; the prompt framing asks players to write a convincing lie
// instead of a guess.
func NewFibbingIt() *Game {
	return &Game{
		Type: GameTypeFibbingIt,
		Host: map[protocol.Phase]Renderer{
			protocol.PhaseLobby:   renderLobbyHost("Fibbing It"),
			protocol.PhasePrompt:  renderFibPromptHost,
			protocol.PhaseChoose:  renderChooseHost,
			protocol.PhaseScoring: renderScoring,
			protocol.PhaseOver:    renderGameOver,
		},
		Player: map[protocol.Phase]Renderer{
			protocol.PhaseLobby:   renderLobbyPlayer("Fibbing It"),
			protocol.PhasePrompt:  renderFibPromptPlayer,
			protocol.PhaseChoose:  renderChoosePlayer,
			protocol.PhaseScoring: renderScoring,
			protocol.PhaseOver:    renderGameOver,
		},
	}
}

func renderFibPromptHost(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "%s\n", currentPrompt(v))
	fmt.Fprintf(&b, "Everyone is writing their best lie... %d of %d in.\n", submissionCount(v), playerCount(v))
	return b.String()
}

func renderFibPromptPlayer(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "%s\n", currentPrompt(v))
	if v.Flags.HasSubmittedAnswer {
		b.WriteString("Your fib is in. Waiting for the other players...\n")
	} else {
		b.WriteString("Write a lie convincing enough to fool the room.\n")
	}
	return b.String()
}
