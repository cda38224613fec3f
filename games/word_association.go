// games/word_association.go
package games

import (
	"fmt"
	"strings"

	"github.com/generalChaos/partyroom/protocol"
)

const GameTypeWordAssociation = "word-association"

// NewWordAssociation builds the association variant: players submit the
// word they associate with the prompt, then vote for the best one. There
// is no truth choice, so scoring shows only vote counts and totals.
func NewWordAssociation() *Game {
	return &Game{
		Type: GameTypeWordAssociation,
		Host: map[protocol.Phase]Renderer{
			protocol.PhaseLobby:   renderLobbyHost("Word Association"),
			protocol.PhasePrompt:  renderWordPromptHost,
			protocol.PhaseChoose:  renderChooseHost,
			protocol.PhaseScoring: renderWordScoring,
			protocol.PhaseOver:    renderGameOver,
		},
		Player: map[protocol.Phase]Renderer{
			protocol.PhaseLobby:   renderLobbyPlayer("Word Association"),
			protocol.PhasePrompt:  renderWordPromptPlayer,
			protocol.PhaseChoose:  renderChoosePlayer,
			protocol.PhaseScoring: renderWordScoring,
			protocol.PhaseOver:    renderGameOver,
		},
	}
}

func renderWordPromptHost(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "The word is: %s\n", currentPrompt(v))
	fmt.Fprintf(&b, "%d of %d associations in.\n", submissionCount(v), playerCount(v))
	return b.String()
}

func renderWordPromptPlayer(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "The word is: %s\n", currentPrompt(v))
	if v.Flags.HasSubmittedAnswer {
		b.WriteString("Association submitted. Waiting for the other players...\n")
	} else {
		b.WriteString("What's the first word that comes to mind?\n")
	}
	return b.String()
}

func renderWordScoring(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "The word was: %s\n", currentPrompt(v))
	for _, c := range ViewChoices(v) {
		n := len(votesFor(v, c.ID))
		if n == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %q by %s drew %d vote(s)\n", c.Text, playerName(v, c.By), n)
	}
	if len(v.Scores) > 0 {
		b.WriteString("Totals:\n")
		for _, t := range v.Scores {
			fmt.Fprintf(&b, "  %s: %d\n", playerName(v, t.PlayerID), t.Score)
		}
	}
	return b.String()
}
