// games/views.go
package games

import (
	"fmt"
	"strings"

	"github.com/generalChaos/partyroom/protocol"
)

// Shared renderers. The per-game tables mostly differ in framing text, so
// each game assembles its tables from these and overrides what it needs.

func renderLobbyHost(title string) Renderer {
	return func(v View) string {
		var b strings.Builder
		fmt.Fprintf(&b, "=== %s ===\n", title)
		fmt.Fprintf(&b, "Room code: %s\n", v.RoomCode)
		fmt.Fprintf(&b, "Players (%d):\n", playerCount(v))
		if v.State != nil {
			for _, p := range v.State.Players {
				marker := ""
				if !p.Connected {
					marker = " (disconnected)"
				}
				fmt.Fprintf(&b, "  - %s%s\n", p.Name, marker)
			}
		}
		b.WriteString("Type 'start' to begin the game.\n")
		return b.String()
	}
}

func renderLobbyPlayer(title string) Renderer {
	return func(v View) string {
		var b strings.Builder
		fmt.Fprintf(&b, "=== %s ===\n", title)
		fmt.Fprintf(&b, "You're in room %s with %d player(s).\n", v.RoomCode, playerCount(v))
		b.WriteString("Waiting for the host to start the game...\n")
		return b.String()
	}
}

func renderPromptHost(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "Q: %s\n", currentPrompt(v))
	fmt.Fprintf(&b, "%d of %d answers in.\n", submissionCount(v), playerCount(v))
	return b.String()
}

func renderPromptPlayer(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "Q: %s\n", currentPrompt(v))
	if v.Flags.HasSubmittedAnswer {
		b.WriteString("Answer submitted. Waiting for the other players...\n")
	} else {
		b.WriteString("Type your answer and press Enter.\n")
	}
	return b.String()
}

func renderChooseHost(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "Q: %s\n", currentPrompt(v))
	b.WriteString("Find the real answer:\n")
	for i, c := range ViewChoices(v) {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, c.Text)
	}
	fmt.Fprintf(&b, "%d vote(s) in.\n", voteCount(v))
	return b.String()
}

func renderChoosePlayer(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "Q: %s\n", currentPrompt(v))
	for i, c := range ViewChoices(v) {
		marker := " "
		if v.Flags.HasVoted && c.ID == v.Flags.SelectedChoiceID {
			marker = "*"
		}
		fmt.Fprintf(&b, " %s%d. %s\n", marker, i+1, c.Text)
	}
	if v.Flags.HasVoted {
		b.WriteString("Vote locked in. Waiting for the other players...\n")
	} else {
		b.WriteString("Enter the number of your pick.\n")
	}
	return b.String()
}

// renderScoring shows the reveal and the rule breakdown. The per-choice
// point lines are the rule the client expects the server to have applied;
// the totals section is copied verbatim from the authoritative scores
// event and is never recomputed from votes.
func renderScoring(v View) string {
	var b strings.Builder
	writeRoundHeader(&b, v)
	fmt.Fprintf(&b, "Q: %s\n", currentPrompt(v))

	choices := ViewChoices(v)
	if truth, ok := protocol.TruthChoice(choices); ok {
		fmt.Fprintf(&b, "The answer was: %s\n", truth.Text)
		if n := len(votesFor(v, truth.ID)); n > 0 {
			fmt.Fprintf(&b, "  %d player(s) earned %d points for finding the truth!\n", n, protocol.TruthReward)
		}
	}
	for _, c := range choices {
		if protocol.IsTruth(c.ID) {
			continue
		}
		fooled := len(votesFor(v, c.ID))
		if fooled == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s earned %d points for fooling %d player(s) with %q!\n",
			playerName(v, c.By), fooled*protocol.BluffRewardPerVoter, fooled, c.Text)
	}

	if len(v.Scores) > 0 {
		b.WriteString("Totals:\n")
		for _, t := range v.Scores {
			fmt.Fprintf(&b, "  %s: %d\n", playerName(v, t.PlayerID), t.Score)
		}
	}
	return b.String()
}

func renderGameOver(v View) string {
	var b strings.Builder
	b.WriteString("=== GAME OVER ===\n")
	if len(v.Winners) > 0 {
		b.WriteString("Winners:\n")
		for _, w := range v.Winners {
			fmt.Fprintf(&b, "  %s - %d points\n", w.Name, w.Score)
		}
	} else if len(v.Scores) > 0 {
		b.WriteString("Final scores:\n")
		for _, t := range v.Scores {
			fmt.Fprintf(&b, "  %s: %d\n", playerName(v, t.PlayerID), t.Score)
		}
	}
	return b.String()
}

func writeRoundHeader(b *strings.Builder, v View) {
	round, maxRounds := 0, 0
	if v.State != nil {
		round, maxRounds = v.State.Round, v.State.MaxRounds
	}
	fmt.Fprintf(b, "--- Round %d/%d · %ds left ---\n", round, maxRounds, v.TimeLeft)
}

func currentPrompt(v View) string {
	if v.State == nil || v.State.Current == nil {
		return ""
	}
	return v.State.Current.Prompt
}

func playerCount(v View) int {
	if v.State == nil {
		return 0
	}
	return len(v.State.Players)
}

// submissionCount counts recorded contributions for the round: authored
// bluffs plus correct answers.
func submissionCount(v View) int {
	if v.State == nil || v.State.Current == nil {
		return 0
	}
	return len(v.State.Current.Bluffs) + len(v.State.Current.CorrectAnswerPlayers)
}

func voteCount(v View) int {
	if v.State == nil || v.State.Current == nil {
		return 0
	}
	return len(v.State.Current.Votes)
}

// ViewChoices prefers the compiled list from the choices event; if none
// arrived (e.g. a reconnect mid-phase) it rebuilds an equivalent list from
// the snapshot's round data.
func ViewChoices(v View) []protocol.Choice {
	if len(v.Choices) > 0 {
		return v.Choices
	}
	if v.State == nil || v.State.Current == nil {
		return nil
	}
	cur := v.State.Current
	choices := make([]protocol.Choice, 0, len(cur.Bluffs)+1)
	if cur.Answer != "" {
		choices = append(choices, protocol.Choice{ID: protocol.TruthPrefix + "answer", Text: cur.Answer})
	}
	choices = append(choices, cur.Bluffs...)
	return choices
}

func votesFor(v View, choiceID string) []protocol.Vote {
	if v.State == nil || v.State.Current == nil {
		return nil
	}
	var votes []protocol.Vote
	for _, vote := range v.State.Current.Votes {
		if vote.ChoiceID == choiceID {
			votes = append(votes, vote)
		}
	}
	return votes
}

func playerName(v View, playerID string) string {
	if v.State != nil {
		if p, ok := v.State.FindPlayer(playerID); ok {
			return p.Name
		}
	}
	return playerID
}
