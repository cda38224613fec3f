package games

import (
	"strings"
	"testing"

	"github.com/generalChaos/partyroom/protocol"
)

func scoringView() View {
	return View{
		RoomCode: "ABCD",
		PlayerID: "bob",
		State: &protocol.RoomState{
			GameType:  GameTypeBluffTrivia,
			Phase:     protocol.PhaseScoring,
			Round:     2,
			MaxRounds: 5,
			Players: []protocol.Player{
				{ID: "alice", Name: "Alice", Score: 1500},
				{ID: "bob", Name: "Bob", Score: 500},
				{ID: "carol", Name: "Carol", Score: 0},
			},
			Current: &protocol.RoundState{
				Prompt: "What is the capital of Australia?",
				Bluffs: []protocol.Choice{
					{ID: "alice", Text: "Sydney", By: "alice"},
				},
				Votes: []protocol.Vote{
					{Voter: "alice", ChoiceID: "TRUE::1"},
					{Voter: "bob", ChoiceID: "alice"},
					{Voter: "carol", ChoiceID: "alice"},
				},
			},
		},
		Choices: []protocol.Choice{
			{ID: "TRUE::1", Text: "Canberra"},
			{ID: "alice", Text: "Sydney", By: "alice"},
		},
		Scores: []protocol.ScoreTotal{
			{PlayerID: "alice", Score: 1500},
			{PlayerID: "bob", Score: 500},
		},
	}
}

func TestRender_UnknownGameTypeFallsBack(t *testing.T) {
	r := NewRegistry()
	v := scoringView()
	v.State.GameType = "quiplash-9000"

	out, ok := r.Render("quiplash-9000", protocol.PhaseScoring, v)
	if !ok {
		t.Fatal("the fallback game must still render known phases")
	}
	if out == "" {
		t.Error("fallback render produced no output")
	}
}

func TestRender_UnknownPhaseRendersNothing(t *testing.T) {
	r := NewRegistry()
	v := scoringView()

	out, ok := r.Render(GameTypeBluffTrivia, protocol.Phase("intermission"), v)
	if ok {
		t.Errorf("an unknown phase must render nothing, got %q", out)
	}
}

func TestRender_HostAndPlayerTablesDiffer(t *testing.T) {
	r := NewRegistry()
	v := scoringView()
	v.State.Phase = protocol.PhaseChoose

	player, ok := r.Render(GameTypeBluffTrivia, protocol.PhaseChoose, v)
	if !ok {
		t.Fatal("player choose view missing")
	}
	v.IsHost = true
	host, ok := r.Render(GameTypeBluffTrivia, protocol.PhaseChoose, v)
	if !ok {
		t.Fatal("host choose view missing")
	}
	if player == host {
		t.Error("host and player should see different choose views")
	}
}

func TestScoring_BreakdownFollowsRules(t *testing.T) {
	r := NewRegistry()
	v := scoringView()

	out, ok := r.Render(GameTypeBluffTrivia, protocol.PhaseScoring, v)
	if !ok {
		t.Fatal("scoring view missing")
	}

	if !strings.Contains(out, "Canberra") {
		t.Error("scoring must reveal the genuine answer")
	}
	// Alice found the truth: 1000. Her bluff fooled two voters: 2 x 500.
	if !strings.Contains(out, "1000") {
		t.Errorf("truth reward missing from breakdown:\n%s", out)
	}
	if !strings.Contains(out, "1000 points for fooling 2") {
		t.Errorf("bluff reward breakdown missing:\n%s", out)
	}
}

func TestScoring_TotalsComeFromScoresEvent(t *testing.T) {
	r := NewRegistry()
	v := scoringView()
	// A total no vote tally could produce: proves the renderer copies the
	// server's numbers instead of recomputing.
	v.Scores = []protocol.ScoreTotal{{PlayerID: "carol", Score: 4242}}

	out, ok := r.Render(GameTypeBluffTrivia, protocol.PhaseScoring, v)
	if !ok {
		t.Fatal("scoring view missing")
	}
	if !strings.Contains(out, "Carol: 4242") {
		t.Errorf("totals must mirror the scores event verbatim:\n%s", out)
	}
}

func TestViewChoices_RebuildsFromSnapshot(t *testing.T) {
	v := scoringView()
	v.Choices = nil
	v.State.Current.Answer = "Canberra"

	choices := ViewChoices(v)
	if len(choices) == 0 {
		t.Fatal("expected choices rebuilt from the room snapshot")
	}
	if _, ok := protocol.TruthChoice(choices); !ok {
		t.Error("rebuilt choices must include the genuine answer")
	}
	found := false
	for _, c := range choices {
		if c.Text == "Sydney" {
			found = true
		}
	}
	if !found {
		t.Error("rebuilt choices must include the recorded bluffs")
	}
}

func TestGameOver_ListsWinners(t *testing.T) {
	r := NewRegistry()
	v := scoringView()
	v.State.Phase = protocol.PhaseOver
	v.Winners = []protocol.Winner{{ID: "alice", Name: "Alice", Score: 1500}}

	out, ok := r.Render(GameTypeBluffTrivia, protocol.PhaseOver, v)
	if !ok {
		t.Fatal("game over view missing")
	}
	if !strings.Contains(out, "Alice") || !strings.Contains(out, "1500") {
		t.Errorf("game over view must list the winners:\n%s", out)
	}
}
