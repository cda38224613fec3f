package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/generalChaos/partyroom/games"
	"github.com/generalChaos/partyroom/protocol"
	"github.com/generalChaos/partyroom/session"
)

func TestSubmitVote_NoChoicesYet(t *testing.T) {
	var out bytes.Buffer
	sess := session.New("ws://test")
	p := NewPlayer(sess, PlayerOptions{RoomCode: "ABCD", Nickname: "alice", Out: &out})

	v := games.View{State: &protocol.RoomState{Phase: protocol.PhaseChoose, Round: 1}}
	p.submitVote(v, "1")

	if !strings.Contains(out.String(), "No choices to vote on yet") {
		t.Errorf("an empty choice list should say there is nothing to vote on, got %q", out.String())
	}
}

func TestSubmitVote_OutOfRangePick(t *testing.T) {
	var out bytes.Buffer
	sess := session.New("ws://test")
	p := NewPlayer(sess, PlayerOptions{RoomCode: "ABCD", Nickname: "alice", Out: &out})

	v := games.View{
		State: &protocol.RoomState{Phase: protocol.PhaseChoose, Round: 1},
		Choices: []protocol.Choice{
			{ID: "TRUE::1", Text: "Canberra"},
			{ID: "bob", Text: "Sydney", By: "bob"},
		},
	}
	p.submitVote(v, "5")

	if !strings.Contains(out.String(), "between 1 and 2") {
		t.Errorf("an out-of-range pick should show the valid range, got %q", out.String())
	}
}
