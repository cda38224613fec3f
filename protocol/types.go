package protocol

import (
	"fmt"
	"strings"
)

// Phase is one stage of a round's life cycle. Phases are strictly ordered
// within a round; over is terminal and lobby only occurs before round 1.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePrompt  Phase = "prompt"
	PhaseChoose  Phase = "choose"
	PhaseScoring Phase = "scoring"
	PhaseOver    Phase = "over"
)

// Phase durations in seconds, pushed as timeLeft by the server but also
// needed locally for countdown rendering.
const (
	PromptDuration  = 15
	ChooseDuration  = 20
	ScoringDuration = 6
)

// PhaseDuration returns the nominal duration of a phase in seconds.
func PhaseDuration(p Phase) int {
	switch p {
	case PhasePrompt:
		return PromptDuration
	case PhaseChoose:
		return ChooseDuration
	case PhaseScoring:
		return ScoringDuration
	default:
		return 0
	}
}

// Scoring rule the client renders. Totals are never computed client-side;
// these constants only drive the per-choice breakdown on the scoring view.
const (
	TruthReward         = 1000
	BluffRewardPerVoter = 500
)

// Player is the server-owned view of a participant. The id is the connection
// identifier assigned at join time and is not stable across reconnects.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
}

// Choice is one voting option. The genuine answer carries an id prefixed
// TRUE::; everything else is a player-authored bluff.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	By   string `json:"by"`
}

// Vote records one player's pick. The server enforces at most one vote per
// voter per round.
type Vote struct {
	Voter    string `json:"voter"`
	ChoiceID string `json:"choiceId"`
}

// RoundState is the per-round sub-state of a room snapshot.
type RoundState struct {
	Prompt               string   `json:"prompt"`
	Answer               string   `json:"answer"`
	Bluffs               []Choice `json:"bluffs"`
	Votes                []Vote   `json:"votes"`
	CorrectAnswerPlayers []string `json:"correctAnswerPlayers"`
}

// RoomState is a full-replacement snapshot of the room. Every push is
// authoritative and supersedes all prior local state; there is no merging.
type RoomState struct {
	GameType  string      `json:"gameType"`
	Phase     Phase       `json:"phase"`
	Round     int         `json:"round"`
	MaxRounds int         `json:"maxRounds"`
	TimeLeft  int         `json:"timeLeft"`
	Players   []Player    `json:"players"`
	Current   *RoundState `json:"current,omitempty"`
	HostID    string      `json:"hostId,omitempty"`
}

// FindPlayer returns the player with the given id, if present.
func (s *RoomState) FindPlayer(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Event payloads.

type JoinData struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

type JoinedData struct {
	OK       bool   `json:"ok"`
	PlayerID string `json:"playerId,omitempty"`
}

type ErrorData struct {
	Msg string `json:"msg"`
}

type StartGameData struct {
	GameType string `json:"gameType"`
}

type SubmitAnswerData struct {
	Answer string `json:"answer"`
}

type SubmitVoteData struct {
	ChoiceID string `json:"choiceId"`
}

type TimerData struct {
	TimeLeft int `json:"timeLeft"`
}

type PromptData struct {
	Question string `json:"question"`
}

type ChoicesData struct {
	Choices []Choice `json:"choices"`
}

type ScoreTotal struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
}

type ScoresData struct {
	Totals []ScoreTotal `json:"totals"`
}

type Winner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type GameOverData struct {
	Winners []Winner `json:"winners"`
}

// TruthPrefix marks the genuine answer among the round's choices.
const TruthPrefix = "TRUE::"

// IsTruth reports whether a choice id denotes the genuine answer.
func IsTruth(choiceID string) bool {
	return strings.HasPrefix(choiceID, TruthPrefix)
}

// TruthChoice returns the genuine answer among choices, if present.
func TruthChoice(choices []Choice) (Choice, bool) {
	for _, c := range choices {
		if IsTruth(c.ID) {
			return c, true
		}
	}
	return Choice{}, false
}

// ValidateChoices checks the at-most-one-truth invariant for a round's
// choice set.
func ValidateChoices(choices []Choice) error {
	truths := 0
	for _, c := range choices {
		if IsTruth(c.ID) {
			truths++
		}
	}
	if truths > 1 {
		return fmt.Errorf("invalid choice set: %d truth choices, want at most 1", truths)
	}
	return nil
}
