package protocol

import (
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewEnvelope(EventJoin, JoinData{Nickname: "alice", Avatar: "fox"})
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	if env.Event != EventJoin {
		t.Errorf("expected event %s, got %s", EventJoin, env.Event)
	}

	var data JoinData
	if err := env.Decode(&data); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if data.Nickname != "alice" || data.Avatar != "fox" {
		t.Errorf("round trip mangled the payload: %+v", data)
	}
}

func TestEnvelopeNilPayload(t *testing.T) {
	env, err := NewEnvelope(EventConnect, nil)
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	if len(env.Data) != 0 {
		t.Errorf("nil payload should produce an empty data field, got %q", env.Data)
	}

	var data JoinData
	if err := env.Decode(&data); err != nil {
		t.Errorf("decoding an empty payload should be a no-op, got %v", err)
	}
}

func TestIsTruth(t *testing.T) {
	if !IsTruth("TRUE::paris") {
		t.Error("TRUE::paris should be the genuine answer")
	}
	if IsTruth("alice") {
		t.Error("a plain player id is not the genuine answer")
	}
}

func TestTruthChoice(t *testing.T) {
	choices := []Choice{
		{ID: "alice", Text: "london"},
		{ID: "TRUE::x", Text: "paris"},
		{ID: "bob", Text: "berlin"},
	}
	truth, ok := TruthChoice(choices)
	if !ok {
		t.Fatal("expected to find the genuine answer")
	}
	if truth.Text != "paris" {
		t.Errorf("expected paris, got %s", truth.Text)
	}

	if _, ok := TruthChoice(choices[:1]); ok {
		t.Error("no truth present, TruthChoice should report false")
	}
}

func TestValidateChoices(t *testing.T) {
	ok := []Choice{
		{ID: "alice", Text: "london"},
		{ID: "TRUE::x", Text: "paris"},
	}
	if err := ValidateChoices(ok); err != nil {
		t.Errorf("one truth choice is valid, got %v", err)
	}

	noTruth := []Choice{{ID: "alice", Text: "london"}}
	if err := ValidateChoices(noTruth); err != nil {
		t.Errorf("zero truth choices is valid, got %v", err)
	}

	twoTruths := []Choice{
		{ID: "TRUE::x", Text: "paris"},
		{ID: "TRUE::y", Text: "lyon"},
	}
	if err := ValidateChoices(twoTruths); err == nil {
		t.Error("two truth choices must be rejected")
	}
}

func TestPhaseDuration(t *testing.T) {
	cases := []struct {
		phase Phase
		want  int
	}{
		{PhasePrompt, 15},
		{PhaseChoose, 20},
		{PhaseScoring, 6},
		{PhaseLobby, 0},
	}
	for _, c := range cases {
		if got := PhaseDuration(c.phase); got != c.want {
			t.Errorf("PhaseDuration(%s) = %d, want %d", c.phase, got, c.want)
		}
	}
}
