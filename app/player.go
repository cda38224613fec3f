// app/player.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/generalChaos/partyroom/games"
	"github.com/generalChaos/partyroom/monitor"
	"github.com/generalChaos/partyroom/protocol"
	"github.com/generalChaos/partyroom/room"
	"github.com/generalChaos/partyroom/session"
)

// Player is a participant's own device client: it renders the phase view
// for its role and turns stdin lines into answers and votes.
type Player struct {
	*Client
}

// PlayerOptions configures the player application.
type PlayerOptions struct {
	RoomCode string
	Nickname string
	Avatar   string
	Metrics  *monitor.Monitor
	Out      io.Writer
}

func NewPlayer(sess *session.Session, opts PlayerOptions) *Player {
	return &Player{
		Client: newClient(sess, opts.RoomCode, opts.Nickname, opts.Avatar, false, opts.Metrics, opts.Out),
	}
}

// Run pumps the session and the stdin input loop until either ends.
func (p *Player) Run(ctx context.Context, input io.Reader) error {
	errs := make(chan error, 1)
	go func() { errs <- p.sess.Run(ctx) }()

	go p.inputLoop(ctx, input)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		p.sess.Close()
		return nil
	}
}

// inputLoop interprets each line according to the current phase: an answer
// during prompt, a numbered pick during choose. Input outside those phases
// is dropped with a hint.
func (p *Player) inputLoop(ctx context.Context, input io.Reader) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		v := p.view()
		if v.State == nil {
			fmt.Fprintln(p.out, "Still waiting for the room...")
			continue
		}

		switch v.State.Phase {
		case protocol.PhasePrompt:
			p.submitAnswer(v, line)
		case protocol.PhaseChoose:
			p.submitVote(v, line)
		default:
			fmt.Fprintln(p.out, "Nothing to do right now.")
		}
	}
}

func (p *Player) submitAnswer(v games.View, answer string) {
	if v.Flags.HasSubmittedAnswer {
		fmt.Fprintln(p.out, "Your answer is already in.")
		return
	}
	if err := p.tracker.SubmitAnswer(answer); err != nil {
		fmt.Fprintf(p.out, "Failed to submit answer: %v\n", err)
		return
	}
	// No local flag flip: the next snapshot confirms the submission.
	fmt.Fprintln(p.out, "Answer sent.")
}

func (p *Player) submitVote(v games.View, line string) {
	choices := games.ViewChoices(v)
	if len(choices) == 0 {
		fmt.Fprintln(p.out, "No choices to vote on yet.")
		return
	}
	pick, err := strconv.Atoi(line)
	if err != nil || pick < 1 || pick > len(choices) {
		fmt.Fprintf(p.out, "Pick a number between 1 and %d.\n", len(choices))
		return
	}

	choice := choices[pick-1]
	if err := p.tracker.SubmitVote(choice.ID); err != nil {
		if errors.Is(err, room.ErrAlreadyVoted) {
			fmt.Fprintln(p.out, "You already voted this round.")
			return
		}
		fmt.Fprintf(p.out, "Failed to submit vote: %v\n", err)
		return
	}
	fmt.Fprintf(p.out, "Vote locked in: %s\n", choice.Text)
	p.render()
}
