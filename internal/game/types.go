// internal/game/types.go
//
// Core type definitions for a Spybot game session.
// Defines:
//   - State: turn controller state (awaiting_input → evaluating → complete).
//   - Outcome: evaluation of one of Spybot's guesses.
//   - TurnResult: everything the presentation layer renders after a turn.
//   - Errors returned when a turn cannot start.

package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/spybot/internal/guess"
	"github.com/robalobadob/spybot/internal/skill"
)

// State is the turn controller state.
type State string

const (
	StateAwaitingInput State = "awaiting_input"
	StateEvaluating    State = "evaluating"
	StateComplete      State = "complete"
)

var (
	ErrGameComplete   = errors.New("game complete")
	ErrNoSelection    = errors.New("select at least one card for Spybot to guess")
	ErrEmptyHint      = errors.New("hint is empty")
	ErrNotOnBoard     = errors.New("word is not on the board")
	ErrTurnInProgress = errors.New("turn already being evaluated")
)

// InvalidHintError reports hint words that appear on the board.
type InvalidHintError struct {
	Hint      string
	Conflicts []string
}

func (e *InvalidHintError) Error() string {
	return fmt.Sprintf("no part of the hint can exist on the board: %s", strings.Join(e.Conflicts, ", "))
}

// Ranker is the guessing engine as seen by the turn controller.
type Ranker interface {
	Rank(ctx context.Context, hint string, words []string, k int) ([]guess.Guess, error)
}

// Outcome is one evaluated guess.
type Outcome struct {
	Word    string `json:"word"`
	Correct bool   `json:"correct"`
}

// SubmitOptions tunes a single Submit call.
type SubmitOptions struct {
	// OnGuess, if set, runs after each guess is evaluated (index is 0-based,
	// of is the number of ranked guesses). Presentation layers use it for pacing.
	OnGuess func(o Outcome, index, of int)
}

// TurnResult is returned by Submit.
type TurnResult struct {
	Turn           int           `json:"turn"`
	Hint           string        `json:"hint"`
	Ranked         []guess.Guess `json:"ranked"`
	Outcomes       []Outcome     `json:"outcomes"`
	Correct        int           `json:"correct"`
	Skill          float64       `json:"skill"`
	Trend          skill.Trend   `json:"trend,omitempty"`
	Message        string        `json:"message"`
	CardsRemaining int           `json:"cardsRemaining"`
	Complete       bool          `json:"complete"`
	Record         TurnRecord    `json:"record"`
}
