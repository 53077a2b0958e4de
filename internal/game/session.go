// internal/game/session.go
//
// Game session and turn controller.
// Responsibilities:
//   - Own the board, the current selection and hint, the game log and the
//     skill scorer for one player's game.
//   - Validate and run a turn: rank, evaluate in order, stop on first miss.
//   - Reset to a fresh board, discarding all state at once.
//
// State transitions:
//   - awaiting_input → evaluating on Submit (only with ≥1 card and a valid hint).
//   - evaluating → awaiting_input after the turn, or → complete once the board
//     is empty.
//   - A ranking failure returns to awaiting_input with nothing committed.
//
// A Session is not safe for concurrent use; callers serialize access.

package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spybot/internal/board"
	"github.com/robalobadob/spybot/internal/guess"
	"github.com/robalobadob/spybot/internal/skill"
)

// Session is a single player's game.
type Session struct {
	ID        string
	CreatedAt time.Time

	board     *board.Board
	ranker    Ranker
	cards     int
	selection []string
	hint      string
	turn      int
	log       GameLog
	skill     skill.Scorer
	state     State
}

// NewSession starts a game on b with r as the guesser.
func NewSession(id string, b *board.Board, r Ranker) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		board:     b,
		ranker:    r,
		cards:     b.Rows() * b.Cols(),
		state:     initialState(b),
	}
}

func initialState(b *board.Board) State {
	if b.Complete() {
		return StateComplete
	}
	return StateAwaitingInput
}

// Board returns the live board.
func (s *Session) Board() *board.Board { return s.board }

// State returns the controller state.
func (s *Session) State() State { return s.state }

// Complete reports whether every card has been guessed.
func (s *Session) Complete() bool { return s.board.Complete() }

// Turn returns the number of the next turn (1-based).
func (s *Session) Turn() int { return s.turn + 1 }

// Log returns a copy of the game log.
func (s *Session) Log() GameLog { return append(GameLog(nil), s.log...) }

// Skill returns the cumulative skill value.
func (s *Session) Skill() float64 { return s.skill.Value() }

// SkillTrace returns the per-turn skill values.
func (s *Session) SkillTrace() []float64 { return s.skill.Trace() }

// Selection returns the selected words in selection order.
func (s *Session) Selection() []string { return append([]string(nil), s.selection...) }

// Hint returns the pending hint.
func (s *Session) Hint() string { return s.hint }

// Select marks word for this turn. Selecting twice is a no-op.
func (s *Session) Select(word string) ([]string, error) {
	word = normalize(word)
	if !s.board.Contains(word) {
		return s.Selection(), fmt.Errorf("%w: %q", ErrNotOnBoard, word)
	}
	if !s.selected(word) {
		s.selection = append(s.selection, word)
	}
	return s.Selection(), nil
}

// Deselect unmarks word. Deselecting an unselected word is a no-op.
func (s *Session) Deselect(word string) []string {
	word = normalize(word)
	for i, w := range s.selection {
		if w == word {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			break
		}
	}
	return s.Selection()
}

// Toggle flips the selection state of word.
func (s *Session) Toggle(word string) ([]string, error) {
	if s.selected(normalize(word)) {
		return s.Deselect(word), nil
	}
	return s.Select(word)
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() { s.selection = nil }

// SetHint stores the hint for the pending turn (lowercased, trimmed).
func (s *Session) SetHint(hint string) { s.hint = normalize(hint) }

// CheckHint validates hint against the live board.
func (s *Session) CheckHint(hint string) error {
	hint = normalize(hint)
	if hint == "" {
		return ErrEmptyHint
	}
	if c := s.board.HintConflicts(hint); len(c) > 0 {
		return &InvalidHintError{Hint: hint, Conflicts: c}
	}
	return nil
}

// Rank returns the top k board words for hint using the session's guesser.
// Nothing is evaluated or changed.
func (s *Session) Rank(ctx context.Context, hint string, k int) ([]guess.Guess, error) {
	if err := s.CheckHint(hint); err != nil {
		return nil, err
	}
	return s.ranker.Rank(ctx, normalize(hint), s.board.Words(), k)
}

// Submit runs one turn with the current selection and hint.
func (s *Session) Submit(ctx context.Context, opts SubmitOptions) (*TurnResult, error) {
	switch s.state {
	case StateComplete:
		return nil, ErrGameComplete
	case StateEvaluating:
		return nil, ErrTurnInProgress
	}
	if len(s.selection) == 0 {
		return nil, ErrNoSelection
	}
	if err := s.CheckHint(s.hint); err != nil {
		return nil, err
	}

	s.state = StateEvaluating
	n := len(s.selection)
	ranked, err := s.ranker.Rank(ctx, s.hint, s.board.Words(), n)
	if err != nil {
		s.state = StateAwaitingInput
		return nil, fmt.Errorf("turn %d: %w", s.Turn(), err)
	}

	outcomes := make([]Outcome, 0, len(ranked))
	correct := 0
	for i, g := range ranked {
		o := Outcome{Word: g.Word, Correct: s.selected(g.Word)}
		outcomes = append(outcomes, o)
		if o.Correct {
			correct++
			s.board.Remove(g.Word)
		}
		if opts.OnGuess != nil {
			opts.OnGuess(o, i, len(ranked))
		}
		if !o.Correct {
			break
		}
	}

	s.turn++
	value := s.skill.Record(correct, len(ranked))
	complete := s.board.Complete()
	rec := TurnRecord{
		Turn:           s.turn,
		SelectedCards:  s.Selection(),
		CorrectGuesses: correct,
		Hint:           s.hint,
		CardsRemaining: s.board.Remaining(),
	}
	s.log = append(s.log, rec)

	res := &TurnResult{
		Turn:           s.turn,
		Hint:           s.hint,
		Ranked:         ranked,
		Outcomes:       outcomes,
		Correct:        correct,
		Skill:          value,
		Trend:          s.skill.Trend(),
		Message:        s.skill.Message(complete),
		CardsRemaining: rec.CardsRemaining,
		Complete:       complete,
		Record:         rec,
	}

	s.selection = nil
	s.hint = ""
	if complete {
		s.state = StateComplete
	} else {
		s.state = StateAwaitingInput
	}

	log.Debug().
		Str("session", s.ID).
		Int("turn", s.turn).
		Int("correct", correct).
		Int("offered", len(ranked)).
		Float64("skill", value).
		Bool("complete", complete).
		Msg("turn evaluated")
	return res, nil
}

// Reset replaces the board and discards selection, hint, log and skill.
// The caller builds b first, so a failed board generation leaves the
// session untouched.
func (s *Session) Reset(b *board.Board) {
	*s = Session{
		ID:        s.ID,
		CreatedAt: time.Now().UTC(),
		board:     b,
		ranker:    s.ranker,
		cards:     b.Rows() * b.Cols(),
		state:     initialState(b),
	}
}

func (s *Session) selected(word string) bool {
	for _, w := range s.selection {
		if w == word {
			return true
		}
	}
	return false
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
