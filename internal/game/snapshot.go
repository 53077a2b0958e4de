// internal/game/snapshot.go
//
// Read-only view of a session, returned by GET /game/{id} and after reset.

package game

import "time"

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	ID             string     `json:"id"`
	State          State      `json:"state"`
	Turn           int        `json:"turn"`
	Cards          int        `json:"cards"`
	Rows           int        `json:"rows"`
	Cols           int        `json:"cols"`
	Board          [][]string `json:"board"`
	CardsRemaining int        `json:"cardsRemaining"`
	Selection      []string   `json:"selection"`
	Hint           string     `json:"hint"`
	Skill          float64    `json:"skill"`
	SkillTrace     []float64  `json:"skillTrace"`
	Complete       bool       `json:"complete"`
	Log            GameLog    `json:"log"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	sel := s.Selection()
	if sel == nil {
		sel = []string{}
	}
	lg := s.Log()
	if lg == nil {
		lg = GameLog{}
	}
	trace := s.SkillTrace()
	if trace == nil {
		trace = []float64{}
	}
	return Snapshot{
		ID:             s.ID,
		State:          s.state,
		Turn:           s.Turn(),
		Cards:          s.cards,
		Rows:           s.board.Rows(),
		Cols:           s.board.Cols(),
		Board:          s.board.Cells(),
		CardsRemaining: s.board.Remaining(),
		Selection:      sel,
		Hint:           s.hint,
		Skill:          s.skill.Value(),
		SkillTrace:     trace,
		Complete:       s.board.Complete(),
		Log:            lg,
		CreatedAt:      s.CreatedAt,
	}
}
