// internal/httpserver/routes_game.go
//
// Per-game routes, mounted under /game/{id} behind requireSession:
//   - GET  /                → session snapshot
//   - POST /select|deselect|toggle {word} → updated selection
//   - POST /hint/check {hint} → whether the hint may be used
//   - POST /turn {hint, selected?} → Spybot guesses and the turn result
//   - POST /guess {hint, k} → ranking only, nothing changes
//   - POST /reset {cards?, daily?} → fresh board, cleared history
//   - GET  /log?format=csv|json|html → game log download

package httpserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spybot/internal/game"
	"github.com/robalobadob/spybot/internal/guess"
)

func (s *Server) mountGame(r chi.Router) {
	r.Get("/", s.handleSnapshot)
	r.Post("/select", s.handleSelection(func(g *game.Session, w string) ([]string, error) { return g.Select(w) }))
	r.Post("/deselect", s.handleSelection(func(g *game.Session, w string) ([]string, error) { return g.Deselect(w), nil }))
	r.Post("/toggle", s.handleSelection(func(g *game.Session, w string) ([]string, error) { return g.Toggle(w) }))
	r.Post("/hint/check", s.handleHintCheck)
	r.Post("/turn", s.handleTurn)
	r.Post("/guess", s.handleGuess)
	r.Post("/reset", s.handleReset)
	r.Get("/log", s.handleLog)
}

// withSession runs fn on the session named in the URL, writing a JSON error
// (and returning false) when the session is missing or fn fails.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*game.Session) error) bool {
	err := s.store.With(r.Context(), chi.URLParam(r, "id"), fn)
	if err != nil {
		writeError(w, statusFor(err), codeFor(err), err)
		return false
	}
	return true
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	if s.withSession(w, r, func(g *game.Session) error {
		snap = g.Snapshot()
		return nil
	}) {
		writeJSON(w, http.StatusOK, snap)
	}
}

// ---------------------------- selection -------------------------------------

type wordReq struct {
	Word string `json:"word"`
}
type selectionRes struct {
	Selection []string `json:"selection"`
}

func (s *Server) handleSelection(op func(*game.Session, string) ([]string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req wordReq
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err)
			return
		}
		var sel []string
		if s.withSession(w, r, func(g *game.Session) error {
			var err error
			sel, err = op(g, req.Word)
			return err
		}) {
			if sel == nil {
				sel = []string{}
			}
			writeJSON(w, http.StatusOK, selectionRes{Selection: sel})
		}
	}
}

// ------------------------------ hints ---------------------------------------

type hintReq struct {
	Hint string `json:"hint"`
}
type hintCheckRes struct {
	Valid     bool     `json:"valid"`
	Conflicts []string `json:"conflicts"`
	Message   string   `json:"message,omitempty"`
}

func (s *Server) handleHintCheck(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	res := hintCheckRes{Valid: true, Conflicts: []string{}}
	if s.withSession(w, r, func(g *game.Session) error {
		if err := g.CheckHint(req.Hint); err != nil {
			res.Valid = false
			res.Message = err.Error()
			var inv *game.InvalidHintError
			if errors.As(err, &inv) {
				res.Conflicts = inv.Conflicts
			}
		}
		return nil
	}) {
		writeJSON(w, http.StatusOK, res)
	}
}

// ------------------------------- turn ---------------------------------------

type turnReq struct {
	Hint     string   `json:"hint"`
	Selected []string `json:"selected"` // optional; replaces the current selection
}

// handleTurn submits the turn. Validation failures leave the session as it
// was; an embedding failure is reported as 502 with nothing committed.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}

	var res *game.TurnResult
	err := s.store.With(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
		if g.State() == game.StateComplete {
			return game.ErrGameComplete
		}
		prevSel, prevHint := g.Selection(), g.Hint()
		rollback := func() {
			restoreSelection(g, prevSel)
			g.SetHint(prevHint)
		}
		if req.Selected != nil {
			g.ClearSelection()
			for _, word := range req.Selected {
				if _, err := g.Select(word); err != nil {
					rollback()
					return err
				}
			}
		}
		if strings.TrimSpace(req.Hint) != "" {
			g.SetHint(req.Hint)
		}
		var err error
		res, err = g.Submit(r.Context(), game.SubmitOptions{OnGuess: s.onGuess(r.Context(), g.ID)})
		if err != nil {
			rollback()
		}
		return err
	})
	if err != nil {
		status, code := statusFor(err), codeFor(err)
		if status == http.StatusInternalServerError {
			status, code = http.StatusBadGateway, "embedding_failed"
			log.Error().Err(err).Str("gameId", chi.URLParam(r, "id")).Msg("turn failed")
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func restoreSelection(g *game.Session, words []string) {
	g.ClearSelection()
	for _, w := range words {
		_, _ = g.Select(w)
	}
}

// onGuess logs each evaluated guess and applies the configured pause.
func (s *Server) onGuess(ctx context.Context, id string) func(game.Outcome, int, int) {
	return func(o game.Outcome, i, n int) {
		log.Debug().Str("gameId", id).Str("guess", o.Word).Bool("correct", o.Correct).
			Int("index", i+1).Int("of", n).Msg("spybot guess")
		if s.opts.GuessDelay <= 0 || i == n-1 || !o.Correct {
			return
		}
		t := time.NewTimer(s.opts.GuessDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
}

// ------------------------------ guess ---------------------------------------

type guessReq struct {
	Hint string `json:"hint"`
	K    int    `json:"k"`
}
type guessRes struct {
	Hint    string        `json:"hint"`
	Guesses []guess.Guess `json:"guesses"`
}

// handleGuess exposes the guessing engine directly: rank the remaining board
// words for a hint with the game's own guesser, without evaluating anything.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	var ranked []guess.Guess
	err := s.store.With(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
		k := req.K
		if k <= 0 {
			k = len(g.Selection())
		}
		if k <= 0 {
			k = 1
		}
		var err error
		ranked, err = g.Rank(r.Context(), req.Hint, k)
		return err
	})
	if err != nil {
		status, code := statusFor(err), codeFor(err)
		if status == http.StatusInternalServerError {
			status, code = http.StatusBadGateway, "embedding_failed"
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Hint: strings.ToLower(strings.TrimSpace(req.Hint)), Guesses: ranked})
}

// ------------------------------ reset ---------------------------------------

// handleReset builds the new board first; the session is only touched once
// generation succeeded.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	var snap game.Snapshot
	if s.withSession(w, r, func(g *game.Session) error {
		cards := req.Cards
		if cards == 0 {
			cards = g.Snapshot().Cards
		}
		b, err := s.newBoard(cards, req.Daily)
		if err != nil {
			return err
		}
		g.Reset(b)
		snap = g.Snapshot()
		return nil
	}) {
		log.Info().Str("gameId", snap.ID).Int("cards", snap.Cards).Msg("game reset")
		writeJSON(w, http.StatusOK, snap)
	}
}

// ------------------------------- log ----------------------------------------

// handleLog downloads the game log in the requested format (default csv).
func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	var lg game.GameLog
	if !s.withSession(w, r, func(g *game.Session) error {
		lg = g.Log()
		return nil
	}) {
		return
	}

	var buf bytes.Buffer
	var err error
	var ctype string
	switch format {
	case "csv":
		ctype, err = "text/csv; charset=utf-8", lg.WriteCSV(&buf)
	case "json":
		ctype, err = "application/json; charset=utf-8", lg.WriteJSON(&buf)
	case "html":
		ctype, err = "text/html; charset=utf-8", lg.WriteHTML(&buf)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown_format", "format": format})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export_failed", err)
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", `attachment; filename="game_summary.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
