// internal/httpserver/server.go
//
// HTTP server wiring for the Spybot backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/vocab", "/board/sizes".
//   - POST /game/new creates a session and hands back a session token.
//   - Everything under /game/{id} requires that token (see session_token.go).
//
// Notes:
//   - Sessions live in the in-memory store; nothing about a game is persisted.
//   - Each session gets its own memoizing embedder on top of the shared one,
//     so board words are embedded once per game.

package httpserver

import (
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spybot/internal/board"
	"github.com/robalobadob/spybot/internal/daily"
	"github.com/robalobadob/spybot/internal/embed"
	"github.com/robalobadob/spybot/internal/game"
	"github.com/robalobadob/spybot/internal/guess"
	"github.com/robalobadob/spybot/internal/store"
	"github.com/robalobadob/spybot/internal/words"
)

// Options carries everything the server needs besides the store.
type Options struct {
	Vocabulary   words.Vocabulary
	Embedder     embed.Embedder
	MaxCards     int
	DefaultCards int
	GuessDelay   time.Duration
	JWTSecret    string
	SessionTTL   time.Duration
	ClientOrigin string
	DailySalt    string

	// CookieName names the session cookie; SecureCookies marks it Secure
	// and SameSite=None for cross-site front ends served over HTTPS.
	CookieName    string
	SecureCookies bool
}

// Server bundles router, session store and game dependencies.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.MaxCards <= 0 {
		opts.MaxCards = board.MaxCards
	}
	if opts.DefaultCards <= 0 {
		opts.DefaultCards = board.DefaultCards
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}
	if opts.CookieName == "" {
		opts.CookieName = "spybot_session"
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(routeTimeout(opts)))
	s.r.Use(jsonContentType)
	s.r.Use(corsFor(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "spybot",
			"endpoints": []string{
				"/health", "/board/sizes", "POST /game/new", "GET /game/{id}",
				"POST /game/{id}/select", "POST /game/{id}/deselect", "POST /game/{id}/toggle",
				"POST /game/{id}/hint/check", "POST /game/{id}/turn", "POST /game/{id}/guess",
				"POST /game/{id}/reset", "GET /game/{id}/log",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
	})
	s.r.Get("/debug/vocab", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"words":    s.opts.Vocabulary.Len(),
			"embedder": s.opts.Embedder.Name(),
		})
	})

	s.r.Get("/board/sizes", s.handleBoardSizes)
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireSession)
		s.mountGame(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// baseTimeout bounds a request apart from per-guess pauses.
const baseTimeout = 60 * time.Second

// routeTimeout leaves room for a turn on a full board to pause after every guess.
func routeTimeout(o Options) time.Duration {
	return baseTimeout + time.Duration(o.MaxCards)*o.GuessDelay
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ BOARD --------------------------------------

type sizesRes struct {
	Sizes   []int `json:"sizes"`
	Default int   `json:"default"`
	Max     int   `json:"max"`
}

// handleBoardSizes lists the card counts a player may choose.
func (s *Server) handleBoardSizes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sizesRes{
		Sizes:   board.NearlySquareCounts(s.opts.MaxCards),
		Default: s.opts.DefaultCards,
		Max:     s.opts.MaxCards,
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Cards int  `json:"cards"` // 0 → server default
	Daily bool `json:"daily"` // same board for everyone today
}
type newGameRes struct {
	GameID    string        `json:"gameId"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Game      game.Snapshot `json:"game"`
}

// handleNewGame generates a board and registers a new session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}

	b, err := s.newBoard(req.Cards, req.Daily)
	if err != nil {
		writeError(w, statusFor(err), codeFor(err), err)
		return
	}

	id := uuid.NewString()
	sess := game.NewSession(id, b, guess.New(embed.NewMemo(s.opts.Embedder)))
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", err)
		return
	}

	tok, exp, err := s.signSession(id)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed", err)
		return
	}
	s.setSessionCookie(w, tok, exp)

	log.Info().Str("gameId", id).Int("cards", b.Rows()*b.Cols()).Bool("daily", req.Daily).Msg("game started")
	writeJSON(w, http.StatusCreated, newGameRes{GameID: id, Token: tok, ExpiresAt: exp, Game: sess.Snapshot()})
}

// newBoard validates the requested card count and generates a board.
func (s *Server) newBoard(cards int, dailyBoard bool) (*board.Board, error) {
	if cards == 0 {
		cards = s.opts.DefaultCards
	}
	if cards > s.opts.MaxCards {
		return nil, errTooManyCards
	}
	var rng *rand.Rand
	if dailyBoard {
		rng = daily.Rand(s.now(), s.opts.DailySalt)
	}
	return board.Generate(cards, s.opts.Vocabulary, rng)
}

var errTooManyCards = errors.New("card count exceeds the maximum board size")

// ------------------------------- util ---------------------------------------

// decodeBody reads an optional JSON body; an empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

type errorRes struct {
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Conflicts []string `json:"conflicts,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	res := errorRes{Error: code, Message: err.Error()}
	var inv *game.InvalidHintError
	if errors.As(err, &inv) {
		res.Conflicts = inv.Conflicts
	}
	writeJSON(w, status, res)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var inv *game.InvalidHintError
	switch {
	case errors.As(err, &inv),
		errors.Is(err, game.ErrNoSelection),
		errors.Is(err, game.ErrEmptyHint),
		errors.Is(err, game.ErrNotOnBoard),
		errors.Is(err, board.ErrInvalidCardCount),
		errors.Is(err, errTooManyCards):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrVocabularyTooSmall):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameComplete), errors.Is(err, game.ErrTurnInProgress):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func codeFor(err error) string {
	var inv *game.InvalidHintError
	switch {
	case errors.As(err, &inv):
		return "invalid_hint"
	case errors.Is(err, game.ErrNoSelection):
		return "no_selection"
	case errors.Is(err, game.ErrEmptyHint):
		return "empty_hint"
	case errors.Is(err, game.ErrNotOnBoard):
		return "not_on_board"
	case errors.Is(err, board.ErrInvalidCardCount), errors.Is(err, errTooManyCards):
		return "invalid_card_count"
	case errors.Is(err, board.ErrVocabularyTooSmall):
		return "vocabulary_too_small"
	case errors.Is(err, game.ErrGameComplete):
		return "game_complete"
	case errors.Is(err, game.ErrTurnInProgress):
		return "turn_in_progress"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	}
	return "internal"
}
