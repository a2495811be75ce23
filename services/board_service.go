package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/clubedopeao/tournament-api/live"
	"github.com/clubedopeao/tournament-api/models"
	"github.com/clubedopeao/tournament-api/reconcile"
	"github.com/clubedopeao/tournament-api/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// The recent-activity list fetches up to 30 matches and previews 3;
	// the rest hide behind an expand control.
	recentMatchesLimit   = 30
	recentMatchesPreview = 3
)

// BoardView is the admin board for one session: discovered rounds, the
// selected round and its merged cards.
type BoardView struct {
	Session      *models.Session  `json:"session"`
	Rounds       []int            `json:"rounds"`
	CurrentRound int              `json:"current_round"`
	Cards        []reconcile.Card `json:"cards"`
}

// IntentView echoes a pending result selection back for confirmation. The
// ratings are rendered as text so the dialog shows "-" for unrated players.
type IntentView struct {
	Pairing     models.Pairing       `json:"pairing"`
	Code        reconcile.ResultCode `json:"result"`
	ResultLabel string               `json:"result_label"`
	Matchup     string               `json:"matchup"`
	WhiteRating string               `json:"white_rating"`
	BlackRating string               `json:"black_rating"`
}

// RecentItem is one row of the recent-activity list: the match plus its
// rendered score.
type RecentItem struct {
	models.Match
	Score string `json:"score"`
}

// RecentView is the paginated recent-activity list.
type RecentView struct {
	Matches  []RecentItem `json:"matches"`
	Total    int          `json:"total"`
	Hidden   int          `json:"hidden"`
	Expanded bool         `json:"expanded"`
}

type BoardService interface {
	Board(ctx context.Context, sessionID uuid.UUID, round int) (*BoardView, error)
	OpenIntent(ctx context.Context, sessionID, pairingID uuid.UUID, code reconcile.ResultCode) (*IntentView, error)
	CancelIntent(ctx context.Context, sessionID, pairingID uuid.UUID) error
	ConfirmIntent(ctx context.Context, sessionID, pairingID, refereeID uuid.UUID) error
	Rollback(ctx context.Context, matchID, refereeID uuid.UUID, reason *string, role models.RefereeRole) error
	RecentMatches(ctx context.Context, expanded bool) (*RecentView, error)
}

type boardService struct {
	sessionRepo repositories.SessionRepository
	pairingRepo repositories.PairingRepository
	matchRepo   repositories.MatchRepository
	procRepo    repositories.ProcedureRepository
	hub         *live.Hub

	mu     sync.Mutex
	boards map[uuid.UUID]*sessionBoard
}

// sessionBoard couples one session's view-model with the confirmation
// machines of its pairings.
type sessionBoard struct {
	board *reconcile.Board

	mu       sync.Mutex
	captures map[uuid.UUID]*reconcile.Capture
}

func NewBoardService(
	sessionRepo repositories.SessionRepository,
	pairingRepo repositories.PairingRepository,
	matchRepo repositories.MatchRepository,
	procRepo repositories.ProcedureRepository,
	hub *live.Hub,
) BoardService {
	return &boardService{
		sessionRepo: sessionRepo,
		pairingRepo: pairingRepo,
		matchRepo:   matchRepo,
		procRepo:    procRepo,
		hub:         hub,
		boards:      make(map[uuid.UUID]*sessionBoard),
	}
}

// loadBoard returns the cached board for a session, building it on first
// access: session and pairings are fetched concurrently, then the matches
// for the rounds the pairing set spans.
func (s *boardService) loadBoard(ctx context.Context, sessionID uuid.UUID) (*sessionBoard, error) {
	s.mu.Lock()
	if sb, ok := s.boards[sessionID]; ok {
		s.mu.Unlock()
		return sb, nil
	}
	s.mu.Unlock()

	var (
		session  *models.Session
		pairings []models.Pairing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		session, err = s.sessionRepo.GetByID(gctx, sessionID)
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		pairings, err = s.pairingRepo.ListBySession(gctx, sessionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(pairings) == 0 {
		return nil, ErrNoPairingsGenerated
	}

	matches, err := s.fetchMatches(ctx, session.TournamentID, pairings)
	if err != nil {
		return nil, err
	}

	board := reconcile.NewBoard()
	board.Reset(session, pairings, matches)

	sb := &sessionBoard{
		board:    board,
		captures: make(map[uuid.UUID]*reconcile.Capture),
	}

	s.mu.Lock()
	if existing, ok := s.boards[sessionID]; ok {
		// Lost a build race; keep the first one.
		sb = existing
	} else {
		s.boards[sessionID] = sb
	}
	s.mu.Unlock()
	return sb, nil
}

func (s *boardService) fetchMatches(ctx context.Context, tournamentID uuid.UUID, pairings []models.Pairing) ([]models.Match, error) {
	seen := make(map[int]bool)
	rounds := make([]int, 0)
	for _, p := range pairings {
		if !seen[p.RoundNumber] {
			seen[p.RoundNumber] = true
			rounds = append(rounds, p.RoundNumber)
		}
	}
	matches, err := s.matchRepo.ListByTournamentAndRounds(ctx, tournamentID, rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registered matches: %w", err)
	}
	return matches, nil
}

// refreshMatches re-fetches the match set and re-derives the merge. The
// refresh token makes a slow, superseded fetch a no-op instead of letting it
// clobber a newer state.
func (s *boardService) refreshMatches(ctx context.Context, sb *sessionBoard) error {
	session := sb.board.Session()
	if session == nil {
		return ErrSessionNotFound
	}
	token := sb.board.BeginRefresh()
	matches, err := s.fetchMatches(ctx, session.TournamentID, sb.board.Pairings())
	if err != nil {
		return err
	}
	sb.board.ApplyMatches(token, matches)
	return nil
}

func (s *boardService) Board(ctx context.Context, sessionID uuid.UUID, round int) (*BoardView, error) {
	sb, err := s.loadBoard(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if round > 0 {
		if err := sb.board.SelectRound(round); err != nil {
			return nil, ErrUnknownRound
		}
	}

	return &BoardView{
		Session:      sb.board.Session(),
		Rounds:       sb.board.Rounds(),
		CurrentRound: sb.board.CurrentRound(),
		Cards:        sb.board.Cards(),
	}, nil
}

func (sb *sessionBoard) capture(pairingID uuid.UUID) *reconcile.Capture {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	c, ok := sb.captures[pairingID]
	if !ok {
		c = reconcile.NewCapture()
		sb.captures[pairingID] = c
	}
	return c
}

func (s *boardService) OpenIntent(ctx context.Context, sessionID, pairingID uuid.UUID, code reconcile.ResultCode) (*IntentView, error) {
	sb, err := s.loadBoard(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	pairing, ok := sb.board.FindPairing(pairingID)
	if !ok {
		return nil, ErrPairingNotFound
	}

	if err := sb.capture(pairingID).Pick(pairing, code); err != nil {
		return nil, err
	}

	return &IntentView{
		Pairing:     pairing,
		Code:        code,
		ResultLabel: code.Label(),
		Matchup:     pairing.White.DisplayName() + " vs " + pairing.Black.DisplayName(),
		WhiteRating: pairing.White.DisplayRating(),
		BlackRating: pairing.Black.DisplayRating(),
	}, nil
}

func (s *boardService) CancelIntent(ctx context.Context, sessionID, pairingID uuid.UUID) error {
	sb, err := s.loadBoard(ctx, sessionID)
	if err != nil {
		return err
	}
	return sb.capture(pairingID).Cancel()
}

// ConfirmIntent drives the capture machine through submission: the pending
// selection is validated against the readiness predicate, forwarded to
// register_match exactly once, and on success the board is re-derived from a
// fresh match fetch and watchers are notified. A duplicate-registration
// violation comes back as ErrMatchAlreadyRegistered; any other backend error
// is returned as-is.
func (s *boardService) ConfirmIntent(ctx context.Context, sessionID, pairingID, refereeID uuid.UUID) error {
	sb, err := s.loadBoard(ctx, sessionID)
	if err != nil {
		return err
	}
	session := sb.board.Session()

	err = sb.capture(pairingID).Confirm(ctx, func(ctx context.Context, pairing models.Pairing, code reconcile.ResultCode) error {
		form := reconcile.SubmitForm{
			TournamentID: session.TournamentID,
			RoundNumber:  pairing.RoundNumber,
			Code:         code,
		}
		if pairing.White != nil {
			form.WhiteID = pairing.White.ID
		}
		if pairing.Black != nil {
			form.BlackID = pairing.Black.ID
		}
		if !form.Ready() {
			return ErrSubmissionNotReady
		}

		resultWhite, resultBlack, isWalkover, err := code.Outcome()
		if err != nil {
			return err
		}

		err = s.procRepo.RegisterMatch(ctx, repositories.RegisterMatchInput{
			TournamentID: form.TournamentID,
			RoundNumber:  form.RoundNumber,
			WhiteID:      form.WhiteID,
			BlackID:      form.BlackID,
			ResultWhite:  resultWhite,
			ResultBlack:  resultBlack,
			RefereeID:    refereeID,
			IsWalkover:   isWalkover,
		})
		if errors.Is(err, repositories.ErrDuplicateMatch) {
			return ErrMatchAlreadyRegistered
		}
		return err
	})
	if err != nil {
		return err
	}

	if err := s.refreshMatches(ctx, sb); err != nil {
		return fmt.Errorf("result registered but board refresh failed: %w", err)
	}
	s.hub.Notify(sessionID, live.EventBoardUpdated)
	return nil
}

// Rollback undoes a registered match. Only admins may do this; the affected
// session is not known from the match id alone, so every cached board is
// discarded wholesale and re-derived on next read.
func (s *boardService) Rollback(ctx context.Context, matchID, refereeID uuid.UUID, reason *string, role models.RefereeRole) error {
	if role != models.RoleAdmin {
		return ErrForbiddenOperation
	}

	if err := s.procRepo.RollbackMatch(ctx, matchID, refereeID, reason); err != nil {
		return err
	}

	s.mu.Lock()
	stale := s.boards
	s.boards = make(map[uuid.UUID]*sessionBoard)
	s.mu.Unlock()

	for sessionID := range stale {
		s.hub.Notify(sessionID, live.EventBoardUpdated)
	}
	return nil
}

func (s *boardService) RecentMatches(ctx context.Context, expanded bool) (*RecentView, error) {
	matches, err := s.matchRepo.ListRecent(ctx, recentMatchesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	items := make([]RecentItem, len(matches))
	for i := range matches {
		items[i] = RecentItem{Match: matches[i], Score: matches[i].ScoreLabel()}
	}

	view := &RecentView{Total: len(items), Expanded: expanded}
	if expanded || len(items) <= recentMatchesPreview {
		view.Matches = items
		view.Expanded = true
		return view, nil
	}
	view.Matches = items[:recentMatchesPreview]
	view.Hidden = len(items) - recentMatchesPreview
	view.Expanded = false
	return view, nil
}
