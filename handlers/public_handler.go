package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clubedopeao/tournament-api/services"
)

// PublicHandler serves the read-only endpoints the club site renders
// without authentication: ratings, standings and tournament info.
type PublicHandler struct {
	playerService     services.PlayerService
	tournamentService services.TournamentService
	sessionService    services.SessionService
}

func NewPublicHandler(
	playerService services.PlayerService,
	tournamentService services.TournamentService,
	sessionService services.SessionService,
) *PublicHandler {
	return &PublicHandler{
		playerService:     playerService,
		tournamentService: tournamentService,
		sessionService:    sessionService,
	}
}

func (h *PublicHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.CurrentRatings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PublicHandler) TopPlayers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
	}

	players, err := h.playerService.TopPlayers(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PublicHandler) OngoingTournament(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.tournamentService.GetOngoing(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PublicHandler) FinishedTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListFinished(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PublicHandler) Standings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.tournamentService.Standings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// OpenSessions lists joinable sessions for the public check-in page.
func (h *PublicHandler) OpenSessions(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.sessionService.ListOpenWithOccupancy(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sessions": summaries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
