package handlers

import (
	"errors"
	"net/http"

	"github.com/clubedopeao/tournament-api/services"
	"github.com/google/uuid"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// ListOpen returns open and in-progress sessions with their check-in
// occupancy, ordered by match date.
func (h *SessionHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.sessionService.ListOpenWithOccupancy(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sessions": summaries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSessionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sessionService.Create(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"status": "created"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sessionService.Close(r.Context(), sessionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "closed"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GeneratePairings runs the pairing generator for an open session.
func (h *SessionHandler) GeneratePairings(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sessionService.GeneratePairings(r.Context(), sessionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "pairings_generated"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SessionHandler) ListCheckins(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	checkins, err := h.sessionService.Checkins(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"checkins": checkins}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type checkinRequest struct {
	PlayerID string `json:"player_id"`
}

func (h *SessionHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	playerID, err := readPlayerID(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sessionService.CheckinPlayer(r.Context(), sessionID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"status": "checked_in"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SessionHandler) CancelCheckin(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	playerID, err := readPlayerID(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sessionService.CancelCheckin(r.Context(), sessionID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func readPlayerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	var input checkinRequest
	if err := readJSON(w, r, &input); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(input.PlayerID)
	if err != nil {
		return uuid.Nil, errors.New("player_id must be a valid UUID")
	}
	return id, nil
}
