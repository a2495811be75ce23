package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clubedopeao/tournament-api/middleware"
	"github.com/clubedopeao/tournament-api/reconcile"
	"github.com/clubedopeao/tournament-api/services"
)

type BoardHandler struct {
	boardService services.BoardService
}

func NewBoardHandler(boardService services.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// GetBoard returns the merged pairing/result board for a session. An
// optional ?round= query selects a specific round; without it the board
// keeps its current selection.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round := 0
	if raw := r.URL.Query().Get("round"); raw != "" {
		round, err = strconv.Atoi(raw)
		if err != nil || round < 1 {
			badRequestResponse(w, r, errors.New("round must be a positive integer"))
			return
		}
	}

	view, err := h.boardService.Board(r.Context(), sessionID, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type openIntentRequest struct {
	Result reconcile.ResultCode `json:"result"`
}

// OpenIntent stages a result for a pairing and echoes it back for
// confirmation. Picking a new result for the same pairing replaces the
// previous selection.
func (h *BoardHandler) OpenIntent(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	pairingID, err := getUUIDFromURL(r, "pairingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input openIntentRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.boardService.OpenIntent(r.Context(), sessionID, pairingID, input.Result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CancelIntent discards a staged result. Cancelling when nothing is
// staged is a no-op.
func (h *BoardHandler) CancelIntent(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	pairingID, err := getUUIDFromURL(r, "pairingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.boardService.CancelIntent(r.Context(), sessionID, pairingID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConfirmIntent registers the staged result. At most one submission per
// pairing is in flight at a time; a duplicate registration for the same
// pairing and round yields a 409.
func (h *BoardHandler) ConfirmIntent(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	pairingID, err := getUUIDFromURL(r, "pairingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	refereeID, err := middleware.GetRefereeIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := h.boardService.ConfirmIntent(r.Context(), sessionID, pairingID, refereeID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "registered"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type rollbackRequest struct {
	Reason *string `json:"reason"`
}

// Rollback reverts a registered match. Admin only.
func (h *BoardHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	matchID, err := getUUIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	refereeID, err := middleware.GetRefereeIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	role, err := middleware.GetRefereeRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input rollbackRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.boardService.Rollback(r.Context(), matchID, refereeID, input.Reason, role); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "rolled_back"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecentMatches lists the latest registered matches, previewing a few
// results unless ?expanded=true.
func (h *BoardHandler) RecentMatches(w http.ResponseWriter, r *http.Request) {
	expanded := r.URL.Query().Get("expanded") == "true"

	view, err := h.boardService.RecentMatches(r.Context(), expanded)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
