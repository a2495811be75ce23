package handlers

import (
	"net/http"

	"github.com/clubedopeao/tournament-api/middleware"
	"github.com/clubedopeao/tournament-api/services"
)

type AuditHandler struct {
	auditService services.AuditService
}

func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListRollbacks returns the rollback audit trail with player and referee
// names resolved. Admin only.
func (h *AuditHandler) ListRollbacks(w http.ResponseWriter, r *http.Request) {
	role, err := middleware.GetRefereeRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	entries, err := h.auditService.ListRollbacks(r.Context(), role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rollbacks": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
