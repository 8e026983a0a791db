// internal/handlers/session.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/popgo-backend/internal/session"
	"github.com/javajoker/popgo-backend/internal/utils"
)

// SessionTracker reports session liveness for the activity endpoint.
type SessionTracker interface {
	Touch(token string) bool
	LastSeen(token string) (time.Time, bool)
	Timeout() time.Duration
}

type SessionHandler struct {
	sessions SessionTracker
}

func NewSessionHandler(sessions SessionTracker) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type ActivityRequest struct {
	Kind session.ActivityKind `json:"kind" validate:"required,activity"`
}

// POST /api/session/activity
//
// The auth middleware has already reset the watchdog; this endpoint lets
// clients report pointer, key, scroll, touch or wheel activity between API
// calls and learn how long the session has left.
func (h *SessionHandler) Activity(c *gin.Context) {
	var req ActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	token, ok := utils.GetTokenFromContext(c)
	if !ok || !h.sessions.Touch(token) {
		utils.UnauthorizedResponse(c, "")
		return
	}

	lastSeen, _ := h.sessions.LastSeen(token)
	timeout := h.sessions.Timeout()
	utils.SuccessResponse(c, gin.H{
		"kind":         req.Kind,
		"last_seen":    lastSeen,
		"idle_timeout": int(timeout.Seconds()),
		"expires_at":   lastSeen.Add(timeout),
	})
}
