package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TheJegede/Negotiator/internal/models"
	"github.com/TheJegede/Negotiator/internal/service"
	"github.com/TheJegede/Negotiator/internal/session"
)

type SessionHandler struct {
	Chat *service.ChatService
}

func (h *SessionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/sessions")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.DELETE("/:id", h.remove)
	group.GET("/:id/evaluation", h.evaluate)
	r.GET("/api/deals", h.completed)
}

type createSessionRequest struct {
	StudentID string `json:"student_id"`
}

type sessionResponse struct {
	SessionID string                `json:"session_id"`
	CreatedAt string                `json:"created_at"`
	State     session.State         `json:"state"`
	Params    models.DealParameters `json:"deal_params"`
	Greeting  string                `json:"greeting,omitempty"`
	History   []models.Message      `json:"history"`
	Agreed    *models.Terms         `json:"agreed_terms,omitempty"`
}

func toSessionResponse(snap session.Snapshot, includeGreeting bool) sessionResponse {
	resp := sessionResponse{
		SessionID: snap.ID,
		CreatedAt: snap.CreatedAt.Format(time.RFC3339),
		State:     snap.State,
		Params:    snap.Params,
		History:   snap.History,
		Agreed:    snap.Agreed,
	}
	if includeGreeting && len(snap.History) > 0 {
		resp.Greeting = snap.History[0].Content
	}
	return resp
}

// @Summary Open a negotiation session
// @Description Starts a negotiation against the AI seller. A student ID pins the scenario so a retake replays the same numbers.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body createSessionRequest false "optional student ID"
// @Success 200 {object} apiResponse
// @Router /api/sessions [post]
func (h *SessionHandler) create(c *gin.Context) {
	var req createSessionRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			Error(c, http.StatusBadRequest, "invalid request body", nil)
			return
		}
	}

	sess := h.Chat.Start(req.StudentID)
	Ok(c, toSessionResponse(sess.Snapshot(), true), nil)
}

// @Summary List active sessions
// @Tags sessions
// @Produce json
// @Success 200 {object} apiResponse
// @Router /api/sessions [get]
func (h *SessionHandler) list(c *gin.Context) {
	ids := h.Chat.Sessions.List()
	Ok(c, gin.H{"sessions": ids}, map[string]any{"count": len(ids)})
}

// @Summary List completed deals
// @Tags sessions
// @Produce json
// @Success 200 {object} apiResponse
// @Router /api/deals [get]
func (h *SessionHandler) completed(c *gin.Context) {
	ids := h.Chat.Sessions.Closed()
	Ok(c, gin.H{"completed_deals": ids}, map[string]any{"count": len(ids)})
}

// @Summary Fetch one session
// @Tags sessions
// @Produce json
// @Param id path string true "session ID"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/sessions/{id} [get]
func (h *SessionHandler) get(c *gin.Context) {
	sess, err := h.Chat.Sessions.Get(c.Param("id"))
	if err != nil {
		Error(c, http.StatusNotFound, "session not found", nil)
		return
	}
	Ok(c, toSessionResponse(sess.Snapshot(), false), nil)
}

// @Summary Close a session
// @Tags sessions
// @Produce json
// @Param id path string true "session ID"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/sessions/{id} [delete]
func (h *SessionHandler) remove(c *gin.Context) {
	if err := h.Chat.Sessions.Delete(c.Param("id")); err != nil {
		Error(c, http.StatusNotFound, "session not found", nil)
		return
	}
	Ok(c, gin.H{"message": "session deleted"}, nil)
}

// @Summary Evaluate a negotiation
// @Description Grades the session transcript on the five-metric rubric and returns feedback.
// @Tags sessions
// @Produce json
// @Param id path string true "session ID"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/sessions/{id}/evaluation [get]
func (h *SessionHandler) evaluate(c *gin.Context) {
	result, err := h.Chat.Evaluate(c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			Error(c, http.StatusNotFound, "session not found", nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}
