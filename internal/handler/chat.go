package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/TheJegede/Negotiator/internal/models"
	"github.com/TheJegede/Negotiator/internal/service"
	"github.com/TheJegede/Negotiator/internal/session"
)

type ChatHandler struct {
	Chat   *service.ChatService
	Logger *zap.Logger
}

func (h *ChatHandler) Register(r *gin.Engine) {
	r.POST("/api/chat", h.send)
	r.GET("/api/chat/ws", h.stream)
}

type chatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	UserInput string `json:"user_input" binding:"required"`
}

type chatResponse struct {
	Reply             string        `json:"ai_response"`
	AgreementDetected bool          `json:"agreement_detected"`
	Agreed            *models.Terms `json:"agreed_terms,omitempty"`
	Missing           []string      `json:"missing_terms,omitempty"`
	State             session.State `json:"state"`
}

func toChatResponse(res service.ChatResult) chatResponse {
	return chatResponse{
		Reply:             res.Reply,
		AgreementDetected: res.AgreementDetected,
		Agreed:            res.Agreed,
		Missing:           res.Missing,
		State:             res.State,
	}
}

// @Summary Send a buyer message
// @Description Runs one negotiation turn and returns the seller's reply plus agreement status.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body chatRequest true "buyer turn"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/chat [post]
func (h *ChatHandler) send(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "session_id and user_input are required", nil)
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		Error(c, http.StatusBadRequest, "user_input must not be blank", nil)
		return
	}

	res, err := h.Chat.Send(c.Request.Context(), req.SessionID, req.UserInput)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			Error(c, http.StatusNotFound, "session not found", nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, toChatResponse(res), nil)
}

type wsTurn struct {
	UserInput string `json:"user_input"`
}

// @Summary Negotiate over a websocket
// @Description Each JSON frame {"user_input": "..."} gets one reply frame with the same shape as POST /api/chat.
// @Tags chat
// @Param session_id query string true "session ID"
// @Success 101 {string} string "switching protocols"
// @Router /api/chat/ws [get]
func (h *ChatHandler) stream(c *gin.Context) {
	sessionID := c.Query("session_id")
	if _, err := h.Chat.Sessions.Get(sessionID); err != nil {
		Error(c, http.StatusNotFound, "session not found", nil)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // browser clients come from the course frontend on another origin
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	ctx := c.Request.Context()
	for {
		var turn wsTurn
		if err := wsjson.Read(ctx, conn, &turn); err != nil {
			conn.Close(websocket.StatusNormalClosure, "bye")
			return
		}
		if strings.TrimSpace(turn.UserInput) == "" {
			continue
		}

		res, err := h.Chat.Send(ctx, sessionID, turn.UserInput)
		if err != nil {
			// Session swept or deleted mid-conversation.
			conn.Close(websocket.StatusPolicyViolation, "session gone")
			return
		}
		if err := wsjson.Write(ctx, conn, toChatResponse(res)); err != nil {
			return
		}
	}
}
