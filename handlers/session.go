package handlers

import (
	"net/http"

	"sevahub/middleware"
	"sevahub/models"
	"sevahub/services/session"
	"sevahub/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the session aggregate over HTTP.
type SessionHandler struct {
	Manager *session.Manager
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{Manager: manager}
}

// sessionFrom resolves the caller's session aggregate from the session ID
// placed in context by SessionMiddleware.
func (h *SessionHandler) sessionFrom(c *gin.Context) *session.DefaultSessionService {
	sid := c.GetString(middleware.SessionKey)
	return h.Manager.Get(c.Request.Context(), sid)
}

// LoginHandler handles POST /api/auth/login.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
		AccountType string `json:"accountType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login request", err.Error())
		return
	}

	result := h.sessionFrom(c).Login(c.Request.Context(), req.Email, req.Password, req.AccountType)
	c.JSON(http.StatusOK, result)
}

// SignupHandler handles POST /api/auth/signup.
func (h *SessionHandler) SignupHandler(c *gin.Context) {
	var req session.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid signup request", err.Error())
		return
	}

	result := h.sessionFrom(c).Signup(c.Request.Context(), req)
	if !result.Success {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// LogoutHandler handles POST /api/auth/logout.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	h.sessionFrom(c).Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MeHandler handles GET /api/auth/me, returning the current user (null when
// anonymous) and the session state.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	s := h.sessionFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"user":  s.CurrentUser(),
		"state": s.State(),
	})
}

// CreateBookingHandler handles POST /api/bookings.
func (h *SessionHandler) CreateBookingHandler(c *gin.Context) {
	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		return
	}

	s := h.sessionFrom(c)
	if s.CurrentUser() == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not logged in"})
		return
	}

	s.UpdateUserBookings(c.Request.Context(), booking)
	c.JSON(http.StatusCreated, gin.H{"bookings": s.CurrentUser().Bookings})
}

// ListBookingsHandler handles GET /api/bookings.
func (h *SessionHandler) ListBookingsHandler(c *gin.Context) {
	s := h.sessionFrom(c)
	user := s.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": user.Bookings})
}

// DeleteBookingHandler handles DELETE /api/bookings/:id.
func (h *SessionHandler) DeleteBookingHandler(c *gin.Context) {
	result := h.sessionFrom(c).DeleteBooking(c.Request.Context(), c.Param("id"))
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
