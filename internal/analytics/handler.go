package analytics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noteboard/noteboard/internal/common"
	"github.com/noteboard/noteboard/internal/logging"
	"github.com/noteboard/noteboard/internal/token"
)

// Handler exposes the analytics read API over HTTP. Per-user endpoints are
// restricted to the authenticated user's own data; system statistics are
// public.
type Handler struct {
	repo   Repository
	logger logging.Logger
}

func NewHandler(repo Repository, logger logging.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// Router builds the gin engine with all analytics routes.
func (h *Handler) Router(secretKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	a := r.Group("/analytics")
	{
		a.GET("/health", h.health)
		a.GET("/system/statistics", h.systemStatistics)

		auth := a.Group("", token.RequireAuth(secretKey))
		{
			auth.GET("/users/me/statistics", h.myStatistics)
			auth.GET("/users/:id/statistics", h.userStatistics)
			auth.GET("/users/:id/events/notes", h.noteEvents)
			auth.GET("/users/:id/events/activity", h.activityEvents)
		}
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) myStatistics(c *gin.Context) {
	userID, _ := token.UserID(c)

	stats, err := h.repo.GetStatistics(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// No events seen for this user yet.
			c.JSON(http.StatusOK, UserStatistics{UserID: userID})
			return
		}
		h.logger.Error(c.Request.Context(), "get statistics failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) userStatistics(c *gin.Context) {
	userID, ok := h.ownUserID(c, "you can only view your own statistics")
	if !ok {
		return
	}

	stats, err := h.repo.GetStatistics(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "statistics not found for this user"})
			return
		}
		h.logger.Error(c.Request.Context(), "get statistics failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) noteEvents(c *gin.Context) {
	userID, ok := h.ownUserID(c, "you can only view your own events")
	if !ok {
		return
	}

	events, err := h.repo.ListNoteEvents(c.Request.Context(), userID, limitQuery(c))
	if err != nil {
		h.logger.Error(c.Request.Context(), "list note events failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *Handler) activityEvents(c *gin.Context) {
	userID, ok := h.ownUserID(c, "you can only view your own events")
	if !ok {
		return
	}

	events, err := h.repo.ListUserEvents(c.Request.Context(), userID, limitQuery(c))
	if err != nil {
		h.logger.Error(c.Request.Context(), "list user events failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *Handler) systemStatistics(c *gin.Context) {
	stats, err := h.repo.SystemStatistics(c.Request.Context())
	if err != nil {
		h.logger.Error(c.Request.Context(), "system statistics failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ownUserID parses the :id parameter and rejects the request unless it
// matches the authenticated user.
func (h *Handler) ownUserID(c *gin.Context, forbiddenDetail string) (int64, bool) {
	authID, _ := token.UserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid user id"})
		return 0, false
	}

	if id != authID {
		c.JSON(http.StatusForbidden, gin.H{"detail": forbiddenDetail})
		return 0, false
	}

	return id, true
}

func limitQuery(c *gin.Context) int {
	v := c.Query("limit")
	if v == "" {
		return 50
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 50
	}
	return n
}
