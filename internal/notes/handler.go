package notes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noteboard/noteboard/internal/common"
	"github.com/noteboard/noteboard/internal/logging"
	"github.com/noteboard/noteboard/internal/token"
)

type createNoteRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
}

type updateNoteRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=100"`
	Content *string `json:"content"`
}

// Handler exposes the notes service over HTTP.
type Handler struct {
	service *Service
	logger  logging.Logger
}

func NewHandler(service *Service, logger logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Router builds the gin engine with all notes routes. Every note route
// requires a valid bearer token.
func (h *Handler) Router(secretKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.health)

	notes := r.Group("/notes", token.RequireAuth(secretKey))
	{
		notes.POST("/", h.create)
		notes.GET("/", h.list)
		notes.GET("/:id", h.get)
		notes.PUT("/:id", h.update)
		notes.DELETE("/:id", h.delete)
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) create(c *gin.Context) {
	userID, _ := token.UserID(c)

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	note, err := h.service.Create(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		h.logger.Error(c.Request.Context(), "create note failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *Handler) list(c *gin.Context) {
	userID, _ := token.UserID(c)

	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 100)

	notes, err := h.service.List(c.Request.Context(), userID, skip, limit)
	if err != nil {
		h.logger.Error(c.Request.Context(), "list notes failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *Handler) get(c *gin.Context) {
	userID, _ := token.UserID(c)

	id, ok := noteID(c)
	if !ok {
		return
	}

	note, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "note not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "get note failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *Handler) update(c *gin.Context) {
	userID, _ := token.UserID(c)

	id, ok := noteID(c)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	note, err := h.service.Update(c.Request.Context(), id, userID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "note not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "update note failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *Handler) delete(c *gin.Context) {
	userID, _ := token.UserID(c)

	id, ok := noteID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "note not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "delete note failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func noteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid note id"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
