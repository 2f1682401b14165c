package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noteboard/noteboard/internal/logging"
	"github.com/noteboard/noteboard/internal/token"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := newTestService(newFakeRepo(), &fakeBus{})
	h := NewHandler(svc, logging.NewJSON(io.Discard))
	return h.Router(testSecret), svc
}

func bearerFor(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := token.Generate(userID, testSecret, time.Minute)
	require.NoError(t, err)
	return tok
}

func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandlerCreate(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/notes/", bearerFor(t, 1), gin.H{
		"title": "first", "content": "body",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var note Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
	require.Equal(t, "first", note.Title)
	require.Equal(t, int64(1), note.UserID)
}

func TestHandlerCreateRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/notes/", "", gin.H{"title": "x", "content": "y"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandlerCreateMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/notes/", bearerFor(t, 1), gin.H{"title": "x"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandlerListScopedToOwner(t *testing.T) {
	router, svc := newTestRouter(t)

	_, err := svc.Create(context.Background(), 1, "mine", "x")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, "theirs", "y")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/notes/", bearerFor(t, 1), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var notes []Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
	require.Equal(t, "mine", notes[0].Title)
}

func TestHandlerGetNotOwner(t *testing.T) {
	router, svc := newTestRouter(t)

	_, err := svc.Create(context.Background(), 1, "mine", "x")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/notes/1", bearerFor(t, 1), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Someone else's note is indistinguishable from a missing one.
	w = doJSON(t, router, http.MethodGet, "/notes/1", bearerFor(t, 2), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerUpdate(t *testing.T) {
	router, svc := newTestRouter(t)

	note, err := svc.Create(context.Background(), 1, "old", "x")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPut, "/notes/1", bearerFor(t, 1), gin.H{
		"title": "new", "content": "body",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, note.ID, updated.ID)
	require.Equal(t, "new", updated.Title)
}

func TestHandlerDelete(t *testing.T) {
	router, svc := newTestRouter(t)

	_, err := svc.Create(context.Background(), 1, "gone", "x")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodDelete, "/notes/1", bearerFor(t, 1), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/notes/1", bearerFor(t, 1), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerInvalidNoteID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/notes/abc", bearerFor(t, 1), nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandlerHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
