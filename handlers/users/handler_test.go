package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubeview/web-api/models"
	"github.com/tubeview/web-api/services/auth"
	sv "github.com/tubeview/web-api/services/common"
	"github.com/tubeview/web-api/services/profile"
)

// --- Mock implementations ---

type mockProfile struct {
	doc     *profile.Document
	upd     profile.Update
	deleted bool
	err     error
}

func (m *mockProfile) Get(_ context.Context, _ uuid.UUID) (*profile.Document, error) {
	return m.doc, m.err
}

func (m *mockProfile) Update(_ context.Context, _ uuid.UUID, upd profile.Update) (*profile.Document, error) {
	m.upd = upd
	return m.doc, m.err
}

func (m *mockProfile) Delete(_ context.Context, _ uuid.UUID) error {
	m.deleted = m.err == nil
	return m.err
}

type mockPlaylists struct {
	name    string
	pID     uuid.UUID
	videoID string
	list    []*models.Playlist
	p       *models.Playlist
	err     error
}

func (m *mockPlaylists) CreatePlaylist(_ context.Context, _ uuid.UUID, name string) ([]*models.Playlist, error) {
	m.name = name
	return m.list, m.err
}

func (m *mockPlaylists) Playlists(_ context.Context, _ uuid.UUID) ([]*models.Playlist, error) {
	return m.list, m.err
}

func (m *mockPlaylists) Playlist(_ context.Context, _ uuid.UUID, pID uuid.UUID) (*models.Playlist, error) {
	m.pID = pID
	return m.p, m.err
}

func (m *mockPlaylists) DeletePlaylist(_ context.Context, _ uuid.UUID, pID uuid.UUID) ([]*models.Playlist, error) {
	m.pID = pID
	return m.list, m.err
}

func (m *mockPlaylists) AddPlaylistVideo(_ context.Context, _ uuid.UUID, pID uuid.UUID, videoID string) (*models.Playlist, error) {
	m.pID, m.videoID = pID, videoID
	return m.p, m.err
}

func (m *mockPlaylists) RemovePlaylistVideo(_ context.Context, _ uuid.UUID, pID uuid.UUID, videoID string) (*models.Playlist, error) {
	m.pID, m.videoID = pID, videoID
	return m.p, m.err
}

// --- Test helpers ---

func newTestRouter(p *mockProfile, pl *mockPlaylists, u *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if u != nil {
			c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), auth.UserContext{}, u))
		}
		c.Next()
	})
	RegisterHandler(r, p, pl)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testUser() *models.User {
	return &models.User{UserID: uuid.NewV4(), Username: "alice", Email: "alice@example.com"}
}

// --- Profile ---

func TestProfile_RequiresAuth(t *testing.T) {
	r := newTestRouter(&mockProfile{}, &mockPlaylists{}, nil)

	for _, path := range []string{"/users/profile", "/users/playlists"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestProfile_Get(t *testing.T) {
	u := testUser()
	p := &mockProfile{doc: &profile.Document{
		User:        u,
		Playlists:   []*models.Playlist{},
		SavedVideos: []*models.SavedVideo{},
	}}
	r := newTestRouter(p, &mockPlaylists{}, u)

	w := do(r, http.MethodGet, "/users/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "alice", res["username"])
	assert.NotContains(t, res, "password")
}

func TestProfile_Update(t *testing.T) {
	u := testUser()
	p := &mockProfile{doc: &profile.Document{User: u}}
	r := newTestRouter(p, &mockPlaylists{}, u)

	w := do(r, http.MethodPut, "/users/profile", `{"username":"bob"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", p.upd.Username)
	assert.Equal(t, "", p.upd.Avatar)

	w = do(r, http.MethodPut, "/users/profile", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/users/profile", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfile_Delete(t *testing.T) {
	u := testUser()
	p := &mockProfile{}
	r := newTestRouter(p, &mockPlaylists{}, u)

	w := do(r, http.MethodDelete, "/users/profile", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, p.deleted)
}

func TestProfile_StoreFailure(t *testing.T) {
	u := testUser()
	p := &mockProfile{err: errors.New("db down")}
	r := newTestRouter(p, &mockPlaylists{}, u)

	w := do(r, http.MethodGet, "/users/profile", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server error"}`, w.Body.String())
}

// --- Playlists ---

func TestPlaylists_Create(t *testing.T) {
	u := testUser()
	pl := &mockPlaylists{list: []*models.Playlist{{PlaylistID: uuid.NewV4(), Name: "mix", Videos: []*models.PlaylistVideo{}}}}
	r := newTestRouter(&mockProfile{}, pl, u)

	w := do(r, http.MethodPost, "/users/playlists", `{"name":"mix"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "mix", pl.name)

	w = do(r, http.MethodPost, "/users/playlists", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaylists_Get(t *testing.T) {
	u := testUser()
	pID := uuid.NewV4()
	pl := &mockPlaylists{p: &models.Playlist{PlaylistID: pID, Name: "mix", Videos: []*models.PlaylistVideo{}}}
	r := newTestRouter(&mockProfile{}, pl, u)

	w := do(r, http.MethodGet, "/users/playlists/"+pID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pID, pl.pID)

	w = do(r, http.MethodGet, "/users/playlists/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	pl.err = sv.Wrap(sv.ErrNotFound, "Playlist not found")
	w = do(r, http.MethodGet, "/users/playlists/"+uuid.NewV4().String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaylists_Delete(t *testing.T) {
	u := testUser()
	pl := &mockPlaylists{list: []*models.Playlist{}}
	r := newTestRouter(&mockProfile{}, pl, u)
	pID := uuid.NewV4()

	w := do(r, http.MethodDelete, "/users/playlists/"+pID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pID, pl.pID)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestPlaylists_Videos(t *testing.T) {
	u := testUser()
	pID := uuid.NewV4()
	pl := &mockPlaylists{p: &models.Playlist{PlaylistID: pID, Videos: []*models.PlaylistVideo{{VideoID: "abc123"}}}}
	r := newTestRouter(&mockProfile{}, pl, u)

	w := do(r, http.MethodPost, "/users/playlists/"+pID.String()+"/videos", `{"videoId":"abc123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", pl.videoID)

	w = do(r, http.MethodPost, "/users/playlists/"+pID.String()+"/videos", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/users/playlists/"+pID.String()+"/videos/xyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "xyz", pl.videoID)
}
