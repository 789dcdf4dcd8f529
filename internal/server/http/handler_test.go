package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskify-app/taskify/internal/common"
	"github.com/taskify-app/taskify/internal/logging"
	"github.com/taskify-app/taskify/internal/server/auth"
	"github.com/taskify-app/taskify/internal/server/models"
)

const testSecret = "test-secret"

type fakeUserService struct {
	registerUser *models.User
	registerTok  string
	registerErr  error

	loginUser *models.User
	loginTok  string
	loginErr  error

	users    map[string]*models.User
	usersErr error
}

func (f *fakeUserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	return f.registerUser, f.registerTok, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginUser, f.loginTok, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeTaskService struct {
	createOut *models.Task
	createErr error

	listOut []*models.Task
	listErr error

	updateOut *models.Task
	updateErr error

	deleteErr error

	calls int
}

func (f *fakeTaskService) Create(ctx context.Context, userID, title, description, priority string) (*models.Task, error) {
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeTaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeTaskService) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	f.calls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeTaskService) Delete(ctx context.Context, userID, taskID string) error {
	f.calls++
	return f.deleteErr
}

func newTestServer(t *testing.T, us *fakeUserService, ts *fakeTaskService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s, err := NewHTTPServer(":0", logger, us, ts, testSecret)
	require.NoError(t, err)
	return s.Router()
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(r *gin.Engine, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_ReturnsTokenAndUser(t *testing.T) {
	us := &fakeUserService{
		registerUser: &models.User{ID: "u-1", Name: "Alice", Email: "alice@example.com"},
		registerTok:  "tok-123",
	}
	r := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(r, http.MethodPost, "/auth/register", "",
		map[string]string{"name": "Alice", "email": "alice@example.com", "password": "pw"})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "tok-123", resp.Token)
	require.Equal(t, "u-1", resp.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us := &fakeUserService{registerErr: common.ErrorConflict}
	r := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(r, http.MethodPost, "/auth/register", "",
		map[string]string{"name": "Alice", "email": "alice@example.com", "password": "pw"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "message")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	us := &fakeUserService{loginErr: common.ErrorUnauthorized}
	r := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(r, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "alice@example.com", "password": "wrong"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	us := &fakeUserService{users: map[string]*models.User{
		"u-1": {ID: "u-1", Name: "Alice", Email: "alice@example.com"},
	}}
	r := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(r, http.MethodGet, "/auth/me", bearerFor(t, "u-1"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "alice@example.com")
}

func TestTasks_RejectedWithoutToken(t *testing.T) {
	ts := &fakeTaskService{}
	us := &fakeUserService{users: map[string]*models.User{}}
	r := newTestServer(t, us, ts)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, "/tasks/t-1"},
		{http.MethodDelete, "/tasks/t-1"},
	} {
		w := doRequest(r, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}

	require.Zero(t, ts.calls, "no task operation may run without a resolved identity")
}

func TestTasks_RejectedWithExpiredToken(t *testing.T) {
	ts := &fakeTaskService{}
	us := &fakeUserService{users: map[string]*models.User{"u-1": {ID: "u-1"}}}
	r := newTestServer(t, us, ts)

	tok, err := auth.GenerateToken("u-1", []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/tasks", "Bearer "+tok, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Zero(t, ts.calls)
}

func TestTasks_RejectedWhenSubjectGone(t *testing.T) {
	ts := &fakeTaskService{}
	us := &fakeUserService{users: map[string]*models.User{}}
	r := newTestServer(t, us, ts)

	w := doRequest(r, http.MethodGet, "/tasks", bearerFor(t, "deleted-user"), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Zero(t, ts.calls)
}

func TestTasks_IdentityLookupFailureIsNotUnauthorized(t *testing.T) {
	ts := &fakeTaskService{}
	us := &fakeUserService{usersErr: common.ErrorInternal}
	r := newTestServer(t, us, ts)

	w := doRequest(r, http.MethodGet, "/tasks", bearerFor(t, "u-1"), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Zero(t, ts.calls)
}

func TestListTasks_EmptyListIsJSONArray(t *testing.T) {
	us := &fakeUserService{users: map[string]*models.User{"u-1": {ID: "u-1"}}}
	r := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(r, http.MethodGet, "/tasks", bearerFor(t, "u-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateTask_Created(t *testing.T) {
	now := time.Now().UTC()
	us := &fakeUserService{users: map[string]*models.User{"u-1": {ID: "u-1"}}}
	ts := &fakeTaskService{createOut: &models.Task{
		ID: "t-1", UserID: "u-1", Title: "Buy milk", Priority: "Low",
		CreatedAt: now, UpdatedAt: now,
	}}
	r := newTestServer(t, us, ts)

	w := doRequest(r, http.MethodPost, "/tasks", bearerFor(t, "u-1"),
		map[string]string{"title": "Buy milk"})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp taskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "t-1", resp.ID)
	require.Equal(t, "u-1", resp.UserID)
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	us := &fakeUserService{users: map[string]*models.User{"u-1": {ID: "u-1"}}}
	ts := &fakeTaskService{createErr: common.ErrorValidation}
	r := newTestServer(t, us, ts)

	w := doRequest(r, http.MethodPost, "/tasks", bearerFor(t, "u-1"),
		map[string]string{"title": ""})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_NotOwner(t *testing.T) {
	us := &fakeUserService{users: map[string]*models.User{"u-2": {ID: "u-2"}}}
	ts := &fakeTaskService{updateErr: common.ErrorUnauthorized}
	r := newTestServer(t, us, ts)

	w := doRequest(r, http.MethodPut, "/tasks/t-1", bearerFor(t, "u-2"),
		map[string]bool{"completed": true})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Not authorized")
}

func TestUpdateTask_Missing(t *testing.T) {
	us := &fakeUserService{users: map[string]*models.User{"u-1": {ID: "u-1"}}}
	ts := &fakeTaskService{updateErr: common.ErrorNotFound}
	r := newTestServer(t, us, ts)

	w := doRequest(r, http.MethodPut, "/tasks/missing", bearerFor(t, "u-1"),
		map[string]bool{"completed": true})

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Task not found")
}

func TestDeleteTask_Success(t *testing.T) {
	us := &fakeUserService{users: map[string]*models.User{"u-1": {ID: "u-1"}}}
	r := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(r, http.MethodDelete, "/tasks/t-1", bearerFor(t, "u-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Task deleted successfully")
}

func TestUnexpectedErrorIsGeneric(t *testing.T) {
	us := &fakeUserService{users: map[string]*models.User{"u-1": {ID: "u-1"}}}
	ts := &fakeTaskService{listErr: io.ErrUnexpectedEOF}
	r := newTestServer(t, us, ts)

	w := doRequest(r, http.MethodGet, "/tasks", bearerFor(t, "u-1"), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "EOF", "internal detail must not leak")
}
