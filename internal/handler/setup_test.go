package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"graphblog/internal/config"
	"graphblog/internal/graph"
	"graphblog/internal/logger"
	"graphblog/internal/middleware"
	"graphblog/internal/repository"
	"graphblog/internal/repository/memory"
	"graphblog/internal/service"
	"graphblog/internal/storage"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	srv       *httptest.Server
	repo      *repository.Repository
	imagesDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecretKey:        "test-secret",
		AccessTokenDuration: time.Hour,
		PostsPerPage:        2,
		MaxUploadSize:       64 * 1024,
	}
	log := logger.Nop()

	imagesDir := t.TempDir()
	store, err := storage.NewLocalStorage(imagesDir)
	require.NoError(t, err)

	repo := memory.NewRepository()
	svc := service.NewService(repo, cfg, store, log)

	schema, err := graph.NewSchema(svc, log)
	require.NoError(t, err)

	h := NewHandlers(svc, schema, cfg, log)
	root := middleware.Chain(h.Routes(store.Handler()),
		middleware.AuthMiddleware(svc.Auth, log),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(log),
	)

	srv := httptest.NewServer(root)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, repo: repo, imagesDir: imagesDir}
}

type gqlError struct {
	Message   string               `json:"message"`
	Status    int                  `json:"status"`
	Data      []service.FieldError `json:"data"`
	Locations []interface{}        `json:"locations"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

func (e *testEnv) graphql(t *testing.T, token, query string, variables map[string]interface{}) gqlResponse {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/graphql", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// decode unmarshals the data of a successful response.
func decode(t *testing.T, resp gqlResponse, v interface{}) {
	t.Helper()
	require.Empty(t, resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

const (
	createUserMutation = `mutation($email: String!, $name: String!, $password: String!) {
		createUser(userInput: {email: $email, name: $name, password: $password}) { _id email name status }
	}`
	loginQuery = `query($email: String!, $password: String!) {
		login(email: $email, password: $password) { token userId }
	}`
	createPostMutation = `mutation($title: String!, $content: String!, $imageUrl: String!) {
		createPost(postInput: {title: $title, content: $content, imageUrl: $imageUrl}) {
			_id title imageUrl createdAt creator { _id name }
		}
	}`
)

// signup registers a user and returns its id and a fresh token.
func (e *testEnv) signup(t *testing.T, email, name string) (string, string) {
	t.Helper()

	e.graphql(t, "", createUserMutation, map[string]interface{}{
		"email": email, "name": name, "password": "secret12",
	})

	var login struct {
		Login struct {
			Token  string `json:"token"`
			UserID string `json:"userId"`
		} `json:"login"`
	}
	decode(t, e.graphql(t, "", loginQuery, map[string]interface{}{
		"email": email, "password": "secret12",
	}), &login)

	require.NotEmpty(t, login.Login.Token)
	return login.Login.UserID, login.Login.Token
}

func (e *testEnv) createPost(t *testing.T, token, title string) string {
	t.Helper()

	var out struct {
		CreatePost struct {
			ID string `json:"_id"`
		} `json:"createPost"`
	}
	decode(t, e.graphql(t, token, createPostMutation, map[string]interface{}{
		"title": title, "content": "Some content", "imageUrl": "images/" + title + ".png",
	}), &out)

	return out.CreatePost.ID
}
