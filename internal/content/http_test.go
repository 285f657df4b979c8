// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: davi.tran.dev@gmail.com

package content_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/pressroom/internal/content"
	"github.com/davitran/pressroom/internal/platform/ctxutil"
	"github.com/davitran/pressroom/internal/platform/sec"
)

// newContentRouter mounts the content handler the way the API server does.
func newContentRouter(repo *fakeRepo) http.Handler {
	router := chi.NewRouter()
	router.Mount("/content", content.NewHandler(newTestService(repo)).Routes())
	return router
}

// doRequest serves one request against the router, optionally with an
// authenticated caller already present in the request context.
func doRequest(router http.Handler, method, target, body string, claims *sec.AuthClaims) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	if claims != nil {
		request = request.WithContext(ctxutil.WithCaller(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

/*
TestHTTP_ListArticles verifies the paginated envelope on the public listing.
*/
func TestHTTP_ListArticles(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt})
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Draft", AuthorID: "agent-1"})
	router := newContentRouter(repo)

	recorder := doRequest(router, http.MethodGet, "/content?page=1&pageSize=5", "", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeBody(t, recorder)

	data, ok := payload["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)

	meta, ok := payload["meta"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, meta["total"])
	assert.EqualValues(t, 5, meta["pageSize"])
}

/*
TestHTTP_GetArticle_NotFound verifies the error envelope for missing ids.
*/
func TestHTTP_GetArticle_NotFound(t *testing.T) {
	router := newContentRouter(newFakeRepo())

	recorder := doRequest(router, http.MethodGet, "/content/missing-id", "", nil)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	payload := decodeBody(t, recorder)
	assert.Equal(t, "NOT_FOUND", payload["code"])
	assert.Equal(t, "Article not found", payload["error"])
}

/*
TestHTTP_GetArticle_DraftAnonymous verifies the ambiguous 401 on hidden drafts.
*/
func TestHTTP_GetArticle_DraftAnonymous(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Draft", AuthorID: "agent-1"})
	router := newContentRouter(repo)

	recorder := doRequest(router, http.MethodGet, "/content/d-1", "", nil)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	payload := decodeBody(t, recorder)
	assert.Equal(t, "Article not found or not published", payload["error"])
}

/*
TestHTTP_CreateArticle verifies the authentication gate and the created envelope.
*/
func TestHTTP_CreateArticle(t *testing.T) {
	router := newContentRouter(newFakeRepo())
	body := `{"title": "Hello, World!", "content": "Short body."}`

	// 1. Anonymous requests never reach the service
	recorder := doRequest(router, http.MethodPost, "/content", body, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. An authenticated admin gets a 201 with derived fields populated
	recorder = doRequest(router, http.MethodPost, "/content", body, adminCaller())
	require.Equal(t, http.StatusCreated, recorder.Code)

	payload := decodeBody(t, recorder)
	data, ok := payload["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello-world", data["slug"])
	assert.EqualValues(t, 1, data["reading_time"])
	assert.Nil(t, data["published_at"])
}

/*
TestHTTP_CreateArticle_InvalidJSON verifies the body decoding guard.
*/
func TestHTTP_CreateArticle_InvalidJSON(t *testing.T) {
	router := newContentRouter(newFakeRepo())

	recorder := doRequest(router, http.MethodPost, "/content", `{"title": `, adminCaller())

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	payload := decodeBody(t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])
}

/*
TestHTTP_DeleteArticle_RoleGate verifies that the delete route is blocked
at the router level for non-admin callers.
*/
func TestHTTP_DeleteArticle_RoleGate(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Draft", AuthorID: "agent-1"})
	router := newContentRouter(repo)

	// 1. The authoring agent is rejected with 403
	recorder := doRequest(router, http.MethodDelete, "/content/d-1", "", agentCaller("agent-1"))
	require.Equal(t, http.StatusForbidden, recorder.Code)

	// 2. Admin delete returns 204 with an empty body
	recorder = doRequest(router, http.MethodDelete, "/content/d-1", "", adminCaller())
	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
}

/*
TestHTTP_SearchArticles verifies the search endpoint and its empty-term guard.
*/
func TestHTTP_SearchArticles(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{
		ID: "p-1", Title: "Go Performance", Content: "Profiling notes.",
		AuthorID: "agent-1", PublishedAt: &publishedAt,
	})
	router := newContentRouter(repo)

	// 1. Missing term is a validation error
	recorder := doRequest(router, http.MethodGet, "/content/search", "", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	// 2. Matching term returns the published article
	recorder = doRequest(router, http.MethodGet, "/content/search?q=profiling", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := decodeBody(t, recorder)
	data, ok := payload["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)
}

/*
TestHTTP_ShareArticle verifies the public share-tracking endpoint.
*/
func TestHTTP_ShareArticle(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt})
	router := newContentRouter(repo)

	recorder := doRequest(router, http.MethodPost, "/content/p-1/share", `{"platform": "whatsapp"}`, nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeBody(t, recorder)
	data, ok := payload["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "whatsapp", data["platform"])
	assert.EqualValues(t, 1, data["count"])
	assert.EqualValues(t, 1, data["total"])
}

/*
TestHTTP_ShareArticle_UnknownPlatform verifies platform validation over HTTP.
*/
func TestHTTP_ShareArticle_UnknownPlatform(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt})
	router := newContentRouter(repo)

	recorder := doRequest(router, http.MethodPost, "/content/p-1/share", `{"platform": "carrier-pigeon"}`, nil)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	payload := decodeBody(t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])
}

/*
TestHTTP_Analytics verifies the analytics endpoint gating over HTTP.
*/
func TestHTTP_Analytics(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{
		ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt, ViewCount: 7,
	})
	router := newContentRouter(repo)

	// 1. Anonymous callers hit the auth gate
	recorder := doRequest(router, http.MethodGet, "/content/p-1/analytics", "", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. The author receives the projection
	recorder = doRequest(router, http.MethodGet, "/content/p-1/analytics", "", agentCaller("agent-1"))
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := decodeBody(t, recorder)
	data, ok := payload["data"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 7, data["view_count"])
}
