// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: davi.tran.dev@gmail.com

package content_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitran/pressroom/internal/content"
	"github.com/davitran/pressroom/internal/platform/apperr"
	"github.com/davitran/pressroom/pkg/pointer"
)

// # Test Doubles

// fakeRepo is a mutex-guarded in-memory [content.Repository].
type fakeRepo struct {
	mu       sync.Mutex
	articles map[string]*content.Article
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: map[string]*content.Article{}}
}

func (repo *fakeRepo) List(_ context.Context, filter content.Filter, limit, offset int) ([]*content.Article, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matches []*content.Article
	for _, article := range repo.articles {
		if filter.PublishedOnly && !article.Published() {
			continue
		}
		if filter.AuthorID != "" && article.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Query != "" && !matchesTerm(article, filter.Query) {
			continue
		}
		matches = append(matches, cloneArticle(article))
	}

	total := len(matches)
	if offset > len(matches) {
		offset = len(matches)
	}
	matches = matches[offset:]
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, total, nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id string) (*content.Article, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	article, ok := repo.articles[id]
	if !ok {
		return nil, apperr.NotFound("Article")
	}
	return cloneArticle(article), nil
}

func (repo *fakeRepo) Create(_ context.Context, article *content.Article) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	repo.articles[article.ID] = cloneArticle(article)
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, article *content.Article) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.articles[article.ID]; !ok {
		return apperr.NotFound("Article")
	}
	article.UpdatedAt = time.Now()
	repo.articles[article.ID] = cloneArticle(article)
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.articles[id]; !ok {
		return apperr.NotFound("Article")
	}
	delete(repo.articles, id)
	return nil
}

func (repo *fakeRepo) IncrementViewCount(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	article, ok := repo.articles[id]
	if ok && article.Published() {
		article.ViewCount++
	}
	return nil
}

func (repo *fakeRepo) UpdateSocialShares(_ context.Context, id string, shares content.SocialShares) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	article, ok := repo.articles[id]
	if !ok {
		return apperr.NotFound("Article")
	}
	article.SocialShares = shares
	return nil
}

func (repo *fakeRepo) viewCount(id string) int {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	article, ok := repo.articles[id]
	if !ok {
		return -1
	}
	return article.ViewCount
}

func matchesTerm(article *content.Article, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(article.Title), term) {
		return true
	}
	if article.Description != nil && strings.Contains(strings.ToLower(*article.Description), term) {
		return true
	}
	return strings.Contains(strings.ToLower(article.Content), term)
}

func cloneArticle(article *content.Article) *content.Article {
	clone := *article
	return &clone
}

func newTestService(repo *fakeRepo) *content.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return content.NewService(repo, nil, logger)
}

func seedArticle(repo *fakeRepo, article *content.Article) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.articles[article.ID] = article
}

// # Creation

/*
TestService_Create_AgentAlwaysDraft verifies that agent-created articles
start as drafts even when a publish timestamp is requested.
*/
func TestService_Create_AgentAlwaysDraft(t *testing.T) {
	service := newTestService(newFakeRepo())
	requestedPublish := time.Now()

	article, err := service.Create(context.Background(), agentCaller("agent-1"), content.CreateInput{
		Title:       "Field Report",
		Content:     "Short body.",
		PublishedAt: &requestedPublish,
	})

	require.NoError(t, err)
	assert.Nil(t, article.PublishedAt)
	assert.False(t, article.Published())
	assert.Equal(t, "agent-1", article.AuthorID)
}

/*
TestService_Create_AdminPublishesDirectly verifies that admins may create
an article in the published state.
*/
func TestService_Create_AdminPublishesDirectly(t *testing.T) {
	service := newTestService(newFakeRepo())
	publishedAt := time.Now()

	article, err := service.Create(context.Background(), adminCaller(), content.CreateInput{
		Title:       "Launch Notes",
		Content:     "Body.",
		PublishedAt: &publishedAt,
	})

	require.NoError(t, err)
	require.NotNil(t, article.PublishedAt)
	assert.True(t, article.Published())
}

/*
TestService_Create_CustomerForbidden verifies that customers cannot author content.
*/
func TestService_Create_CustomerForbidden(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.Create(context.Background(), customerCaller(), content.CreateInput{Title: "Nope"})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)
}

/*
TestService_Create_DerivedFields verifies slug generation from the title
and reading time derivation from the body.
*/
func TestService_Create_DerivedFields(t *testing.T) {
	service := newTestService(newFakeRepo())

	// 400 words at 200 wpm reads in 2 minutes
	body := strings.Repeat("word ", 400)

	article, err := service.Create(context.Background(), adminCaller(), content.CreateInput{
		Title:   "Hello, World!",
		Content: body,
	})

	require.NoError(t, err)
	assert.Equal(t, "hello-world", article.Slug)
	assert.Equal(t, 2, article.ReadingTime)
}

/*
TestService_Create_MarkupOnlyContentStillReadable verifies the one-minute
floor for content that strips down to no words at all.
*/
func TestService_Create_MarkupOnlyContentStillReadable(t *testing.T) {
	service := newTestService(newFakeRepo())

	article, err := service.Create(context.Background(), adminCaller(), content.CreateInput{
		Title:   "Placeholder Post",
		Content: "<p></p>",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, article.ReadingTime)
}

/*
TestService_Create_SuppliedSlugWins verifies that a client-provided slug
is kept instead of being regenerated from the title.
*/
func TestService_Create_SuppliedSlugWins(t *testing.T) {
	service := newTestService(newFakeRepo())

	article, err := service.Create(context.Background(), adminCaller(), content.CreateInput{
		Title: "Some Title",
		Slug:  "custom-slug",
	})

	require.NoError(t, err)
	assert.Equal(t, "custom-slug", article.Slug)
	assert.Zero(t, article.ReadingTime)
}

/*
TestService_Create_RequiresTitle verifies title validation.
*/
func TestService_Create_RequiresTitle(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.Create(context.Background(), adminCaller(), content.CreateInput{Content: "Body only."})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, content.FieldTitle, appError.Details[0].Field)
}

/*
TestService_Create_DescriptionTooLong verifies the summary length cap.
*/
func TestService_Create_DescriptionTooLong(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.Create(context.Background(), adminCaller(), content.CreateInput{
		Title:       "Valid Title",
		Description: pointer.To(strings.Repeat("x", 1001)),
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, content.FieldDescription, appError.Details[0].Field)
}

// # Reads

/*
TestService_Get_AbsentID verifies that a missing article is a plain 404.
*/
func TestService_Get_AbsentID(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.Get(context.Background(), nil, "missing-id")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

/*
TestService_Get_DraftHiddenFromAnonymous verifies that an existing draft is
denied with 401 and an ambiguous message, not a 404 or 403.
*/
func TestService_Get_DraftHiddenFromAnonymous(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Secret Draft", AuthorID: "agent-1"})
	service := newTestService(repo)

	_, err := service.Get(context.Background(), nil, "d-1")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
	assert.Equal(t, "Article not found or not published", appError.Message)
}

/*
TestService_Get_DraftVisibleToAuthor verifies that the author can preview
their own draft.
*/
func TestService_Get_DraftVisibleToAuthor(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "My Draft", AuthorID: "agent-1"})
	service := newTestService(repo)

	article, err := service.Get(context.Background(), agentCaller("agent-1"), "d-1")

	require.NoError(t, err)
	assert.Equal(t, "My Draft", article.Title)
}

/*
TestService_Get_RecordsViewAsynchronously verifies that reading a published
article eventually bumps its view counter without blocking the read.
*/
func TestService_Get_RecordsViewAsynchronously(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt})
	service := newTestService(repo)

	article, err := service.Get(context.Background(), nil, "p-1")
	require.NoError(t, err)

	// The response carries the pre-increment counter
	assert.Equal(t, 0, article.ViewCount)

	require.Eventually(t, func() bool {
		return repo.viewCount("p-1") == 1
	}, time.Second, 10*time.Millisecond)
}

// # Listings & Search

/*
TestService_List_PublishedOnlyForNonAdmins verifies that drafts only
appear in admin listings.
*/
func TestService_List_PublishedOnlyForNonAdmins(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt})
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Draft", AuthorID: "agent-1"})
	service := newTestService(repo)

	// 1. Anonymous reader sees only the published article
	articles, total, err := service.List(context.Background(), nil, content.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "p-1", articles[0].ID)

	// 2. Admin sees both
	_, total, err = service.List(context.Background(), adminCaller(), content.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

/*
TestService_Search_EmptyTerm verifies that a blank search term is rejected
instead of matching everything.
*/
func TestService_Search_EmptyTerm(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, _, err := service.Search(context.Background(), nil, "   ", 10, 0)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
}

/*
TestService_Search_MatchesBody verifies case-insensitive matching over the
article body, restricted to published items for anonymous callers.
*/
func TestService_Search_MatchesBody(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{
		ID: "p-1", Title: "Quarterly Report", Content: "Revenue grew strongly.",
		AuthorID: "agent-1", PublishedAt: &publishedAt,
	})
	seedArticle(repo, &content.Article{
		ID: "d-1", Title: "Revenue Draft", Content: "Revenue notes.", AuthorID: "agent-1",
	})
	service := newTestService(repo)

	articles, total, err := service.Search(context.Background(), nil, "REVENUE", 10, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "p-1", articles[0].ID)
}

// # Updates

/*
TestService_Update_AgentCannotPublish verifies that an agent's explicit
publish attempt is rejected rather than silently dropped.
*/
func TestService_Update_AgentCannotPublish(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Draft", AuthorID: "agent-1"})
	service := newTestService(repo)

	publishedAt := time.Now()
	_, err := service.Update(context.Background(), agentCaller("agent-1"), "d-1", content.UpdateInput{
		PublishedAt: &publishedAt,
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)

	// The stored draft is untouched by the rejected publish attempt
	stored, findErr := repo.FindByID(context.Background(), "d-1")
	require.NoError(t, findErr)
	assert.Nil(t, stored.PublishedAt)
}

/*
TestService_Update_AgentEditsOwnDraft verifies agent self-service edits.
*/
func TestService_Update_AgentEditsOwnDraft(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Old Title", AuthorID: "agent-1"})
	service := newTestService(repo)

	article, err := service.Update(context.Background(), agentCaller("agent-1"), "d-1", content.UpdateInput{
		Title: pointer.To("New Title"),
	})

	require.NoError(t, err)
	assert.Equal(t, "New Title", article.Title)
	assert.Nil(t, article.PublishedAt)
}

/*
TestService_Update_AgentCannotEditOthers verifies the ownership rule.
*/
func TestService_Update_AgentCannotEditOthers(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Draft", AuthorID: "agent-1"})
	service := newTestService(repo)

	_, err := service.Update(context.Background(), agentCaller("agent-2"), "d-1", content.UpdateInput{
		Title: pointer.To("Hijacked"),
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)
}

/*
TestService_Update_AdminPublishesDraft verifies the publish transition.
*/
func TestService_Update_AdminPublishesDraft(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Draft", AuthorID: "agent-1"})
	service := newTestService(repo)

	publishedAt := time.Now()
	article, err := service.Update(context.Background(), adminCaller(), "d-1", content.UpdateInput{
		PublishedAt: &publishedAt,
	})

	require.NoError(t, err)
	assert.True(t, article.Published())
}

/*
TestService_Update_RecomputesReadingTime verifies that new content refreshes
the derived reading time while the slug stays stable.
*/
func TestService_Update_RecomputesReadingTime(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{
		ID: "d-1", Title: "Draft", Slug: "draft", Content: "Tiny.", ReadingTime: 1, AuthorID: "agent-1",
	})
	service := newTestService(repo)

	article, err := service.Update(context.Background(), adminCaller(), "d-1", content.UpdateInput{
		Content: pointer.To(strings.Repeat("word ", 401)),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, article.ReadingTime)
	assert.Equal(t, "draft", article.Slug)
}

/*
TestService_Update_AbsentID verifies that updating a missing article is a 404
even for admins (unlike draft reads, existence is not hidden here).
*/
func TestService_Update_AbsentID(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.Update(context.Background(), adminCaller(), "missing-id", content.UpdateInput{
		Title: pointer.To("Anything"),
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

// # Deletion

/*
TestService_Delete verifies the admin-only hard delete and its 404 path.
*/
func TestService_Delete(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Doomed", AuthorID: "agent-1"})
	service := newTestService(repo)

	// 1. The author cannot delete their own article
	err := service.Delete(context.Background(), agentCaller("agent-1"), "d-1")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)

	// 2. Admin delete succeeds
	require.NoError(t, service.Delete(context.Background(), adminCaller(), "d-1"))

	// 3. Deleting again is a 404
	err = service.Delete(context.Background(), adminCaller(), "d-1")
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

// # Engagement

/*
TestService_TrackShare_CountersAndTotal verifies per-platform counting and
the total-equals-sum invariant across multiple shares.
*/
func TestService_TrackShare_CountersAndTotal(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt})
	service := newTestService(repo)

	// 1. Two facebook shares
	result, err := service.TrackShare(context.Background(), "p-1", content.PlatformFacebook)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 1, result.Total)

	result, err = service.TrackShare(context.Background(), "p-1", content.PlatformFacebook)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 2, result.Total)

	// 2. One twitter share; total covers both platforms
	result, err = service.TrackShare(context.Background(), "p-1", content.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 3, result.Total)

	// 3. Persisted counters match
	stored, err := repo.FindByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.SocialShares.Facebook)
	assert.Equal(t, 1, stored.SocialShares.Twitter)
	assert.Equal(t, 3, stored.SocialShares.Total)
	assert.Equal(t, stored.SocialShares.Sum(), stored.SocialShares.Total)
}

/*
TestService_TrackShare_UnknownPlatform verifies platform validation.
*/
func TestService_TrackShare_UnknownPlatform(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt})
	service := newTestService(repo)

	_, err := service.TrackShare(context.Background(), "p-1", "myspace")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)

	// Counters stay untouched
	stored, findErr := repo.FindByID(context.Background(), "p-1")
	require.NoError(t, findErr)
	assert.Zero(t, stored.SocialShares.Total)
}

/*
TestService_TrackShare_DraftRejected verifies that drafts cannot be shared.
*/
func TestService_TrackShare_DraftRejected(t *testing.T) {
	repo := newFakeRepo()
	seedArticle(repo, &content.Article{ID: "d-1", Title: "Draft", AuthorID: "agent-1"})
	service := newTestService(repo)

	_, err := service.TrackShare(context.Background(), "d-1", content.PlatformEmail)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
}

/*
TestService_Analytics verifies the analytics projection and its gating.
*/
func TestService_Analytics(t *testing.T) {
	repo := newFakeRepo()
	publishedAt := time.Now()
	seedArticle(repo, &content.Article{
		ID: "p-1", Title: "Live", AuthorID: "agent-1", PublishedAt: &publishedAt,
		ViewCount:    42,
		SocialShares: content.SocialShares{Facebook: 2, Twitter: 1, Total: 3},
		Analytics:    content.AnalyticsSnapshot{UniqueViews: 30, TotalViews: 42, EngagementScore: 0.8},
	})
	service := newTestService(repo)

	// 1. Anonymous callers are rejected outright
	_, err := service.Analytics(context.Background(), nil, "p-1")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)

	// 2. Customers are forbidden
	_, err = service.Analytics(context.Background(), customerCaller(), "p-1")
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)

	// 3. The author receives the full projection
	report, err := service.Analytics(context.Background(), agentCaller("agent-1"), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", report.ArticleID)
	assert.Equal(t, "Live", report.ArticleTitle)
	assert.Equal(t, 42, report.ViewCount)
	assert.Equal(t, 3, report.SocialShares.Total)
	assert.Equal(t, 30, report.Analytics.UniqueViews)
}
