// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: davi.tran.dev@gmail.com

package content

import (
	"context"
	"log/slog"

	"github.com/davitran/pressroom/internal/platform/apperr"
	"github.com/davitran/pressroom/internal/platform/sec"
	"github.com/davitran/pressroom/internal/platform/validate"
	"github.com/davitran/pressroom/pkg/pointer"
	"github.com/davitran/pressroom/pkg/readtime"
	"github.com/davitran/pressroom/pkg/slug"
	"github.com/davitran/pressroom/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the editorial catalogue.
// Every operation takes the caller identity explicitly; a nil caller is
// an anonymous reader.
type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService constructs a new [Service]. The cache is optional: passing
// nil disables read caching, and every failure of a non-nil cache only
// degrades to a storage read.
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// # Catalogue Lookups

/*
List retrieves a paginated collection of articles.

Description: Non-admin callers (including anonymous readers) only ever
see published articles; the published-only restriction is forced here
so no handler can forget it.

Parameters:
  - context: context.Context
  - caller: *sec.AuthClaims (nil for anonymous readers)
  - filter: Filter (author restriction, free-text term)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Article: Slice of matching articles
  - int: Total count of records matching the filter (for pagination metadata)
  - error: Storage or execution errors
*/
func (service *Service) List(context context.Context, caller *sec.AuthClaims, filter Filter, limit, offset int) ([]*Article, int, error) {
	if RestrictToPublished(caller) {
		filter.PublishedOnly = true
	}

	return service.repo.List(context, filter, limit, offset)
}

/*
Get fetches a single article by UUID and records the view.

Description: Published articles are readable by anyone and served
through the read cache when possible. Drafts are only visible to
admins and their author; everyone else receives Unauthorized with a
message that does not confirm the draft exists. A successful read of
a published article triggers an asynchronous view-count increment
that never delays or fails the response.

Parameters:
  - context: context.Context
  - caller: *sec.AuthClaims (nil for anonymous readers)
  - id: string (UUID)

Returns:
  - *Article: The hydrated domain entity
  - error: NotFound for absent ids, Unauthorized for hidden drafts
*/
func (service *Service) Get(context context.Context, caller *sec.AuthClaims, id string) (*Article, error) {
	article, err := service.fetch(context, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(caller, OpGet, article); err != nil {
		return nil, err
	}

	if article.Published() {
		service.recordViewDetached(article.ID)
	}

	return article, nil
}

// # Editorial Management

/*
Create initialises a new article.

Description: Only admins and agents may create content. The author is
always the caller; derived fields (slug, reading time) are computed
here and never taken from the input. A publish timestamp in the input
is honoured for admins only. Agent-created articles always start as
drafts, silently, regardless of the requested value.

Parameters:
  - context: context.Context
  - caller: *sec.AuthClaims
  - input: CreateInput

Returns:
  - *Article: The persisted entity
  - error: Authorization, validation, or persistence errors
*/
func (service *Service) Create(context context.Context, caller *sec.AuthClaims, input CreateInput) (*Article, error) {
	if err := Authorize(caller, OpCreate, nil); err != nil {
		return nil, err
	}

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 500)
	validator.MaxLen(FieldDescription, pointer.Val(input.Description), 1000)

	if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug)
	}
	if input.HeroImageURL != nil {
		validator.URL(FieldHeroImageURL, *input.HeroImageURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	article := &Article{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		Slug:         input.Slug,
		AuthorID:     caller.UserID,
		HeroImageURL: input.HeroImageURL,
		Category:     input.Category,
		SEO:          input.SEO,
	}

	// Slug generation only when the client did not supply one
	if article.Slug == "" {
		article.Slug = slug.From(article.Title)
	}

	// Reading time derivation, skipped for empty content
	if article.Content != "" {
		article.ReadingTime = readtime.Minutes(article.Content)
	}

	// Publish workflow guard
	if input.PublishedAt != nil && CanPublish(caller) {
		article.PublishedAt = input.PublishedAt
	}

	if err := service.repo.Create(context, article); err != nil {
		return nil, err
	}

	service.logger.Info("article_created",
		slog.String("article_id", article.ID),
		slog.String("author_id", article.AuthorID),
		slog.Bool("published", article.Published()),
	)

	return article, nil
}

/*
Update applies partial modifications to an existing article.

Description: Admins may update anything; agents only their own
articles. Nil input fields are left untouched. An explicit publish
timestamp from a non-admin is rejected outright rather than silently
dropped, so agents learn their publish attempt did not take effect.
Reading time is recomputed whenever new content is supplied; the slug
is never regenerated once set. Counters and authorship are immutable
through this path.

Parameters:
  - context: context.Context
  - caller: *sec.AuthClaims
  - id: string (UUID)
  - input: UpdateInput

Returns:
  - *Article: The updated entity
  - error: NotFound, authorization, validation, or persistence errors
*/
func (service *Service) Update(context context.Context, caller *sec.AuthClaims, id string, input UpdateInput) (*Article, error) {
	article, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(caller, OpUpdate, article); err != nil {
		return nil, err
	}

	// Publish workflow guard
	if input.PublishedAt != nil && !CanPublish(caller) {
		return nil, apperr.Forbidden("Only admins can change the publish state")
	}

	// Integrity validation for updated fields
	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 500)
	}
	validator.MaxLen(FieldDescription, pointer.Val(input.Description), 1000)
	if input.HeroImageURL != nil {
		validator.URL(FieldHeroImageURL, *input.HeroImageURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	article.Title = pointer.Fallback(input.Title, article.Title)
	if input.Description != nil {
		article.Description = input.Description
	}
	if input.Content != nil {
		article.Content = *input.Content
		article.ReadingTime = readtime.Minutes(article.Content)
	}
	if input.HeroImageURL != nil {
		article.HeroImageURL = input.HeroImageURL
	}
	if input.Category != nil {
		article.Category = input.Category
	}
	article.SEO = pointer.Fallback(input.SEO, article.SEO)
	if input.PublishedAt != nil {
		article.PublishedAt = input.PublishedAt
	}

	if err := service.repo.Update(context, article); err != nil {
		return nil, err
	}

	service.dropCached(context, article.ID)

	service.logger.Info("article_updated",
		slog.String("article_id", article.ID),
		slog.Bool("published", article.Published()),
	)

	return article, nil
}

/*
Delete permanently removes an article.

Description: Hard delete, admin only. The route layer already gates on
the admin role; the check here keeps the rule enforced even for
non-HTTP callers.

Parameters:
  - context: context.Context
  - caller: *sec.AuthClaims
  - id: string (UUID)

Returns:
  - error: NotFound if the id does not exist, or persistence errors
*/
func (service *Service) Delete(context context.Context, caller *sec.AuthClaims, id string) error {
	if err := Authorize(caller, OpDelete, nil); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.dropCached(context, id)

	service.logger.Warn("article_deleted", slog.String("article_id", id))

	return nil
}

// # Internal Helpers

// fetch reads an article through the cache when one is configured.
// Only published articles are ever cached, so a cache hit never
// bypasses the draft visibility rules.
func (service *Service) fetch(context context.Context, id string) (*Article, error) {
	if service.cache != nil {
		cached, err := service.cache.GetArticle(context, id)
		if err != nil {
			service.logger.Warn("article_cache_read_failed",
				slog.String("article_id", id),
				slog.Any("error", err),
			)
		} else if cached != nil {
			return cached, nil
		}
	}

	article, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if service.cache != nil && article.Published() {
		if err := service.cache.SetArticle(context, article); err != nil {
			service.logger.Warn("article_cache_write_failed",
				slog.String("article_id", id),
				slog.Any("error", err),
			)
		}
	}

	return article, nil
}

// dropCached invalidates the cache entry after any write. Failures are
// logged and swallowed; a stale entry expires with its TTL anyway.
func (service *Service) dropCached(context context.Context, id string) {
	if service.cache == nil {
		return
	}
	if err := service.cache.DropArticle(context, id); err != nil {
		service.logger.Warn("article_cache_invalidate_failed",
			slog.String("article_id", id),
			slog.Any("error", err),
		)
	}
}
