// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: davi.tran.dev@gmail.com

package content

import (
	"context"
	"log/slog"

	"github.com/davitran/pressroom/internal/platform/apperr"
	"github.com/davitran/pressroom/internal/platform/constants"
	"github.com/davitran/pressroom/internal/platform/sec"
	"github.com/davitran/pressroom/internal/platform/validate"
)

// # Engagement Tracking

// recordViewDetached bumps the view counter for a published article
// without blocking or failing the read that triggered it. The increment
// runs on a background context with its own deadline so a slow database
// cannot hold the goroutine forever. Errors are logged and swallowed;
// a lost view is acceptable, a failed read is not.
func (service *Service) recordViewDetached(id string) {
	go func() {
		detached, cancel := context.WithTimeout(context.Background(), constants.ViewCountTimeout)
		defer cancel()

		if err := service.repo.IncrementViewCount(detached, id); err != nil {
			service.logger.Error("view_count_increment_failed",
				slog.String("article_id", id),
				slog.Any("error", err),
			)
		}
	}()
}

/*
TrackShare records a social share for a published article.

Description: Public endpoint, no authentication required. The platform
must belong to the closed platform set. The per-platform counter is
bumped and the share total is recomputed as the sum of all platform
counters, so the total can never drift from its parts. Sharing a draft
is a validation error, not a silent no-op.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - platform: string (one of [SharePlatforms])

Returns:
  - *ShareResult: Updated counter for the platform plus the new total
  - error: Validation, NotFound, or persistence errors
*/
func (service *Service) TrackShare(context context.Context, id, platform string) (*ShareResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldPlatform, platform).OneOf(FieldPlatform, platform, SharePlatforms...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	article, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !article.Published() {
		return nil, apperr.ValidationError("Cannot share an unpublished article")
	}

	shares := article.SocialShares
	shares.Increment(platform)

	if err := service.repo.UpdateSocialShares(context, id, shares); err != nil {
		return nil, err
	}

	service.dropCached(context, id)

	service.logger.Info("article_shared",
		slog.String("article_id", id),
		slog.String("platform", platform),
		slog.Int("total_shares", shares.Total),
	)

	return &ShareResult{
		Platform: platform,
		Count:    shares.Count(platform),
		Total:    shares.Total,
	}, nil
}

/*
Analytics returns the engagement projection for a single article.

Description: Restricted to admins and the article's author. The
projection combines the live view counter and share counters with the
externally-aggregated analytics snapshot; this service never computes
the snapshot itself.

Parameters:
  - context: context.Context
  - caller: *sec.AuthClaims
  - id: string (UUID)

Returns:
  - *AnalyticsReport: Engagement data for the article
  - error: Unauthorized, NotFound, or Forbidden
*/
func (service *Service) Analytics(context context.Context, caller *sec.AuthClaims, id string) (*AnalyticsReport, error) {
	if caller == nil {
		return nil, apperr.Unauthorized("You must be logged in to view analytics")
	}

	article, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(caller, OpAnalytics, article); err != nil {
		return nil, err
	}

	return &AnalyticsReport{
		ArticleID:    article.ID,
		ArticleTitle: article.Title,
		ViewCount:    article.ViewCount,
		SocialShares: article.SocialShares,
		Analytics:    article.Analytics,
		PublishedAt:  article.PublishedAt,
		CreatedAt:    article.CreatedAt,
		UpdatedAt:    article.UpdatedAt,
	}, nil
}
