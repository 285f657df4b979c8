// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: davi.tran.dev@gmail.com

package content

import (
	"context"
	"strings"

	"github.com/davitran/pressroom/internal/platform/sec"
	"github.com/davitran/pressroom/internal/platform/validate"
)

// # Search

/*
Search finds articles matching a free-text term.

Description: The term is matched case-insensitively against title,
description, and body content. Tags and categories are not searched.
An empty or whitespace-only term is rejected rather than treated as
"match everything". Non-admin callers only search published articles.
Results are ordered by publish date, newest first.

Parameters:
  - context: context.Context
  - caller: *sec.AuthClaims (nil for anonymous readers)
  - term: string (free-text search term)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Article: Matching articles
  - int: Total match count (for pagination metadata)
  - error: Validation or storage errors
*/
func (service *Service) Search(context context.Context, caller *sec.AuthClaims, term string, limit, offset int) ([]*Article, int, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, 0, validate.RequiredError(FieldQuery, "Search term is required")
	}

	filter := Filter{
		Query:         term,
		PublishedOnly: RestrictToPublished(caller),
	}

	return service.repo.List(context, filter, limit, offset)
}
