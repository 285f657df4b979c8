// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: davi.tran.dev@gmail.com

// Package content implements the editorial content domain: articles with a
// draft/published workflow, role-gated access, derived fields, engagement
// counters, full-text search, and analytics projections.
package content

import (
	"github.com/davitran/pressroom/internal/platform/apperr"
	"github.com/davitran/pressroom/internal/platform/sec"
)

// Operation identifies a content action for authorization purposes.
type Operation int

const (
	OpGet Operation = iota
	OpCreate
	OpUpdate
	OpDelete
	OpAnalytics
)

// Authorize is the single decision point for role-gated content access.
//
// The article argument carries the target of the operation where ownership
// matters (OpGet, OpUpdate, OpAnalytics); it may be nil for operations that
// are decided on role alone.
//
// For OpGet on a draft, unauthorized callers receive Unauthorized with a
// deliberately ambiguous message so the existence of the draft is not
// leaked through the status code.
func Authorize(caller *sec.AuthClaims, op Operation, article *Article) error {
	role := callerRole(caller)
	isOwner := article != nil && caller != nil && article.AuthorID == caller.UserID

	switch op {
	case OpGet:
		if article != nil && article.Published() {
			return nil
		}
		if role == sec.RoleAdmin || isOwner {
			return nil
		}
		return apperr.Unauthorized("Article not found or not published")

	case OpCreate:
		if caller == nil {
			return apperr.Unauthorized("You must be logged in to create content")
		}
		if role.AtLeast(sec.RoleAgent) {
			return nil
		}
		return apperr.Forbidden("Only admins and agents can create content")

	case OpUpdate:
		if caller == nil {
			return apperr.Unauthorized("You must be logged in to edit content")
		}
		switch {
		case role == sec.RoleAdmin:
			return nil
		case role == sec.RoleAgent && isOwner:
			return nil
		case role == sec.RoleAgent:
			return apperr.Forbidden("You can only edit your own articles")
		default:
			return apperr.Forbidden("You do not have permission to edit content")
		}

	case OpDelete:
		if caller == nil {
			return apperr.Unauthorized("You must be logged in to delete content")
		}
		if role == sec.RoleAdmin {
			return nil
		}
		return apperr.Forbidden("Only admins can delete content")

	case OpAnalytics:
		if caller == nil {
			return apperr.Unauthorized("You must be logged in to view analytics")
		}
		if role == sec.RoleAdmin || isOwner {
			return nil
		}
		return apperr.Forbidden("You can only view analytics for your own articles")
	}

	return apperr.Forbidden("Unknown operation")
}

// RestrictToPublished reports whether list and search results for the caller
// must be limited to published articles. Only admins see drafts in listings.
func RestrictToPublished(caller *sec.AuthClaims) bool {
	return callerRole(caller) != sec.RoleAdmin
}

// CanPublish reports whether the caller may set or change the publish
// timestamp. Agents author drafts; publishing is an admin decision.
func CanPublish(caller *sec.AuthClaims) bool {
	return callerRole(caller) == sec.RoleAdmin
}

func callerRole(caller *sec.AuthClaims) sec.Role {
	if caller == nil {
		return ""
	}
	return sec.Role(caller.Role)
}
