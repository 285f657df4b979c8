package content

import "context"

// Repository abstracts article persistence.
type Repository interface {
	// List returns a page of articles matching the filter plus the total
	// number of matches.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Article, int, error)

	FindByID(ctx context.Context, id string) (*Article, error)

	Create(ctx context.Context, article *Article) error
	Update(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id string) error

	// IncrementViewCount bumps the view counter atomically in storage so
	// concurrent readers never lose increments. It only counts views on
	// published articles.
	IncrementViewCount(ctx context.Context, id string) error

	// UpdateSocialShares replaces the share counters without touching any
	// other field.
	UpdateSocialShares(ctx context.Context, id string, shares SocialShares) error
}

// Cache is a best-effort read cache for published articles. A miss is
// reported as (nil, nil); implementations never fabricate entries.
type Cache interface {
	GetArticle(ctx context.Context, id string) (*Article, error)
	SetArticle(ctx context.Context, article *Article) error
	DropArticle(ctx context.Context, id string) error
}
