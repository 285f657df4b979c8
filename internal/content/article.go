package content

import "time"

// Article is the publishable editorial unit.
//
// Draft vs Published is carried entirely by PublishedAt: nil means draft,
// non-nil means the item is publicly visible.
type Article struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Content     string  `json:"content"`

	// Derived fields: never supplied by clients directly.
	Slug        string `json:"slug"`
	ReadingTime int    `json:"reading_time"` // minutes; 0 when content is empty

	PublishedAt *time.Time `json:"published_at"`

	// AuthorID is set from the caller identity at creation and never reassigned.
	AuthorID string `json:"author_id"`

	// Opaque editorial relations.
	HeroImageURL *string `json:"hero_image_url,omitempty"`
	Category     *string `json:"category,omitempty"`
	SEO          SEO     `json:"seo"`

	// Engagement counters. Mutated only through the dedicated
	// view/share tracking paths, never through generic updates.
	ViewCount    int               `json:"view_count"`
	SocialShares SocialShares      `json:"social_shares"`
	Analytics    AnalyticsSnapshot `json:"analytics"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Published reports whether the article is visible to the public.
func (a *Article) Published() bool {
	return a.PublishedAt != nil
}

// SEO holds search-engine metadata attached to an article.
type SEO struct {
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
}

// AnalyticsSnapshot is the externally-aggregated engagement projection.
// This service only reads it; an offline pipeline keeps it up to date.
type AnalyticsSnapshot struct {
	UniqueViews       int     `json:"uniqueViews"`
	TotalViews        int     `json:"totalViews"`
	AverageTimeOnPage float64 `json:"averageTimeOnPage"`
	BounceRate        float64 `json:"bounceRate"`
	EngagementScore   float64 `json:"engagementScore"`
}

// # Social Shares

// Share platforms form a closed set; anything else is a validation error.
const (
	PlatformFacebook = "facebook"
	PlatformTwitter  = "twitter"
	PlatformLinkedIn = "linkedin"
	PlatformWhatsApp = "whatsapp"
	PlatformEmail    = "email"
)

// SharePlatforms lists every platform accepted by the share-tracking endpoint.
var SharePlatforms = []string{
	PlatformFacebook,
	PlatformTwitter,
	PlatformLinkedIn,
	PlatformWhatsApp,
	PlatformEmail,
}

// SocialShares tracks per-platform share counters plus their running total.
//
// Total always equals the sum of the platform counters: it is recomputed
// from the platforms on every write, never incremented independently.
type SocialShares struct {
	Facebook int `json:"facebook"`
	Twitter  int `json:"twitter"`
	LinkedIn int `json:"linkedin"`
	WhatsApp int `json:"whatsapp"`
	Email    int `json:"email"`
	Total    int `json:"total"`
}

// Increment bumps the named platform counter by one and recomputes Total
// as the platform sum. It returns false for unknown platforms, leaving
// the counters untouched.
func (s *SocialShares) Increment(platform string) bool {
	switch platform {
	case PlatformFacebook:
		s.Facebook++
	case PlatformTwitter:
		s.Twitter++
	case PlatformLinkedIn:
		s.LinkedIn++
	case PlatformWhatsApp:
		s.WhatsApp++
	case PlatformEmail:
		s.Email++
	default:
		return false
	}

	s.Total = s.Sum()
	return true
}

// Sum returns the total of all platform counters.
func (s SocialShares) Sum() int {
	return s.Facebook + s.Twitter + s.LinkedIn + s.WhatsApp + s.Email
}

// Count returns the counter for the named platform (0 for unknown platforms).
func (s SocialShares) Count(platform string) int {
	switch platform {
	case PlatformFacebook:
		return s.Facebook
	case PlatformTwitter:
		return s.Twitter
	case PlatformLinkedIn:
		return s.LinkedIn
	case PlatformWhatsApp:
		return s.WhatsApp
	case PlatformEmail:
		return s.Email
	default:
		return 0
	}
}

// # Inputs

// CreateInput is the payload accepted by the create operation.
//
// Counters and derived fields are deliberately absent: slug and reading
// time are computed server-side, and engagement counters start at zero.
type CreateInput struct {
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Content      string     `json:"content"`
	Slug         string     `json:"slug"`
	PublishedAt  *time.Time `json:"published_at"`
	HeroImageURL *string    `json:"hero_image_url"`
	Category     *string    `json:"category"`
	SEO          SEO        `json:"seo"`
}

// UpdateInput is the payload accepted by the update operation.
// Nil fields are left untouched (partial update semantics).
type UpdateInput struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Content      *string    `json:"content"`
	PublishedAt  *time.Time `json:"published_at"`
	HeroImageURL *string    `json:"hero_image_url"`
	Category     *string    `json:"category"`
	SEO          *SEO       `json:"seo"`
}

// ShareResult is returned by the share-tracking endpoint.
type ShareResult struct {
	Platform string `json:"platform"`
	Count    int    `json:"count"`
	Total    int    `json:"total"`
}

// AnalyticsReport is the engagement projection returned to admins and authors.
type AnalyticsReport struct {
	ArticleID    string            `json:"article_id"`
	ArticleTitle string            `json:"article_title"`
	ViewCount    int               `json:"view_count"`
	SocialShares SocialShares      `json:"social_shares"`
	Analytics    AnalyticsSnapshot `json:"analytics"`
	PublishedAt  *time.Time        `json:"published_at"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Filter holds the criteria for a paginated article query.
type Filter struct {
	// Query is a free-text term matched case-insensitively against
	// title, description, and content. Tags and categories are not
	// searched; that is a known limitation of the text search.
	Query string

	// PublishedOnly restricts results to published articles. Forced on
	// for every caller except admins.
	PublishedOnly bool

	// AuthorID restricts results to a single author when non-empty.
	AuthorID string
}

// Field identifiers used in validation errors.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldContent      = "content"
	FieldSlug         = "slug"
	FieldHeroImageURL = "hero_image_url"
	FieldPlatform     = "platform"
	FieldQuery        = "q"
)
