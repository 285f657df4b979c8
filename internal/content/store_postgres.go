package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davitran/pressroom/internal/platform/apperr"
	"github.com/davitran/pressroom/internal/platform/dberr"
)

// articleColumns is the canonical column order shared by every SELECT.
const articleColumns = `id, title, description, content, slug, reading_time,
	published_at, author_id, hero_image_url, category, seo,
	view_count, social_shares, analytics, created_at, updated_at`

// PostgresRepository implements [Repository] on top of pgx.
//
// The seo, social_shares, and analytics columns are jsonb; pgx maps them
// to and from their struct types through its JSON codec.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context, f Filter, limit, offset int) ([]*Article, int, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE 1=1`
	countQuery := `SELECT count(*) FROM articles WHERE 1=1`

	args := []any{}

	if f.PublishedOnly {
		query += ` AND published_at IS NOT NULL`
		countQuery += ` AND published_at IS NOT NULL`
	}

	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		condition := fmt.Sprintf(` AND author_id = $%d`, len(args))
		query += condition
		countQuery += condition
	}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		condition := fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d OR content ILIKE $%d)`,
			len(args), len(args), len(args))
		query += condition
		countQuery += condition
	}

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_articles")
	}

	// Search results surface the freshest published work first; plain
	// listings fall back to creation order so drafts sort sanely for admins.
	if f.Query != "" {
		query += ` ORDER BY published_at DESC NULLS LAST`
	} else {
		query += ` ORDER BY created_at DESC`
	}
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles")
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article")
		}
		articles = append(articles, article)
	}

	return articles, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, wrapArticleErr(err, "find_article")
	}

	return article, nil
}

func (repository *PostgresRepository) Create(context context.Context, article *Article) error {
	query := `
		INSERT INTO articles (
			id, title, description, content, slug, reading_time,
			published_at, author_id, hero_image_url, category, seo,
			view_count, social_shares, analytics, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := repository.pool.QueryRow(context, query,
		article.ID, article.Title, article.Description, article.Content,
		article.Slug, article.ReadingTime, article.PublishedAt, article.AuthorID,
		article.HeroImageURL, article.Category, article.SEO,
		article.SocialShares, article.Analytics,
	).Scan(&article.CreatedAt, &article.UpdatedAt)

	return wrapArticleErr(err, "create_article")
}

func (repository *PostgresRepository) Update(context context.Context, article *Article) error {
	query := `
		UPDATE articles
		SET title = $2, description = $3, content = $4, reading_time = $5,
			published_at = $6, hero_image_url = $7, category = $8, seo = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := repository.pool.QueryRow(context, query,
		article.ID, article.Title, article.Description, article.Content,
		article.ReadingTime, article.PublishedAt, article.HeroImageURL,
		article.Category, article.SEO,
	).Scan(&article.UpdatedAt)

	return wrapArticleErr(err, "update_article")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	cmd, err := repository.pool.Exec(context, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return wrapArticleErr(err, "delete_article")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Article")
	}
	return nil
}

// IncrementViewCount performs the increment inside the database so that
// concurrent views never lose updates. Drafts are excluded; a view on a
// draft preview must not move the public counter.
func (repository *PostgresRepository) IncrementViewCount(context context.Context, id string) error {
	query := `
		UPDATE articles
		SET view_count = view_count + 1
		WHERE id = $1 AND published_at IS NOT NULL
	`

	_, err := repository.pool.Exec(context, query, id)
	return wrapArticleErr(err, "increment_view_count")
}

func (repository *PostgresRepository) UpdateSocialShares(context context.Context, id string, shares SocialShares) error {
	query := `
		UPDATE articles
		SET social_shares = $2, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := repository.pool.Exec(context, query, id, shares)
	if err != nil {
		return wrapArticleErr(err, "update_social_shares")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Article")
	}
	return nil
}

// # Internal Helpers

// scanArticle hydrates one Article from a row in [articleColumns] order.
func scanArticle(row pgx.Row) (*Article, error) {
	article := &Article{}
	err := row.Scan(
		&article.ID, &article.Title, &article.Description, &article.Content,
		&article.Slug, &article.ReadingTime, &article.PublishedAt, &article.AuthorID,
		&article.HeroImageURL, &article.Category, &article.SEO,
		&article.ViewCount, &article.SocialShares, &article.Analytics,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// wrapArticleErr maps storage errors to domain-specific application errors
// before falling back to the generic classification.
func wrapArticleErr(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Article")
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case "23505":
			return apperr.Conflict("An article with this slug already exists")
		case "22P02":
			// Malformed uuid text in the id position; indistinguishable
			// from an absent article as far as clients are concerned.
			return apperr.NotFound("Article")
		}
	}

	return dberr.Wrap(err, action)
}
