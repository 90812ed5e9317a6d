package registry

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"giveawaybot/internal/models"
)

// Postgres хранит карточки в PostgreSQL, включается переменной
// DATABASE_URL. Схема таблицы повторяет карточку один в один.
type Postgres struct {
	pool  *pgxpool.Pool
	newID func() string
}

func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS giveaways (
    id           TEXT PRIMARY KEY,
    source_label TEXT NOT NULL DEFAULT '',
    raw_text     TEXT NOT NULL,
    links        TEXT[] NOT NULL DEFAULT '{}',
    deadline     TIMESTAMPTZ,
    archived     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)
`)
	if err != nil {
		return nil, err
	}
	return &Postgres{pool: pool, newID: shortID}, nil
}

func (p *Postgres) Create(sourceLabel, rawText string, links []string, deadline *time.Time) (string, error) {
	for {
		id := p.newID()
		tag, err := p.pool.Exec(context.Background(), `
INSERT INTO giveaways (id, source_label, raw_text, links, deadline)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING
`, id, sourceLabel, rawText, links, deadline)
		if err != nil {
			return "", err
		}
		// RowsAffected == 0 — идентификатор уже занят, пробуем новый.
		if tag.RowsAffected() > 0 {
			return id, nil
		}
	}
}

func (p *Postgres) Get(id string) (*models.Giveaway, error) {
	row := p.pool.QueryRow(context.Background(), `
SELECT id, source_label, raw_text, links, deadline, archived, created_at
FROM giveaways
WHERE id = $1
`, id)

	var g models.Giveaway
	err := row.Scan(&g.ID, &g.SourceLabel, &g.RawText, &g.Links, &g.Deadline, &g.Archived, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (p *Postgres) Archive(id string) (bool, error) {
	tag, err := p.pool.Exec(context.Background(), `
UPDATE giveaways
SET archived = true
WHERE id = $1 AND NOT archived
`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (p *Postgres) ListActive(limit int) ([]models.Giveaway, error) {
	rows, err := p.pool.Query(context.Background(), `
SELECT id, source_label, raw_text, links, deadline, archived, created_at
FROM giveaways
WHERE NOT archived
ORDER BY created_at
LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Giveaway
	for rows.Next() {
		var g models.Giveaway
		if err := rows.Scan(&g.ID, &g.SourceLabel, &g.RawText, &g.Links, &g.Deadline, &g.Archived, &g.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
