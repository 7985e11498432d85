// Package store owns persistence for repository records: write-once inserts
// keyed by full name, and vector similarity search over the descriptive text.
// Embedding happens inside Postgres (pgai's openai_embed over a pgvector
// column); this package never constructs vectors itself.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"starscout/internal/models"
)

// uniqueViolation is the Postgres error code raised when the insert loses
// the check-then-insert race on repositories.full_name.
const uniqueViolation = "23505"

// queryEmbedModel is the model the database uses to embed query text.
const queryEmbedModel = "text-embedding-3-small"

// Store persists repositories in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// New wires the pool.
//
// Expected schema:
//
//	repositories
//	  { id serial, github_username, name, full_name unique, readme,
//	    description, url, language, stars }
//
//	repositories_embedding_store
//	  { id -> repositories.id, chunk text, embedding vector }
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Save stores one repository and returns its id. If a record with the same
// full name already exists its id is returned without writing, so repeated
// ingestion runs are idempotent from the caller's perspective. A concurrent
// run that wins the insert race surfaces as a unique violation, which is
// likewise treated as "already exists".
func (s *Store) Save(ctx context.Context, githubUsername string, info models.RepoInfo) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("store: beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM repositories WHERE full_name = $1`,
		info.FullName,
	).Scan(&id)
	if err == nil {
		log.Printf("Repository %s already exists, skipping insertion", info.FullName)
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("store: checking for existing repository %s: %w", info.FullName, err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO repositories (github_username, name, full_name, readme, description, url, language, stars)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		githubUsername, info.Name, info.FullName, info.Readme,
		info.Description, info.URL, info.Language, info.Stars,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Lost the race; the row is there now. The aborted transaction
			// cannot be reused, so re-read through the pool.
			return s.findID(ctx, info.FullName)
		}
		return 0, fmt.Errorf("store: inserting repository %s: %w", info.FullName, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("store: committing repository %s: %w", info.FullName, err)
	}
	return id, nil
}

// findID looks up the id of an existing repository by full name.
func (s *Store) findID(ctx context.Context, fullName string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM repositories WHERE full_name = $1`, fullName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: resolving existing repository %s: %w", fullName, err)
	}
	return id, nil
}

// Search performs semantic search over the stored chunks and returns the
// limit closest repositories, ordered by descending similarity. The query
// text is embedded inside the database call; similarity is 1 - distance.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	log.Printf("Executing semantic search query")

	rows, err := s.pool.Query(ctx, `
		WITH ranked_results AS (
			SELECT r.name, r.url, r.description, res.distance
			FROM (
				SELECT id,
				       embedding <=> ai.openai_embed($1, $2) AS distance
				FROM repositories_embedding_store
				ORDER BY distance
				LIMIT $3
			) res
			JOIN repositories r ON r.id = res.id
		)
		SELECT name, url, COALESCE(description, ''), 1 - distance AS similarity
		FROM ranked_results
		ORDER BY similarity DESC`,
		queryEmbedModel, query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: executing similarity search: %w", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Name, &r.URL, &r.Description, &r.Similarity); err != nil {
			return nil, fmt.Errorf("store: scanning search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: reading search results: %w", err)
	}

	log.Printf("Search query returned %d results", len(results))
	return results, nil
}
