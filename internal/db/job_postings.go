package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashContent returns the hex SHA-256 of text.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// UpsertJobPosting records the text fetched from a job posting URL.
func (db *DB) UpsertJobPosting(ctx context.Context, input *JobPostingInput) (*JobPosting, error) {
	if input == nil || input.URL == "" {
		return nil, fmt.Errorf("job posting url is required")
	}
	platform := input.Platform
	if platform == "" {
		platform = "unknown"
	}

	var p JobPosting
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (url, platform, cleaned_text, content_hash, rendered, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (url) DO UPDATE SET
		     platform = $2,
		     cleaned_text = $3,
		     content_hash = $4,
		     rendered = $5,
		     fetched_at = NOW(),
		     updated_at = NOW()
		 RETURNING id, url, platform, cleaned_text, content_hash, rendered, fetched_at, created_at, updated_at`,
		input.URL, platform, input.CleanedText, HashContent(input.CleanedText), input.Rendered,
	).Scan(&p.ID, &p.URL, &p.Platform, &p.CleanedText, &p.ContentHash, &p.Rendered,
		&p.FetchedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job posting: %w", err)
	}
	return &p, nil
}

// GetJobPostingByURL retrieves a stored posting by its URL.
func (db *DB) GetJobPostingByURL(ctx context.Context, url string) (*JobPosting, error) {
	var p JobPosting
	err := db.pool.QueryRow(ctx,
		`SELECT id, url, platform, cleaned_text, content_hash, rendered, fetched_at, created_at, updated_at
		 FROM job_postings WHERE url = $1`,
		url,
	).Scan(&p.ID, &p.URL, &p.Platform, &p.CleanedText, &p.ContentHash, &p.Rendered,
		&p.FetchedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "job posting "+url)
	}
	return &p, nil
}
