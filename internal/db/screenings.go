package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/searchfind/screening-engine/internal/types"
)

const defaultListLimit = 50

// resultID returns the UUID in r.ID, assigning a fresh one when r.ID is not
// a valid UUID.
func resultID(r *types.ScreeningResult) uuid.UUID {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		id = uuid.New()
		r.ID = id.String()
	}
	return id
}

const insertScreeningSQL = `INSERT INTO screenings (id, bulk_id, application_id, candidate_name, job_title,
                         overall_score, candidate_tier, result)
 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func screeningArgs(id uuid.UUID, bulkID *uuid.UUID, r *types.ScreeningResult) ([]any, error) {
	content, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal screening: %w", err)
	}
	return []any{id, bulkID, r.ApplicationID, r.CandidateName, r.JobTitle,
		r.OverallScore, string(r.CandidateTier), content}, nil
}

// SaveScreening stores one screening result. r.ID is used as the record ID
// when it is a UUID; otherwise a new ID is assigned to r.ID.
func (db *DB) SaveScreening(ctx context.Context, r *types.ScreeningResult) (uuid.UUID, error) {
	id := resultID(r)
	args, err := screeningArgs(id, nil, r)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := db.pool.Exec(ctx, insertScreeningSQL, args...); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save screening: %w", err)
	}
	return id, nil
}

// GetScreening retrieves a screening by ID.
func (db *DB) GetScreening(ctx context.Context, id uuid.UUID) (*StoredScreening, error) {
	var (
		s       StoredScreening
		content []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, bulk_id, result, created_at FROM screenings WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.BulkID, &content, &s.CreatedAt)
	if err != nil {
		return nil, notFound(err, "screening "+id.String())
	}
	if err := json.Unmarshal(content, &s.Result); err != nil {
		return nil, fmt.Errorf("failed to decode screening %s: %w", id, err)
	}
	return &s, nil
}

// SaveBulk stores a bulk screening and each of its results in one
// transaction.
func (db *DB) SaveBulk(ctx context.Context, b *types.BulkResult) (uuid.UUID, error) {
	bulkID, err := uuid.Parse(b.ID)
	if err != nil {
		bulkID = uuid.New()
		b.ID = bulkID.String()
	}
	stats, err := json.Marshal(b.Stats)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal bulk stats: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO bulk_screenings (id, job_title, total_applications, valid_applications, average_score, stats)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		bulkID, b.JobTitle, b.Stats.TotalApplications, b.Stats.ValidApplications, b.Stats.AverageScore, stats,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save bulk screening: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range b.ScreeningResults {
		r := &b.ScreeningResults[i]
		args, err := screeningArgs(resultID(r), &bulkID, r)
		if err != nil {
			return uuid.Nil, err
		}
		batch.Queue(insertScreeningSQL, args...)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return uuid.Nil, fmt.Errorf("failed to save bulk results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit bulk screening: %w", err)
	}
	return bulkID, nil
}

// GetBulk retrieves a bulk screening with its results, best first.
func (db *DB) GetBulk(ctx context.Context, id uuid.UUID) (*StoredBulk, error) {
	var (
		b     StoredBulk
		stats []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_title, total_applications, valid_applications, average_score, stats, created_at
		 FROM bulk_screenings WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.JobTitle, &b.TotalApplications, &b.ValidApplications, &b.AverageScore, &stats, &b.CreatedAt)
	if err != nil {
		return nil, notFound(err, "bulk screening "+id.String())
	}
	if err := json.Unmarshal(stats, &b.Stats); err != nil {
		return nil, fmt.Errorf("failed to decode bulk stats: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, bulk_id, result, created_at FROM screenings
		 WHERE bulk_id = $1 ORDER BY overall_score DESC, created_at`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bulk results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s       StoredScreening
			content []byte
		)
		if err := rows.Scan(&s.ID, &s.BulkID, &content, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan screening: %w", err)
		}
		if err := json.Unmarshal(content, &s.Result); err != nil {
			return nil, fmt.Errorf("failed to decode screening %s: %w", s.ID, err)
		}
		b.Screenings = append(b.Screenings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list bulk results: %w", err)
	}
	return &b, nil
}

// buildQuery renders the filtered list query and its arguments.
func (f ScreeningFilters) buildQuery() (string, []any) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}

	query := `SELECT id, bulk_id, application_id, candidate_name, job_title, overall_score, candidate_tier, created_at
		FROM screenings WHERE 1=1`
	args := []any{}
	argNum := 1

	if f.JobTitle != "" {
		query += fmt.Sprintf(" AND job_title ILIKE $%d", argNum)
		args = append(args, "%"+f.JobTitle+"%")
		argNum++
	}
	if f.Tier != "" {
		query += fmt.Sprintf(" AND candidate_tier = $%d", argNum)
		args = append(args, string(f.Tier))
		argNum++
	}
	if f.BulkID != nil {
		query += fmt.Sprintf(" AND bulk_id = $%d", argNum)
		args = append(args, *f.BulkID)
		argNum++
	}
	if f.MinScore > 0 {
		query += fmt.Sprintf(" AND overall_score >= $%d", argNum)
		args = append(args, f.MinScore)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, f.Limit)
	return query, args
}

// ListScreenings returns recent screenings matching filters, newest first.
func (db *DB) ListScreenings(ctx context.Context, filters ScreeningFilters) ([]ScreeningSummary, error) {
	query, args := filters.buildQuery()
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenings: %w", err)
	}
	defer rows.Close()

	var out []ScreeningSummary
	for rows.Next() {
		var (
			s    ScreeningSummary
			tier string
		)
		if err := rows.Scan(&s.ID, &s.BulkID, &s.ApplicationID, &s.CandidateName, &s.JobTitle,
			&s.OverallScore, &tier, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan screening: %w", err)
		}
		s.CandidateTier = types.CandidateTier(tier)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list screenings: %w", err)
	}
	return out, nil
}
