package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

var knownKinds = map[string]bool{
	KindCoverLetter:        true,
	KindJobPosting:         true,
	KindRequirements:       true,
	KindCriteria:           true,
	KindDocumentValidation: true,
	KindResumeValidation:   true,
	KindResumeAnalysis:     true,
	KindCandidateMatch:     true,
	KindQualification:      true,
	KindImprovementPlan:    true,
}

// SaveAnalysis stores an analyzer result under kind. inputHash identifies
// the request that produced it.
func (db *DB) SaveAnalysis(ctx context.Context, kind, inputHash string, result any) (uuid.UUID, error) {
	if !knownKinds[kind] {
		return uuid.Nil, fmt.Errorf("unknown analysis kind %q", kind)
	}
	content, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal %s analysis: %w", kind, err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, kind, input_hash, result) VALUES ($1, $2, $3, $4)`,
		id, kind, inputHash, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save %s analysis: %w", kind, err)
	}
	return id, nil
}

// GetAnalysis retrieves an analysis by ID. Result holds the stored JSON.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, input_hash, result, created_at FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Kind, &a.InputHash, &a.Result, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err, "analysis "+id.String())
	}
	return &a, nil
}

// LatestAnalysis returns the most recent analysis of kind for inputHash.
func (db *DB) LatestAnalysis(ctx context.Context, kind, inputHash string) (*Analysis, error) {
	var a Analysis
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, input_hash, result, created_at FROM analyses
		 WHERE kind = $1 AND input_hash = $2 ORDER BY created_at DESC LIMIT 1`,
		kind, inputHash,
	).Scan(&a.ID, &a.Kind, &a.InputHash, &a.Result, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err, kind+" analysis")
	}
	return &a, nil
}
