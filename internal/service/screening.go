package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/searchfind/screening-engine/internal/db"
	"github.com/searchfind/screening-engine/internal/types"
)

type screeningRequest struct {
	JobListing  *types.JobListing  `json:"job_listing"`
	Application *types.Application `json:"application"`
}

type bulkRequest struct {
	JobListing   *types.JobListing   `json:"job_listing"`
	Applications []types.Application `json:"applications"`
}

func referencesFiles(apps ...types.Application) bool {
	for _, a := range apps {
		if a.ResumeFilePath != "" || a.CoverLetterFilePath != "" {
			return true
		}
	}
	return false
}

// Screen scores one application. The result gets a new ID, and is stored
// when persistence is configured.
func (s *Service) Screen(ctx context.Context, listing *types.JobListing, app *types.Application) (*types.ScreeningResult, error) {
	cacheable := app != nil && !referencesFiles(*app)
	return run(ctx, s, operation[*types.ScreeningResult]{
		name:      OpScreen,
		request:   screeningRequest{JobListing: listing, Application: app},
		cacheable: cacheable,
		compute: func() (*types.ScreeningResult, error) {
			result, err := s.screener.ScreenApplication(ctx, listing, app)
			if err != nil {
				return nil, err
			}
			result.ID = uuid.NewString()
			s.metrics.ObserveScore(float64(result.OverallScore))
			return result, nil
		},
		persist: func(r *types.ScreeningResult, _ string) error {
			_, err := s.store.SaveScreening(ctx, r)
			return err
		},
	})
}

// BulkScreen scores and ranks many applications for one listing.
func (s *Service) BulkScreen(ctx context.Context, listing *types.JobListing, apps []types.Application) (*types.BulkResult, error) {
	done := s.metrics.TrackBulk()
	defer done()

	return run(ctx, s, operation[*types.BulkResult]{
		name:      OpBulkScreen,
		request:   bulkRequest{JobListing: listing, Applications: apps},
		cacheable: !referencesFiles(apps...),
		compute: func() (*types.BulkResult, error) {
			result, err := s.screener.BulkScreen(ctx, listing, apps)
			if err != nil {
				return nil, err
			}
			result.ID = uuid.NewString()
			for i := range result.ScreeningResults {
				result.ScreeningResults[i].ID = uuid.NewString()
				s.metrics.ObserveScore(float64(result.ScreeningResults[i].OverallScore))
			}
			return result, nil
		},
		persist: func(r *types.BulkResult, _ string) error {
			_, err := s.store.SaveBulk(ctx, r)
			return err
		},
	})
}

// GenerateCriteria derives screening criteria from a listing.
func (s *Service) GenerateCriteria(ctx context.Context, listing *types.JobListing) (*types.ScreeningCriteria, error) {
	return run(ctx, s, operation[*types.ScreeningCriteria]{
		name:      OpCriteria,
		request:   struct{ JobListing *types.JobListing }{listing},
		cacheable: true,
		compute: func() (*types.ScreeningCriteria, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return s.screener.GenerateCriteria(listing)
		},
		persist: func(r *types.ScreeningCriteria, hash string) error {
			return s.saveAnalysis(ctx, db.KindCriteria, hash, r)
		},
	})
}

// GetScreening returns a stored screening.
func (s *Service) GetScreening(ctx context.Context, id string) (*db.StoredScreening, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.GetScreening(ctx, parsed)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		s.logger.WithError(err).Error("failed to load screening", map[string]interface{}{"id": id})
	}
	return stored, err
}

// GetBulk returns a stored bulk screening with its ranked results.
func (s *Service) GetBulk(ctx context.Context, id string) (*db.StoredBulk, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.GetBulk(ctx, parsed)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		s.logger.WithError(err).Error("failed to load bulk screening", map[string]interface{}{"id": id})
	}
	return stored, err
}
