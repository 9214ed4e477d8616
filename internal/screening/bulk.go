package screening

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/types"
)

// BulkScreen screens every application against listing and ranks the valid
// ones by overall score, highest first. Applications that fail screening are
// skipped. Ties keep input order.
func (s *Screener) BulkScreen(ctx context.Context, listing *types.JobListing, apps []types.Application) (*types.BulkResult, error) {
	if listing.IsEmpty() {
		return nil, &ScreeningError{Message: MsgNoJobListing}
	}
	if len(apps) == 0 {
		return nil, &ScreeningError{Message: MsgNoApplications}
	}

	slots := make([]*types.ScreeningResult, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range apps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := s.ScreenApplication(gctx, listing, &apps[i])
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				s.logger.Debug("application skipped in bulk screening", map[string]interface{}{
					"index":          i,
					"application_id": apps[i].ID,
					"reason":         err.Error(),
				})
				return nil
			}
			if result.ApplicationID == "" {
				result.ApplicationID = apps[i].ID
			}
			slots[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.ScreeningResult, 0, len(apps))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})

	byTier := map[types.CandidateTier][]types.TierCandidate{}
	distribution := map[types.CandidateTier]int{}
	total := 0
	for _, r := range results {
		byTier[r.CandidateTier] = append(byTier[r.CandidateTier], types.TierCandidate{
			CandidateName: r.CandidateName,
			OverallScore:  r.OverallScore,
			ApplicationID: r.ApplicationID,
		})
		distribution[r.CandidateTier]++
		total += r.OverallScore
	}

	return &types.BulkResult{
		IsValid:          true,
		JobTitle:         orDefault(listing.Title, "Unknown Position"),
		ScreeningResults: results,
		CandidatesByTier: byTier,
		Stats: types.BulkStats{
			TotalApplications: len(apps),
			ValidApplications: len(results),
			TierDistribution:  distribution,
			AverageScore:      scoring.Round1(float64(total) / float64(max(1, len(results)))),
		},
	}, nil
}
