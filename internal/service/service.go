// Package service is the facade the HTTP server and the CLI share. It runs
// the analyzers and adds result caching, persistence and metrics around them.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/searchfind/screening-engine/internal/cache"
	"github.com/searchfind/screening-engine/internal/coverletter"
	"github.com/searchfind/screening-engine/internal/db"
	"github.com/searchfind/screening-engine/internal/ingestion"
	"github.com/searchfind/screening-engine/internal/jobposting"
	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/matching"
	"github.com/searchfind/screening-engine/internal/metrics"
	"github.com/searchfind/screening-engine/internal/resumeanalysis"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/textproc"
	"github.com/searchfind/screening-engine/internal/types"
	"github.com/searchfind/screening-engine/internal/validation"
)

// Operation names used for metrics labels, cache namespaces and logs.
const (
	OpValidateDocument     = "validate_document"
	OpValidateResume       = "validate_resume"
	OpParseDocument        = "parse_document"
	OpScreen               = "screen"
	OpBulkScreen           = "bulk_screen"
	OpCriteria             = "criteria"
	OpCoverLetter          = "cover_letter"
	OpJobPosting           = "job_posting"
	OpJobPostingURL        = "job_posting_url"
	OpOptimizeRequirements = "optimize_requirements"
	OpAnalyzeResume        = "analyze_resume"
	OpMatchCandidate       = "match_candidate"
	OpRankCandidates       = "rank_candidates"
	OpCheckQualification   = "check_qualification"
	OpCheckQualifications  = "check_qualification_batch"
	OpImprovementPlan      = "improvement_plan"
)

// ErrNoStore is returned by lookups when persistence is not configured.
var ErrNoStore = errors.New("persistence is not configured")

// InvalidIDError reports a malformed record ID.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %q", e.ID)
}

// Cache stores JSON results by key. *cache.Cache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// Store persists results. *db.DB satisfies it.
type Store interface {
	SaveScreening(ctx context.Context, r *types.ScreeningResult) (uuid.UUID, error)
	GetScreening(ctx context.Context, id uuid.UUID) (*db.StoredScreening, error)
	SaveBulk(ctx context.Context, b *types.BulkResult) (uuid.UUID, error)
	GetBulk(ctx context.Context, id uuid.UUID) (*db.StoredBulk, error)
	SaveAnalysis(ctx context.Context, kind, inputHash string, result any) (uuid.UUID, error)
	UpsertJobPosting(ctx context.Context, input *db.JobPostingInput) (*db.JobPosting, error)
}

// Deps are the collaborators of a Service. Nil analyzers are built from the
// shared Validator, Processor and Clock; nil Cache, Store and Metrics disable
// those concerns.
type Deps struct {
	Validator    *validation.ContentValidator
	Processor    *textproc.Processor
	Screener     *screening.Screener
	CoverLetters *coverletter.Analyzer
	JobPostings  *jobposting.Analyzer
	Resumes      *resumeanalysis.Analyzer
	Matcher      *matching.Matcher
	Parser       *ingestion.Parser
	Clock        screening.Clock
	Cache        Cache
	Store        Store
	Metrics      *metrics.Metrics
	Logger       logging.Logger
}

// Service runs engine operations. It is safe for concurrent use.
type Service struct {
	validator    *validation.ContentValidator
	processor    *textproc.Processor
	screener     *screening.Screener
	coverLetters *coverletter.Analyzer
	jobPostings  *jobposting.Analyzer
	resumes      *resumeanalysis.Analyzer
	matcher      *matching.Matcher
	parser       *ingestion.Parser
	cache        Cache
	store        Store
	metrics      *metrics.Metrics
	logger       logging.Logger
}

// New returns a Service built from deps.
func New(deps Deps) *Service {
	s := &Service{
		validator:    deps.Validator,
		processor:    deps.Processor,
		screener:     deps.Screener,
		coverLetters: deps.CoverLetters,
		jobPostings:  deps.JobPostings,
		resumes:      deps.Resumes,
		matcher:      deps.Matcher,
		parser:       deps.Parser,
		cache:        deps.Cache,
		store:        deps.Store,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
	}
	if s.logger == nil {
		s.logger = logging.NewNoOpLogger()
	}
	if s.processor == nil {
		s.processor = textproc.New()
	}
	if s.validator == nil {
		s.validator = validation.NewContentValidator(s.processor)
	}
	if s.parser == nil {
		s.parser = ingestion.NewParser(ingestion.Options{Logger: s.logger})
	}
	if s.screener == nil {
		s.screener = screening.New(screening.Options{
			Validator: s.validator,
			Processor: s.processor,
			Parser:    s.parser,
			Clock:     deps.Clock,
			Logger:    s.logger,
		})
	}
	if s.coverLetters == nil {
		s.coverLetters = coverletter.New(coverletter.Options{Validator: s.validator, Processor: s.processor, Logger: s.logger})
	}
	if s.jobPostings == nil {
		s.jobPostings = jobposting.New(jobposting.Options{Validator: s.validator, Processor: s.processor, Logger: s.logger})
	}
	if s.resumes == nil {
		s.resumes = resumeanalysis.New(resumeanalysis.Options{
			Validator: s.validator,
			Processor: s.processor,
			Clock:     deps.Clock,
			Logger:    s.logger,
		})
	}
	if s.matcher == nil {
		s.matcher = matching.New(matching.Options{
			Validator: s.validator,
			Processor: s.processor,
			Screener:  s.screener,
			Resumes:   s.resumes,
			Parser:    s.parser,
			Clock:     deps.Clock,
			Logger:    s.logger,
		})
	}
	return s
}

// HasStore reports whether results are persisted.
func (s *Service) HasStore() bool {
	return s.store != nil
}

// operation describes one cached, measured and optionally persisted call.
type operation[T any] struct {
	name    string
	request interface{}
	// cacheable is false when the request points at mutable inputs such as
	// files on disk.
	cacheable bool
	compute   func() (T, error)
	persist   func(result T, inputHash string) error
}

// run executes op: cache lookup, compute, metrics, best-effort persistence
// and cache store, in that order.
func run[T any](ctx context.Context, s *Service, op operation[T]) (T, error) {
	start := time.Now()
	log := s.logger.WithFields(map[string]interface{}{"operation": op.name})

	key, err := cache.Key(op.name, op.request)
	if err != nil {
		log.WithError(err).Warn("failed to derive request key", nil)
		key = ""
	}
	useCache := s.cache != nil && op.cacheable && key != ""

	if useCache {
		var hit T
		found, err := s.cache.Get(ctx, key, &hit)
		switch {
		case err != nil:
			log.WithError(err).Warn("cache lookup failed", nil)
		case found:
			s.metrics.ObserveStatus(op.name, start, metrics.StatusCached)
			log.Debug("served from cache", map[string]interface{}{"key": key})
			return hit, nil
		}
	}

	result, err := op.compute()
	s.metrics.Observe(op.name, start, err)
	if err != nil {
		var zero T
		log.Debug("operation rejected", map[string]interface{}{"error": err.Error()})
		return zero, err
	}

	if s.store != nil && op.persist != nil {
		if err := op.persist(result, strings.TrimPrefix(key, op.name+":")); err != nil {
			log.WithError(err).Warn("failed to persist result", nil)
		}
	}
	if useCache {
		if err := s.cache.Set(ctx, key, result); err != nil {
			log.WithError(err).Warn("cache store failed", nil)
		}
	}

	log.Debug("operation completed", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return result, nil
}

func (s *Service) saveAnalysis(ctx context.Context, kind, hash string, result any) error {
	_, err := s.store.SaveAnalysis(ctx, kind, hash, result)
	return err
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, &InvalidIDError{ID: id}
	}
	return parsed, nil
}
