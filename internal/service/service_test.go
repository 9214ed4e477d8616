package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfind/screening-engine/internal/cache"
	"github.com/searchfind/screening-engine/internal/coverletter"
	"github.com/searchfind/screening-engine/internal/db"
	"github.com/searchfind/screening-engine/internal/fetch"
	"github.com/searchfind/screening-engine/internal/ingestion"
	"github.com/searchfind/screening-engine/internal/jobposting"
	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/metrics"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/types"
	"github.com/searchfind/screening-engine/internal/validation"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

PROFESSIONAL SUMMARY
Backend engineer with a focus on data platforms.

EXPERIENCE
Senior Software Engineer at Acme Corp
Jan 2019 - Present
- Led migration of billing services to Kubernetes
- Reduced latency by 40%

Software Engineer, Initech | 2015 - 2018
- Developed reporting pipelines in Python

EDUCATION
Bachelor of Science in Computer Science, Stanford University, 2015

SKILLS
Python, SQL, React
`

const sampleLetter = `Dear Hiring Manager,

I am writing to apply for the Data Analyst position at Globex. I am interested in joining your team because my background in analytics matches the role. In my current role at Initech I built dashboards and I improved reporting accuracy.

Thank you for your consideration. I look forward to hearing from you.

Sincerely,
Sam Lee`

const samplePosting = `Senior Data Engineer at Globex
Location: Austin, TX
Employment: Full-time, hybrid

About Us
Globex builds analytics tools for retailers. Our mission is to help teams grow with data.

Job Description
You will build data pipelines and collaborate with the analytics team to improve reporting.

Responsibilities
- Design and maintain batch pipelines
- Build dashboards that improve decision making
- Deploy services to production
- Analyze data quality issues
- Mentor junior engineers

Requirements
- 3+ years of experience with Python
- Bachelor's degree in Computer Science required
- Strong SQL skills are a must have
- Experience with Airflow is a plus
- Familiarity with Kafka preferred

Benefits
We offer health insurance, a 401k match and paid time off. Salary: $120,000 - $150,000.

How to Apply
Send your resume to jobs@globex.example. Globex is an equal opportunity employer.`

const sampleRequirements = `- 7+ years of experience with Go
- Bachelor's degree in Computer Science
- Strong communication skills
- Knowledge of Kubernetes is a plus
- 3 years of experience in data modeling`

func backendListing() *types.JobListing {
	return &types.JobListing{
		Title:          "Backend Engineer",
		Company:        "Globex",
		Description:    "We are hiring a backend engineer to build data services for our analytics team.",
		SkillsRequired: types.SkillList{"python", "django", "sql"},
	}
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.sets++
	return nil
}

type fakeStore struct {
	mu         sync.Mutex
	screenings map[uuid.UUID]types.ScreeningResult
	bulks      []*types.BulkResult
	analyses   []string
	postings   []string
	err        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{screenings: map[uuid.UUID]types.ScreeningResult{}}
}

func (f *fakeStore) SaveScreening(_ context.Context, r *types.ScreeningResult) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return uuid.Nil, f.err
	}
	id := uuid.MustParse(r.ID)
	f.screenings[id] = *r
	return id, nil
}

func (f *fakeStore) GetScreening(_ context.Context, id uuid.UUID) (*db.StoredScreening, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.screenings[id]
	if !ok {
		return nil, fmt.Errorf("screening %s: %w", id, db.ErrNotFound)
	}
	return &db.StoredScreening{ID: id, Result: r}, nil
}

func (f *fakeStore) SaveBulk(_ context.Context, b *types.BulkResult) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.bulks = append(f.bulks, b)
	return uuid.MustParse(b.ID), nil
}

func (f *fakeStore) GetBulk(_ context.Context, id uuid.UUID) (*db.StoredBulk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bulks {
		if b.ID == id.String() {
			return &db.StoredBulk{ID: id, JobTitle: b.JobTitle, Stats: b.Stats}, nil
		}
	}
	return nil, fmt.Errorf("bulk %s: %w", id, db.ErrNotFound)
}

func (f *fakeStore) SaveAnalysis(_ context.Context, kind, inputHash string, _ any) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.analyses = append(f.analyses, kind+":"+inputHash)
	return uuid.New(), nil
}

func (f *fakeStore) UpsertJobPosting(_ context.Context, input *db.JobPostingInput) (*db.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postings = append(f.postings, input.URL)
	return &db.JobPosting{URL: input.URL}, nil
}

type fixture struct {
	svc     *Service
	cache   *memoryCache
	store   *fakeStore
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logging.NewTestLogger(t)
	f := &fixture{
		cache:   newMemoryCache(),
		store:   newFakeStore(),
		metrics: metrics.New(prometheus.NewRegistry()),
	}
	f.svc = New(Deps{
		Screener: screening.New(screening.Options{
			Parser: ingestion.NewParser(ingestion.Options{Logger: logger}),
			Clock:  screening.FixedYear(2025),
			Logger: logger,
		}),
		Clock:    screening.FixedYear(2025),
		Cache:    f.cache,
		Store:    f.store,
		Metrics:  f.metrics,
		Logger:   logger,
	})
	return f
}

func (f *fixture) count(op, status string) float64 {
	return testutil.ToFloat64(f.metrics.Operations.WithLabelValues(op, status))
}

func TestScreen_PersistsAndCaches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := &types.Application{ID: "app-1", CandidateName: "Jane Doe", ResumeText: sampleResume}

	first, err := f.svc.Screen(ctx, backendListing(), app)
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "app-1", first.ApplicationID)
	assert.Equal(t, []string{"django"}, first.SkillsMatch.MissingRequired)
	assert.Len(t, f.store.screenings, 1)
	assert.Equal(t, 1, f.cache.sets)

	second, err := f.svc.Screen(ctx, backendListing(), app)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Len(t, f.store.screenings, 1)
	assert.Equal(t, 1.0, f.count(OpScreen, metrics.StatusSuccess))
	assert.Equal(t, 1.0, f.count(OpScreen, metrics.StatusCached))
	assert.Equal(t, uint64(1), histogramCount(t, f.metrics.OverallScore))

	stored, err := f.svc.GetScreening(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.OverallScore, stored.Result.OverallScore)
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(h))
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	return families[0].GetMetric()[0].GetHistogram().GetSampleCount()
}

func TestScreen_FilePathsBypassCache(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleResume), 0o644))

	result, err := f.svc.Screen(context.Background(), backendListing(), &types.Application{ResumeFilePath: path})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Zero(t, f.cache.sets)
	assert.Len(t, f.store.screenings, 1)
}

func TestScreen_Rejection(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Screen(context.Background(), nil, &types.Application{ResumeText: sampleResume})
	var screeningErr *screening.ScreeningError
	require.True(t, errors.As(err, &screeningErr))
	assert.Equal(t, screening.MsgNoJobListing, screeningErr.Message)

	assert.Zero(t, f.cache.sets)
	assert.Empty(t, f.store.screenings)
	assert.Equal(t, 1.0, f.count(OpScreen, metrics.StatusError))
}

func TestScreen_BackendFailuresAreNonFatal(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("connection refused")
	f.cache.getErr = errors.New("redis down")

	result, err := f.svc.Screen(context.Background(), backendListing(), &types.Application{ResumeText: sampleResume})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
}

func TestBulkScreen(t *testing.T) {
	f := newFixture(t)
	apps := []types.Application{
		{ID: "a", CandidateName: "Jane", ResumeText: sampleResume},
		{ID: "b", CandidateName: "Nobody", ResumeText: "Hi there."},
	}

	result, err := f.svc.BulkScreen(context.Background(), backendListing(), apps)
	require.NoError(t, err)

	_, err = uuid.Parse(result.ID)
	require.NoError(t, err)
	require.Len(t, result.ScreeningResults, 1)
	assert.NotEmpty(t, result.ScreeningResults[0].ID)
	assert.Equal(t, 2, result.Stats.TotalApplications)
	assert.Equal(t, 1, result.Stats.ValidApplications)
	require.Len(t, f.store.bulks, 1)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.BulkInFlight))

	stored, err := f.svc.GetBulk(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", stored.JobTitle)
}

func TestGetScreening_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetScreening(ctx, "not-a-uuid")
	var idErr *InvalidIDError
	assert.True(t, errors.As(err, &idErr))

	_, err = f.svc.GetScreening(ctx, uuid.NewString())
	assert.ErrorIs(t, err, db.ErrNotFound)

	_, err = New(Deps{}).GetScreening(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = New(Deps{}).GetBulk(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestGenerateCriteria(t *testing.T) {
	f := newFixture(t)

	criteria, err := f.svc.GenerateCriteria(context.Background(), backendListing())
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", criteria.JobTitle)
	require.Len(t, f.store.analyses, 1)
	assert.True(t, strings.HasPrefix(f.store.analyses[0], db.KindCriteria+":"))
}

func TestValidateDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.ValidateDocument(ctx, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, types.DocumentResume, result.DocumentType)

	again, err := f.svc.ValidateDocument(ctx, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, result.DocumentType, again.DocumentType)
	assert.Equal(t, result.Confidence, again.Confidence)
	assert.Equal(t, 1.0, f.count(OpValidateDocument, metrics.StatusCached))

	resume, err := f.svc.ValidateResume(ctx, "Hi there.")
	require.NoError(t, err)
	assert.False(t, resume.IsValidResume)
	assert.Equal(t, validation.ErrTooShort, resume.Error)
}

func TestParseDocument(t *testing.T) {
	f := newFixture(t)

	parsed, err := f.svc.ParseDocument(context.Background(), []byte(sampleResume), "resume.md")
	require.NoError(t, err)
	assert.Equal(t, ingestion.FormatMarkdown, parsed.Metadata.Format)
	assert.Equal(t, "resume.md", parsed.Metadata.Source)
	assert.Equal(t, types.DocumentResume, parsed.Validation.DocumentType)

	_, err = f.svc.ParseDocument(context.Background(), []byte("x"), "resume.pdf")
	assert.ErrorIs(t, err, ingestion.ErrUnsupportedFormat)
}

func TestAnalyzeCoverLetter(t *testing.T) {
	f := newFixture(t)

	analysis, err := f.svc.AnalyzeCoverLetter(context.Background(), CoverLetterRequest{
		Text:        sampleLetter,
		CompanyName: "Globex",
	})
	require.NoError(t, err)
	assert.True(t, analysis.IsValid)
	assert.Nil(t, analysis.JobRelevance)
	require.Len(t, f.store.analyses, 1)
	assert.True(t, strings.HasPrefix(f.store.analyses[0], db.KindCoverLetter+":"))

	_, err = f.svc.AnalyzeCoverLetter(context.Background(), CoverLetterRequest{Text: "too short"})
	var validationErr *coverletter.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestAnalyzeJobPosting(t *testing.T) {
	f := newFixture(t)

	analysis, err := f.svc.AnalyzeJobPosting(context.Background(), samplePosting)
	require.NoError(t, err)
	assert.True(t, analysis.IsValid)
	assert.Equal(t, "Globex", analysis.ExtractedInfo.CompanyName)

	optimized, err := f.svc.OptimizeRequirements(context.Background(), sampleRequirements)
	require.NoError(t, err)
	assert.Equal(t, 1, optimized.MustHaveCount)
	assert.Equal(t, 4, optimized.NiceToHaveCount)
	require.Len(t, f.store.analyses, 2)
	assert.True(t, strings.HasPrefix(f.store.analyses[1], db.KindRequirements+":"))

	_, err = f.svc.OptimizeRequirements(context.Background(), "  ")
	var validationErr *jobposting.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestAnalyzeJobPostingURL(t *testing.T) {
	var page strings.Builder
	page.WriteString("<html><body><main>")
	for _, line := range strings.Split(samplePosting, "\n") {
		if line != "" {
			page.WriteString("<p>" + line + "</p>")
		}
	}
	page.WriteString("</main></body></html>")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page.String()))
	}))
	defer server.Close()

	logger := logging.NewTestLogger(t)
	store := newFakeStore()
	svc := New(Deps{
		Parser: ingestion.NewParser(ingestion.Options{Fetcher: fetch.NewFetcher(fetch.FetcherConfig{}), Logger: logger}),
		Store:  store,
		Logger: logger,
	})

	result, err := svc.AnalyzeJobPostingURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, server.URL, result.Source.Source)
	assert.Equal(t, []string{server.URL}, store.postings)

	_, err = svc.AnalyzeJobPostingURL(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestRedisBackedCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	m := metrics.New(nil)
	svc := New(Deps{
		Cache:   cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0),
		Metrics: m,
		Logger:  logging.NewTestLogger(t),
	})
	ctx := context.Background()

	first, err := svc.OptimizeRequirements(ctx, sampleRequirements)
	require.NoError(t, err)
	second, err := svc.OptimizeRequirements(ctx, sampleRequirements)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(OpOptimizeRequirements, metrics.StatusCached)))
	assert.Len(t, mr.Keys(), 1)
}
