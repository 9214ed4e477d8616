package types

// CandidateTier buckets an overall score into a hiring recommendation band.
type CandidateTier string

const (
	TierExcellent CandidateTier = "excellent"
	TierStrong    CandidateTier = "strong"
	TierGood      CandidateTier = "good"
	TierPotential CandidateTier = "potential"
	TierLimited   CandidateTier = "limited"
	TierPoor      CandidateTier = "poor"
)

// TierRange is an inclusive score band.
type TierRange struct {
	Tier CandidateTier
	Min  int
	Max  int
}

// TierRanges is the ordered lookup table; the first matching range wins.
var TierRanges = []TierRange{
	{TierExcellent, 90, 100},
	{TierStrong, 80, 89},
	{TierGood, 70, 79},
	{TierPotential, 60, 69},
	{TierLimited, 40, 59},
	{TierPoor, 0, 39},
}

// TierForScore returns the tier whose range contains score, defaulting to poor.
func TierForScore(score int) CandidateTier {
	for _, r := range TierRanges {
		if score >= r.Min && score <= r.Max {
			return r.Tier
		}
	}
	return TierPoor
}

// SkillsMatch compares candidate skills to the listing's skills.
type SkillsMatch struct {
	Score               int      `json:"score"`
	MatchingRequired    []string `json:"matching_required"`
	MissingRequired     []string `json:"missing_required"`
	MatchingPreferred   []string `json:"matching_preferred"`
	MissingPreferred    []string `json:"missing_preferred"`
	PercentageRequired  float64  `json:"percentage_required"`
	PercentagePreferred float64  `json:"percentage_preferred"`
	Evaluation          string   `json:"evaluation"`
}

// ExperienceMatch compares years and areas of experience.
type ExperienceMatch struct {
	Score                int      `json:"score"`
	YearsExperience      int      `json:"years_experience"`
	YearsRequired        int      `json:"years_required"`
	YearsPreferred       int      `json:"years_preferred"`
	YearsScore           int      `json:"years_score"`
	YearsEvaluation      string   `json:"years_evaluation"`
	RelevantAreasMatched []string `json:"relevant_areas_matched"`
	RelevantAreasMissing []string `json:"relevant_areas_missing"`
	AreasScore           int      `json:"areas_score"`
	AreasEvaluation      string   `json:"areas_evaluation"`
	ExperienceEntries    int      `json:"experience_entries"`
}

// Degree is the candidate's highest degree.
type Degree struct {
	Type        string `json:"type"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// EducationMatch compares degree level and field of study.
type EducationMatch struct {
	Score                  int      `json:"score"`
	CandidateHighestDegree *Degree  `json:"candidate_highest_degree"`
	HasRequiredEducation   bool     `json:"has_required_education"`
	RequiredDegree         string   `json:"required_degree,omitempty"`
	DegreeScore            int      `json:"degree_score"`
	DegreeEvaluation       string   `json:"degree_evaluation"`
	FieldMatches           []string `json:"field_matches"`
	FieldMismatches        []string `json:"field_mismatches"`
	FieldScore             int      `json:"field_score"`
	FieldEvaluation        string   `json:"field_evaluation"`
	IsEducationRequired    bool     `json:"is_education_required"`
}

// ResumeQuality grades completeness and achievement orientation.
type ResumeQuality struct {
	Score             int      `json:"score"`
	CompletenessScore int      `json:"completeness_score"`
	AchievementScore  int      `json:"achievement_score"`
	FormattingScore   int      `json:"formatting_score"`
	Evaluation        string   `json:"evaluation"`
	ImprovementAreas  []string `json:"improvement_areas"`
}

// CoverLetterQuality grades a cover letter against the listing.
type CoverLetterQuality struct {
	Score                int      `json:"score"`
	PersonalizationScore int      `json:"personalization_score"`
	RelevanceScore       int      `json:"relevance_score"`
	StructureScore       int      `json:"structure_score"`
	JobTitleMentioned    bool     `json:"job_title_mentioned"`
	CompanyMentioned     bool     `json:"company_mentioned"`
	Evaluation           string   `json:"evaluation"`
	ImprovementAreas     []string `json:"improvement_areas,omitempty"`
}

// SuggestedQuestions groups interview questions by theme.
type SuggestedQuestions struct {
	SkillsQuestions     []string `json:"skills_questions"`
	ExperienceQuestions []string `json:"experience_questions"`
	GeneralQuestions    []string `json:"general_questions"`
}

// ScreeningResult is the outcome of screening one application.
type ScreeningResult struct {
	ID                 string             `json:"id,omitempty"`
	ApplicationID      string             `json:"application_id,omitempty"`
	IsValid            bool               `json:"is_valid"`
	CandidateName      string             `json:"candidate_name"`
	JobTitle           string             `json:"job_title"`
	OverallScore       int                `json:"overall_score"`
	CandidateTier      CandidateTier      `json:"candidate_tier"`
	SkillsMatch        SkillsMatch        `json:"skills_match"`
	ExperienceMatch    ExperienceMatch    `json:"experience_match"`
	EducationMatch     EducationMatch     `json:"education_match"`
	ResumeQuality      ResumeQuality      `json:"resume_quality"`
	CoverLetterQuality CoverLetterQuality `json:"cover_letter_quality"`
	HasCoverLetter     bool               `json:"has_cover_letter"`
	ScreeningSummary   string             `json:"screening_summary"`
	RedFlags           []string           `json:"red_flags,omitempty"`
	RecommendedActions []string           `json:"recommended_actions"`
	SuggestedQuestions SuggestedQuestions `json:"suggested_questions"`
}

// TierCandidate is a short reference to a screened candidate.
type TierCandidate struct {
	CandidateName string `json:"candidate_name"`
	OverallScore  int    `json:"overall_score"`
	ApplicationID string `json:"application_id"`
}

// BulkStats aggregates a bulk screening run.
type BulkStats struct {
	TotalApplications int                   `json:"total_applications"`
	ValidApplications int                   `json:"valid_applications"`
	TierDistribution  map[CandidateTier]int `json:"tier_distribution"`
	AverageScore      float64               `json:"average_score"`
}

// BulkResult ranks every valid application for one listing.
type BulkResult struct {
	ID               string                            `json:"id,omitempty"`
	IsValid          bool                              `json:"is_valid"`
	JobTitle         string                            `json:"job_title"`
	ScreeningResults []ScreeningResult                 `json:"screening_results"`
	CandidatesByTier map[CandidateTier][]TierCandidate `json:"candidates_by_tier"`
	Stats            BulkStats                         `json:"stats"`
}

// SkillCriteria lists must-have and nice-to-have skills.
type SkillCriteria struct {
	MustHave   []string `json:"must_have"`
	NiceToHave []string `json:"nice_to_have"`
}

// EducationCriteria is the education bar for a listing.
type EducationCriteria struct {
	MinimumLevel    string   `json:"minimum_level"`
	PreferredFields []string `json:"preferred_fields"`
	IsRequired      bool     `json:"is_required"`
}

// ExperienceCriteria is the experience bar for a listing.
type ExperienceCriteria struct {
	MinimumYears   int      `json:"minimum_years"`
	PreferredYears int      `json:"preferred_years"`
	KeyAreas       []string `json:"key_areas"`
}

// ScreeningCriteria is a candidate-independent checklist for a listing.
type ScreeningCriteria struct {
	IsValid  bool           `json:"is_valid"`
	JobTitle string         `json:"job_title"`
	Criteria CriteriaDetail `json:"screening_criteria"`
}

// CriteriaDetail is the checklist body of ScreeningCriteria.
type CriteriaDetail struct {
	Skills                 SkillCriteria      `json:"skills"`
	Education              EducationCriteria  `json:"education"`
	Experience             ExperienceCriteria `json:"experience"`
	ScreeningQuestions     []string           `json:"screening_questions"`
	AutomaticDisqualifiers []string           `json:"automatic_disqualifiers"`
	RedFlags               []string           `json:"red_flags"`
}
