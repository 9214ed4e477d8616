package jobposting

import (
	"github.com/searchfind/screening-engine/internal/scoring"
)

// Quality factor weights. They sum to 1.
const (
	TitleWeight            = 0.15
	DescriptionWeight      = 0.20
	RequirementsWeight     = 0.15
	ResponsibilitiesWeight = 0.15
	BenefitsWeight         = 0.10
	InclusivityWeight      = 0.15
	StructureWeight        = 0.10
)

const (
	benefitsSectionPoints = 40
	pointsPerBenefit      = 8
	maxBenefitPoints      = 40
	salaryPoints          = 20
)

// QualityScore is one weighted factor of the overall quality.
type QualityScore struct {
	Score       int     `json:"score" yaml:"score"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Description string  `json:"description" yaml:"description"`
	Evaluation  string  `json:"evaluation" yaml:"evaluation"`

	raw float64
}

// OverallQuality is the weighted sum of the quality factors.
type OverallQuality struct {
	Score      float64 `json:"score" yaml:"score"`
	Evaluation string  `json:"evaluation" yaml:"evaluation"`
}

// QualityScores grades a posting on seven weighted factors.
type QualityScores struct {
	TitleQuality            QualityScore   `json:"title_quality" yaml:"title_quality"`
	DescriptionQuality      QualityScore   `json:"description_quality" yaml:"description_quality"`
	RequirementsClarity     QualityScore   `json:"requirements_clarity" yaml:"requirements_clarity"`
	ResponsibilitiesClarity QualityScore   `json:"responsibilities_clarity" yaml:"responsibilities_clarity"`
	BenefitsAppeal          QualityScore   `json:"benefits_appeal" yaml:"benefits_appeal"`
	Inclusivity             QualityScore   `json:"inclusivity_score" yaml:"inclusivity_score"`
	StructureQuality        QualityScore   `json:"structure_quality" yaml:"structure_quality"`
	Overall                 OverallQuality `json:"overall_quality" yaml:"overall_quality"`
}

func (q QualityScores) factors() []QualityScore {
	return []QualityScore{
		q.TitleQuality, q.DescriptionQuality, q.RequirementsClarity, q.ResponsibilitiesClarity,
		q.BenefitsAppeal, q.Inclusivity, q.StructureQuality,
	}
}

func factor(score, weight float64, description, evaluation string) QualityScore {
	return QualityScore{
		Score:       scoring.Clamp(score),
		Weight:      weight,
		Description: description,
		Evaluation:  evaluation,
		raw:         score,
	}
}

// scoreEvaluation grades score on a nine-step scale.
func scoreEvaluation(score float64, category string) string {
	switch {
	case score >= 90:
		return "Excellent " + category
	case score >= 80:
		return "Very good " + category
	case score >= 70:
		return "Good " + category
	case score >= 60:
		return "Above average " + category
	case score >= 50:
		return "Average " + category
	case score >= 40:
		return "Below average " + category
	case score >= 30:
		return "Poor " + category
	case score >= 20:
		return "Very poor " + category
	}
	return "Inadequate " + category
}

func calculateQuality(info Info, structure StructureAnalysis, content ContentAnalysis, reqs RequirementsAnalysis, incl InclusivityAnalysis) QualityScores {
	var q QualityScores

	const titleDesc = "How clear, specific, and searchable the job title is"
	if content.Title.IsPresent {
		s := float64(content.Title.Score)
		q.TitleQuality = factor(s, TitleWeight, titleDesc, scoreEvaluation(s, "title"))
	} else {
		q.TitleQuality = factor(0, TitleWeight, titleDesc, "Missing job title")
	}

	var parts []int
	if content.CompanyDescription.IsPresent {
		parts = append(parts, content.CompanyDescription.Score)
	}
	if content.JobDescription.IsPresent {
		parts = append(parts, content.JobDescription.Score)
	}
	if content.Responsibilities.IsPresent {
		parts = append(parts, content.Responsibilities.Score)
	}
	description := 0.0
	for _, p := range parts {
		description += float64(p)
	}
	if len(parts) > 0 {
		description /= float64(len(parts))
	}
	q.DescriptionQuality = factor(description, DescriptionWeight,
		"How well the job is described, including role details and context",
		scoreEvaluation(description, "job description"))

	req := float64(reqs.Score)
	q.RequirementsClarity = factor(req, RequirementsWeight,
		"How clearly required vs. preferred skills are distinguished",
		scoreEvaluation(req, "requirements"))

	const dutiesDesc = "How clearly job responsibilities are defined"
	if content.Responsibilities.IsPresent {
		s := float64(content.Responsibilities.Score)
		q.ResponsibilitiesClarity = factor(s, ResponsibilitiesWeight, dutiesDesc, scoreEvaluation(s, "responsibilities"))
	} else {
		q.ResponsibilitiesClarity = factor(0, ResponsibilitiesWeight, dutiesDesc, "Missing responsibilities section")
	}

	benefits := 0
	if structure.Has(SectionBenefits) {
		benefits += benefitsSectionPoints
	}
	benefits += min(maxBenefitPoints, len(info.Benefits)*pointsPerBenefit)
	if info.SalaryRange != nil {
		benefits += salaryPoints
	}
	q.BenefitsAppeal = factor(float64(benefits), BenefitsWeight,
		"How appealing and complete the benefits description is",
		scoreEvaluation(float64(benefits), "benefits"))

	q.Inclusivity = factor(float64(incl.Score), InclusivityWeight,
		"Use of inclusive language that appeals to diverse candidates", incl.Evaluation)

	q.StructureQuality = factor(structure.rawScore, StructureWeight,
		"Organization and readability of the overall posting", structure.Evaluation)

	overall := 0.0
	for _, f := range q.factors() {
		overall += f.raw * f.Weight
	}
	q.Overall = OverallQuality{
		Score:      scoring.Round1(overall),
		Evaluation: scoreEvaluation(overall, "overall job posting"),
	}
	return q
}
