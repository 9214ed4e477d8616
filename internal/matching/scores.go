package matching

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/searchfind/screening-engine/internal/scoring"
	"github.com/searchfind/screening-engine/internal/types"
)

const (
	// closeMatchRatio is the lowest similarity credited as a close match.
	closeMatchRatio = 0.85
	// closeMatchCredit is the share of an exact match a close match earns.
	closeMatchCredit = 0.5

	noTitleScore      = 50
	noLocationScore   = 50
	maxPartialTitles  = 3
	maxMissingSkills  = 5
	maxMissingAreas   = 3
	maxMissingFields  = 3
	tailoringFloor    = 70
	typicalSkillCount = 5
	typicalPositions  = 2
)

var alphaTerm = regexp.MustCompile(`[a-zA-Z]+`)

// similarity is the ratio of matching characters between a and b, in [0, 1].
func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// matchSkills credits each required skill once: fully when the candidate
// lists it, half when a candidate skill is similar or contains it.
func matchSkills(candidate, required []string) SkillsMatch {
	result := SkillsMatch{
		ExactMatches:  []string{},
		CloseMatches:  []CloseMatch{},
		MissingSkills: []string{},
	}
	if len(required) == 0 {
		result.Score = scoring.MaxScore
		result.Percentage = 100
		result.Evaluation = "No specific skills were required for this job"
		return result
	}

	have := make([]string, len(candidate))
	for i, s := range candidate {
		have[i] = strings.ToLower(s)
	}

	for _, req := range required {
		want := strings.ToLower(req)
		if i := indexOf(have, want); i >= 0 {
			result.ExactMatches = append(result.ExactMatches, candidate[i])
			continue
		}
		matched := false
		for i, h := range have {
			ratio := similarity(want, h)
			if ratio >= closeMatchRatio || strings.Contains(h, want) || strings.Contains(want, h) {
				result.CloseMatches = append(result.CloseMatches, CloseMatch{
					Required:   want,
					Candidate:  candidate[i],
					Similarity: ratio,
				})
				matched = true
				break
			}
		}
		if !matched {
			result.MissingSkills = append(result.MissingSkills, want)
		}
	}

	credit := float64(len(result.ExactMatches)) + float64(len(result.CloseMatches))*closeMatchCredit
	pct := min(100, credit/float64(len(required))*100)

	switch {
	case pct >= 90:
		result.Evaluation = "Excellent skills match with almost all required skills"
	case pct >= 75:
		result.Evaluation = "Strong skills match with most required skills"
	case pct >= 50:
		result.Evaluation = "Moderate skills match with some missing critical skills"
	default:
		result.Evaluation = "Limited skills match with several missing required skills"
	}
	result.Score = scoring.Clamp(pct)
	result.Percentage = scoring.Round1(pct)
	return result
}

func indexOf(items []string, target string) int {
	for i, it := range items {
		if it == target {
			return i
		}
	}
	return -1
}

func termSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range alphaTerm.FindAllString(strings.ToLower(text), -1) {
		set[t] = true
	}
	return set
}

// matchTitle scores the best previous title against jobTitle by the Jaccard
// overlap of their words. An identical title scores 100.
func matchTitle(candidateTitles []string, jobTitle string) TitleMatch {
	result := TitleMatch{ExactMatches: []string{}, PartialMatches: []PartialTitle{}}
	if jobTitle == "" {
		result.Score = scoring.MaxScore
		result.Evaluation = "No specific job title to match against"
		return result
	}
	if len(candidateTitles) == 0 {
		result.Score = noTitleScore
		result.Evaluation = "No previous job titles found in resume"
		return result
	}

	wantTitle := strings.ToLower(jobTitle)
	wantTerms := termSet(wantTitle)

	type partial struct {
		title string
		score float64
	}
	var partials []partial
	var best float64
	bestTitle := ""

	for _, title := range candidateTitles {
		if strings.ToLower(title) == wantTitle {
			result.ExactMatches = append(result.ExactMatches, title)
			best, bestTitle = 100, title
			break
		}
		terms := termSet(title)
		common := 0
		for t := range terms {
			if wantTerms[t] {
				common++
			}
		}
		if common == 0 {
			continue
		}
		union := len(wantTerms) + len(terms) - common
		score := float64(common) / float64(union) * 100
		partials = append(partials, partial{title, score})
		if score > best {
			best, bestTitle = score, title
		}
	}

	sort.SliceStable(partials, func(i, j int) bool { return partials[i].score > partials[j].score })
	for i, p := range partials {
		if i == maxPartialTitles {
			break
		}
		result.PartialMatches = append(result.PartialMatches, PartialTitle{Title: p.title, Score: scoring.Round(p.score)})
	}

	switch {
	case best >= 90:
		result.Evaluation = "Excellent match with previous job title: " + bestTitle
	case best >= 70:
		result.Evaluation = "Strong match with previous job title: " + bestTitle
	case best >= 50:
		result.Evaluation = "Moderate match with previous job title: " + bestTitle
	case best > 0:
		result.Evaluation = "Limited match with previous job title: " + bestTitle
	default:
		result.Evaluation = "No matching job titles found"
	}
	result.Score = scoring.Clamp(best)
	return result
}

// matchLocation scores the share of the job location's words that appear
// in the candidate's location.
func matchLocation(candidateLocation, jobLocation string) LocationMatch {
	if jobLocation == "" {
		return LocationMatch{Score: scoring.MaxScore, Evaluation: "No specific location required for this job"}
	}
	if candidateLocation == "" {
		return LocationMatch{Score: noLocationScore, Evaluation: "No location information found in resume"}
	}

	have := strings.ToLower(candidateLocation)
	want := strings.ToLower(jobLocation)
	haveTerms, wantTerms := termSet(have), termSet(want)

	common := 0
	for t := range wantTerms {
		if haveTerms[t] {
			common++
		}
	}
	score := scoring.Percent(common, len(wantTerms))

	result := LocationMatch{Score: scoring.Clamp(score), CandidateLocation: have, JobLocation: want}
	switch {
	case score >= 90:
		result.Evaluation = fmt.Sprintf("Excellent location match: %s matches job location: %s", have, want)
	case score >= 70:
		result.Evaluation = fmt.Sprintf("Good location match: %s is similar to job location: %s", have, want)
	case score >= 40:
		result.Evaluation = fmt.Sprintf("Partial location match: %s partially matches job location: %s", have, want)
	default:
		result.Evaluation = fmt.Sprintf("No location match: %s does not match job location: %s", have, want)
	}
	return result
}

func bulleted(intro string, items []string, limit int) string {
	var b strings.Builder
	b.WriteString(intro)
	for i, it := range items {
		if i == limit {
			break
		}
		b.WriteString("\n- ")
		b.WriteString(it)
	}
	return b.String()
}

func recommend(resume *types.ProcessedDocument, match Match) Recommendations {
	recs := Recommendations{
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
		Resume:     []string{},
	}

	if missing := match.Skills.MissingSkills; len(missing) > 0 {
		recs.Skills = append(recs.Skills, bulleted(
			"Consider adding the following missing skills to your resume or working to acquire them:",
			missing, maxMissingSkills))
	}

	exp := match.Experience
	if exp.YearsExperience < exp.YearsRequired {
		recs.Experience = append(recs.Experience, fmt.Sprintf(
			"You have %d years of experience but this position requires %d years. "+
				"Consider roles with lower experience requirements or highlight projects/achievements that demonstrate advanced expertise.",
			exp.YearsExperience, exp.YearsRequired))
	}
	if len(exp.RelevantAreasMissing) > 0 {
		recs.Experience = append(recs.Experience, bulleted(
			"Your experience doesn't show sufficient expertise in these areas:",
			exp.RelevantAreasMissing, maxMissingAreas)+
			"\nConsider highlighting any relevant projects or training in these areas.")
	}

	edu := match.Education
	if !edu.HasRequiredEducation && edu.RequiredDegree != "" {
		recs.Education = append(recs.Education, fmt.Sprintf(
			"This position requires a %s degree. Consider pursuing additional education or focusing on positions with different requirements.",
			edu.RequiredDegree))
	}
	if len(edu.FieldMismatches) > 0 {
		recs.Education = append(recs.Education, bulleted(
			"Your education doesn't match these preferred fields of study:",
			edu.FieldMismatches, maxMissingFields)+
			"\nConsider highlighting relevant coursework or additional training in these areas.")
	}

	if match.OverallMatch < tailoringFloor {
		recs.Resume = append(recs.Resume,
			"Your resume could benefit from tailoring to better match this position. Highlight relevant skills, experience, and achievements that align with the job requirements.")
	}
	if len(resume.ExtractedSkills) < typicalSkillCount {
		recs.Resume = append(recs.Resume,
			"Your resume has fewer skills listed than typical for this position. Consider expanding your skills section with relevant technical and soft skills.")
	}
	if len(resume.ExtractedExperience) < typicalPositions {
		recs.Resume = append(recs.Resume,
			"Your work history section could be expanded to better demonstrate your relevant experience. Include achievements and responsibilities that align with this role.")
	}
	return recs
}
