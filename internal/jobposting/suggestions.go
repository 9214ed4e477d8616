package jobposting

import (
	"fmt"
	"strings"
)

const (
	maxSuggestionsPerCategory = 3
	templateThreshold         = 60
	benefitsAppealThreshold   = 60
	maxTemplateBenefits       = 5
)

// Suggestions groups improvement advice by area. ImprovedTemplate is only
// offered for low-quality postings.
type Suggestions struct {
	Title            []string `json:"title_suggestions" yaml:"title_suggestions"`
	Structure        []string `json:"structure_suggestions" yaml:"structure_suggestions"`
	Content          []string `json:"content_suggestions" yaml:"content_suggestions"`
	Requirements     []string `json:"requirements_suggestions" yaml:"requirements_suggestions"`
	Inclusivity      []string `json:"inclusivity_suggestions" yaml:"inclusivity_suggestions"`
	General          []string `json:"general_suggestions" yaml:"general_suggestions"`
	ImprovedTemplate string   `json:"improved_job_posting_template,omitempty" yaml:"improved_job_posting_template,omitempty"`
}

var missingSectionAdvice = map[string]string{
	SectionCompanyOverview:    "Add a company overview section to introduce your organization to candidates",
	SectionJobDescription:     "Include a job description section that provides context about the role",
	SectionResponsibilities:   "Add a clear responsibilities section outlining key duties of the role",
	SectionRequirements:       "Include a requirements section detailing necessary qualifications",
	SectionBenefits:           "Add a benefits section highlighting what you offer to employees",
	SectionApplicationProcess: "Include application instructions to guide candidates on next steps",
}

var commonBenefits = []string{"health insurance", "paid time off", "retirement plans", "professional development", "flexible working arrangements"}

func capped(items []string) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > maxSuggestionsPerCategory {
		return items[:maxSuggestionsPerCategory]
	}
	return items
}

func suggest(info Info, structure StructureAnalysis, content ContentAnalysis, reqs RequirementsAnalysis, incl InclusivityAnalysis, quality QualityScores) Suggestions {
	var s Suggestions

	switch t := content.Title; {
	case !t.IsPresent:
		s.Title = append(s.Title, "Add a clear job title to the posting")
	case t.Score < 70:
		if t.Specificity == "Low" {
			s.Title = append(s.Title, "Make the job title more specific by including key technologies or specializations (e.g., 'Frontend React Developer' instead of 'Web Developer')")
		}
		if t.SeniorityLevel == "Not specified" {
			s.Title = append(s.Title, "Indicate the seniority level in the job title (e.g., 'Senior', 'Junior', 'Lead')")
		}
		if !t.IndustryStandard {
			s.Title = append(s.Title, "Use industry-standard terminology in the job title to improve searchability")
		}
	}

	for _, section := range structure.SectionsMissing {
		s.Structure = append(s.Structure, missingSectionAdvice[section])
	}
	if structure.rawScore < 70 && len(structure.SectionOrder) >= 3 {
		s.Structure = append(s.Structure, "Consider reordering sections to follow a standard flow: company overview → job description → responsibilities → requirements → benefits → application process")
	}

	switch c := content.CompanyDescription; {
	case !c.IsPresent:
		s.Content = append(s.Content, "Add a company description to help candidates understand your organization")
	case c.Score < 70:
		var missing []string
		if !c.MentionsMission {
			missing = append(missing, "mission/vision")
		}
		if !c.MentionsValues {
			missing = append(missing, "values")
		}
		if !c.MentionsCulture {
			missing = append(missing, "culture")
		}
		if len(missing) > 0 {
			s.Content = append(s.Content, "Enhance your company description by including information about your "+strings.Join(missing, ", "))
		}
	}

	switch r := content.JobDescription; {
	case !r.IsPresent:
		s.Content = append(s.Content, "Add a job description section explaining the role and its context")
	case r.Score < 70:
		var missing []string
		if !r.DescribesRole {
			missing = append(missing, "role details")
		}
		if !r.MentionsTeam {
			missing = append(missing, "team context")
		}
		if !r.MentionsImpact {
			missing = append(missing, "impact of the role")
		}
		if len(missing) > 0 {
			s.Content = append(s.Content, "Improve your job description by adding "+strings.Join(missing, ", "))
		}
	}

	switch d := content.Responsibilities; {
	case !d.IsPresent:
		s.Content = append(s.Content, "Add a responsibilities section detailing what the candidate will be doing")
	case d.Score < 70:
		if !d.HasBulletPoints {
			s.Content = append(s.Content, "Format responsibilities as bullet points for better readability")
		}
		if d.ResponsibilityCount < 5 {
			s.Content = append(s.Content, "List more specific responsibilities to give candidates a clearer picture of the role")
		}
	}

	if !reqs.RequirementsPresent {
		s.Requirements = append(s.Requirements, "Add a clear requirements section listing necessary qualifications")
	} else {
		if !reqs.HasMustHave && !reqs.HasNiceToHave {
			s.Requirements = append(s.Requirements, "Distinguish between required and preferred qualifications")
		}
		if reqs.Excessive {
			s.Requirements = append(s.Requirements, "Reduce the number of requirements to focus on the most essential qualifications")
		}
		for _, y := range reqs.YearsOfExperience {
			if y.Years > 5 && y.Kind == KindMustHave {
				s.Requirements = append(s.Requirements, "Consider reducing years of experience requirements or moving them to 'Nice to Have' to avoid excluding qualified candidates")
				break
			}
		}
		if len(reqs.Ambiguous)+len(reqs.Unclassified) > 0 {
			s.Requirements = append(s.Requirements, "Replace ambiguous terms like 'familiar with' or 'strong' with more specific, measurable criteria")
		}
	}

	if incl.Score < 70 {
		if len(incl.GenderedInstances) > 0 {
			s.Inclusivity = append(s.Inclusivity, "Replace gendered terms with gender-neutral alternatives")
		}
		if len(incl.ExclusiveInstances) > 0 {
			s.Inclusivity = append(s.Inclusivity, "Remove potentially exclusive language that might deter diverse candidates")
		}
		if !incl.MentionsDiversity {
			s.Inclusivity = append(s.Inclusivity, "Add a statement about your commitment to diversity and inclusion")
		}
		if !incl.MentionsEqualOpportunity {
			s.Inclusivity = append(s.Inclusivity, "Include an equal opportunity employer statement")
		}
		if !incl.AccessibilityConsiderations {
			s.Inclusivity = append(s.Inclusivity, "Add information about accommodations for candidates with disabilities")
		}
	}

	if quality.BenefitsAppeal.raw < benefitsAppealThreshold {
		var missing []string
		for _, want := range commonBenefits {
			found := false
			for _, b := range info.Benefits {
				if strings.Contains(strings.ToLower(b), want) {
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, want)
			}
		}
		if len(missing) > 0 {
			s.General = append(s.General, "Highlight more benefits such as "+strings.Join(missing, ", "))
		}
		if info.SalaryRange == nil {
			s.General = append(s.General, "Consider including salary information to attract more qualified candidates")
		}
	}

	s.Title = capped(s.Title)
	s.Structure = capped(s.Structure)
	s.Content = capped(s.Content)
	s.Requirements = capped(s.Requirements)
	s.Inclusivity = capped(s.Inclusivity)
	s.General = capped(s.General)

	if quality.Overall.Score < templateThreshold {
		s.ImprovedTemplate = postingTemplate(info)
	}
	return s
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// postingTemplate drafts a well-structured posting, filled in with whatever
// the original posting stated.
func postingTemplate(info Info) string {
	title := orPlaceholder(info.JobTitle, "[Job Title]")
	company := orPlaceholder(info.CompanyName, "[Company Name]")
	employment := orPlaceholder(info.EmploymentType, "Full-time")
	location := orPlaceholder(info.Location, "[Location]")
	arrangement := orPlaceholder(info.WorkArrangement, "[Work Arrangement]")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s at %s\n\n", title, company)
	fmt.Fprintf(&b, "## About Us\n%s is [2-3 sentences about your company mission, values, and what makes it special]. We're passionate about [industry/product] and committed to [company goal].\n\n", company)
	fmt.Fprintf(&b, "## The Role\nWe're looking for a %s to join our team. This is a %s role based in %s with a %s working arrangement.\n\n", title, employment, location, arrangement)
	b.WriteString("In this position, you'll be responsible for developing and implementing solutions that help us [achieve business goal]. You'll work closely with cross-functional teams to deliver high-quality results.\n\n")
	b.WriteString("## What You'll Do\n" + strings.Repeat("• [Specific responsibility with impact]\n", 5) + "\n")
	b.WriteString("## Required Qualifications\n" + strings.Repeat("• [Essential skill/qualification]\n", 4) + "\n")
	b.WriteString("## Preferred Qualifications\n" + strings.Repeat("• [Nice-to-have skill/qualification]\n", 3) + "\n")
	b.WriteString("## What We Offer\n")
	if len(info.Benefits) > 0 {
		for _, benefit := range info.Benefits[:min(len(info.Benefits), maxTemplateBenefits)] {
			fmt.Fprintf(&b, "• %s\n", benefit)
		}
	} else {
		b.WriteString("• Competitive salary and benefits package\n")
		b.WriteString("• Professional development opportunities\n")
		b.WriteString("• Collaborative and inclusive work environment\n")
		b.WriteString("• [Other benefits/perks]\n")
		b.WriteString("• [Other benefits/perks]\n")
	}
	b.WriteString("\n## How to Apply\n[Instructions for applying, including any required documents and the application process]\n\n")
	fmt.Fprintf(&b, "%s is an equal opportunity employer. We celebrate diversity and are committed to creating an inclusive environment for all employees.\n", company)
	return b.String()
}
