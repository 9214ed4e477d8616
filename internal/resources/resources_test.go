package resources

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllSkills_Sorted(t *testing.T) {
	skills := AllSkills()
	assert.NotEmpty(t, skills)
	assert.True(t, sort.StringsAreSorted(skills))
	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "Active Listening")
}

func TestAllSkills_ReturnsCopy(t *testing.T) {
	skills := AllSkills()
	skills[0] = "mutated"
	assert.NotEqual(t, "mutated", AllSkills()[0])
}

func TestIsKnownSkill(t *testing.T) {
	assert.True(t, IsKnownSkill("python"))
	assert.True(t, IsKnownSkill("  Kubernetes "))
	assert.False(t, IsKnownSkill("basket weaving"))
}

func TestAllJobTitles(t *testing.T) {
	titles := AllJobTitles()
	assert.True(t, sort.StringsAreSorted(titles))
	assert.Contains(t, titles, "Software Engineer")
	assert.Contains(t, titles, "Recruiter")
}

func TestIndustryForText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"technology", "We build SaaS microservices with CI/CD and DevOps culture", "technology"},
		{"healthcare", "Patient care, triage and telehealth in the emergency room", "healthcare"},
		{"none", "zzz qqq", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndustryForText(tt.text))
		})
	}
}

func TestStopwords(t *testing.T) {
	assert.True(t, Stopwords["the"])
	assert.True(t, Stopwords["wouldn't"])
	assert.False(t, Stopwords["python"])
}

func TestLanguagePatterns(t *testing.T) {
	inclusive := 0
	for _, re := range InclusivePatterns {
		if re.MatchString("We are an Equal Opportunity employer that values diversity") {
			inclusive++
		}
	}
	assert.GreaterOrEqual(t, inclusive, 2)

	exclusive := 0
	for _, re := range ExclusivePatterns {
		if re.MatchString("Looking for a coding ninja and rockstar") {
			exclusive++
		}
	}
	assert.Equal(t, 2, exclusive)
}
