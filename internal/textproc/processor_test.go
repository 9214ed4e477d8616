package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfind/screening-engine/internal/types"
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

func TestClean(t *testing.T) {
	p := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Hello World", "hello world"},
		{"collapses spaces", "a    b\t\tc", "a b c"},
		{"keeps line breaks", "line one\nline two", "line one\nline two"},
		{"collapses blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"strips odd punctuation", "C++ (senior) <dev>", "c++ senior dev"},
		{"normalizes CRLF", "a\r\nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Clean(tt.in))
		})
	}
}

func TestWordsAndTokenize(t *testing.T) {
	p := New()
	assert.Equal(t, []string{"The", "quick", "brown", "fox"}, Words("The quick, brown fox!"))
	assert.Equal(t, []string{"quick", "brown", "fox"}, p.Tokenize("The quick, brown fox!"))
	assert.Empty(t, Words("  ...  "))
	assert.Equal(t, []string{"café", "naïve"}, Words("café, naïve"))
}

func TestSentences(t *testing.T) {
	got := Sentences("First one. Second one!  Third?? ")
	assert.Equal(t, []string{"First one", "Second one", "Third"}, got)
	assert.Empty(t, Sentences(""))
}

func TestIdentifySections_Resume(t *testing.T) {
	p := New()
	sections := p.IdentifySections(sampleResume, types.DocumentResume)

	require.Contains(t, sections, "experience")
	require.Contains(t, sections, "education")
	require.Contains(t, sections, "skills")
	require.Contains(t, sections, "summary")
	assert.Contains(t, sections["unknown"], "Jane Doe")
	assert.Contains(t, sections["experience"], "Acme Corp")
	assert.Equal(t, "Python, SQL, React", sections["skills"])
	assert.NotContains(t, sections["experience"], "EXPERIENCE")
}

func TestIdentifySections_CoverLetterKeepsLines(t *testing.T) {
	p := New()
	text := "Dear Hiring Manager,\nI am writing to apply for the analyst role.\nMy experience includes reporting.\nSincerely,\nSam"
	sections := p.IdentifySections(text, types.DocumentCoverLetter)

	assert.Equal(t, "Dear Hiring Manager,", sections["greeting"])
	assert.Contains(t, sections["introduction"], "I am writing")
	assert.Contains(t, sections["body"], "My experience")
	assert.Equal(t, "Sincerely,\nSam", sections["closing"])
	assert.NotContains(t, sections, "unknown")
}

func TestIdentifySections_HeadingWithEmptyBody(t *testing.T) {
	p := New()
	sections := p.IdentifySections("Intro line\nBenefits:", types.DocumentJobDescription)
	v, ok := sections["benefits"]
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestIdentifySections_UnknownType(t *testing.T) {
	p := New()
	sections := p.IdentifySections("Experience\nsomething", types.DocumentOther)
	assert.Equal(t, map[string]string{"unknown": "Experience\nsomething"}, sections)
}

func TestExtractSkills(t *testing.T) {
	p := New()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "comma list",
			text: "Skills: Python, SQL, React",
			want: []string{"python", "react", "sql"},
		},
		{
			name: "heading then bullets",
			text: "Technical Skills\n• Docker • Terraform\n- Go tooling\n\nOther text",
			want: []string{"docker", "go tooling", "terraform"},
		},
		{
			name: "sub-labels",
			text: "Skills:\nTools: Rust, Kotlin",
			want: []string{"kotlin", "rust"},
		},
		{
			name: "technology names in prose",
			text: "I built services in Golang and C++ on AWS.",
			want: []string{"aws", "c++", "golang"},
		},
		{
			name: "sentence mentioning skills is not a list",
			text: "Strong skills in negotiation",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ExtractSkills(tt.text))
		})
	}
}

func TestExtractExperience(t *testing.T) {
	p := New()
	entries := p.ExtractExperience(sampleResume)

	require.Len(t, entries, 2)

	assert.Equal(t, "Senior Software Engineer", entries[0].Title)
	assert.Equal(t, "Acme Corp", entries[0].Company)
	assert.Equal(t, "2019 - Present", entries[0].Years)
	assert.Contains(t, entries[0].Description, "Kubernetes")
	assert.NotContains(t, entries[0].Description, "Initech")

	assert.Equal(t, "Software Engineer", entries[1].Title)
	assert.Equal(t, "Initech", entries[1].Company)
	assert.Equal(t, "2015 - 2018", entries[1].Years)
	assert.Contains(t, entries[1].Description, "Python")
	assert.NotContains(t, entries[1].Description, "Bachelor")
}

func TestExtractExperience_None(t *testing.T) {
	p := New()
	assert.Empty(t, p.ExtractExperience("no dates anywhere"))
}

func TestExtractEducation(t *testing.T) {
	p := New()

	entries := p.ExtractEducation(sampleResume)
	require.Len(t, entries, 1)
	assert.Equal(t, "Bachelor of Science in Computer Science", entries[0].Degree)
	assert.Equal(t, "Stanford University", entries[0].Institution)
	assert.Equal(t, "2015", entries[0].Year)

	entries = p.ExtractEducation("Master's in Data Science\nUniversity of Toronto\n2020")
	require.Len(t, entries, 1)
	assert.Equal(t, "University of Toronto", entries[0].Institution)
	assert.Equal(t, "2020", entries[0].Year)
}

func TestExtractContact(t *testing.T) {
	p := New()
	c := p.ExtractContact(sampleResume)
	assert.Equal(t, "jane.doe@example.com", c.Email)
	assert.Equal(t, "(555) 123-4567", c.Phone)

	assert.False(t, p.ExtractContact("nothing here").HasAny())
}

func TestExtractCompanyReferences(t *testing.T) {
	text := "I admire your commitment to open source. I read your blog about caching and your mission statement."
	refs := ExtractCompanyReferences(text)
	require.Len(t, refs, 3)
	assert.Equal(t, "your commitment to open source", refs[0])
	assert.Contains(t, refs[1], "your blog about caching")
}

func TestExtractAchievements(t *testing.T) {
	text := "I led a team of five. I like hiking. We increased revenue by 20%."
	got := ExtractAchievements(text)
	assert.Equal(t, []string{"I led a team of five", "We increased revenue by 20%"}, got)
}

func TestExtractEntities(t *testing.T) {
	p := New()
	text := "Title: Data Analyst\nI worked at Globex Corporation for years.\nUniversity of Michigan"
	e := p.ExtractEntities(text)

	assert.Contains(t, e.JobTitles, "Data Analyst")
	assert.Contains(t, e.Companies, "Globex Corporation")
	assert.Contains(t, e.Education, "Michigan")
}

func TestProcess_Resume(t *testing.T) {
	p := New()
	doc := p.Process(sampleResume, types.DocumentResume)

	assert.Equal(t, types.DocumentResume, doc.DocumentType)
	assert.Greater(t, doc.WordCount, 40)
	assert.Greater(t, doc.SentenceCount, 0)
	assert.Subset(t, doc.ExtractedSkills, []string{"python", "sql", "react"})
	assert.Len(t, doc.ExtractedExperience, 2)
	assert.Len(t, doc.ExtractedEducation, 1)
	assert.True(t, doc.ExtractedContact.HasAny())
	assert.Contains(t, doc.ExtractedSummary, "Backend engineer")
	assert.Empty(t, doc.Achievements)
}

func TestProcess_CoverLetter(t *testing.T) {
	p := New()
	text := "Dear Ms. Smith,\nI am writing to apply. I developed dashboards in Python and SQL.\nI admire your commitment to accessibility.\nSincerely,\nSam Lee"
	doc := p.Process(text, types.DocumentCoverLetter)

	assert.Contains(t, doc.Sections, "introduction")
	assert.Contains(t, doc.Sections, "closing")
	assert.Contains(t, doc.SkillsMentioned, "Python")
	assert.Len(t, doc.CompanyReferences, 1)
	assert.NotEmpty(t, doc.Achievements)
}

func TestProcess_Deterministic(t *testing.T) {
	p := New()
	a := p.Process(sampleResume, types.DocumentResume)
	b := p.Process(sampleResume, types.DocumentResume)
	assert.Equal(t, a, b)
}

func TestProcess_ArbitraryInputDoesNotPanic(t *testing.T) {
	p := New()
	inputs := []string{"", "\x00\x01", "日本語のテキスト", "2019 - 2020", "Skills:", "•••", "Bachelor"}
	for _, in := range inputs {
		for _, dt := range []types.DocumentType{types.DocumentResume, types.DocumentCoverLetter, types.DocumentJobDescription, types.DocumentOther} {
			assert.NotPanics(t, func() { p.Process(in, dt) })
		}
	}
}

func TestWindow(t *testing.T) {
	text := "ééé led ééé"
	start := strings.Index(text, "led")
	assert.Equal(t, "é led é", Window(text, start, start+3, 2, 2))
	assert.Equal(t, text, Window(text, start, start+3, 100, 100))
	assert.Equal(t, "led", Window(text, start, start+3, 0, 0))
}

func TestWindowBounds(t *testing.T) {
	start, end := WindowBounds("abcdef", 2, 3, 1, 10)
	assert.Equal(t, 1, start)
	assert.Equal(t, 6, end)
}
