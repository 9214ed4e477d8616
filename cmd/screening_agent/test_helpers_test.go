package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
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

var backendListing = map[string]interface{}{
	"title":           "Backend Engineer",
	"company":         "Globex",
	"description":     "We are hiring a backend engineer to build data services for our analytics team.",
	"skills_required": "Python, Django, SQL",
	"min_experience":  "3+ years",
}

// isolateEnv keeps the commands off any database or redis configured in
// the developer's environment.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SCREENING_DATABASE_URL", "")
	t.Setenv("SCREENING_REDIS_ADDRESS", "")
	t.Setenv("SCREENING_SCREENING_FIXED_YEAR", "2025")
	t.Setenv("SCREENING_LOGGING_LEVEL", "error")
}

// resetFlags restores every flag to its default so that commands can be
// executed repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command in-process and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeJSON(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return writeFile(t, dir, name, string(data))
}
