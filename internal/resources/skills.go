// Package resources holds the static gazetteers used by the analyzers:
// skills, job titles, fields of study, industries, stopwords and
// language-bias patterns.
package resources

import (
	"sort"
	"strings"
)

// TechnicalSkills groups technical skills by category.
var TechnicalSkills = map[string][]string{
	"programming_languages": {
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "C", "Ruby", "PHP",
		"Swift", "Kotlin", "Go", "Rust", "Scala", "Perl", "R", "MATLAB", "Dart",
		"Objective-C", "Visual Basic", "VBA", "PowerShell", "Bash", "Shell Scripting",
		"Assembly", "Fortran", "COBOL", "Lisp", "Haskell", "Clojure", "Groovy", "Lua",
	},
	"web_development": {
		"HTML", "CSS", "SCSS", "SASS", "Less", "JavaScript", "TypeScript", "jQuery",
		"React", "Angular", "Vue.js", "Svelte", "Next.js", "Gatsby", "Nuxt.js",
		"Redux", "MobX", "Context API", "GraphQL", "REST API", "Node.js", "Express",
		"Django", "Flask", "Ruby on Rails", "ASP.NET", "Spring Boot", "Laravel", "Symfony",
		"WordPress", "Drupal", "Joomla", "Magento", "Shopify", "WebSockets", "OAuth", "JWT",
		"AJAX", "JSON", "XML", "Bootstrap", "Tailwind CSS", "Material UI", "Chakra UI",
	},
	"databases": {
		"SQL", "MySQL", "PostgreSQL", "SQLite", "Oracle", "Microsoft SQL Server",
		"MongoDB", "Firebase", "Cassandra", "Redis", "DynamoDB", "Elasticsearch",
		"Neo4j", "Couchbase", "MariaDB", "Supabase", "CouchDB", "InfluxDB", "Fauna",
		"ACID Compliance", "Database Design", "Normalization", "Indexing", "Query Optimization",
		"Database Migration", "ORM", "Sequelize", "Mongoose", "SQLAlchemy", "Hibernate",
	},
	"devops": {
		"Git", "GitHub", "GitLab", "Bitbucket", "CI/CD", "Jenkins", "GitHub Actions",
		"Travis CI", "CircleCI", "Docker", "Kubernetes", "Terraform", "Ansible", "Puppet",
		"Chef", "AWS", "Azure", "Google Cloud", "Heroku", "DigitalOcean", "Netlify", "Vercel",
		"Linux", "Unix", "Windows Server", "Bash", "Shell Scripting", "Nginx", "Apache",
		"Load Balancing", "Monitoring", "Prometheus", "Grafana", "ELK Stack", "Logging",
		"Infrastructure as Code", "Continuous Integration", "Continuous Deployment",
		"Container Orchestration", "Service Mesh", "Istio", "Microservices Architecture",
	},
	"data_science": {
		"Data Analysis", "Data Visualization", "Machine Learning", "Statistical Analysis",
		"Natural Language Processing", "Computer Vision", "Deep Learning", "TensorFlow",
		"PyTorch", "Keras", "Scikit-learn", "Pandas", "NumPy", "SciPy", "Matplotlib", "Seaborn",
		"Tableau", "Power BI", "Data Mining", "Feature Engineering", "A/B Testing",
		"Hypothesis Testing", "Regression Analysis", "Classification", "Clustering",
		"Neural Networks", "Random Forest", "Decision Trees", "Support Vector Machines",
		"Dimensionality Reduction", "Time Series Analysis", "Big Data", "Hadoop", "Spark",
		"ETL", "Data Warehousing", "Data Modeling", "Data Governance", "OLAP", "OLTP",
		"Predictive Modeling", "Reinforcement Learning", "Generative AI", "OpenAI API",
	},
	"mobile_development": {
		"iOS Development", "Android Development", "React Native", "Flutter", "Xamarin",
		"Swift", "Objective-C", "Kotlin", "Java for Android", "SwiftUI", "UIKit",
		"Android SDK", "Android Jetpack", "Mobile UI Design", "Mobile UX", "App Store Connect",
		"Google Play Console", "Push Notifications", "Mobile Authentication",
		"Offline Storage", "Mobile Analytics", "Mobile App Architecture", "Mobile Testing",
		"Responsive Design", "Cross-Platform Development", "Progressive Web Apps (PWA)",
		"Hybrid Apps", "Native Apps", "Mobile Optimization", "Firebase", "App Performance",
	},
	"security": {
		"Cybersecurity", "Network Security", "Application Security", "Penetration Testing",
		"Vulnerability Assessment", "Security Auditing", "Encryption", "Authentication",
		"Authorization", "OAuth", "SAML", "OWASP", "Security Compliance", "GDPR",
		"HIPAA", "PCI DSS", "Risk Management", "Security Architecture", "Secure Coding",
		"Intrusion Detection", "Firewall Management", "Identity Management", "Access Control",
		"Security Information and Event Management (SIEM)", "Security Operations Center (SOC)",
		"Security Awareness", "Incident Response", "Forensics", "Malware Analysis",
	},
}

// SoftSkills groups interpersonal skills by category.
var SoftSkills = map[string][]string{
	"communication": {
		"Verbal Communication", "Written Communication", "Presentation Skills",
		"Active Listening", "Public Speaking", "Technical Writing", "Business Writing",
		"Email Etiquette", "Client Communication", "Cross-cultural Communication",
		"Articulation", "Clarity", "Persuasion", "Negotiation", "Storytelling",
	},
	"teamwork": {
		"Collaboration", "Team Leadership", "Conflict Resolution", "Relationship Building",
		"Cross-functional Collaboration", "Remote Team Collaboration", "Delegation",
		"Feedback Giving", "Feedback Receiving", "Mentoring", "Coaching", "Knowledge Sharing",
		"Consensus Building", "Team Motivation", "Meeting Facilitation", "Trust Building",
	},
	"problem_solving": {
		"Critical Thinking", "Analytical Thinking", "Creative Problem Solving",
		"Decision Making", "Troubleshooting", "Root Cause Analysis", "Logical Reasoning",
		"Design Thinking", "Systems Thinking", "Strategic Thinking", "Innovation",
		"Computational Thinking", "Research", "Investigation", "Scientific Method",
	},
	"adaptability": {
		"Flexibility", "Learning Agility", "Resilience", "Change Management",
		"Stress Management", "Crisis Management", "Adaptability to New Technologies",
		"Cultural Adaptability", "Work-Life Balance", "Resourcefulness", "Versatility",
		"Open-mindedness", "Improvisation", "Coping with Uncertainty", "Growth Mindset",
	},
	"work_ethic": {
		"Time Management", "Organization", "Attention to Detail", "Self-motivation",
		"Initiative", "Reliability", "Punctuality", "Accountability", "Persistence",
		"Discipline", "Goal Setting", "Prioritization", "Quality Focus", "Efficiency",
		"Work Independence", "Productivity", "Professional Ethics", "Conscientiousness",
	},
	"leadership": {
		"Strategic Vision", "Decision Making", "Team Building", "Delegation",
		"People Management", "Performance Management", "Emotional Intelligence",
		"Influence", "Motivation", "Empowerment", "Conflict Resolution", "Coaching",
		"Mentoring", "Inspirational Leadership", "Change Leadership", "Servant Leadership",
	},
}

var allSkills = buildAllSkills()

func buildAllSkills() []string {
	var out []string
	for _, skills := range TechnicalSkills {
		out = append(out, skills...)
	}
	for _, skills := range SoftSkills {
		out = append(out, skills...)
	}
	sort.Strings(out)
	return out
}

// AllSkills returns every technical and soft skill, sorted. Skills listed in
// more than one category appear more than once.
func AllSkills() []string {
	out := make([]string, len(allSkills))
	copy(out, allSkills)
	return out
}

// IsKnownSkill reports whether name matches a gazetteer skill, ignoring case.
func IsKnownSkill(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range allSkills {
		if strings.ToLower(s) == name {
			return true
		}
	}
	return false
}
