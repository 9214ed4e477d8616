package resources

import (
	"sort"
	"strings"
)

// JobTitles lists common job titles by industry.
var JobTitles = map[string][]string{
	"technology": {
		"Software Engineer", "Frontend Developer", "Backend Developer", "Full Stack Developer",
		"DevOps Engineer", "Site Reliability Engineer", "Data Scientist", "Data Engineer",
		"Machine Learning Engineer", "AI Researcher", "Cloud Architect", "Solutions Architect",
		"Mobile Developer", "iOS Developer", "Android Developer", "Game Developer",
		"QA Engineer", "Test Automation Engineer", "Security Engineer", "Cybersecurity Analyst",
		"Database Administrator", "Network Engineer", "Systems Administrator", "IT Support Specialist",
		"Product Manager", "Project Manager", "Scrum Master", "Agile Coach", "CTO", "CIO",
		"VP of Engineering", "Technical Director", "UX Designer", "UI Designer", "Technical Writer",
	},
	"finance": {
		"Financial Analyst", "Investment Banker", "Accountant", "Auditor", "Tax Specialist",
		"Financial Controller", "Financial Manager", "Investment Manager", "Portfolio Manager",
		"Risk Analyst", "Credit Analyst", "Compliance Officer", "Financial Advisor",
		"Insurance Underwriter", "Actuary", "Quantitative Analyst", "Financial Planner",
		"Treasury Analyst", "Equity Research Analyst", "M&A Analyst", "CFO", "Finance Director",
		"Treasurer", "Mortgage Consultant", "Loan Officer", "Banking Associate", "Wealth Manager",
	},
	"healthcare": {
		"Physician", "Surgeon", "Nurse", "Nurse Practitioner", "Physician Assistant",
		"Medical Technician", "Radiologist", "Anesthesiologist", "Pharmacist", "Physical Therapist",
		"Occupational Therapist", "Speech Therapist", "Mental Health Counselor", "Psychologist",
		"Psychiatrist", "Dietitian", "Nutritionist", "Medical Assistant", "Paramedic", "EMT",
		"Healthcare Administrator", "Medical Director", "Clinical Research Associate",
		"Biostatistician", "Epidemiologist", "Public Health Specialist", "Healthcare Consultant",
	},
	"marketing": {
		"Marketing Manager", "Digital Marketing Specialist", "SEO Specialist", "Content Marketer",
		"Content Strategist", "Social Media Manager", "Brand Manager", "Product Marketing Manager",
		"Market Research Analyst", "Marketing Analyst", "CRM Manager", "Email Marketing Specialist",
		"Growth Hacker", "Conversion Rate Optimizer", "Copywriter", "Creative Director",
		"Marketing Director", "CMO", "Public Relations Specialist", "Communications Manager",
		"Media Planner", "Advertising Executive", "Event Marketing Manager", "Influencer Marketing Manager",
	},
	"human_resources": {
		"HR Manager", "Recruiter", "Talent Acquisition Specialist", "HR Business Partner",
		"Training and Development Manager", "Learning and Development Specialist",
		"Compensation and Benefits Manager", "HRIS Analyst", "HR Coordinator", "HR Director",
		"Chief People Officer", "Employee Relations Specialist", "Diversity and Inclusion Manager",
		"Organizational Development Consultant", "HR Consultant", "Payroll Specialist",
		"Human Capital Manager", "Workforce Planning Analyst", "Culture Officer", "HR Generalist",
	},
}

// FieldsOfStudy lists common academic disciplines.
var FieldsOfStudy = []string{
	"Computer Science", "Information Technology", "Software Engineering", "Data Science",
	"Artificial Intelligence", "Machine Learning", "Cybersecurity", "Network Engineering",
	"Business Administration", "Finance", "Accounting", "Economics", "Marketing", "Management",
	"Human Resources", "Mechanical Engineering", "Electrical Engineering", "Civil Engineering",
	"Chemical Engineering", "Biomedical Engineering", "Physics", "Mathematics", "Statistics",
	"Biology", "Chemistry", "Environmental Science", "Psychology", "Sociology", "Communications",
	"English", "History", "Political Science", "International Relations", "Law", "Medicine",
	"Nursing", "Pharmacy", "Public Health", "Education", "Graphic Design", "Fine Arts",
	"Architecture", "Music", "Theater", "Film Studies", "Journalism", "Philosophy",
}

// Industry describes an industry's subcategories and vocabulary.
type Industry struct {
	Subcategories []string
	CommonTerms   []string
}

// Industries maps an industry key to its vocabulary.
var Industries = map[string]Industry{
	"technology": {
		Subcategories: []string{
			"Software Development", "Information Technology", "Cybersecurity", "Cloud Computing",
			"Artificial Intelligence", "Machine Learning", "Data Science", "Blockchain", "Internet of Things",
			"Robotics", "Quantum Computing", "Virtual Reality", "Augmented Reality", "Telecommunications",
			"Semiconductor", "Electronics", "Biotechnology", "Healthtech", "Fintech", "Edtech", "Cleantech",
			"E-commerce", "Gaming", "Social Media", "Digital Media", "Adtech", "Proptech",
		},
		CommonTerms: []string{
			"SaaS", "PaaS", "IaaS", "API", "SDK", "UI/UX", "Frontend", "Backend", "Full Stack",
			"DevOps", "CI/CD", "Agile", "Scrum", "Kanban", "MVP", "Prototype", "Scalability",
			"Big Data", "Cloud Native", "Containerization", "Microservices", "Digital Transformation",
			"AI/ML", "Computer Vision", "NLP", "Deep Learning", "Neural Networks", "Blockchain",
			"Cryptocurrency", "Smart Contracts", "IoT", "Edge Computing", "5G", "VR/AR",
		},
	},
	"finance": {
		Subcategories: []string{
			"Banking", "Investment Banking", "Asset Management", "Wealth Management", "Insurance",
			"Financial Planning", "Financial Analysis", "Investment", "Venture Capital", "Private Equity",
			"Hedge Funds", "Accounting", "Auditing", "Tax Services", "Risk Management", "Compliance",
			"Securities", "Trading", "Fintech", "Cryptocurrency", "Real Estate Finance", "Mortgage Lending",
		},
		CommonTerms: []string{
			"ROI", "IRR", "NPV", "EBITDA", "P/E Ratio", "EPS", "Cash Flow", "Balance Sheet",
			"Income Statement", "Financial Modeling", "Valuation", "Due Diligence", "M&A",
			"IPO", "Underwriting", "Securities", "Equity", "Fixed Income", "Derivatives",
			"Options", "Futures", "Hedge", "Portfolio Management", "Asset Allocation",
			"Risk Assessment", "Market Analysis", "Financial Reporting", "GAAP", "IFRS",
		},
	},
	"healthcare": {
		Subcategories: []string{
			"Hospital Services", "Clinical Care", "Primary Care", "Specialized Care", "Urgent Care",
			"Emergency Medicine", "Surgery", "Radiology", "Pathology", "Oncology", "Cardiology",
			"Neurology", "Pediatrics", "Geriatrics", "Mental Health", "Rehabilitation",
			"Pharmaceutical", "Medical Devices", "Biotechnology", "Health Insurance",
			"Healthcare IT", "Telemedicine", "Home Healthcare", "Long-term Care", "Wellness",
			"Public Health", "Healthcare Research", "Clinical Trials",
		},
		CommonTerms: []string{
			"Patient Care", "Clinical Trials", "Electronic Health Records (EHR)",
			"HIPAA Compliance", "Diagnosis", "Treatment", "Prognosis", "Prescription",
			"Medication", "Therapy", "Rehabilitation", "Medical Imaging", "Laboratory Testing",
			"Vital Signs", "Outpatient", "Inpatient", "ICU", "Emergency Room", "Triage",
			"Healthcare Providers", "Value-Based Care", "Preventive Care", "Chronic Disease Management",
			"Population Health", "Telehealth", "Remote Patient Monitoring", "Healthcare Analytics",
		},
	},
	"marketing": {
		Subcategories: []string{
			"Digital Marketing", "Content Marketing", "Social Media Marketing", "Email Marketing",
			"Search Engine Optimization (SEO)", "Search Engine Marketing (SEM)", "Paid Advertising",
			"Display Advertising", "Affiliate Marketing", "Influencer Marketing", "Brand Management",
			"Market Research", "Product Marketing", "Event Marketing", "Public Relations",
			"Communications", "Direct Marketing", "Guerrilla Marketing", "Experiential Marketing",
			"Marketing Analytics", "Conversion Rate Optimization", "Customer Relationship Management",
			"Marketing Automation", "Growth Marketing",
		},
		CommonTerms: []string{
			"Brand Awareness", "Brand Equity", "Market Share", "Target Audience", "Demographics",
			"Psychographics", "Customer Segmentation", "Buyer Persona", "Customer Journey",
			"Funnel Marketing", "CTR", "CPC", "CPM", "CPA", "ROAS", "Conversion Rate",
			"Engagement Rate", "Bounce Rate", "Retention Rate", "CAC", "LTV", "KPI", "ROI",
			"A/B Testing", "Landing Page", "Call to Action (CTA)", "Content Strategy",
			"SEO", "SEM", "PPC", "Social Media Engagement", "Influencer Collaboration",
		},
	},
	"manufacturing": {
		Subcategories: []string{
			"Automotive Manufacturing", "Aerospace Manufacturing", "Electronics Manufacturing",
			"Machinery Manufacturing", "Textile Manufacturing", "Food and Beverage Manufacturing",
			"Pharmaceutical Manufacturing", "Chemical Manufacturing", "Plastics Manufacturing",
			"Metal Manufacturing", "Wood Product Manufacturing", "Furniture Manufacturing",
			"Printing and Related Support", "Computer and Electronic Product Manufacturing",
			"Electrical Equipment Manufacturing", "Transportation Equipment Manufacturing",
			"Apparel Manufacturing", "Paper Manufacturing", "Petroleum and Coal Products",
		},
		CommonTerms: []string{
			"Supply Chain", "Production Line", "Assembly Line", "Quality Control", "Quality Assurance",
			"Lean Manufacturing", "Six Sigma", "Just-in-Time (JIT)", "Material Requirements Planning (MRP)",
			"Enterprise Resource Planning (ERP)", "Computer-Aided Design (CAD)",
			"Computer-Aided Manufacturing (CAM)", "Automation", "Robotics", "CNC Machining",
			"3D Printing", "Additive Manufacturing", "Inventory Management", "Procurement",
			"Bill of Materials", "Work-in-Progress", "Finished Goods", "Raw Materials",
			"Product Lifecycle Management (PLM)", "ISO Standards", "Compliance", "Safety Regulations",
			"Industrial Engineering", "Process Improvement", "Productivity Metrics",
		},
	},
}

// AllJobTitles returns every job title across industries, sorted.
func AllJobTitles() []string {
	var out []string
	for _, titles := range JobTitles {
		out = append(out, titles...)
	}
	sort.Strings(out)
	return out
}

// IndustryForText returns the industry whose vocabulary appears most often in
// text, or "" when none of it does.
func IndustryForText(text string) string {
	lower := strings.ToLower(text)
	best, bestHits := "", 0
	keys := make([]string, 0, len(Industries))
	for k := range Industries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ind := Industries[key]
		hits := 0
		for _, term := range append(append([]string{}, ind.Subcategories...), ind.CommonTerms...) {
			if strings.Contains(lower, strings.ToLower(term)) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = key, hits
		}
	}
	return best
}
