package resources

import "regexp"

// Stopwords is the English stopword list used for keyword extraction.
var Stopwords = map[string]bool{}

func init() {
	for _, w := range []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your", "yours",
		"yourself", "yourselves", "he", "him", "his", "himself", "she", "her", "hers",
		"herself", "it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "this", "that", "these", "those", "am", "is", "are",
		"was", "were", "be", "been", "being", "have", "has", "had", "having", "do", "does",
		"did", "doing", "a", "an", "the", "and", "but", "if", "or", "because", "as", "until",
		"while", "of", "at", "by", "for", "with", "about", "against", "between", "into",
		"through", "during", "before", "after", "above", "below", "to", "from", "up", "down",
		"in", "out", "on", "off", "over", "under", "again", "further", "then", "once", "here",
		"there", "when", "where", "why", "how", "all", "any", "both", "each", "few", "more",
		"most", "other", "some", "such", "no", "nor", "not", "only", "own", "same", "so",
		"than", "too", "very", "s", "t", "can", "will", "just", "don", "don't", "should",
		"should've", "now", "d", "ll", "m", "o", "re", "ve", "y", "ain", "aren", "aren't",
		"couldn", "couldn't", "didn", "didn't", "doesn", "doesn't", "hadn", "hadn't", "hasn",
		"hasn't", "haven", "haven't", "isn", "isn't", "ma", "mightn", "mightn't", "mustn",
		"mustn't", "needn", "needn't", "shan", "shan't", "shouldn", "shouldn't", "wasn",
		"wasn't", "weren", "weren't", "won", "won't", "wouldn", "wouldn't",
	} {
		Stopwords[w] = true
	}
}

// InclusivePatterns match language that signals an inclusive posting.
var InclusivePatterns = compileAll(
	`(?i)\b(?:diversity|diverse|inclusion|inclusive)\b`,
	`(?i)\b(?:equal opportunity|eeo|affirmative action)\b`,
	`(?i)\bwelcom(?:e|ing)\s+(?:all|diverse)\s+(?:backgrounds|candidates|applicants)\b`,
	`(?i)\brespect(?:s|ful)?\s+(?:all|for)\s+(?:backgrounds|identities|differences)\b`,
	`(?i)\bembraces?\s+(?:diversity|differences|uniqueness)\b`,
	`(?i)\bvalues?\s+(?:diversity|different perspectives|inclusion)\b`,
	`(?i)\b(?:gender|racial|ethnic|cultural)\s+(?:diversity|representation)\b`,
	`(?i)\b(?:reasonable|disability)\s+accommodations?\b`,
	`(?i)\baccess(?:ible|ibility)\b`,
	`(?i)\bregardless\s+of\s+(?:race|gender|ethnicity|religion|disability|orientation|identity)\b`,
	`(?i)\b(?:work-life|work/life)\s+(?:balance|integration|flexibility)\b`,
	`(?i)\bflexible\s+(?:work|hours|schedule|environment)\b`,
	`(?i)\bequitable\b`,
	`(?i)\b(?:they|them|their|theirs)\b`,
)

// ExclusivePatterns match language that may deter candidates: gendered
// preferences, age coding, "rockstar" jargon and ableist terms.
var ExclusivePatterns = compileAll(
	`(?i)\b(?:he|him|his|himself|man|men|male|guys)\s+(?:only|preferred)\b`,
	`(?i)\b(?:she|her|hers|herself|woman|women|female|ladies)\s+(?:only|preferred)\b`,
	`(?i)\b(?:young|youthful|fresh|recent graduate)\b`,
	`(?i)\bmature\b`,
	`(?i)\bculture fit\b`,
	`(?i)\bwork hard[,/]?\s*play hard\b`,
	`(?i)\bninja\b`,
	`(?i)\brockstar\b`,
	`(?i)\bguru\b`,
	`(?i)\bsuperhero\b`,
	`(?i)\bmeritocracy\b`,
	`(?i)\bcompetitive\s+(?:personality|nature|individual)\b`,
	`(?i)\baggressively?\b`,
	`(?i)\bdominate\b`,
	`(?i)\bmanpower\b`,
	`(?i)\bmanmade\b`,
	`(?i)\bchairman\b`,
	`(?i)\bsalesman\b`,
	`(?i)\bworkmanship\b`,
	`(?i)\bmanaging\s+(?:mother|father)\b`,
	`(?i)\b(?:his|her)\s+(?:job|role|position|responsibility)\b`,
	`(?i)\bablebody(?:ed)?\b`,
	`(?i)\bsane\b`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}
