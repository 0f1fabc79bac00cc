// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package text

// stopWords holds English function words of three or more letters plus
// filler that appears in almost every listing and résumé.
var stopWords = map[string]struct{}{}

var englishStopWords = []string{
	"about", "above", "across", "after", "afterwards", "again", "against", "all",
	"almost", "alone", "along", "already", "also", "although", "always", "among",
	"amongst", "and", "another", "any", "anyhow", "anyone", "anything", "anyway",
	"anywhere", "are", "around", "because", "been", "before", "beforehand",
	"behind", "being", "below", "beside", "besides", "between", "beyond", "both",
	"but", "can", "cannot", "could", "did", "does", "doing", "done", "down",
	"due", "during", "each", "either", "else", "elsewhere", "enough", "etc",
	"even", "ever", "every", "everyone", "everything", "everywhere", "except",
	"few", "for", "former", "formerly", "from", "further", "get", "give", "had",
	"has", "have", "having", "hence", "her", "here", "hereafter", "hereby",
	"herein", "hers", "herself", "him", "himself", "his", "how", "however",
	"inc", "indeed", "into", "its", "itself", "just", "keep", "last", "latter",
	"least", "less", "ltd", "made", "many", "may", "meanwhile", "might", "mine",
	"more", "moreover", "most", "mostly", "much", "must", "myself", "namely",
	"neither", "never", "nevertheless", "next", "nobody", "none", "nor", "not",
	"nothing", "now", "nowhere", "off", "often", "once", "one", "only", "onto",
	"other", "others", "otherwise", "our", "ours", "ourselves", "out", "over",
	"own", "per", "perhaps", "please", "put", "rather", "same", "see", "seem",
	"seemed", "seeming", "seems", "several", "she", "should", "since", "some",
	"somehow", "someone", "something", "sometime", "sometimes", "somewhere",
	"still", "such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "thence", "there", "thereafter", "thereby",
	"therefore", "therein", "thereupon", "these", "they", "this", "those",
	"though", "through", "throughout", "thru", "thus", "together", "too",
	"toward", "towards", "under", "until", "upon", "very", "via", "was", "way",
	"well", "were", "what", "whatever", "when", "whence", "whenever", "where",
	"whereafter", "whereas", "whereby", "wherein", "whereupon", "wherever",
	"whether", "which", "while", "whither", "who", "whoever", "whole", "whom",
	"whose", "why", "will", "with", "within", "without", "would", "yet", "you",
	"your", "yours", "yourself", "yourselves",
}

var fillerStopWords = []string{
	"ability", "able", "applicant", "applicants", "candidate",
	"candidates", "company", "duties", "excellent", "experience", "experienced",
	"good", "great", "ideal", "including", "job", "jobs", "join", "looking",
	"new", "opportunity", "opportunities", "required", "requirements",
	"responsibilities", "responsible", "role", "roles", "skills", "strong",
	"successful", "team", "teams", "use", "used", "using", "work", "working",
	"year", "years",
}

func init() {
	for _, list := range [][]string{englishStopWords, fillerStopWords} {
		for _, w := range list {
			stopWords[w] = struct{}{}
		}
	}
}

// IsStopWord reports whether w, already lower-cased, is a stop word.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
