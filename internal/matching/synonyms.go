package matching

// synonyms maps a canonical lowercase skill or category key to its informal
// variants. The table is hand-curated; extending it is a data change, not a
// logic change. All lookups assume the inputs are already lowercased.
var synonyms = map[string][]string{
	"javascript":             {"js", "node.js", "nodejs", "node"},
	"typescript":             {"ts"},
	"python":                 {"py", "python3"},
	"golang":                 {"go"},
	"c sharp":                {"c#", "csharp", "dotnet", ".net"},
	"react":                  {"react.js", "reactjs"},
	"vue":                    {"vue.js", "vuejs"},
	"angular":                {"angular.js", "angularjs"},
	"html and css":           {"html", "css", "html/css", "html5", "css3"},
	"sql":                    {"mysql", "postgresql", "postgres", "sqlite"},
	"nosql databases":        {"mongodb", "mongo", "dynamodb", "cassandra"},
	"kubernetes":             {"k8s"},
	"docker":                 {"containers", "containerization"},
	"amazon web services":    {"aws"},
	"google cloud platform":  {"gcp", "google cloud"},
	"continuous integration": {"ci", "ci/cd", "cicd", "continuous delivery"},
	"version control":        {"git", "github", "gitlab"},
	"machine learning":       {"ml", "deep learning"},
	"data visualization":     {"tableau", "power bi", "matplotlib"},
	"rest apis":              {"rest", "restful", "api design", "apis"},
	"user interface design":  {"ui", "ui design"},
	"user experience design": {"ux", "ux design", "ux research"},
	"unit testing":           {"testing", "tdd", "test driven development"},
}

// AreSimilar reports whether x and y name the same skill according to the
// synonym table: one is a canonical key and the other one of its variants,
// or both appear in the same key's variant list. Inputs must already be
// lowercased.
func AreSimilar(x, y string) bool {
	for key, variants := range synonyms {
		inX := x == key
		inY := y == key
		for _, v := range variants {
			if v == x {
				inX = true
			}
			if v == y {
				inY = true
			}
		}
		if inX && inY {
			return true
		}
	}
	return false
}
