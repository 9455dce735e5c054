package query

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchMode is how the search term of a job query is matched
type SearchMode int

// Search modes
const (
	// SearchNone applies no text matching
	SearchNone SearchMode = iota
	// SearchSubstring matches the term case-insensitively anywhere in the text fields
	SearchSubstring
	// SearchRanked uses the full-text index and orders by relevance
	SearchRanked
)

func (m SearchMode) String() string {
	switch m {
	case SearchSubstring:
		return "substring"
	case SearchRanked:
		return "ranked"
	default:
		return "none"
	}
}

// SubstringSearchMaxLen is the longest search term, in characters, matched as a substring.
// Short fragments tokenize poorly, so they never go through the text index.
const SubstringSearchMaxLen = 6

// searchColumns are the text fields covered by both search modes.
var searchColumns = []string{"title", "company", "location", "description"}

// tsQuery turns the search term into a tsquery whose words are OR'ed, so a job matching any
// word is found and jobs matching more words rank higher.
const tsQuery = "replace(plainto_tsquery('english', ?)::text, ' & ', ' | ')::tsquery"

// Condition is one WHERE expression with its bind arguments
type Condition struct {
	Query string
	Args  []interface{}
}

// SortKey is one ORDER BY term
type SortKey struct {
	Column string
	Desc   bool
}

// JobFilter is the database filter and sort order of a job listing
type JobFilter struct {
	Mode       SearchMode
	SearchTerm string
	Conditions []Condition
	Sort       []SortKey
}

// BuildJobFilter translates a job query into conditions and a sort order. It does not touch the database.
func BuildJobFilter(q JobQuery) JobFilter {
	var f JobFilter

	search := strings.TrimSpace(q.Search)
	switch {
	case search == "":
	case utf8.RuneCountInString(search) <= SubstringSearchMaxLen:
		f.Mode = SearchSubstring
		pattern := containsPattern(search)
		ors := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, col := range searchColumns {
			ors = append(ors, "jobs."+col+" ILIKE ?")
			args = append(args, pattern)
		}
		f.add("("+strings.Join(ors, " OR ")+")", args...)
	default:
		f.Mode = SearchRanked
		f.SearchTerm = search
		f.add("jobs.search_vector @@ "+tsQuery, search)
		f.Sort = append(f.Sort, SortKey{Column: "score", Desc: true})
	}

	if q.Type != "" {
		f.add("jobs.type = ?", q.Type)
	}

	if location := strings.TrimSpace(q.Location); location != "" {
		f.add("jobs.location ILIKE ?", containsPattern(location))
	}

	if q.MinSalary != nil {
		f.add("jobs.salary_min >= ?", *q.MinSalary)
	}
	if q.MaxSalary != nil {
		f.add("jobs.salary_max <= ?", *q.MaxSalary)
	}

	if q.Employer != nil {
		f.add("jobs.employer_id = ?", *q.Employer)
	}

	// id breaks ties between jobs created in the same instant so pages are stable
	f.Sort = append(f.Sort,
		SortKey{Column: "jobs.created_at", Desc: true},
		SortKey{Column: "jobs.id", Desc: true},
	)

	return f
}

func (f *JobFilter) add(query string, args ...interface{}) {
	f.Conditions = append(f.Conditions, Condition{Query: query, Args: args})
}

// Where is a gorm scope applying the filter conditions.
func (f JobFilter) Where(db *gorm.DB) *gorm.DB {
	for _, c := range f.Conditions {
		db = db.Where(c.Query, c.Args...)
	}
	return db
}

// Order is a gorm scope applying the sort order, selecting the relevance score for ranked searches.
func (f JobFilter) Order(db *gorm.DB) *gorm.DB {
	if f.Mode == SearchRanked {
		db = db.Select("jobs.*, ts_rank(jobs.search_vector, "+tsQuery+") AS score", f.SearchTerm)
	}
	for _, s := range f.Sort {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: s.Column, Raw: true},
			Desc:   s.Desc,
		})
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is an ILIKE pattern matching s literally anywhere in the value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
