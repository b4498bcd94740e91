package reference

import "strings"

// Type keys assigned by Classify.
const (
	TypeJournal    = "journal"
	TypeBook       = "book"
	TypeChapter    = "chapter"
	TypeConference = "conference"
	TypePreprint   = "preprint"
	TypeDataset    = "dataset"
	TypeWebsite    = "website"
	TypeUnknown    = "unknown"
)

// typeLabels maps type keys to display labels.
var typeLabels = map[string]string{
	TypeJournal:    "Journal Article",
	TypeBook:       "Book",
	TypeChapter:    "Book Chapter",
	TypeConference: "Conference Paper",
	TypePreprint:   "Preprint",
	TypeDataset:    "Dataset",
	TypeWebsite:    "Website",
	TypeUnknown:    "Unknown",
}

// crossrefTypeMap maps Crossref work types to our type keys. Entries
// not in this map fall through to the text heuristics.
var crossrefTypeMap = map[string]string{
	"journal-article":     TypeJournal,
	"article-journal":     TypeJournal,
	"book":                TypeBook,
	"book-chapter":        TypeChapter,
	"proceedings-article": TypeConference,
	"posted-content":      TypePreprint,
	"dataset":             TypeDataset,
	"report":              TypeBook,
	"standard":            TypeBook,
	"proceedings":         TypeConference,
}

var (
	datasetTerms     = []string{"dataset", "data set", "data repository", "supplementary data"}
	datasetRepoTerms = []string{"zenodo", "figshare", "dryad", "osf", "kaggle", "dataverse"}
	preprintTerms    = []string{"preprint", "arxiv", "biorxiv", "medrxiv", "ssrn", "research square"}
	conferenceTerms  = []string{"proceedings", "conference", "symposium", "workshop"}
	bookTerms        = []string{"press", "publishing", "publisher", "edition"}
)

// Classify returns the type key for an entry.
//
// The check order is a deliberate precedence policy: dataset and
// preprint markers are more specific than the generic book/journal
// heuristics and must win on ambiguous text. Do not reorder.
func Classify(e *Entry) string {
	if e.EntryType != "" {
		if mapped, ok := crossrefTypeMap[strings.ToLower(e.EntryType)]; ok {
			return mapped
		}
	}

	raw := strings.ToLower(e.RawText)
	title := strings.ToLower(e.Title)
	url := strings.ToLower(e.URL)

	switch {
	case containsAny(raw, datasetTerms) || containsAny(url, datasetRepoTerms) || containsAny(title, datasetTerms):
		return TypeDataset
	case containsAny(raw, preprintTerms) || containsAny(url, preprintTerms) || containsAny(title, preprintTerms):
		return TypePreprint
	case containsAny(raw, conferenceTerms):
		return TypeConference
	case strings.Contains(raw, "chapter") && strings.Contains(raw, "in:"):
		return TypeChapter
	case containsAny(raw, bookTerms):
		return TypeBook
	case e.Journal != "":
		return TypeJournal
	case e.URL != "":
		return TypeWebsite
	default:
		return TypeUnknown
	}
}

// TypeLabel returns the display label for a type key.
func TypeLabel(key string) string {
	if label, ok := typeLabels[key]; ok {
		return label
	}
	return typeLabels[TypeUnknown]
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
