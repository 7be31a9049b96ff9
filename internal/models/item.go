package models

// Article is the grammatical gender marker of a German noun.
type Article string

const (
	ArticleDer Article = "der"
	ArticleDie Article = "die"
	ArticleDas Article = "das"
)

// Articles lists every valid article, in display order.
var Articles = []Article{ArticleDer, ArticleDie, ArticleDas}

func (a Article) Valid() bool {
	switch a {
	case ArticleDer, ArticleDie, ArticleDas:
		return true
	}
	return false
}

// VocabItem is one entry of the static vocabulary catalog. Items are
// immutable for the lifetime of the process; all mutable learner state
// lives in ItemStatistics, keyed by ID.
type VocabItem struct {
	ID      string   `json:"id"`
	Article Article  `json:"article"`
	Lemma   string   `json:"lemma"`
	Display string   `json:"display"`
	Tags    []string `json:"tags"`
	Clues   []string `json:"clues"`
}

func (v VocabItem) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharesTag reports whether two items have at least one tag in common.
func (v VocabItem) SharesTag(other VocabItem) bool {
	for _, t := range other.Tags {
		if v.HasTag(t) {
			return true
		}
	}
	return false
}
