package models

// Phase is one of the two quiz sub-steps an item goes through per draw.
type Phase string

const (
	// PhaseMeaning asks the learner to pick the item matching a clue.
	PhaseMeaning Phase = "meaning"
	// PhaseArticle asks the learner to pick the item's article.
	PhaseArticle Phase = "article"
)

// ItemSummary is the per-item view returned by the statistics endpoint.
type ItemSummary struct {
	ItemID     string  `json:"item_id"`
	Display    string  `json:"display"`
	SeenCount  int     `json:"seen_count"`
	Correct    int     `json:"correct"`
	Wrong      int     `json:"wrong"`
	ErrorRate  float64 `json:"error_rate"`
	LastSeenAt string  `json:"last_seen_at,omitempty"`
}

// StatsSummary aggregates drill statistics over the whole catalog.
type StatsSummary struct {
	TotalItems      int           `json:"total_items"`
	ItemsSeen       int           `json:"items_seen"`
	TotalAnswers    int           `json:"total_answers"`
	TotalWrong      int           `json:"total_wrong"`
	MeaningAccuracy float64       `json:"meaning_accuracy"`
	ArticleAccuracy float64       `json:"article_accuracy"`
	Items           []ItemSummary `json:"items"`
}
