package models

import "time"

// ItemStatistics holds the per-item counters that drive adaptive selection.
// Counters only ever grow within a process lifetime; they persist across
// rounds and sessions. A zero value means "never drilled".
type ItemStatistics struct {
	ItemID         string    `json:"item_id"`
	SeenCount      int       `json:"seen_count"`
	CorrectMeaning int       `json:"correct_meaning"`
	WrongMeaning   int       `json:"wrong_meaning"`
	CorrectArticle int       `json:"correct_article"`
	WrongArticle   int       `json:"wrong_article"`
	LastSeenAt     time.Time `json:"last_seen_at"`
}

// TotalAnswers is the number of recorded answers across both phases.
func (s ItemStatistics) TotalAnswers() int {
	return s.CorrectMeaning + s.WrongMeaning + s.CorrectArticle + s.WrongArticle
}

// TotalWrong is the cumulative miss count across both phases.
func (s ItemStatistics) TotalWrong() int {
	return s.WrongMeaning + s.WrongArticle
}

// ErrorRate is the historical miss fraction in [0,1], 0 when unanswered.
func (s ItemStatistics) ErrorRate() float64 {
	total := s.TotalAnswers()
	if total == 0 {
		return 0
	}
	return float64(s.TotalWrong()) / float64(total)
}
