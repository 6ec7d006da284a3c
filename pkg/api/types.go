package api

import "time"

// Entry is one stored co-pilot answer: the question asked and the markdown
// the model returned for it.
type Entry struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Citations []string  `json:"citations,omitempty"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListQuery narrows a history listing. Zero values mean "no bound".
type ListQuery struct {
	Since time.Time `json:"since,omitempty"`
	Until time.Time `json:"until,omitempty"`
	Limit int       `json:"limit,omitempty"`
}

// Match reports whether e falls inside the query's time window.
func (q ListQuery) Match(e Entry) bool {
	if !q.Since.IsZero() && e.CreatedAt.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && e.CreatedAt.After(q.Until) {
		return false
	}
	return true
}
