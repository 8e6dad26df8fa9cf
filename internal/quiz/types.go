package quiz

import "time"

// Option is one selectable answer of a question. Values are Likert points
// in [0,4]; labels are the user-facing Portuguese text.
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Question is a single catalog entry. IDs are stable across releases
// because persisted drafts and records reference them.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// AnswerMap maps question id to the selected option value. A question is
// answered iff its id is present as a key; an explicit 0 and an absent key
// are different states (absent blocks finalization, 0 does not).
type AnswerMap map[string]int

// Clone returns an independent copy.
func (a AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Profile holds the respondent metadata collected before the quiz starts.
// Everything except consent is optional.
type Profile struct {
	ParentName string `json:"parent_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ChildAge   *int   `json:"child_age,omitempty"`
	Consent    bool   `json:"consent"`
}

// ScoreResult is the outcome of scoring an answer map. It is always
// embedded in a Record, never persisted on its own.
type ScoreResult struct {
	Total int       `json:"total"`
	Max   int       `json:"max"`
	Level RiskLevel `json:"level"`
	Tips  []string  `json:"tips"`
}

// Record is the durable result of one completed attempt. Created exactly
// once by Finalize and immutable afterwards.
type Record struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	RespondentName string    `json:"respondent_name"`
	ChildAge       *int      `json:"child_age"`
	Answers        []int     `json:"answers"` // aligned to catalog order, len == catalog size
	ScoreTotal     int       `json:"score_total"`
	RiskLevel      RiskLevel `json:"risk_level"`
	CreatedAt      time.Time `json:"created_at"`
	Consent        bool      `json:"consent"`
}

// Clone returns a deep copy so stored records cannot be mutated through
// values handed out by read operations.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	if r.ChildAge != nil {
		age := *r.ChildAge
		cp.ChildAge = &age
	}
	cp.Answers = append([]int(nil), r.Answers...)
	return &cp
}

// DraftStore persists the single in-progress attempt (profile + partial
// answers). Loads never fail: corrupt stored data degrades to the default
// value. Saves may fail and callers treat that as a non-fatal warning.
type DraftStore interface {
	SaveProfile(p *Profile) error
	LoadProfile() *Profile
	SaveAnswers(a AnswerMap) error
	LoadAnswers() AnswerMap
}

// RecordStore persists finalized records. Reads return copies; appending a
// record whose id already exists is a logic error (conflict).
type RecordStore interface {
	Append(r *Record) (*Record, error)
	FindByRespondent(email string) []*Record
	ListRecent(limit int) []*Record
}
