package quiz

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// State of the quiz flow.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// FirstUnanswered returns the index of the first catalog question absent
// from answers. When every question is answered it returns 0 (review mode).
func FirstUnanswered(catalog []Question, answers AnswerMap) int {
	for i, q := range catalog {
		if _, ok := answers[q.ID]; !ok {
			return i
		}
	}
	return 0
}

// FinalizeResult reports the outcome of a successful finalization. Saved is
// false when the record could not be written durably; the record itself is
// still valid and shown to the user.
type FinalizeResult struct {
	Record  *Record
	Score   ScoreResult
	Saved   bool
	SaveErr error
}

// Flow sequences one quiz attempt: it tracks the current question, mirrors
// the answer map in memory, write-through persists every change, and turns
// a complete answer set into exactly one stored Record.
//
// Flow is not safe for concurrent use; the embedding layer serializes calls.
type Flow struct {
	drafts  DraftStore
	records RecordStore
	now     func() time.Time
	newID   func() string

	state   State
	index   int
	profile *Profile
	answers AnswerMap
}

// NewFlow builds a flow bound to the given stores.
func NewFlow(drafts DraftStore, records RecordStore) *Flow {
	return &Flow{
		drafts:  drafts,
		records: records,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
		state:   StateNotStarted,
		answers: AnswerMap{},
	}
}

func (f *Flow) State() State       { return f.state }
func (f *Flow) Index() int         { return f.index }
func (f *Flow) Profile() *Profile  { return f.profile }
func (f *Flow) Answers() AnswerMap { return f.answers.Clone() }

// SetProfile stores the respondent metadata without touching answers.
// A write failure is returned as a storage warning; the in-memory profile
// is updated regardless.
func (f *Flow) SetProfile(p *Profile) error {
	f.profile = p
	if err := f.drafts.SaveProfile(p); err != nil {
		return NewStorageError("save profile: " + err.Error())
	}
	return nil
}

// Start begins a fresh attempt: answers reset to empty, profile saved (or
// the previously saved one retained when p is nil), position at the first
// question.
func (f *Flow) Start(p *Profile) error {
	if p == nil {
		p = f.drafts.LoadProfile()
	}
	f.profile = p
	f.answers = AnswerMap{}
	f.state = StateInProgress
	f.index = 0
	var warn error
	if p != nil {
		if err := f.drafts.SaveProfile(p); err != nil {
			warn = NewStorageError("save profile: " + err.Error())
		}
	}
	if err := f.drafts.SaveAnswers(f.answers); err != nil {
		warn = NewStorageError("save answers: " + err.Error())
	}
	return warn
}

// Resume reloads the persisted draft and positions the flow at the first
// unanswered question, or at 0 when everything is already answered. It is
// idempotent and recomputes purely from stored state.
func (f *Flow) Resume() int {
	f.profile = f.drafts.LoadProfile()
	f.answers = f.drafts.LoadAnswers()
	if f.answers == nil {
		f.answers = AnswerMap{}
	}
	f.state = StateInProgress
	f.index = FirstUnanswered(questions, f.answers)
	return f.index
}

// Answer records value for the question at index, which must be the current
// position. The value must be one of the question's option values. The
// updated map is persisted immediately; a persistence failure is returned
// as a storage warning while the in-memory answer stands.
func (f *Flow) Answer(index, value int) error {
	if f.state != StateInProgress {
		return NewInvalidError("quiz not in progress")
	}
	if index != f.index {
		return NewInvalidError("answer must target the current question")
	}
	q := questions[index]
	if !HasOptionValue(q, value) {
		return NewInvalidError("value not among the question's options")
	}
	f.answers[q.ID] = value
	if err := f.drafts.SaveAnswers(f.answers); err != nil {
		return NewStorageError("save answers: " + err.Error())
	}
	return nil
}

// CurrentAnswered reports whether the current question has an answer.
func (f *Flow) CurrentAnswered() bool {
	if f.state != StateInProgress {
		return false
	}
	_, ok := f.answers[questions[f.index].ID]
	return ok
}

// AllAnswered reports whether every catalog question has an answer.
func (f *Flow) AllAnswered() bool {
	for _, q := range questions {
		if _, ok := f.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Advance moves to the next question. The current one must be answered, and
// the last question never advances: callers must finalize explicitly.
func (f *Flow) Advance() error {
	if f.state != StateInProgress {
		return NewInvalidError("quiz not in progress")
	}
	if !f.CurrentAnswered() {
		return NewInvalidError("current question not answered")
	}
	if f.index >= len(questions)-1 {
		return NewInvalidError("last question reached; finalize instead")
	}
	f.index++
	return nil
}

// Retreat moves back one question without clearing any answer.
func (f *Flow) Retreat() error {
	if f.state != StateInProgress {
		return NewInvalidError("quiz not in progress")
	}
	if f.index == 0 {
		return NewInvalidError("already at the first question")
	}
	f.index--
	return nil
}

// Progress returns the display percentage: the current question counts once
// it is answered, and a completed attempt is always 100.
func (f *Flow) Progress() int {
	if f.state == StateComplete {
		return 100
	}
	done := f.index
	if f.CurrentAnswered() {
		done++
	}
	return int(math.Round(100 * float64(done) / float64(len(questions))))
}

// Finalize validates completeness, scores the answers, synthesizes a Record
// and appends it to the record store. An incomplete answer set fails with a
// validation error and leaves the state untouched. A duplicate record id is
// a logic error and also fails. A storage write failure does not: the flow
// completes with Saved=false so the caller can warn about lost durability.
func (f *Flow) Finalize() (*FinalizeResult, error) {
	if f.state != StateInProgress {
		return nil, NewInvalidError("quiz not in progress")
	}
	if !f.AllAnswered() {
		return nil, NewInvalidError("all questions must be answered")
	}

	score := ComputeScore(f.answers)
	ordered := make([]int, len(questions))
	for i, q := range questions {
		ordered[i] = f.answers[q.ID]
	}

	rec := &Record{
		ID:         f.newID(),
		Answers:    ordered,
		ScoreTotal: score.Total,
		RiskLevel:  score.Level,
		CreatedAt:  f.now(),
	}
	if p := f.profile; p != nil {
		rec.Email = p.Email
		rec.Phone = p.Phone
		rec.RespondentName = p.ParentName
		rec.Consent = p.Consent
		if p.ChildAge != nil {
			age := *p.ChildAge
			rec.ChildAge = &age
		}
	}

	res := &FinalizeResult{Record: rec, Score: score, Saved: true}
	if _, err := f.records.Append(rec); err != nil {
		if se, ok := AsServiceError(err); ok && se.Code == ErrorConflict {
			return nil, err
		}
		res.Saved = false
		res.SaveErr = NewStorageError("append record: " + err.Error())
	}
	f.state = StateComplete
	return res, nil
}
