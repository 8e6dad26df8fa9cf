package quiz

import (
	"errors"
	"testing"
	"time"
)

type stubDraftStore struct {
	profile      *Profile
	answers      AnswerMap
	saveErr      error
	profileSaves int
	answerSaves  int
}

func (s *stubDraftStore) SaveProfile(p *Profile) error {
	s.profileSaves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.profile = p
	return nil
}

func (s *stubDraftStore) LoadProfile() *Profile { return s.profile }

func (s *stubDraftStore) SaveAnswers(a AnswerMap) error {
	s.answerSaves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.answers = a.Clone()
	return nil
}

func (s *stubDraftStore) LoadAnswers() AnswerMap {
	if s.answers == nil {
		return AnswerMap{}
	}
	return s.answers.Clone()
}

type stubRecordStore struct {
	records   []*Record
	appendErr error
}

func (s *stubRecordStore) Append(r *Record) (*Record, error) {
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	s.records = append(s.records, r.Clone())
	return r, nil
}

func (s *stubRecordStore) FindByRespondent(string) []*Record { return nil }
func (s *stubRecordStore) ListRecent(int) []*Record          { return nil }

func newTestFlow() (*Flow, *stubDraftStore, *stubRecordStore) {
	drafts := &stubDraftStore{}
	records := &stubRecordStore{}
	f := NewFlow(drafts, records)
	f.now = func() time.Time { return time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC) }
	f.newID = func() string { return "REC1" }
	return f, drafts, records
}

func answerThrough(t *testing.T, f *Flow, upto int, value int) {
	t.Helper()
	for i := 0; i <= upto; i++ {
		if err := f.Answer(i, value); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if i < len(questions)-1 {
			if err := f.Advance(); err != nil {
				t.Fatalf("advance from %d: %v", i, err)
			}
		}
	}
}

func TestFirstUnanswered(t *testing.T) {
	catalog := Catalog()
	if got := FirstUnanswered(catalog, AnswerMap{}); got != 0 {
		t.Fatalf("empty map resume index = %d, want 0", got)
	}
	partial := AnswerMap{"q1": 0, "q2": 3, "q3": 1}
	if got := FirstUnanswered(catalog, partial); got != 3 {
		t.Fatalf("resume index = %d, want 3", got)
	}
	if got := FirstUnanswered(catalog, answerAll(1)); got != 0 {
		t.Fatalf("all-answered resume index = %d, want 0 (review mode)", got)
	}
}

func TestResumeRecomputesFromPersistedState(t *testing.T) {
	f, drafts, _ := newTestFlow()
	if err := f.Start(&Profile{ParentName: "Ana"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := f.Answer(i, 2); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if err := f.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	// a second flow against the same draft store simulates a reload
	f2 := NewFlow(drafts, &stubRecordStore{})
	if got := f2.Resume(); got != 3 {
		t.Fatalf("resume index = %d, want 3", got)
	}
	if f2.Profile() == nil || f2.Profile().ParentName != "Ana" {
		t.Fatalf("profile not restored: %+v", f2.Profile())
	}
	// idempotent
	if got := f2.Resume(); got != 3 {
		t.Fatalf("second resume index = %d, want 3", got)
	}
}

func TestAnswerValidatesOptionValues(t *testing.T) {
	f, drafts, _ := newTestFlow()
	_ = f.Start(nil)

	if err := f.Answer(0, 7); err == nil {
		t.Fatal("expected validation error for out-of-range value")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error, got %v", err)
	}
	if err := f.Answer(5, 2); err == nil {
		t.Fatal("expected validation error for non-current index")
	}
	if len(f.Answers()) != 0 {
		t.Fatalf("rejected answers must not be recorded: %v", f.Answers())
	}

	if err := f.Answer(0, 4); err != nil {
		t.Fatalf("valid answer rejected: %v", err)
	}
	if drafts.answers["q1"] != 4 {
		t.Fatalf("answer not write-through persisted: %v", drafts.answers)
	}
}

func TestAnswerStorageFailureKeepsMemoryAuthoritative(t *testing.T) {
	f, drafts, _ := newTestFlow()
	_ = f.Start(nil)
	drafts.saveErr = errors.New("quota exceeded")

	err := f.Answer(0, 3)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorStorage {
		t.Fatalf("expected storage warning, got %v", err)
	}
	if f.Answers()["q1"] != 3 {
		t.Fatalf("in-memory answer lost on write failure")
	}
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	f, _, _ := newTestFlow()
	_ = f.Start(nil)

	if err := f.Advance(); err == nil {
		t.Fatal("advance without answer must fail")
	}
	if err := f.Retreat(); err == nil {
		t.Fatal("retreat at index 0 must fail")
	}

	_ = f.Answer(0, 1)
	if err := f.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if f.Index() != 1 {
		t.Fatalf("index = %d, want 1", f.Index())
	}
	if err := f.Retreat(); err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if f.Index() != 0 || f.Answers()["q1"] != 1 {
		t.Fatalf("retreat cleared state: index=%d answers=%v", f.Index(), f.Answers())
	}
}

func TestAdvancePastLastQuestionFails(t *testing.T) {
	f, _, _ := newTestFlow()
	_ = f.Start(nil)
	answerThrough(t, f, len(questions)-1, 0)

	if f.Index() != len(questions)-1 {
		t.Fatalf("index = %d, want %d", f.Index(), len(questions)-1)
	}
	if err := f.Advance(); err == nil {
		t.Fatal("advancing past the last question must fail; finalize is explicit")
	}
}

func TestProgress(t *testing.T) {
	f, _, _ := newTestFlow()
	_ = f.Start(nil)

	if got := f.Progress(); got != 0 {
		t.Fatalf("initial progress = %d, want 0", got)
	}
	_ = f.Answer(0, 2)
	if got := f.Progress(); got != 5 {
		t.Fatalf("progress after first answer = %d, want 5", got)
	}
	_ = f.Advance()
	if got := f.Progress(); got != 5 {
		t.Fatalf("progress at unanswered q2 = %d, want 5", got)
	}
	_ = f.Answer(1, 2)
	if got := f.Progress(); got != 10 {
		t.Fatalf("progress after second answer = %d, want 10", got)
	}
}

func TestProgressAfterFinalize(t *testing.T) {
	f, _, _ := newTestFlow()
	_ = f.Start(nil)
	answerThrough(t, f, len(questions)-1, 1)

	if _, err := f.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got := f.Progress(); got != 100 {
		t.Fatalf("progress after completion = %d, want 100", got)
	}
}

func TestFinalizeRequiresAllAnswered(t *testing.T) {
	f, _, records := newTestFlow()
	_ = f.Start(nil)
	answerThrough(t, f, len(questions)-2, 2)
	// move to the last question but leave it unanswered
	if err := f.Advance(); err != nil {
		t.Fatalf("advance to last: %v", err)
	}

	_, err := f.Finalize()
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.State() != StateInProgress || f.Index() != len(questions)-1 {
		t.Fatalf("state changed on failed finalize: %s index=%d", f.State(), f.Index())
	}
	if len(records.records) != 0 {
		t.Fatalf("no record may be written on failed finalize")
	}
}

func TestFinalizeWritesRecordAndCompletes(t *testing.T) {
	age := 8
	f, _, records := newTestFlow()
	_ = f.Start(&Profile{ParentName: "Ana", Email: "ana@example.com", Phone: "+55 11 90000-0000", ChildAge: &age, Consent: true})
	answerThrough(t, f, len(questions)-1, 4)

	res, err := f.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !res.Saved || res.SaveErr != nil {
		t.Fatalf("expected durable save, got saved=%v err=%v", res.Saved, res.SaveErr)
	}
	if f.State() != StateComplete {
		t.Fatalf("state = %s, want %s", f.State(), StateComplete)
	}

	rec := res.Record
	if rec.ID != "REC1" {
		t.Fatalf("record id = %q, want REC1", rec.ID)
	}
	if rec.ScoreTotal != 80 || rec.RiskLevel != RiskMuitoAlta {
		t.Fatalf("record score = (%d,%s), want (80,%s)", rec.ScoreTotal, rec.RiskLevel, RiskMuitoAlta)
	}
	if len(rec.Answers) != len(questions) {
		t.Fatalf("answers length = %d, want %d", len(rec.Answers), len(questions))
	}
	for i, v := range rec.Answers {
		if v != 4 {
			t.Fatalf("answers[%d] = %d, want 4", i, v)
		}
	}
	if rec.Email != "ana@example.com" || rec.RespondentName != "Ana" || !rec.Consent {
		t.Fatalf("profile fields not carried: %+v", rec)
	}
	if rec.ChildAge == nil || *rec.ChildAge != 8 {
		t.Fatalf("child age not carried: %v", rec.ChildAge)
	}
	if !rec.CreatedAt.Equal(time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("created at = %v", rec.CreatedAt)
	}
	if len(records.records) != 1 {
		t.Fatalf("records stored = %d, want 1", len(records.records))
	}

	// a second finalize must fail: the flow is complete
	if _, err := f.Finalize(); err == nil {
		t.Fatal("finalize after completion must fail")
	}
}

func TestFinalizeWithoutConsentStillPersists(t *testing.T) {
	f, _, records := newTestFlow()
	_ = f.Start(&Profile{Consent: false})
	answerThrough(t, f, len(questions)-1, 0)

	res, err := f.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !res.Saved || len(records.records) != 1 {
		t.Fatalf("consent=false record must still be stored")
	}
	if records.records[0].Consent {
		t.Fatalf("consent flag must persist as false")
	}
	if records.records[0].ScoreTotal != 0 || records.records[0].RiskLevel != RiskBaixa {
		t.Fatalf("all-0 record scored (%d,%s)", records.records[0].ScoreTotal, records.records[0].RiskLevel)
	}
}

func TestFinalizeStorageFailureCompletesUnsaved(t *testing.T) {
	f, _, records := newTestFlow()
	records.appendErr = errors.New("disk full")
	_ = f.Start(nil)
	answerThrough(t, f, len(questions)-1, 1)

	res, err := f.Finalize()
	if err != nil {
		t.Fatalf("write failure must not fail finalize: %v", err)
	}
	if res.Saved || res.SaveErr == nil {
		t.Fatalf("expected saved=false with warning, got %+v", res)
	}
	if se, ok := AsServiceError(res.SaveErr); !ok || se.Code != ErrorStorage {
		t.Fatalf("save err = %v, want storage warning", res.SaveErr)
	}
	if res.Record.ScoreTotal != 20 {
		t.Fatalf("record still computed; total = %d, want 20", res.Record.ScoreTotal)
	}
	if f.State() != StateComplete {
		t.Fatalf("state = %s, want %s", f.State(), StateComplete)
	}
}

func TestFinalizeConflictIsLogicError(t *testing.T) {
	f, _, records := newTestFlow()
	records.appendErr = NewConflictError("record id already exists: REC1")
	_ = f.Start(nil)
	answerThrough(t, f, len(questions)-1, 1)

	_, err := f.Finalize()
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if f.State() != StateInProgress {
		t.Fatalf("conflict must not complete the flow; state = %s", f.State())
	}
}

func TestStartResetsAnswersKeepsProfile(t *testing.T) {
	f, drafts, _ := newTestFlow()
	_ = f.Start(&Profile{ParentName: "Ana"})
	_ = f.Answer(0, 3)

	if err := f.Start(nil); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if len(f.Answers()) != 0 {
		t.Fatalf("restart must reset answers: %v", f.Answers())
	}
	if len(drafts.LoadAnswers()) != 0 {
		t.Fatalf("restart must persist the reset")
	}
	if f.Profile() == nil || f.Profile().ParentName != "Ana" {
		t.Fatalf("restart dropped the saved profile")
	}
}
