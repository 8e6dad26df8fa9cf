// Package api exposes the quiz engine over a small local HTTP surface for
// the single-user frontend. It is not a multi-user server: one flow, local
// stores, no authentication.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/filhoindependente/detoxquiz/internal/export"
	"github.com/filhoindependente/detoxquiz/internal/leads"
	"github.com/filhoindependente/detoxquiz/internal/quiz"
)

// Lead delivery status values reported to the frontend.
const (
	LeadNone    = "none"
	LeadPending = "pending"
	LeadOK      = "ok"
	LeadFailed  = "failed"
	LeadSkipped = "skipped"
)

type recordGetter interface {
	GetRecord(id string) *quiz.Record
}

type Router struct {
	mu       sync.Mutex
	flow     *quiz.Flow
	records  quiz.RecordStore
	notifier *leads.Notifier
	exporter export.Adapter

	leadMu     sync.Mutex
	leadStatus string
}

// NewRouter wires the flow and stores into HTTP handlers. notifier may be
// nil to disable outbound lead delivery.
func NewRouter(flow *quiz.Flow, records quiz.RecordStore, notifier *leads.Notifier) *Router {
	return &Router{
		flow:       flow,
		records:    records,
		notifier:   notifier,
		exporter:   export.CSVAdapter{},
		leadStatus: LeadNone,
	}
}

func (rt *Router) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/questions", rt.handleQuestions)
	r.Get("/profile", rt.handleGetProfile)
	r.Put("/profile", rt.handlePutProfile)
	r.Get("/quiz", rt.handleQuizState)
	r.Post("/quiz/answers", rt.handleAnswer)
	r.Post("/quiz/advance", rt.handleAdvance)
	r.Post("/quiz/retreat", rt.handleRetreat)
	r.Post("/quiz/reset", rt.handleReset)
	r.Post("/quiz/finalize", rt.handleFinalize)
	r.Get("/quiz/lead", rt.handleLeadStatus)
	r.Get("/records", rt.handleRecords)
	r.Get("/records/recent", rt.handleRecent)
	r.Get("/export", rt.handleExport)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"
	if se, ok := quiz.AsServiceError(err); ok {
		code = string(se.Code)
		switch se.Code {
		case quiz.ErrorInvalid:
			status = http.StatusBadRequest
		case quiz.ErrorConflict:
			status = http.StatusConflict
		case quiz.ErrorStorage:
			status = http.StatusServiceUnavailable
		case quiz.ErrorBadGateway:
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, map[string]any{"error": code, "message": err.Error()})
}

// warning extracts a storage warning: those keep the operation successful
// but degrade durability, so they travel in the response body, not as an
// HTTP failure.
func warning(err error) (string, bool) {
	if err == nil {
		return "", true
	}
	if se, ok := quiz.AsServiceError(err); ok && se.Code == quiz.ErrorStorage {
		return se.Message, true
	}
	return "", false
}

func (rt *Router) handleQuestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"questions": quiz.Catalog()})
}

func (rt *Router) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"profile": rt.flow.Profile()})
}

func (rt *Router) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p quiz.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, quiz.NewInvalidError(err.Error()))
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	err := rt.flow.SetProfile(&p)
	warn, ok := warning(err)
	if !ok {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "warning": warn})
}

func (rt *Router) stateView() map[string]any {
	view := map[string]any{
		"state":    rt.flow.State(),
		"index":    rt.flow.Index(),
		"progress": rt.flow.Progress(),
		"answers":  rt.flow.Answers(),
	}
	if rt.flow.State() == quiz.StateInProgress {
		catalog := quiz.Catalog()
		view["question"] = catalog[rt.flow.Index()]
		view["current_answered"] = rt.flow.CurrentAnswered()
		view["all_answered"] = rt.flow.AllAnswered()
	}
	return view
}

func (rt *Router) handleQuizState(w http.ResponseWriter, _ *http.Request) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.flow.State() == quiz.StateNotStarted {
		rt.flow.Resume()
	}
	writeJSON(w, http.StatusOK, rt.stateView())
}

func (rt *Router) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
		Value int `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, quiz.NewInvalidError(err.Error()))
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	err := rt.flow.Answer(req.Index, req.Value)
	warn, ok := warning(err)
	if !ok {
		writeError(w, err)
		return
	}
	view := rt.stateView()
	view["ok"] = true
	if warn != "" {
		view["warning"] = warn
	}
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) handleAdvance(w http.ResponseWriter, _ *http.Request) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.flow.Advance(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt.stateView())
}

func (rt *Router) handleRetreat(w http.ResponseWriter, _ *http.Request) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.flow.Retreat(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt.stateView())
}

// POST /quiz/reset — start a fresh attempt. An optional profile in the body
// replaces the saved one; otherwise the saved profile is retained.
func (rt *Router) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile *quiz.Profile `json:"profile"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, quiz.NewInvalidError(err.Error()))
			return
		}
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	err := rt.flow.Start(req.Profile)
	warn, ok := warning(err)
	if !ok {
		writeError(w, err)
		return
	}
	view := rt.stateView()
	view["ok"] = true
	if warn != "" {
		view["warning"] = warn
	}
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) handleFinalize(w http.ResponseWriter, r *http.Request) {
	rt.mu.Lock()
	res, err := rt.flow.Finalize()
	rt.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	leadStatus := LeadSkipped
	if rt.notifier != nil {
		leadStatus = LeadPending
		rt.setLeadStatus(LeadPending)
		ch := rt.notifier.Dispatch(res.Record, r.UserAgent())
		go func() {
			if <-ch {
				rt.setLeadStatus(LeadOK)
			} else {
				rt.setLeadStatus(LeadFailed)
			}
		}()
	}

	out := map[string]any{
		"ok":     true,
		"record": res.Record,
		"score":  res.Score,
		"copy":   export.CopyFor(res.Score.Level),
		"saved":  res.Saved,
		"lead":   leadStatus,
	}
	if res.SaveErr != nil {
		out["warning"] = res.SaveErr.Error()
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) setLeadStatus(s string) {
	rt.leadMu.Lock()
	rt.leadStatus = s
	rt.leadMu.Unlock()
}

func (rt *Router) handleLeadStatus(w http.ResponseWriter, _ *http.Request) {
	rt.leadMu.Lock()
	s := rt.leadStatus
	rt.leadMu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"lead": s})
}

func (rt *Router) handleRecords(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	writeJSON(w, http.StatusOK, map[string]any{"records": rt.records.FindByRespondent(email)})
}

func (rt *Router) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, quiz.NewInvalidError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": rt.records.ListRecent(limit)})
}

func (rt *Router) findRecord(id string) *quiz.Record {
	if g, ok := rt.records.(recordGetter); ok {
		return g.GetRecord(id)
	}
	for _, rec := range rt.records.ListRecent(-1) {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

// GET /export?id=... — render the record as a downloadable CSV document.
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, quiz.NewInvalidError("id required"))
		return
	}
	rec := rt.findRecord(id)
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not_found", "message": "record not found"})
		return
	}
	doc, err := rt.exporter.ToDocument(rec, export.CopyFor(rec.RiskLevel))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+doc.Filename)
	_, _ = w.Write(doc.Data)
}
