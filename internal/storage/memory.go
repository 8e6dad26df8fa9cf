// Package storage provides in-memory implementations of the quiz
// persistence ports, used by tests and by the host when no database path is
// configured.
package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/filhoindependente/detoxquiz/internal/quiz"
)

// MemoryDraftStore keeps the single current draft in memory.
type MemoryDraftStore struct {
	mu      sync.RWMutex
	profile *quiz.Profile
	answers quiz.AnswerMap
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{}
}

func (s *MemoryDraftStore) SaveProfile(p *quiz.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.profile = nil
		return nil
	}
	cp := *p
	if p.ChildAge != nil {
		age := *p.ChildAge
		cp.ChildAge = &age
	}
	s.profile = &cp
	return nil
}

func (s *MemoryDraftStore) LoadProfile() *quiz.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	cp := *s.profile
	if s.profile.ChildAge != nil {
		age := *s.profile.ChildAge
		cp.ChildAge = &age
	}
	return &cp
}

func (s *MemoryDraftStore) SaveAnswers(a quiz.AnswerMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = a.Clone()
	return nil
}

func (s *MemoryDraftStore) LoadAnswers() quiz.AnswerMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.answers == nil {
		return quiz.AnswerMap{}
	}
	return s.answers.Clone()
}

// MemoryRecordStore holds finalized records keyed by id.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	byID    map[string]*quiz.Record
	ordered []*quiz.Record // append order
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{byID: map[string]*quiz.Record{}}
}

func (s *MemoryRecordStore) Append(r *quiz.Record) (*quiz.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == nil || r.ID == "" {
		return nil, quiz.NewInvalidError("record id required")
	}
	if _, exists := s.byID[r.ID]; exists {
		return nil, quiz.NewConflictError("record id already exists: " + r.ID)
	}
	cp := r.Clone()
	s.byID[cp.ID] = cp
	s.ordered = append(s.ordered, cp)
	return r, nil
}

func (s *MemoryRecordStore) FindByRespondent(email string) []*quiz.Record {
	if strings.TrimSpace(email) == "" {
		return []*quiz.Record{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*quiz.Record{}
	for _, r := range s.ordered {
		if r.Email == email {
			out = append(out, r.Clone())
		}
	}
	sortByCreatedAtDesc(out)
	return out
}

func (s *MemoryRecordStore) ListRecent(limit int) []*quiz.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*quiz.Record, 0, len(s.ordered))
	for _, r := range s.ordered {
		out = append(out, r.Clone())
	}
	sortByCreatedAtDesc(out)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetRecord fetches a single record by id; nil when absent.
func (s *MemoryRecordStore) GetRecord(id string) *quiz.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id].Clone()
}

func sortByCreatedAtDesc(rs []*quiz.Record) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].CreatedAt.After(rs[j].CreatedAt)
	})
}
