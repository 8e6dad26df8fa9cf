// Package db implements the quiz persistence ports on SQLite. Records live
// in their own table with email and created_at lookup paths; the current
// draft lives in a small settings key-value table, JSON-serialized the same
// way the browser version kept it in localStorage.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/filhoindependente/detoxquiz/internal/quiz"
)

// Settings keys carried over from the original localStorage layout.
const (
	settingProfile = "tddi_profile_v1"
	settingAnswers = "tddi_answers_v1"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened sqlite database. Schema must already be in
// place (RunMigrations).
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

var _ quiz.DraftStore = (*SQLiteStore)(nil)
var _ quiz.RecordStore = (*SQLiteStore)(nil)

// --- draft store ---

func (s *SQLiteStore) SaveProfile(p *quiz.Profile) error {
	if p == nil {
		_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, settingProfile)
		return err
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.putSetting(settingProfile, string(b))
}

func (s *SQLiteStore) LoadProfile() *quiz.Profile {
	raw, ok := s.getSetting(settingProfile)
	if !ok {
		return nil
	}
	var p quiz.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("sqlite store: decode profile: %v", err)
		return nil
	}
	return &p
}

func (s *SQLiteStore) SaveAnswers(a quiz.AnswerMap) error {
	if a == nil {
		a = quiz.AnswerMap{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.putSetting(settingAnswers, string(b))
}

func (s *SQLiteStore) LoadAnswers() quiz.AnswerMap {
	raw, ok := s.getSetting(settingAnswers)
	if !ok {
		return quiz.AnswerMap{}
	}
	return decodeAnswerMap(raw)
}

func (s *SQLiteStore) putSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *SQLiteStore) getSetting(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("sqlite store: read setting %s: %v", key, err)
		}
		return "", false
	}
	return value, true
}

// decodeAnswerMap degrades corrupt stored data to an empty map; draft state
// is best-effort, never authoritative.
func decodeAnswerMap(raw string) quiz.AnswerMap {
	if strings.TrimSpace(raw) == "" {
		return quiz.AnswerMap{}
	}
	var out quiz.AnswerMap
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("sqlite store: decode answers: %v", err)
		return quiz.AnswerMap{}
	}
	if out == nil {
		out = quiz.AnswerMap{}
	}
	return out
}

// --- record store ---

const recordColumns = `id, email, phone, respondent_name, child_age, answers, score_total, risk_level, created_at, consent`

// createdAtFormat is fixed-width (no truncated fractional zeros) so that the
// text ORDER BY created_at in the queries below sorts chronologically.
const createdAtFormat = "2006-01-02T15:04:05.000000000Z07:00"

func (s *SQLiteStore) Append(r *quiz.Record) (*quiz.Record, error) {
	if r == nil || r.ID == "" {
		return nil, quiz.NewInvalidError("record id required")
	}
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM records WHERE id = ?`, r.ID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, quiz.NewConflictError("record id already exists: " + r.ID)
	}
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`INSERT INTO records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Email, r.Phone, r.RespondentName, toNullInt(r.ChildAge),
		string(answers), r.ScoreTotal, string(r.RiskLevel),
		r.CreatedAt.UTC().Format(createdAtFormat), boolToInt64(r.Consent),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *SQLiteStore) FindByRespondent(email string) []*quiz.Record {
	if strings.TrimSpace(email) == "" {
		return []*quiz.Record{}
	}
	rows, err := s.db.Query(
		`SELECT `+recordColumns+` FROM records WHERE email = ? ORDER BY created_at DESC`, email)
	if err != nil {
		log.Printf("sqlite store: find by respondent: %v", err)
		return []*quiz.Record{}
	}
	defer func() { _ = rows.Close() }()
	return scanRecords(rows)
}

func (s *SQLiteStore) ListRecent(limit int) []*quiz.Record {
	if limit < 0 {
		limit = -1 // sqlite: negative LIMIT means no limit
	}
	rows, err := s.db.Query(
		`SELECT `+recordColumns+` FROM records ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		log.Printf("sqlite store: list recent: %v", err)
		return []*quiz.Record{}
	}
	defer func() { _ = rows.Close() }()
	return scanRecords(rows)
}

// GetRecord fetches a single record by id; nil when absent.
func (s *SQLiteStore) GetRecord(id string) *quiz.Record {
	rows, err := s.db.Query(`SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	if err != nil {
		log.Printf("sqlite store: get record: %v", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	rs := scanRecords(rows)
	if len(rs) == 0 {
		return nil
	}
	return rs[0]
}

func scanRecords(rows *sql.Rows) []*quiz.Record {
	out := []*quiz.Record{}
	for rows.Next() {
		var (
			r         quiz.Record
			childAge  sql.NullInt64
			answers   string
			riskLevel string
			createdAt string
			consent   int64
		)
		if err := rows.Scan(&r.ID, &r.Email, &r.Phone, &r.RespondentName, &childAge,
			&answers, &r.ScoreTotal, &riskLevel, &createdAt, &consent); err != nil {
			log.Printf("sqlite store: scan record: %v", err)
			continue
		}
		if childAge.Valid {
			age := int(childAge.Int64)
			r.ChildAge = &age
		}
		r.Answers = decodeAnswerSlice(answers)
		r.RiskLevel = quiz.RiskLevel(riskLevel)
		r.CreatedAt = parseTime(createdAt)
		r.Consent = consent != 0
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		log.Printf("sqlite store: iterate records: %v", err)
	}
	return out
}

func decodeAnswerSlice(raw string) []int {
	var out []int
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("sqlite store: decode record answers: %v", err)
		return []int{}
	}
	return out
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		log.Printf("sqlite store: parse created_at: %v", err)
		return time.Time{}
	}
	return t
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
