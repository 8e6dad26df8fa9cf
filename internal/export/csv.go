package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/filhoindependente/detoxquiz/internal/quiz"
)

// CSVAdapter renders a record as a single-row CSV with the historical
// header set (column names predate this implementation and are kept for
// spreadsheet compatibility).
type CSVAdapter struct{}

var csvHeaders = []string{
	"id", "email", "responsavel_nome", "child_age", "answers_json",
	"score_total", "risk_level", "created_at", "consent",
}

func (CSVAdapter) ToDocument(rec *quiz.Record, _ PresentationCopy) (*Result, error) {
	if rec == nil {
		return nil, quiz.NewInvalidError("record required")
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return nil, err
	}
	childAge := ""
	if rec.ChildAge != nil {
		childAge = strconv.Itoa(*rec.ChildAge)
	}
	row := []string{
		rec.ID,
		rec.Email,
		rec.RespondentName,
		childAge,
		string(answers),
		strconv.Itoa(rec.ScoreTotal),
		string(rec.RiskLevel),
		rec.CreatedAt.UTC().Format(time.RFC3339),
		strconv.FormatBool(rec.Consent),
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write(csvHeaders)
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &Result{
		Filename:    "resultado_" + rec.ID + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}
