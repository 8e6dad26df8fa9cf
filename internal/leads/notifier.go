// Package leads pushes finalized results to the external sheet webhook.
// Delivery is best-effort: it never blocks or fails the finalize path, and
// its outcome is observed only for status messaging.
package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/filhoindependente/detoxquiz/internal/quiz"
)

// DefaultEndpoint is the deployed Google Apps Script web app.
const DefaultEndpoint = "https://script.google.com/macros/s/AKfycbymx4NuYejFBkRFinvKp-T2-waecXElpd0kjS2JnMh1BXIE4bAgU0wquZpiEhCor9L_/exec"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Payload is the outbound lead body. Field names are fixed by the sheet
// webapp; there is no format negotiation.
type Payload struct {
	Name       string         `json:"name"`
	Phone      string         `json:"phone"`
	Email      string         `json:"email"`
	ChildAge   *int           `json:"childAge"`
	Answers    []int          `json:"answers"`
	ScoreTotal int            `json:"scoreTotal"`
	RiskLevel  quiz.RiskLevel `json:"riskLevel"`
	Consent    bool           `json:"consent"`
	CreatedAt  time.Time      `json:"createdAt"`
	UserAgent  string         `json:"userAgent"`
}

// Notifier sends lead payloads to a fixed endpoint.
type Notifier struct {
	endpoint string
	client   HTTPClient
}

// NewNotifier builds a notifier. Empty endpoint falls back to
// DefaultEndpoint; nil client falls back to a timeout-bounded default.
func NewNotifier(endpoint string, client HTTPClient) *Notifier {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Notifier{endpoint: endpoint, client: client}
}

// PayloadFor projects a record into the outbound shape.
func PayloadFor(rec *quiz.Record, userAgent string) Payload {
	return Payload{
		Name:       rec.RespondentName,
		Phone:      rec.Phone,
		Email:      rec.Email,
		ChildAge:   rec.ChildAge,
		Answers:    append([]int(nil), rec.Answers...),
		ScoreTotal: rec.ScoreTotal,
		RiskLevel:  rec.RiskLevel,
		Consent:    rec.Consent,
		CreatedAt:  rec.CreatedAt,
		UserAgent:  userAgent,
	}
}

// Send posts the payload and reports whether the webapp acknowledged it.
// The body is sent as text/plain so the Apps Script endpoint accepts it
// without a CORS preflight round-trip.
func (n *Notifier) Send(ctx context.Context, p Payload) bool {
	body, err := json.Marshal(p)
	if err != nil {
		log.Printf("leads: marshal payload: %v", err)
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("leads: build request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp, err := n.client.Do(req)
	if err != nil {
		log.Printf("leads: send failed: %v", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		log.Printf("leads: send not-ok: status %d", resp.StatusCode)
		return false
	}
	var ack struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		log.Printf("leads: decode ack: %v", err)
		return false
	}
	return ack.OK
}

// Dispatch sends the record's lead in a background goroutine and returns a
// one-slot channel carrying the delivery outcome. The caller may read it
// for status display or drop it; the goroutine always runs to completion.
func (n *Notifier) Dispatch(rec *quiz.Record, userAgent string) <-chan bool {
	out := make(chan bool, 1)
	payload := PayloadFor(rec, userAgent)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		out <- n.Send(ctx, payload)
		close(out)
	}()
	return out
}
