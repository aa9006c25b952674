package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nomadly/itinerary-api/internal/planner"
)

// Remote calls an external recommendation endpoint over HTTP. The response
// body is decoded through the tolerant RawPlan decoder, so a misbehaving
// endpoint can at worst produce an empty plan.
type Remote struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRemote builds a remote producer against the configured endpoint.
func NewRemote(endpoint, apiKey string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Remote{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type remoteRequest struct {
	Day        DayContext        `json:"day"`
	Candidates []remoteCandidate `json:"candidates"`
}

type remoteCandidate struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	District string   `json:"district,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Mode     string   `json:"mode"`
}

// ProposeDay posts the day context and candidate list and decodes the plan.
func (r *Remote) ProposeDay(ctx context.Context, day DayContext, candidates []planner.Candidate) (planner.RawPlan, error) {
	if r.endpoint == "" {
		return planner.RawPlan{}, fmt.Errorf("recommender endpoint not configured")
	}

	payload := remoteRequest{Day: day, Candidates: make([]remoteCandidate, 0, len(candidates))}
	for _, c := range candidates {
		payload.Candidates = append(payload.Candidates, remoteCandidate{
			ID:       c.ID,
			Name:     c.Name,
			District: c.District,
			Tags:     c.Tags,
			Mode:     c.Mode,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return planner.RawPlan{}, fmt.Errorf("encode recommender request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return planner.RawPlan{}, fmt.Errorf("build recommender request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return planner.RawPlan{}, fmt.Errorf("call recommender: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return planner.RawPlan{}, fmt.Errorf("recommender returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return planner.RawPlan{}, fmt.Errorf("read recommender response: %w", err)
	}

	var plan planner.RawPlan
	_ = json.Unmarshal(raw, &plan) // tolerant decoder never fails
	return plan, nil
}
