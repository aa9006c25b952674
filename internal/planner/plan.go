package planner

import (
	"encoding/json"
	"strings"
)

// Visit duration and item-count bounds enforced on untrusted plans.
const (
	MinVisitMinutes = 20
	MaxVisitMinutes = 240
	DefaultMaxItems = 6
)

// RawItem is a single proposed visit as emitted by an external recommender.
// Nothing about it is guaranteed until it has passed through ValidatePlan.
type RawItem struct {
	PoiID           string
	DurationMinutes int
	IsMeal          bool
	Notes           string
}

// UnmarshalJSON tolerates shape defects: wrong field types are coerced and
// unreadable elements decode to a zero item, which the unknown-ID filter
// discards later. A malformed producer payload must never surface as an
// error.
func (it *RawItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		PoiID           interface{} `json:"poiId"`
		DurationMinutes interface{} `json:"durationMinutes"`
		IsMeal          interface{} `json:"isMeal"`
		Notes           interface{} `json:"notes"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		*it = RawItem{}
		return nil
	}
	it.PoiID = coerceString(aux.PoiID)
	it.DurationMinutes = coerceInt(aux.DurationMinutes)
	it.IsMeal = coerceBool(aux.IsMeal)
	it.Notes = coerceString(aux.Notes)
	return nil
}

// RawPlan is the untrusted day-plan structure produced by a recommender.
type RawPlan struct {
	Items     []RawItem
	Reasoning string
}

// UnmarshalJSON decodes a producer payload best-effort. A non-array items
// field yields an empty plan rather than an error.
func (p *RawPlan) UnmarshalJSON(data []byte) error {
	var aux struct {
		Items     json.RawMessage `json:"items"`
		Reasoning interface{}     `json:"reasoning"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		*p = RawPlan{}
		return nil
	}
	p.Reasoning = coerceString(aux.Reasoning)
	p.Items = nil
	if len(aux.Items) > 0 {
		var items []RawItem
		if err := json.Unmarshal(aux.Items, &items); err == nil {
			p.Items = items
		}
	}
	return nil
}

// ValidatedItem is a visit the rest of the system can trust: the POI exists
// in the candidate set and the duration is within bounds.
type ValidatedItem struct {
	PoiID           string `json:"poiId"`
	DurationMinutes int    `json:"durationMinutes"`
	IsMeal          bool   `json:"isMeal"`
	Notes           string `json:"notes,omitempty"`
}

// ValidatedPlan is the output of ValidatePlan. It may be empty but is always
// structurally valid.
type ValidatedPlan struct {
	Items     []ValidatedItem `json:"items"`
	Reasoning string          `json:"reasoning"`
}

// ValidatePlan normalises an untrusted plan: the item list is truncated to
// maxItems, items referencing unknown POI IDs are dropped, durations are
// clamped into [MinVisitMinutes, MaxVisitMinutes] and relative order is
// preserved. It never fails; the worst outcome for a hostile payload is an
// empty plan.
func ValidatePlan(raw RawPlan, validPoiIDs map[string]struct{}, maxItems int) ValidatedPlan {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	items := raw.Items
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	validated := make([]ValidatedItem, 0, len(items))
	for _, item := range items {
		if _, known := validPoiIDs[item.PoiID]; !known {
			continue
		}
		duration := item.DurationMinutes
		if duration < MinVisitMinutes {
			duration = MinVisitMinutes
		}
		if duration > MaxVisitMinutes {
			duration = MaxVisitMinutes
		}
		validated = append(validated, ValidatedItem{
			PoiID:           item.PoiID,
			DurationMinutes: duration,
			IsMeal:          item.IsMeal,
			Notes:           item.Notes,
		})
	}

	reasoning := raw.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided"
	}

	return ValidatedPlan{Items: validated, Reasoning: reasoning}
}

func coerceString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func coerceInt(v interface{}) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case string:
		// Producers occasionally quote numbers.
		var parsed float64
		if err := json.Unmarshal([]byte(value), &parsed); err == nil {
			return int(parsed)
		}
	}
	return 0
}

func coerceBool(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case float64:
		return value != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}
