package assessment

import (
	"encoding/json"
	"strings"
	"time"
)

// DamageLabel holds the damage descriptions collected from the model.
// A single label is rendered as a bare string on the wire, multiple
// labels as an array.
type DamageLabel []string

func (l DamageLabel) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]string(l))
}

func (l *DamageLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = DamageLabel{s}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*l = DamageLabel(arr)
	return nil
}

// String joins the labels for storage in a single column.
func (l DamageLabel) String() string {
	return strings.Join(l, ", ")
}

// Analysis is the normalized, request-scoped result of one model
// response. Every field is always populated; Normalize guarantees it.
type Analysis struct {
	DamageType DamageLabel `json:"damage_type"`
	Location   string      `json:"location"`
	CostINR    float64     `json:"cost_inr"`
	CostUSD    float64     `json:"cost_usd"`
	CostYen    float64     `json:"cost_yen"`
	Notes      string      `json:"notes"`
	ImageURL   string      `json:"uploadedImage,omitempty"`
}

// Assessment is the durable counterpart of an Analysis. The ID is
// assigned by the storage engine, CreatedAt at persistence time.
type Assessment struct {
	ID         int64     `json:"id"`
	ImagePath  string    `json:"image_path"`
	DamageType string    `json:"damage_type"`
	Location   string    `json:"location"`
	CostINR    float64   `json:"cost_inr"`
	CostUSD    float64   `json:"cost_usd"`
	CostYen    float64   `json:"cost_yen"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Record converts an Analysis into its persistable form.
func (a Analysis) Record(createdAt time.Time) *Assessment {
	return &Assessment{
		ImagePath:  a.ImageURL,
		DamageType: a.DamageType.String(),
		Location:   a.Location,
		CostINR:    a.CostINR,
		CostUSD:    a.CostUSD,
		CostYen:    a.CostYen,
		Notes:      a.Notes,
		CreatedAt:  createdAt,
	}
}
