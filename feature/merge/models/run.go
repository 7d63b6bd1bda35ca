package models

import (
	"time"

	mergetree "asset-diff/core/merge"

	"github.com/goccy/go-json"
)

// MergeRun is one recorded merge computation.
type MergeRun struct {
	// ID is the run id returned to the caller.
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Source is where the documents came from (inline, objects, cli).
	Source string `gorm:"size:16" json:"source"`

	// BaseRef, Side1Ref and Side2Ref identify the input documents.
	BaseRef  string `gorm:"size:512" json:"base_ref"`
	Side1Ref string `gorm:"size:512" json:"side1_ref"`
	Side2Ref string `gorm:"size:512" json:"side2_ref"`

	// Outcome is clean, mergeable or conflict.
	Outcome string `gorm:"size:16;index" json:"outcome"`

	Differences int `json:"differences"`
	Unresolved  int `json:"unresolved"`

	// Plan is the JSON-encoded merge plan.
	Plan string `gorm:"type:text" json:"-"`

	DurationMicros int64     `json:"duration_micros"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// TableName returns the table backing MergeRun.
func (MergeRun) TableName() string {
	return "merge_runs"
}

// SetPlan stores plan as JSON.
func (r *MergeRun) SetPlan(plan *mergetree.Plan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	r.Plan = string(data)
	return nil
}

// DecodePlan returns the stored plan, or nil if none was recorded.
func (r *MergeRun) DecodePlan() (*mergetree.Plan, error) {
	if r.Plan == "" {
		return nil, nil
	}
	var plan mergetree.Plan
	if err := json.Unmarshal([]byte(r.Plan), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
