package domain

import "time"

// Outcome is how a metered invocation ended.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
	OutcomeDenied Outcome = "denied"
)

// UsageEvent records one tool invocation.
type UsageEvent struct {
	SessionID  string
	RequestID  string
	Tool       string
	Meter      MeterKind
	Cost       int
	Outcome    Outcome
	Latency    time.Duration
	Properties map[string]any
}

// UsageSummary aggregates the last 24 hours for one tool.
type UsageSummary struct {
	Tool       string `json:"tool"`
	OK         int    `json:"ok"`
	Failed     int    `json:"failed"`
	Denied     int    `json:"denied"`
	UnitsSpent int    `json:"units_spent"`
}
