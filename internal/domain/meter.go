package domain

// MeterKind names the counter a tool draws from.
type MeterKind string

const (
	MeterSearch   MeterKind = "search"
	MeterAICredit MeterKind = "ai_credit"
)

// ConsumptionRequest asks the gate for Amount units of Kind.
// Search requests always cost exactly one unit.
type ConsumptionRequest struct {
	Kind   MeterKind
	Amount int
}

// LimitSignal is raised when a free account runs out of a quota.
type LimitSignal struct {
	Kind MeterKind `json:"kind"`
}

// Title is the heading shown on the limit notification.
func (s LimitSignal) Title() string {
	if s.Kind == MeterSearch {
		return "Daily Limit Reached"
	}
	return "Out of Credits"
}

// Message is the notification body naming the exhausted allotment.
func (s LimitSignal) Message() string {
	if s.Kind == MeterSearch {
		return "You have used all 5 free daily searches. Upgrade to Pro for unlimited."
	}
	return "You have run out of AI credits. Upgrade to Pro."
}
