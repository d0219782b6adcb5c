package events

// Routing keys on the payments exchange.
const (
	RoutingSettled = "payment.settled"
	RoutingFailed  = "payment.failed"
)

type PaymentSettled struct {
	Event      string `json:"event"` // "payment.settled"
	Version    int    `json:"version"`
	OccurredAt string `json:"occurred_at"` // RFC3339
	Data       struct {
		TransitionID string  `json:"transition_id"`
		Email        string  `json:"email"`
		Amount       float64 `json:"amount"`
		Currency     string  `json:"currency"`
	} `json:"data"`
}

type PaymentFailed struct {
	Event      string `json:"event"` // "payment.failed"
	Version    int    `json:"version"`
	OccurredAt string `json:"occurred_at"`
	Data       struct {
		TransitionID string `json:"transition_id"`
		Reason       string `json:"reason"`
	} `json:"data"`
}
