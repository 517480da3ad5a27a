package models

type OrderStatus string

const (
	StatusReceived       OrderStatus = "received"
	StatusAccepted       OrderStatus = "accepted"
	StatusRejected       OrderStatus = "rejected"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
	StatusUnknown        OrderStatus = "unknown"
)

type StatusSeverity string

const (
	SeverityInfo    StatusSeverity = "info"
	SeverityWarning StatusSeverity = "warning"
	SeveritySuccess StatusSeverity = "success"
	SeverityDanger  StatusSeverity = "danger"
)

// StatusPresentation is what the UI renders next to an order: a badge label
// and a severity class it maps to its own colors.
type StatusPresentation struct {
	Label    string         `json:"label"`
	Severity StatusSeverity `json:"severity"`
}

// ParseOrderStatus maps a raw backend status string to the closed status set.
// The backend still emits the legacy French strings alongside the canonical
// ones, so both are accepted. Anything unrecognized degrades to
// StatusUnknown rather than failing, since new backend statuses must never
// break order rendering.
func ParseOrderStatus(raw string) OrderStatus {
	switch raw {
	case "received", "reçu":
		return StatusReceived
	case "accepted", "acceptée":
		return StatusAccepted
	case "rejected", "refusée":
		return StatusRejected
	case "ready", "préparée":
		return StatusReady
	case "out_for_delivery", "en_livraison":
		return StatusOutForDelivery
	case "delivered", "livrée":
		return StatusDelivered
	case "cancelled":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// Presentation is total over the status set, unknown included.
func (s OrderStatus) Presentation() StatusPresentation {
	switch s {
	case StatusReceived:
		return StatusPresentation{Label: "Received", Severity: SeverityWarning}
	case StatusAccepted:
		return StatusPresentation{Label: "Accepted", Severity: SeverityInfo}
	case StatusRejected:
		return StatusPresentation{Label: "Rejected", Severity: SeverityDanger}
	case StatusReady:
		return StatusPresentation{Label: "Ready", Severity: SeverityInfo}
	case StatusOutForDelivery:
		return StatusPresentation{Label: "Out for delivery", Severity: SeverityInfo}
	case StatusDelivered:
		return StatusPresentation{Label: "Delivered", Severity: SeveritySuccess}
	case StatusCancelled:
		return StatusPresentation{Label: "Cancelled", Severity: SeverityDanger}
	default:
		return StatusPresentation{Label: "Unknown", Severity: SeverityInfo}
	}
}

// IsTerminal reports whether no further transition is expected.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive partitions orders into the active list vs. history. It is a pure
// function of status and is recomputed wherever needed, never stored.
func (s OrderStatus) IsActive() bool {
	return !s.IsTerminal()
}
