package order

// Status is an order's lifecycle state. Stored lowercase.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string { return string(s) }

// IsTerminal reports whether no further transitions leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(raw), nil
	}
	return "", NewInvalidStatusError(raw)
}

// StockImpact is the side effect a status transition has on the ordered
// variant's stock.
type StockImpact int

const (
	StockNone StockImpact = iota
	StockDecrement
	StockRestore
)

// StockImpactOf derives the stock side effect of moving an order from prev
// to target. The policy is over the pair, not a transition graph:
//
//	entering confirmed from anything else  -> decrement
//	leaving confirmed or shipped to cancelled -> restore
//	anything else                          -> none
func StockImpactOf(prev, target Status) StockImpact {
	if target == StatusConfirmed && prev != StatusConfirmed {
		return StockDecrement
	}
	if target == StatusCancelled && (prev == StatusConfirmed || prev == StatusShipped) {
		return StockRestore
	}
	return StockNone
}
