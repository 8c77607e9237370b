package order

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusProcessing     Status = "PROCESSING"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusRefunded       Status = "REFUNDED"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
	StatusPendingPayment,
	StatusPaid,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusRefunded,
}

// forwardTransitions holds the admin-driven fulfillment path.
// PENDING_PAYMENT only leaves this path through the payment webhook.
var forwardTransitions = map[Status]Status{
	StatusPaid:       StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusPaid, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// NextStatuses returns the statuses an admin may move an order to from s.
func (s Status) NextStatuses() []Status {
	if !s.IsValid() || s.IsTerminal() {
		return nil
	}
	next := make([]Status, 0, 2)
	if target, ok := forwardTransitions[s]; ok {
		next = append(next, target)
	}
	return append(next, StatusCancelled)
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancellation is allowed from every non-terminal status.
func (s Status) CanTransitionTo(target Status) bool {
	if !s.IsValid() || s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	next, ok := forwardTransitions[s]
	return ok && next == target
}

// IsForwardable reports whether an order in this status is pushed to the marketplace.
func (s Status) IsForwardable() bool {
	switch s {
	case StatusPaid, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is the method the customer paid with
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodGopay        PaymentMethod = "gopay"
	PaymentMethodQRIS         PaymentMethod = "qris"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodCOD          PaymentMethod = "cod"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodGopay, PaymentMethodQRIS, PaymentMethodCreditCard, PaymentMethodCOD:
		return true
	}
	return false
}

// PaymentStatus is the payment gateway state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusExpired  PaymentStatus = "expired"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is known
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusExpired, PaymentStatusRefunded:
		return true
	}
	return false
}
