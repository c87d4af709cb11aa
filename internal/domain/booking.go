package domain

// BookingStatus is persisted by ordinal; do not reorder.
type BookingStatus int

const (
	BookingConfirmed BookingStatus = iota
	BookingCancelled
	BookingCheckedOut
)

func (s BookingStatus) String() string {
	switch s {
	case BookingConfirmed:
		return "Confirmed"
	case BookingCancelled:
		return "Cancelled"
	case BookingCheckedOut:
		return "CheckedOut"
	}
	return "Unknown"
}

func (s BookingStatus) Valid() bool {
	return s >= BookingConfirmed && s <= BookingCheckedOut
}

// Booking snapshots the room's type and the requested length of stay at
// creation time, so later price or room changes never alter the charge basis.
type Booking struct {
	BookingID  int
	CustID     int
	RoomID     int
	RoomTypeID int
	Days       int
	Status     BookingStatus
}

// Payment is created exactly once per checkout and never mutated.
type Payment struct {
	PaymentID    int
	BookingID    int
	BaseAmount   float64
	ExtraCharges float64
	TaxRate      float64
}

func (p Payment) Tax() float64 {
	return (p.BaseAmount + p.ExtraCharges) * p.TaxRate
}

func (p Payment) Total() float64 {
	return p.BaseAmount + p.ExtraCharges + p.Tax()
}
