package domain

import "context"

// Snapshot is the full persisted state, one slice per record set, in file
// order (which is creation order for registry-written files).
type Snapshot struct {
	Rooms       []Room
	Customers   []Customer
	Bookings    []Booking
	Payments    []Payment
	Maintenance []Maintenance
}

// RecordStore persists the five record sets. Each Save rewrites one
// collection in full; a missing record set on load is an empty collection,
// not an error. Implementations are not required to be safe for concurrent
// use — the registry is the only writer.
type RecordStore interface {
	LoadAll() (Snapshot, error)

	SaveRooms(rooms []Room) error
	SaveCustomers(customers []Customer) error
	SaveBookings(bookings []Booking) error
	SavePayments(payments []Payment) error
	SaveMaintenance(logs []Maintenance) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & reports

type RoomView struct {
	RoomID   int     `json:"roomId"`
	TypeName string  `json:"type"`
	Status   string  `json:"status"`
	Price    float64 `json:"pricePerDay"`
}

type BookingView struct {
	BookingID  int    `json:"bookingId"`
	CustID     int    `json:"customerId"`
	RoomID     int    `json:"roomId"`
	RoomTypeID int    `json:"roomTypeId"`
	Days       int    `json:"days"`
	Status     string `json:"status"`
}

type TypeRevenue struct {
	Type    string  `json:"type"`
	Revenue float64 `json:"revenue"`
}

// Summary is the aggregate document consumed by dashboard tooling; the key
// set mirrors the exported JSON file.
type Summary struct {
	Rooms struct {
		Total       int `json:"total"`
		Available   int `json:"available"`
		Booked      int `json:"booked"`
		Maintenance int `json:"maintenance"`
	} `json:"rooms"`
	Revenue struct {
		Completed float64 `json:"completed"`
		Estimated float64 `json:"estimated"`
	} `json:"revenue"`
	Customers struct {
		Total int `json:"total"`
	} `json:"customers"`
	Bookings struct {
		Total      int `json:"total"`
		Confirmed  int `json:"confirmed"`
		Cancelled  int `json:"cancelled"`
		CheckedOut int `json:"checkedOut"`
	} `json:"bookings"`
	RoomTypeRevenue []TypeRevenue `json:"roomTypeRevenue"`
}
