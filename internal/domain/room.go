package domain

// RoomStatus is persisted by ordinal; the declaration order is part of the
// on-disk contract and must not be reordered.
type RoomStatus int

const (
	RoomAvailable RoomStatus = iota
	RoomBooked
	RoomMaintenance
)

func (s RoomStatus) String() string {
	switch s {
	case RoomAvailable:
		return "Available"
	case RoomBooked:
		return "Booked"
	case RoomMaintenance:
		return "Maintenance"
	}
	return "Unknown"
}

// Valid reports whether the ordinal maps to a declared status. Used when
// decoding records that may have been edited by hand.
func (s RoomStatus) Valid() bool {
	return s >= RoomAvailable && s <= RoomMaintenance
}

type RoomType struct {
	TypeID    int
	Name      string
	BasePrice float64 // per-day rate
	Features  string
}

type Room struct {
	RoomID      int
	TypeID      int
	Status      RoomStatus
	CustomPrice float64 // overrides the type's base price when > 0
}

// EffectivePrice returns the room's per-day rate given its type's base price.
func (r Room) EffectivePrice(basePrice float64) float64 {
	if r.CustomPrice > 0 {
		return r.CustomPrice
	}
	return basePrice
}
