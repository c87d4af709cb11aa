package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"bluewhale/internal/domain"
)

const (
	HotelName = "Hotel Blue Whale"

	// TaxRate is captured into every payment at checkout time.
	TaxRate = 0.18
)

// Registry is the single owner of the hotel's operational state. It is not
// safe for concurrent use: there is exactly one in-process actor, and every
// successful mutation is written through to the record store before the
// call returns.
type Registry struct {
	store domain.RecordStore
	log   zerolog.Logger

	invoiceDir string

	roomTypes   []domain.RoomType
	rooms       []domain.Room
	customers   []domain.Customer
	bookings    []domain.Booking
	payments    []domain.Payment
	maintenance []domain.Maintenance
	staff       []domain.Staff

	nextRoomID     int
	nextCustomerID int
	nextBookingID  int
	nextPaymentID  int
	nextMaintID    int
}

// Open loads all record sets from the store and backfills default data
// where collections are missing. Room types and staff are never persisted,
// so they are reseeded on every open; rooms are seeded only on first run.
// Invoices are written into invoiceDir.
func Open(store domain.RecordStore, invoiceDir string, log zerolog.Logger) (*Registry, error) {
	snap, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	r := &Registry{
		store:          store,
		log:            log,
		invoiceDir:     invoiceDir,
		rooms:          snap.Rooms,
		customers:      snap.Customers,
		bookings:       snap.Bookings,
		payments:       snap.Payments,
		maintenance:    snap.Maintenance,
		nextRoomID:     nextID(snap.Rooms, func(v domain.Room) int { return v.RoomID }),
		nextCustomerID: nextID(snap.Customers, func(v domain.Customer) int { return v.CustID }),
		nextBookingID:  nextID(snap.Bookings, func(v domain.Booking) int { return v.BookingID }),
		nextPaymentID:  nextID(snap.Payments, func(v domain.Payment) int { return v.PaymentID }),
		nextMaintID:    nextID(snap.Maintenance, func(v domain.Maintenance) int { return v.MaintID }),
	}

	r.seedDefaults()
	if err := r.saveAll(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close flushes every record set. The registry must not be used afterwards.
func (r *Registry) Close() error {
	if err := r.saveAll(); err != nil {
		return err
	}
	r.store = nil
	return nil
}

// nextID derives a counter from the last record; IDs are strictly
// increasing in creation order, so file order is creation order.
func nextID[T any](rs []T, id func(T) int) int {
	if len(rs) == 0 {
		return 1
	}
	return id(rs[len(rs)-1]) + 1
}

// seedDefaults fills any collection that loaded empty: three room types,
// three rooms of each type, two staff records.
func (r *Registry) seedDefaults() {
	if len(r.roomTypes) == 0 {
		r.AddRoomType(domain.RoomType{TypeID: 1, Name: "Standard", BasePrice: 1500, Features: "Basic amenities"})
		r.AddRoomType(domain.RoomType{TypeID: 2, Name: "Premium", BasePrice: 3000, Features: "Sea view, AC"})
		r.AddRoomType(domain.RoomType{TypeID: 3, Name: "Most Premium", BasePrice: 5000, Features: "Suite, sea view, extras"})
	}

	if len(r.rooms) == 0 {
		for typeID := 1; typeID <= 3; typeID++ {
			for i := 0; i < 3; i++ {
				r.AddRoom(typeID, 0)
			}
		}
		r.log.Info().Int("rooms", len(r.rooms)).Msg("seeded default rooms")
	}

	if len(r.staff) == 0 {
		r.staff = append(r.staff,
			domain.Staff{StaffID: 1, Name: "Admin User", Role: "Administrator", Salary: 30000},
			domain.Staff{StaffID: 2, Name: "Reception", Role: "Staff", Salary: 15000},
		)
	}
}

/* ---------------- room types & rooms ---------------- */

// AddRoomType appends a type. The caller owns ID uniqueness; types are not
// persisted and live only for the registry's lifetime.
func (r *Registry) AddRoomType(rt domain.RoomType) {
	r.roomTypes = append(r.roomTypes, rt)
}

// RoomType looks a type up by ID. A missing type is "Unknown" for display,
// never fatal.
func (r *Registry) RoomType(id int) (domain.RoomType, bool) {
	for _, t := range r.roomTypes {
		if t.TypeID == id {
			return t, true
		}
	}
	return domain.RoomType{}, false
}

// AddRoom allocates the next room ID and registers an Available room.
// customPrice overrides the type's base price when > 0.
func (r *Registry) AddRoom(typeID int, customPrice float64) domain.Room {
	room := domain.Room{
		RoomID:      r.nextRoomID,
		TypeID:      typeID,
		Status:      domain.RoomAvailable,
		CustomPrice: customPrice,
	}
	r.nextRoomID++
	r.rooms = append(r.rooms, room)
	return room
}

// Room returns a copy of the room with the given ID.
func (r *Registry) Room(id int) (domain.Room, bool) {
	if room := r.findRoom(id); room != nil {
		return *room, true
	}
	return domain.Room{}, false
}

func (r *Registry) findRoom(id int) *domain.Room {
	for i := range r.rooms {
		if r.rooms[i].RoomID == id {
			return &r.rooms[i]
		}
	}
	return nil
}

func (r *Registry) findBooking(id int) *domain.Booking {
	for i := range r.bookings {
		if r.bookings[i].BookingID == id {
			return &r.bookings[i]
		}
	}
	return nil
}

/* ---------------- existence probes ---------------- */

func (r *Registry) HasRoom(id int) bool { return r.findRoom(id) != nil }

func (r *Registry) HasCustomer(id int) bool {
	for _, c := range r.customers {
		if c.CustID == id {
			return true
		}
	}
	return false
}

func (r *Registry) HasBooking(id int) bool { return r.findBooking(id) != nil }

/* ---------------- accessors ---------------- */

func (r *Registry) RoomTypes() []domain.RoomType { return clone(r.roomTypes) }
func (r *Registry) Rooms() []domain.Room         { return clone(r.rooms) }
func (r *Registry) Customers() []domain.Customer { return clone(r.customers) }
func (r *Registry) Bookings() []domain.Booking   { return clone(r.bookings) }
func (r *Registry) Payments() []domain.Payment   { return clone(r.payments) }

func (r *Registry) MaintenanceLog() []domain.Maintenance { return clone(r.maintenance) }
func (r *Registry) Staff() []domain.Staff                { return clone(r.staff) }

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

/* ---------------- persistence ---------------- */

func (r *Registry) saveAll() error {
	if err := r.store.SaveRooms(r.rooms); err != nil {
		return fmt.Errorf("save rooms: %w", err)
	}
	if err := r.store.SaveCustomers(r.customers); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	if err := r.store.SaveBookings(r.bookings); err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	if err := r.store.SavePayments(r.payments); err != nil {
		return fmt.Errorf("save payments: %w", err)
	}
	if err := r.store.SaveMaintenance(r.maintenance); err != nil {
		return fmt.Errorf("save maintenance: %w", err)
	}
	return nil
}
