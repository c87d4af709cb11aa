package app

import (
	"errors"
	"fmt"

	"bluewhale/internal/adapters/observability"
	"bluewhale/internal/domain"
)

// Mutations apply to memory first and then write the touched record sets
// through the store. A store failure surfaces as an error but the in-memory
// change stays applied — callers may retry the write, not the mutation.

// AddCustomer registers a customer and returns the new ID. Field contents
// are not validated here; the caller owns input hygiene.
func (r *Registry) AddCustomer(name, phone, email string) (int, error) {
	c := domain.Customer{CustID: r.nextCustomerID, Name: name, Phone: phone, Email: email}
	r.nextCustomerID++
	r.customers = append(r.customers, c)

	if err := r.store.SaveCustomers(r.customers); err != nil {
		observability.ObserveMutation("add_customer", "error")
		return c.CustID, fmt.Errorf("save customers: %w", err)
	}
	observability.ObserveMutation("add_customer", "ok")
	r.log.Info().Int("customer_id", c.CustID).Msg("customer added")
	return c.CustID, nil
}

// CreateBooking books an Available room for custID and returns the booking
// ID. The room's current type and the requested days are snapshotted into
// the booking. custID is deliberately not checked against the customer
// collection; a booking for an unknown customer is recorded with a warning.
func (r *Registry) CreateBooking(custID, roomID, days int) (int, error) {
	room := r.findRoom(roomID)
	if room == nil {
		observability.ObserveMutation("create_booking", "rejected")
		return 0, domain.ErrRoomNotFound
	}
	if room.Status != domain.RoomAvailable {
		observability.ObserveMutation("create_booking", "rejected")
		return 0, fmt.Errorf("room %d is %s: %w", roomID, room.Status, domain.ErrRoomUnavailable)
	}
	if !r.HasCustomer(custID) {
		r.log.Warn().Int("customer_id", custID).Msg("booking references unknown customer")
	}

	room.Status = domain.RoomBooked
	b := domain.Booking{
		BookingID:  r.nextBookingID,
		CustID:     custID,
		RoomID:     roomID,
		RoomTypeID: room.TypeID,
		Days:       days,
		Status:     domain.BookingConfirmed,
	}
	r.nextBookingID++
	r.bookings = append(r.bookings, b)

	if err := r.saveRoomsAndBookings(); err != nil {
		observability.ObserveMutation("create_booking", "error")
		return b.BookingID, err
	}
	observability.ObserveMutation("create_booking", "ok")
	r.log.Info().Int("booking_id", b.BookingID).Int("room_id", roomID).Int("days", days).Msg("booking created")
	return b.BookingID, nil
}

// CancelBooking moves a booking to Cancelled and frees its room. The room
// is released even if it was reassigned since; the booking's snapshot is
// the only record of what was held.
func (r *Registry) CancelBooking(bookingID int) error {
	b := r.findBooking(bookingID)
	if b == nil {
		observability.ObserveMutation("cancel_booking", "rejected")
		return domain.ErrBookingNotFound
	}

	b.Status = domain.BookingCancelled
	if room := r.findRoom(b.RoomID); room != nil {
		room.Status = domain.RoomAvailable
	}

	if err := r.saveRoomsAndBookings(); err != nil {
		observability.ObserveMutation("cancel_booking", "error")
		return err
	}
	observability.ObserveMutation("cancel_booking", "ok")
	r.log.Info().Int("booking_id", bookingID).Msg("booking cancelled")
	return nil
}

// CheckoutBooking settles a Confirmed booking: creates the one payment,
// closes the booking, frees the room, and emits an invoice file. Invoice
// emission is best-effort — a write failure is logged but never rolls back
// the already-committed state change.
func (r *Registry) CheckoutBooking(bookingID int, extraCharges float64) (domain.Payment, error) {
	b := r.findBooking(bookingID)
	if b == nil {
		observability.ObserveMutation("checkout_booking", "rejected")
		return domain.Payment{}, domain.ErrBookingNotFound
	}
	if b.Status != domain.BookingConfirmed {
		observability.ObserveMutation("checkout_booking", "rejected")
		return domain.Payment{}, fmt.Errorf("booking %d is %s: %w", bookingID, b.Status, domain.ErrBookingClosed)
	}
	room := r.findRoom(b.RoomID)
	if room == nil {
		observability.ObserveMutation("checkout_booking", "rejected")
		return domain.Payment{}, fmt.Errorf("booking %d: %w", bookingID, domain.ErrRoomNotFound)
	}
	rt, ok := r.RoomType(b.RoomTypeID)
	if !ok {
		observability.ObserveMutation("checkout_booking", "rejected")
		return domain.Payment{}, fmt.Errorf("booking %d: %w", bookingID, domain.ErrRoomTypeNotFound)
	}

	p := domain.Payment{
		PaymentID:    r.nextPaymentID,
		BookingID:    bookingID,
		BaseAmount:   rt.BasePrice * float64(b.Days),
		ExtraCharges: extraCharges,
		TaxRate:      TaxRate,
	}
	r.nextPaymentID++
	r.payments = append(r.payments, p)

	b.Status = domain.BookingCheckedOut
	room.Status = domain.RoomAvailable

	var saveErr error
	if err := r.saveRoomsAndBookings(); err != nil {
		saveErr = err
	} else if err := r.store.SavePayments(r.payments); err != nil {
		saveErr = fmt.Errorf("save payments: %w", err)
	}

	if err := r.writeInvoice(*b, p); err != nil {
		r.log.Warn().Err(err).Int("booking_id", bookingID).Msg("invoice write failed")
	}

	if saveErr != nil {
		observability.ObserveMutation("checkout_booking", "error")
		return p, saveErr
	}
	observability.ObserveMutation("checkout_booking", "ok")
	r.log.Info().
		Int("booking_id", bookingID).
		Float64("total", p.Total()).
		Msg("booking checked out")
	return p, nil
}

// ScheduleMaintenance withdraws a room from the booking pool and appends a
// Scheduled maintenance record. A Booked room is refused.
func (r *Registry) ScheduleMaintenance(roomID int, issue, date string) (int, error) {
	room := r.findRoom(roomID)
	if room == nil {
		observability.ObserveMutation("schedule_maintenance", "rejected")
		return 0, domain.ErrRoomNotFound
	}
	if room.Status == domain.RoomBooked {
		observability.ObserveMutation("schedule_maintenance", "rejected")
		r.log.Warn().Int("room_id", roomID).Msg("cannot schedule maintenance on a booked room")
		return 0, domain.ErrRoomBooked
	}

	room.Status = domain.RoomMaintenance
	m := domain.Maintenance{
		MaintID:       r.nextMaintID,
		RoomID:        roomID,
		Issue:         issue,
		Status:        domain.MaintScheduled,
		ScheduledDate: date,
	}
	r.nextMaintID++
	r.maintenance = append(r.maintenance, m)

	if err := r.store.SaveRooms(r.rooms); err != nil {
		observability.ObserveMutation("schedule_maintenance", "error")
		return m.MaintID, fmt.Errorf("save rooms: %w", err)
	}
	if err := r.store.SaveMaintenance(r.maintenance); err != nil {
		observability.ObserveMutation("schedule_maintenance", "error")
		return m.MaintID, fmt.Errorf("save maintenance: %w", err)
	}
	observability.ObserveMutation("schedule_maintenance", "ok")
	r.log.Info().Int("room_id", roomID).Str("date", date).Msg("maintenance scheduled")
	return m.MaintID, nil
}

// ToggleMaintenance flips a room between Available and Maintenance and
// returns the resulting status. A Booked room is refused; the room file is
// rewritten even when nothing changed, so the write is idempotent.
func (r *Registry) ToggleMaintenance(roomID int) (domain.RoomStatus, error) {
	room := r.findRoom(roomID)
	if room == nil {
		observability.ObserveMutation("toggle_maintenance", "rejected")
		return 0, domain.ErrRoomNotFound
	}

	var stateErr error
	switch room.Status {
	case domain.RoomMaintenance:
		room.Status = domain.RoomAvailable
	case domain.RoomAvailable:
		room.Status = domain.RoomMaintenance
	default:
		r.log.Warn().Int("room_id", roomID).Msg("cannot toggle maintenance on a booked room")
		stateErr = domain.ErrRoomBooked
	}

	if err := r.store.SaveRooms(r.rooms); err != nil {
		observability.ObserveMutation("toggle_maintenance", "error")
		return room.Status, fmt.Errorf("save rooms: %w", err)
	}
	if stateErr != nil {
		observability.ObserveMutation("toggle_maintenance", "rejected")
		return room.Status, stateErr
	}
	observability.ObserveMutation("toggle_maintenance", "ok")
	r.log.Info().Int("room_id", roomID).Stringer("status", room.Status).Msg("maintenance toggled")
	return room.Status, nil
}

func (r *Registry) saveRoomsAndBookings() error {
	if err := r.store.SaveRooms(r.rooms); err != nil {
		return fmt.Errorf("save rooms: %w", err)
	}
	if err := r.store.SaveBookings(r.bookings); err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is one of the registry's missing-reference
// conditions, as opposed to an invalid-state refusal or an IO failure.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrRoomNotFound) ||
		errors.Is(err, domain.ErrRoomTypeNotFound) ||
		errors.Is(err, domain.ErrBookingNotFound)
}
