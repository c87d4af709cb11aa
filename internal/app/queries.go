package app

import (
	"encoding/json"
	"fmt"
	"os"

	"bluewhale/internal/domain"
)

// Read-only scans over memory. Nothing here touches the store except
// ExportSummary, which writes the aggregate document for dashboard tooling.

// CountByStatus tallies rooms per status.
func (r *Registry) CountByStatus() (available, booked, maintenance int) {
	for _, room := range r.rooms {
		switch room.Status {
		case domain.RoomAvailable:
			available++
		case domain.RoomBooked:
			booked++
		case domain.RoomMaintenance:
			maintenance++
		}
	}
	return available, booked, maintenance
}

// EstimatedRevenueActive projects revenue from Confirmed bookings only,
// using each booking's snapshotted room type. A booking whose type cannot
// be resolved is skipped; current mutation rules never remove a type, but
// the scan stays defensive.
func (r *Registry) EstimatedRevenueActive() float64 {
	var total float64
	for _, b := range r.bookings {
		if b.Status != domain.BookingConfirmed {
			continue
		}
		if rt, ok := r.RoomType(b.RoomTypeID); ok {
			total += rt.BasePrice * float64(b.Days)
		}
	}
	return total
}

// CompletedRevenue sums settled payment totals. Checkouts are settled for
// good, regardless of what later happens to their booking records.
func (r *Registry) CompletedRevenue() float64 {
	var total float64
	for _, p := range r.payments {
		total += p.Total()
	}
	return total
}

// RevenueByRoomType joins payments to bookings to types, in type
// declaration order.
func (r *Registry) RevenueByRoomType() []domain.TypeRevenue {
	out := make([]domain.TypeRevenue, 0, len(r.roomTypes))
	for _, rt := range r.roomTypes {
		var sum float64
		for _, p := range r.payments {
			if b := r.findBooking(p.BookingID); b != nil && b.RoomTypeID == rt.TypeID {
				sum += p.Total()
			}
		}
		out = append(out, domain.TypeRevenue{Type: rt.Name, Revenue: sum})
	}
	return out
}

// RoomViews renders rooms for display: type name (or "Unknown"), status
// text, effective per-day price.
func (r *Registry) RoomViews() []domain.RoomView {
	out := make([]domain.RoomView, 0, len(r.rooms))
	for _, room := range r.rooms {
		view := domain.RoomView{
			RoomID:   room.RoomID,
			TypeName: "Unknown",
			Status:   room.Status.String(),
			Price:    room.CustomPrice,
		}
		if rt, ok := r.RoomType(room.TypeID); ok {
			view.TypeName = rt.Name
			view.Price = room.EffectivePrice(rt.BasePrice)
		}
		out = append(out, view)
	}
	return out
}

func (r *Registry) BookingViews() []domain.BookingView {
	out := make([]domain.BookingView, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, domain.BookingView{
			BookingID:  b.BookingID,
			CustID:     b.CustID,
			RoomID:     b.RoomID,
			RoomTypeID: b.RoomTypeID,
			Days:       b.Days,
			Status:     b.Status.String(),
		})
	}
	return out
}

// Summary builds the aggregate document consumed by dashboard tooling.
func (r *Registry) Summary() domain.Summary {
	var s domain.Summary

	s.Rooms.Total = len(r.rooms)
	s.Rooms.Available, s.Rooms.Booked, s.Rooms.Maintenance = r.CountByStatus()

	s.Revenue.Completed = r.CompletedRevenue()
	s.Revenue.Estimated = r.EstimatedRevenueActive()

	s.Customers.Total = len(r.customers)

	s.Bookings.Total = len(r.bookings)
	for _, b := range r.bookings {
		switch b.Status {
		case domain.BookingConfirmed:
			s.Bookings.Confirmed++
		case domain.BookingCancelled:
			s.Bookings.Cancelled++
		case domain.BookingCheckedOut:
			s.Bookings.CheckedOut++
		}
	}

	s.RoomTypeRevenue = r.RevenueByRoomType()
	return s
}

// ExportSummary writes the summary document wholesale to path. Downstream
// dashboards read this file; its lifecycle is independent of the per-booking
// invoice files.
func (r *Registry) ExportSummary(path string) error {
	b, err := json.MarshalIndent(r.Summary(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}
	r.log.Info().Str("path", path).Msg("summary exported")
	return nil
}
