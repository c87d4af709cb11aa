package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bluewhale/internal/domain"
)

// InvoicePath returns the deterministic per-booking invoice location.
func (r *Registry) InvoicePath(bookingID int) string {
	return filepath.Join(r.invoiceDir, fmt.Sprintf("invoice_booking_%d.txt", bookingID))
}

// writeInvoice emits the plain-text settlement ledger for one checkout.
func (r *Registry) writeInvoice(b domain.Booking, p domain.Payment) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - Invoice\n", HotelName)
	fmt.Fprintf(&sb, "Booking ID: %d\n", b.BookingID)
	fmt.Fprintf(&sb, "Customer ID: %d\n", b.CustID)
	fmt.Fprintf(&sb, "Room ID: %d\n", b.RoomID)
	fmt.Fprintf(&sb, "Days: %d\n", b.Days)
	fmt.Fprintf(&sb, "Base: %g\n", p.BaseAmount)
	fmt.Fprintf(&sb, "Extra: %g\n", p.ExtraCharges)
	fmt.Fprintf(&sb, "GST: %g\n", p.Tax())
	fmt.Fprintf(&sb, "Total: %g\n", p.Total())

	if err := os.WriteFile(r.InvoicePath(b.BookingID), []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write invoice: %w", err)
	}
	return nil
}
