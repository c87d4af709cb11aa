package app_test

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluewhale/internal/app"
	"bluewhale/internal/domain"
	"bluewhale/internal/storage/flatfile"
)

// Round-trips the registry through the real flat-file store: everything a
// session mutates must come back identical in a fresh process.
func TestRegistry_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	st, err := flatfile.New(dir)
	require.NoError(t, err)
	reg, err := app.Open(st, dir, zerolog.Nop())
	require.NoError(t, err)

	custID, err := reg.AddCustomer("Asha Rao", "+94 11 234 5678", "asha@example.com")
	require.NoError(t, err)

	b1, err := reg.CreateBooking(custID, 1, 3)
	require.NoError(t, err)
	b2, err := reg.CreateBooking(custID, 4, 2)
	require.NoError(t, err)
	_, err = reg.CheckoutBooking(b2, 150)
	require.NoError(t, err)
	_, err = reg.ScheduleMaintenance(9, "broken window latch", "2026-09-20")
	require.NoError(t, err)

	require.NoError(t, reg.Close())

	st2, err := flatfile.New(dir)
	require.NoError(t, err)
	reg2, err := app.Open(st2, dir, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, reg.Rooms(), reg2.Rooms())
	assert.Equal(t, reg.Customers(), reg2.Customers())
	assert.Equal(t, reg.Bookings(), reg2.Bookings())
	assert.Equal(t, reg.Payments(), reg2.Payments())
	assert.Equal(t, reg.MaintenanceLog(), reg2.MaintenanceLog())

	// Counters continue from the persisted tail, never reuse IDs.
	nextCust, err := reg2.AddCustomer("Ravi", "555-0102", "ravi@example.com")
	require.NoError(t, err)
	assert.Equal(t, custID+1, nextCust)

	b3, err := reg2.CreateBooking(nextCust, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, b1+2, b3)

	room1, _ := reg2.Room(1)
	assert.Equal(t, domain.RoomBooked, room1.Status)
	room9, _ := reg2.Room(9)
	assert.Equal(t, domain.RoomMaintenance, room9.Status)
}

func TestExportSummary_File(t *testing.T) {
	dir := t.TempDir()
	st, err := flatfile.New(dir)
	require.NoError(t, err)
	reg, err := app.Open(st, dir, zerolog.Nop())
	require.NoError(t, err)

	b, err := reg.CreateBooking(1, 1, 3)
	require.NoError(t, err)
	_, err = reg.CheckoutBooking(b, 200)
	require.NoError(t, err)

	path := dir + "/dashboard_data.json"
	require.NoError(t, reg.ExportSummary(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{`"rooms"`, `"revenue"`, `"customers"`, `"bookings"`, `"roomTypeRevenue"`, `"checkedOut"`} {
		assert.Contains(t, string(raw), key)
	}
}
