package flatfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluewhale/internal/domain"
	"bluewhale/internal/storage/flatfile"
)

func TestLoadAll_MissingFilesMeanEmpty(t *testing.T) {
	st, err := flatfile.New(t.TempDir())
	require.NoError(t, err)

	snap, err := st.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, snap.Rooms)
	assert.Empty(t, snap.Customers)
	assert.Empty(t, snap.Bookings)
	assert.Empty(t, snap.Payments)
	assert.Empty(t, snap.Maintenance)
}

func TestRoundTrip_AllSets(t *testing.T) {
	st, err := flatfile.New(t.TempDir())
	require.NoError(t, err)

	rooms := []domain.Room{
		{RoomID: 1, TypeID: 1, Status: domain.RoomAvailable},
		{RoomID: 2, TypeID: 2, Status: domain.RoomBooked, CustomPrice: 2750.5},
		{RoomID: 3, TypeID: 3, Status: domain.RoomMaintenance},
	}
	customers := []domain.Customer{
		{CustID: 1, Name: "Asha Rao", Phone: "555 0101", Email: "asha@example.com"},
		{CustID: 2, Name: "Ravi", Phone: "555-0102", Email: "ravi@example.com"},
	}
	bookings := []domain.Booking{
		{BookingID: 1, CustID: 1, RoomID: 2, RoomTypeID: 2, Days: 3, Status: domain.BookingConfirmed},
		{BookingID: 2, CustID: 2, RoomID: 1, RoomTypeID: 1, Days: 1, Status: domain.BookingCheckedOut},
	}
	payments := []domain.Payment{
		{PaymentID: 1, BookingID: 2, BaseAmount: 1500, ExtraCharges: 200, TaxRate: 0.18},
	}
	logs := []domain.Maintenance{
		{MaintID: 1, RoomID: 3, Issue: "leaking tap in bathroom", Status: domain.MaintScheduled, ScheduledDate: "2026-09-15"},
	}

	require.NoError(t, st.SaveRooms(rooms))
	require.NoError(t, st.SaveCustomers(customers))
	require.NoError(t, st.SaveBookings(bookings))
	require.NoError(t, st.SavePayments(payments))
	require.NoError(t, st.SaveMaintenance(logs))

	snap, err := st.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, rooms, snap.Rooms)
	assert.Equal(t, customers, snap.Customers)
	assert.Equal(t, bookings, snap.Bookings)
	assert.Equal(t, payments, snap.Payments)
	assert.Equal(t, logs, snap.Maintenance)
}

func TestFreeTextWithSpacesRoundTrips(t *testing.T) {
	st, err := flatfile.New(t.TempDir())
	require.NoError(t, err)

	in := []domain.Customer{{CustID: 1, Name: `Maria "Mia" de la Cruz`, Phone: "+94 11 234 5678", Email: "mia@example.com"}}
	require.NoError(t, st.SaveCustomers(in))

	snap, err := st.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, in, snap.Customers)
}

func TestLoad_AcceptsBareTokens(t *testing.T) {
	// Hand-edited files may carry unquoted single-word text fields.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customers.dat"),
		[]byte("1 Asha 555-0101 asha@example.com\n"), 0o644))

	st, err := flatfile.New(dir)
	require.NoError(t, err)
	snap, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, "Asha", snap.Customers[0].Name)
}

func TestLoad_BadStatusOrdinal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rooms.dat"),
		[]byte("1 1 7 0\n"), 0o644))

	st, err := flatfile.New(dir)
	require.NoError(t, err)
	_, err = st.LoadAll()
	assert.ErrorContains(t, err, "status ordinal")
}

func TestLoad_FieldCountMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bookings.dat"),
		[]byte("1 1 1 1 3\n"), 0o644))

	st, err := flatfile.New(dir)
	require.NoError(t, err)
	_, err = st.LoadAll()
	assert.ErrorContains(t, err, "fields")
}

func TestSave_RewritesWholeSet(t *testing.T) {
	st, err := flatfile.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.SaveRooms([]domain.Room{{RoomID: 1, TypeID: 1}, {RoomID: 2, TypeID: 1}}))
	require.NoError(t, st.SaveRooms([]domain.Room{{RoomID: 1, TypeID: 1}}))

	snap, err := st.LoadAll()
	require.NoError(t, err)
	assert.Len(t, snap.Rooms, 1)
}

func TestStatusOrdinalsAreStable(t *testing.T) {
	// The integer ordinals are the on-disk contract; reordering the enums
	// would silently corrupt existing files.
	st, err := flatfile.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, st.SaveRooms([]domain.Room{{RoomID: 1, TypeID: 1, Status: domain.RoomMaintenance}}))

	raw, err := os.ReadFile(filepath.Join(st.Dir(), "rooms.dat"))
	require.NoError(t, err)
	assert.Equal(t, "1 1 2 0\n", string(raw))
}
