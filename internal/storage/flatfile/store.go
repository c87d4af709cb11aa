// Package flatfile persists the registry's record sets as line-oriented
// plain-text tables: one file per collection, one record per line, fields
// separated by single spaces. Free-text fields are written quoted so values
// containing spaces round-trip; bare tokens are still accepted on load.
package flatfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bluewhale/internal/adapters/observability"
	"bluewhale/internal/domain"
)

const (
	roomsFile       = "rooms.dat"
	customersFile   = "customers.dat"
	bookingsFile    = "bookings.dat"
	paymentsFile    = "payments.dat"
	maintenanceFile = "maintenance.dat"
)

type Store struct{ dir string }

// New returns a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

/* ---------------- save ---------------- */

func (s *Store) SaveRooms(rooms []domain.Room) error {
	lines := make([]string, 0, len(rooms))
	for _, r := range rooms {
		lines = append(lines, join(
			itoa(r.RoomID), itoa(r.TypeID), itoa(int(r.Status)), ftoa(r.CustomPrice)))
	}
	return s.writeSet("rooms", roomsFile, lines)
}

func (s *Store) SaveCustomers(customers []domain.Customer) error {
	lines := make([]string, 0, len(customers))
	for _, c := range customers {
		lines = append(lines, join(
			itoa(c.CustID), quote(c.Name), quote(c.Phone), quote(c.Email)))
	}
	return s.writeSet("customers", customersFile, lines)
}

func (s *Store) SaveBookings(bookings []domain.Booking) error {
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		lines = append(lines, join(
			itoa(b.BookingID), itoa(b.CustID), itoa(b.RoomID),
			itoa(b.RoomTypeID), itoa(b.Days), itoa(int(b.Status))))
	}
	return s.writeSet("bookings", bookingsFile, lines)
}

func (s *Store) SavePayments(payments []domain.Payment) error {
	lines := make([]string, 0, len(payments))
	for _, p := range payments {
		lines = append(lines, join(
			itoa(p.PaymentID), itoa(p.BookingID),
			ftoa(p.BaseAmount), ftoa(p.ExtraCharges), ftoa(p.TaxRate)))
	}
	return s.writeSet("payments", paymentsFile, lines)
}

func (s *Store) SaveMaintenance(logs []domain.Maintenance) error {
	lines := make([]string, 0, len(logs))
	for _, m := range logs {
		lines = append(lines, join(
			itoa(m.MaintID), itoa(m.RoomID), quote(m.Issue),
			itoa(int(m.Status)), quote(m.ScheduledDate)))
	}
	return s.writeSet("maintenance", maintenanceFile, lines)
}

// writeSet rewrites one record set in full: write to a temp file in the same
// directory, then rename over the old file so readers never see a torn set.
func (s *Store) writeSet(set, name string, lines []string) (err error) {
	defer func() { observability.ObserveRecordWrite(set, err) }()

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, l := range lines {
		if _, err = w.WriteString(l + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err = w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

/* ---------------- load ---------------- */

// LoadAll reads every record set. A missing file is an empty collection.
func (s *Store) LoadAll() (domain.Snapshot, error) {
	var snap domain.Snapshot

	err := s.readSet(roomsFile, 4, func(f []string) error {
		r := domain.Room{}
		var err error
		if r.RoomID, err = atoi(f[0]); err != nil {
			return err
		}
		if r.TypeID, err = atoi(f[1]); err != nil {
			return err
		}
		st, err := atoi(f[2])
		if err != nil {
			return err
		}
		r.Status = domain.RoomStatus(st)
		if !r.Status.Valid() {
			return fmt.Errorf("bad room status ordinal %d", st)
		}
		if r.CustomPrice, err = atof(f[3]); err != nil {
			return err
		}
		snap.Rooms = append(snap.Rooms, r)
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.readSet(customersFile, 4, func(f []string) error {
		c := domain.Customer{Name: f[1], Phone: f[2], Email: f[3]}
		var err error
		if c.CustID, err = atoi(f[0]); err != nil {
			return err
		}
		snap.Customers = append(snap.Customers, c)
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.readSet(bookingsFile, 6, func(f []string) error {
		b := domain.Booking{}
		ints := make([]int, 6)
		for i, tok := range f {
			v, err := atoi(tok)
			if err != nil {
				return err
			}
			ints[i] = v
		}
		b.BookingID, b.CustID, b.RoomID, b.RoomTypeID, b.Days = ints[0], ints[1], ints[2], ints[3], ints[4]
		b.Status = domain.BookingStatus(ints[5])
		if !b.Status.Valid() {
			return fmt.Errorf("bad booking status ordinal %d", ints[5])
		}
		snap.Bookings = append(snap.Bookings, b)
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.readSet(paymentsFile, 5, func(f []string) error {
		p := domain.Payment{}
		var err error
		if p.PaymentID, err = atoi(f[0]); err != nil {
			return err
		}
		if p.BookingID, err = atoi(f[1]); err != nil {
			return err
		}
		if p.BaseAmount, err = atof(f[2]); err != nil {
			return err
		}
		if p.ExtraCharges, err = atof(f[3]); err != nil {
			return err
		}
		if p.TaxRate, err = atof(f[4]); err != nil {
			return err
		}
		snap.Payments = append(snap.Payments, p)
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.readSet(maintenanceFile, 5, func(f []string) error {
		m := domain.Maintenance{Issue: f[2], ScheduledDate: f[4]}
		var err error
		if m.MaintID, err = atoi(f[0]); err != nil {
			return err
		}
		if m.RoomID, err = atoi(f[1]); err != nil {
			return err
		}
		st, err := atoi(f[3])
		if err != nil {
			return err
		}
		m.Status = domain.MaintStatus(st)
		if !m.Status.Valid() {
			return fmt.Errorf("bad maintenance status ordinal %d", st)
		}
		snap.Maintenance = append(snap.Maintenance, m)
		return nil
	})
	return snap, err
}

func (s *Store) readSet(name string, fields int, add func([]string) error) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		toks, err := splitRecord(text)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
		if len(toks) != fields {
			return fmt.Errorf("%s:%d: want %d fields, got %d", name, line, fields, len(toks))
		}
		if err := add(toks); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

/* ---------------- field codec ---------------- */

// splitRecord tokenizes one record line. A field starting with a double
// quote is a Go-quoted string (may contain spaces); anything else runs to
// the next space.
func splitRecord(line string) ([]string, error) {
	var out []string
	s := line
	for s != "" {
		if s[0] == '"' {
			q, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, fmt.Errorf("bad quoted field: %w", err)
			}
			u, err := strconv.Unquote(q)
			if err != nil {
				return nil, fmt.Errorf("bad quoted field: %w", err)
			}
			out = append(out, u)
			s = strings.TrimLeft(s[len(q):], " ")
			continue
		}
		if i := strings.IndexByte(s, ' '); i >= 0 {
			out = append(out, s[:i])
			s = strings.TrimLeft(s[i:], " ")
		} else {
			out = append(out, s)
			s = ""
		}
	}
	return out, nil
}

func join(fields ...string) string   { return strings.Join(fields, " ") }
func quote(v string) string          { return strconv.Quote(v) }
func itoa(v int) string              { return strconv.Itoa(v) }
func ftoa(v float64) string          { return strconv.FormatFloat(v, 'g', -1, 64) }
func atoi(s string) (int, error)     { return strconv.Atoi(s) }
func atof(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
