// Command innkeeper is the interactive operator console: it opens the
// registry over the flat-file store and drives every lifecycle operation
// from a numbered menu. All input validation lives here; the registry only
// ever sees validated integers and strings.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"bluewhale/internal/adapters/observability"
	"bluewhale/internal/app"
	"bluewhale/internal/shared"
	"bluewhale/internal/storage/flatfile"
)

func main() {
	dataDir := pflag.String("data-dir", "", "record set directory (overrides DATA_DIR)")
	quiet := pflag.Bool("quiet", false, "suppress info logging")
	pflag.Parse()

	cfg := shared.Load()
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	log.Logger = observability.NewLogger(cfg.AppEnv)
	if *quiet {
		log.Logger = log.Logger.Level(zerolog.WarnLevel)
	}

	store, err := flatfile.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open store failed")
	}
	reg, err := app.Open(store, cfg.DataDir, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("open registry failed")
	}

	c := &console{reg: reg, in: bufio.NewReader(os.Stdin), dataDir: cfg.DataDir}
	c.run()

	if err := reg.Close(); err != nil {
		log.Error().Err(err).Msg("final save failed")
	}
	fmt.Println("Goodbye!")
}

type console struct {
	reg     *app.Registry
	in      *bufio.Reader
	dataDir string
}

func (c *console) run() {
	for {
		c.showMenu()
		choice, ok := c.readInt("Choose: ")
		if !ok {
			fmt.Println("Invalid menu option.")
			continue
		}
		if choice == 0 {
			return
		}
		c.dispatch(choice)
	}
}

func (c *console) showMenu() {
	fmt.Print("\n=== Hotel Management System ===\n" +
		"1. Show Rooms\n" +
		"2. Show Dashboard\n" +
		"3. Add Customer\n" +
		"4. Create Booking\n" +
		"5. Cancel Booking\n" +
		"6. Checkout Booking (generate invoice)\n" +
		"7. Schedule Maintenance\n" +
		"8. Toggle Maintenance\n" +
		"9. Export / Save\n" +
		"10. Rooms Report\n" +
		"11. Customer Report\n" +
		"12. Revenue Report\n" +
		"13. Show All Bookings\n" +
		"14. Export Web Dashboard Data\n" +
		"0. Exit\n")
}

func (c *console) dispatch(choice int) {
	switch choice {
	case 1, 10:
		c.printRooms()
	case 2:
		c.showDashboard()
	case 3:
		c.addCustomer()
	case 4:
		c.createBooking()
	case 5:
		c.cancelBooking()
	case 6:
		c.checkout()
	case 7:
		c.scheduleMaintenance()
	case 8:
		c.toggleMaintenance()
	case 9:
		// Close flushes every record set and invalidates the handle.
		if err := c.reg.Close(); err != nil {
			fmt.Println("Save failed:", err)
			c.reopen()
			return
		}
		fmt.Println("Data saved.")
		c.reopen()
	case 11:
		c.printCustomers()
	case 12:
		c.printRevenue()
	case 13:
		c.printBookings()
	case 14:
		path := filepath.Join(c.dataDir, "dashboard_data.json")
		if err := c.reg.ExportSummary(path); err != nil {
			fmt.Println("Export failed:", err)
			return
		}
		fmt.Println("Dashboard data exported to", path)
	default:
		fmt.Println("Invalid menu option.")
	}
}

func (c *console) reopen() {
	store, err := flatfile.New(c.dataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("reopen store failed")
	}
	reg, err := app.Open(store, c.dataDir, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("reopen registry failed")
	}
	c.reg = reg
}

/* ---------------- menu actions ---------------- */

func (c *console) printRooms() {
	fmt.Println("\n--- Rooms ---")
	for _, v := range c.reg.RoomViews() {
		fmt.Printf("Room %d | Type: %s | Status: %s | Price/day: %g\n",
			v.RoomID, v.TypeName, v.Status, v.Price)
	}
}

func (c *console) showDashboard() {
	avail, booked, maint := c.reg.CountByStatus()
	fmt.Println("\n===== HOTEL DASHBOARD =====")
	fmt.Println("Total Rooms:", len(c.reg.Rooms()))
	fmt.Println("Available:  ", avail)
	fmt.Println("Booked:     ", booked)
	fmt.Println("Maintenance:", maint)
	fmt.Printf("Completed Revenue: %g\n", c.reg.CompletedRevenue())
	fmt.Printf("Estimated Active Revenue: %g\n", c.reg.EstimatedRevenueActive())
}

func (c *console) addCustomer() {
	name := c.readNonEmpty("Customer name: ")
	phone := c.readNonEmpty("Phone: ")
	email := c.readNonEmpty("Email: ")

	id, err := c.reg.AddCustomer(name, phone, email)
	if err != nil {
		fmt.Println("Customer recorded but save failed:", err)
		return
	}
	fmt.Println("Customer added with ID:", id)
}

func (c *console) createBooking() {
	custID := c.readExisting("Customer ID: ", c.reg.HasCustomer, "No such customer.")
	roomID := c.readExisting("Room ID: ", c.reg.HasRoom, "No such room.")
	days := c.readIntMin("Days: ", 1)

	id, err := c.reg.CreateBooking(custID, roomID, days)
	if err != nil {
		fmt.Println("Error creating booking:", err)
		return
	}
	fmt.Println("Booking created with ID:", id)
}

func (c *console) cancelBooking() {
	id := c.readExisting("Booking ID: ", c.reg.HasBooking, "No such booking.")
	if err := c.reg.CancelBooking(id); err != nil {
		fmt.Println("Cancel failed:", err)
		return
	}
	fmt.Println("Booking cancelled.")
}

func (c *console) checkout() {
	id := c.readExisting("Booking ID: ", c.reg.HasBooking, "No such booking.")
	extra := c.readFloatMin("Extra charges: ", 0)

	p, err := c.reg.CheckoutBooking(id, extra)
	if err != nil {
		fmt.Println("Checkout failed:", err)
		return
	}
	fmt.Printf("Checked out. Base: %g  Extra: %g  GST: %g  Total: %g\n",
		p.BaseAmount, p.ExtraCharges, p.Tax(), p.Total())
	fmt.Println("Invoice written to", c.reg.InvoicePath(id))
}

func (c *console) scheduleMaintenance() {
	roomID := c.readExisting("Room ID: ", c.reg.HasRoom, "No such room.")
	issue := c.readNonEmpty("Issue: ")
	date := c.readDate("Scheduled date (YYYY-MM-DD): ")

	if _, err := c.reg.ScheduleMaintenance(roomID, issue, date); err != nil {
		fmt.Println("Cannot schedule maintenance:", err)
		return
	}
	fmt.Println("Maintenance scheduled.")
}

func (c *console) toggleMaintenance() {
	roomID := c.readExisting("Room ID: ", c.reg.HasRoom, "No such room.")
	status, err := c.reg.ToggleMaintenance(roomID)
	if err != nil {
		fmt.Println("Cannot change maintenance status:", err)
		return
	}
	fmt.Println("Room is now", status)
}

func (c *console) printCustomers() {
	fmt.Println("\n===== CUSTOMER REPORT =====")
	for _, cu := range c.reg.Customers() {
		fmt.Printf("ID: %d | %s | %s | %s\n", cu.CustID, cu.Name, cu.Phone, cu.Email)
	}
}

func (c *console) printRevenue() {
	fmt.Println("\n===== REVENUE REPORT =====")
	fmt.Printf("Completed Revenue: %g\n", c.reg.CompletedRevenue())
	fmt.Printf("Estimated Active Revenue: %g\n", c.reg.EstimatedRevenueActive())
	for _, tr := range c.reg.RevenueByRoomType() {
		fmt.Printf("  %s: %g\n", tr.Type, tr.Revenue)
	}
}

func (c *console) printBookings() {
	fmt.Println("\n--- Bookings ---")
	for _, b := range c.reg.BookingViews() {
		fmt.Printf("Booking %d | Customer %d | Room %d | Type %d | Days %d | %s\n",
			b.BookingID, b.CustID, b.RoomID, b.RoomTypeID, b.Days, b.Status)
	}
}

/* ---------------- input helpers ---------------- */

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (c *console) readLine(prompt string) string {
	fmt.Print(prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		// stdin closed: treat as exit request
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(line)
}

func (c *console) readInt(prompt string) (int, bool) {
	v, err := strconv.Atoi(c.readLine(prompt))
	return v, err == nil
}

func (c *console) readIntMin(prompt string, min int) int {
	for {
		if v, ok := c.readInt(prompt); ok && v >= min {
			return v
		}
		fmt.Printf("Value must be a number of at least %d. Try again.\n", min)
	}
}

func (c *console) readFloatMin(prompt string, min float64) float64 {
	for {
		v, err := strconv.ParseFloat(c.readLine(prompt), 64)
		if err == nil && v >= min {
			return v
		}
		fmt.Printf("Value must be a number of at least %g. Try again.\n", min)
	}
}

func (c *console) readNonEmpty(prompt string) string {
	for {
		if s := c.readLine(prompt); s != "" {
			return s
		}
		fmt.Println("Value cannot be empty. Try again.")
	}
}

func (c *console) readDate(prompt string) string {
	for {
		if d := c.readLine(prompt); datePattern.MatchString(d) {
			return d
		}
		fmt.Println("Invalid date format. Use YYYY-MM-DD.")
	}
}

func (c *console) readExisting(prompt string, exists func(int) bool, miss string) int {
	for {
		v, ok := c.readInt(prompt)
		if !ok {
			fmt.Println("Invalid number.")
			continue
		}
		if exists(v) {
			return v
		}
		fmt.Println(miss, "Try again.")
	}
}
