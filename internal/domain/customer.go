package domain

type Customer struct {
	CustID int
	Name   string
	Phone  string
	Email  string
}

// Staff is an administrative record: seeded once, never persisted and never
// referenced by a lifecycle operation.
type Staff struct {
	StaffID int
	Name    string
	Role    string
	Salary  float64
}
