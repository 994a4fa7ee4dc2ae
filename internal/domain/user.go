package domain

// Role determines what a user is allowed to do on the exchange.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleExecutor Role = "executor"
)

// User is the domain model for exchange participants. Customers own orders,
// executors are assigned to them and submit offers.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Age       int
	Email     string
	Role      Role
	Phone     string
}

// FullName joins first and last name the way list queries render them.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
