package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string `db:"id"`
	Email     string `db:"email"`
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Hash      string `db:"password_hash"`
	Role      string `db:"role"`
	CreatedAt string `db:"created_at"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Address is a saved delivery address in a user's address book.
type Address struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	Name    string `db:"name"`
	Phone   string `db:"phone"`
	Street  string `db:"street"`
	City    string `db:"city"`
	State   string `db:"state"`
	Pincode string `db:"pincode"`
}
