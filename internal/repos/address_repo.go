package repos

import (
	"samysilks/internal/domain"

	"github.com/jmoiron/sqlx"
)

// AddressRepo manages a user's saved delivery addresses.
type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

func (r *AddressRepo) Add(a domain.Address) error {
	_, err := r.db.Exec(`
		INSERT INTO addresses(id,user_id,name,phone,street,city,state,pincode)
		VALUES(?,?,?,?,?,?,?,?)
	`, a.ID, a.UserID, a.Name, a.Phone, a.Street, a.City, a.State, a.Pincode)
	return err
}

func (r *AddressRepo) Update(a domain.Address) error {
	_, err := r.db.Exec(`
		UPDATE addresses SET name=?, phone=?, street=?, city=?, state=?, pincode=?
		WHERE id=? AND user_id=?
	`, a.Name, a.Phone, a.Street, a.City, a.State, a.Pincode, a.ID, a.UserID)
	return err
}

func (r *AddressRepo) Remove(userID, addressID string) error {
	_, err := r.db.Exec(`DELETE FROM addresses WHERE id=? AND user_id=?`, addressID, userID)
	return err
}

func (r *AddressRepo) Get(userID, addressID string) (domain.Address, error) {
	var a domain.Address
	err := r.db.Get(&a, `
		SELECT id,user_id,name,phone,street,city,state,pincode
		FROM addresses WHERE id=? AND user_id=?`, addressID, userID)
	return a, err
}

func (r *AddressRepo) List(userID string) ([]domain.Address, error) {
	var out []domain.Address
	err := r.db.Select(&out, `
		SELECT id,user_id,name,phone,street,city,state,pincode
		FROM addresses WHERE user_id=? ORDER BY datetime(created_at)`, userID)
	return out, err
}
