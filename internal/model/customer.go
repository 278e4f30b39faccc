package model

// Customer is customer model entity. ID is assigned by the database on insert
// and is never accepted from the client.
type Customer struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}
