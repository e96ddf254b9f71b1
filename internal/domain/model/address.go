package model

// Address is a delivery address referenced by orders. The order flow only
// reads addresses; managing them belongs to the account surface.
type Address struct {
	ID          int64
	UserID      int64
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
}
