// Package models contains domain models and entities.
package models

// Customer is a registry entry keyed by ID.
type Customer struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// NewCustomer builds a customer from its fields.
func NewCustomer(id, firstName, lastName, phoneNumber string) *Customer {
	return &Customer{
		ID:          id,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phoneNumber,
	}
}

// FullName returns the first and last name separated by a space.
func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
