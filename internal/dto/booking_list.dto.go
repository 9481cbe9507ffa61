package dto

type BookingListDTO struct {
	ID      uint   `json:"id"`
	Date    string `json:"date"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Day     int    `json:"day"`
	Time    string `json:"time"`
	Service string `json:"service"`
	Status  string `json:"status"`

	BarbershopID *uint `json:"barbershop_id,omitempty"`
	BarberID     *uint `json:"barber_id,omitempty"`

	// Customer is the anonymous customer name, or the requester's
	// username when none was given.
	Customer      string `json:"customer,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	Username      string `json:"username,omitempty"`
}
