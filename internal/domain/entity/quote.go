package entity

import "time"

// Quote solicitud de cotización enviada desde el sitio público.
type Quote struct {
	ID       string
	Name     string
	Phone    string
	Email    string
	Product  string
	Quantity int
	Message  string
	Date     time.Time
}
