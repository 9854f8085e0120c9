package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. Las transiciones son libres (cualquier estado puede asignarse).
const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "In Progress"
	OrderStatusCompleted  = "Completed"
)

// NormalizeOrderStatus devuelve la forma canónica del estado (sin distinguir mayúsculas)
// y false si no es un estado conocido.
func NormalizeOrderStatus(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return OrderStatusPending, true
	case "in progress":
		return OrderStatusInProgress, true
	case "completed":
		return OrderStatusCompleted, true
	}
	return "", false
}

// Order pedido de impresión de un cliente.
type Order struct {
	ID           string
	CustomerID   string // vacío si el pedido no está ligado a un usuario
	CustomerName string // nombre capturado al crear el pedido
	ProductName  string
	Size         string
	Colour       string
	Quantity     decimal.Decimal
	TotalCost    decimal.Decimal
	AmountPaid   decimal.Decimal
	Date         time.Time
	Status       string
	ReceiveDate  *time.Time // solo con estado Completed

	// Solo lectura (join con users).
	CustomerDisplay string
	CustomerPhone   string
}

// ApplyStatus asigna el estado: Completed sella ReceiveDate con la fecha dada, cualquier otro la limpia.
func (o *Order) ApplyStatus(status string, today time.Time) {
	o.Status = status
	if status == OrderStatusCompleted {
		d := today
		o.ReceiveDate = &d
		return
	}
	o.ReceiveDate = nil
}

// CustomerUnknown nombre mostrado cuando el pedido no tiene ningún dato del cliente.
const CustomerUnknown = "Unknown"

// CustomerDisplayName elige el nombre visible: el capturado en el pedido, luego el del usuario,
// luego su teléfono y por último CustomerUnknown.
func CustomerDisplayName(orderName, userName, userPhone string) string {
	for _, s := range []string{orderName, userName, userPhone} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return CustomerUnknown
}
