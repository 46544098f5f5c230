package order

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type DeliveryMethod string

const (
	DeliveryPersonal   DeliveryMethod = "personal"
	DeliveryNovaPoshta DeliveryMethod = "nova-poshta"
	DeliveryCourier    DeliveryMethod = "courier"
)

type PaymentMethod string

const PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	City      string `json:"city"`
}

// Delivery carries the warehouse for Nova Poshta and the address for courier delivery
type Delivery struct {
	Method    DeliveryMethod `json:"deliveryMethod"`
	Warehouse string         `json:"warehouse,omitempty"`
	Address   string         `json:"address,omitempty"`
}

// ValidationError maps form fields to the reason they were rejected
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid checkout form: " + strings.Join(parts, ", ")
}

func (c Customer) normalize() Customer {
	return Customer{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Phone:     strings.TrimSpace(c.Phone),
		Email:     strings.TrimSpace(c.Email),
		City:      strings.TrimSpace(c.City),
	}
}

func (c Customer) validate(fields map[string]string) {
	if c.FirstName == "" {
		fields["firstName"] = "required"
	}
	if c.LastName == "" {
		fields["lastName"] = "required"
	}
	if c.Phone == "" {
		fields["phone"] = "required"
	}
	switch {
	case c.Email == "":
		fields["email"] = "required"
	case !emailPattern.MatchString(c.Email):
		fields["email"] = "invalid email"
	}
	if c.City == "" {
		fields["city"] = "required"
	}
}

// normalize defaults the method to personal pickup and keeps only the
// destination field that belongs to the chosen method.
func (d Delivery) normalize() Delivery {
	out := Delivery{Method: d.Method}
	if out.Method == "" {
		out.Method = DeliveryPersonal
	}
	switch out.Method {
	case DeliveryNovaPoshta:
		out.Warehouse = strings.TrimSpace(d.Warehouse)
	case DeliveryCourier:
		out.Address = strings.TrimSpace(d.Address)
	}
	return out
}

func (d Delivery) validate(fields map[string]string) {
	switch d.Method {
	case DeliveryPersonal, DeliveryNovaPoshta, DeliveryCourier:
	default:
		fields["deliveryMethod"] = "unknown delivery method"
	}
}

func normalizePayment(p PaymentMethod) PaymentMethod {
	if p == "" {
		return PaymentCashOnDelivery
	}
	return p
}

func validatePayment(p PaymentMethod, fields map[string]string) {
	if p != PaymentCashOnDelivery {
		fields["paymentMethod"] = "unknown payment method"
	}
}
