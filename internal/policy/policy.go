// Package policy declares which role may do what.  Routes and handlers ask
// for a capability instead of listing roles, so granting staff a new duty
// is a one-line change to the table below.
package policy

import "github.com/iliyamo/hotel-booking/internal/model"

// Capability names an action class guarded by the API.
type Capability string

const (
	BookingSelf        Capability = "booking:self" // own basket, reservations and profile
	ReservationsRead   Capability = "reservations:read"
	ReservationsManage Capability = "reservations:manage"
	BasketsRead        Capability = "baskets:read"
	InventoryManage    Capability = "inventory:manage"
	RoomsManage        Capability = "rooms:manage"
	EventsManage       Capability = "events:manage"
	UsersManage        Capability = "users:manage"
)

var grants = map[string][]Capability{
	model.RoleGuest: {BookingSelf},
	model.RoleStaff: {BookingSelf, ReservationsRead, BasketsRead, InventoryManage},
	model.RoleAdmin: {
		BookingSelf, ReservationsRead, ReservationsManage, BasketsRead,
		InventoryManage, RoomsManage, EventsManage, UsersManage,
	},
}

var table = build(grants)

func build(g map[string][]Capability) map[string]map[Capability]bool {
	out := make(map[string]map[Capability]bool, len(g))
	for role, caps := range g {
		set := make(map[Capability]bool, len(caps))
		for _, c := range caps {
			set[c] = true
		}
		out[role] = set
	}
	return out
}

// Allows reports whether role holds capability c.  Unknown roles hold nothing.
func Allows(role string, c Capability) bool {
	return table[role][c]
}

// AllowsAny reports whether role holds at least one of caps.
func AllowsAny(role string, caps ...Capability) bool {
	for _, c := range caps {
		if Allows(role, c) {
			return true
		}
	}
	return false
}

// Capabilities lists what role may do, in declaration order.
func Capabilities(role string) []Capability {
	return append([]Capability(nil), grants[role]...)
}
