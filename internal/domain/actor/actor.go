// Package actor is the request-scoped identity passed into every core call.
package actor

import (
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Actor struct {
	UserID       uint
	Role         models.Role
	BarbershopID partition.ID
}

// Anonymous is an unauthenticated visitor of a public page.
var Anonymous = Actor{}

func (a Actor) IsAuthenticated() bool {
	return a.UserID != 0
}

func (a Actor) IsBarber() bool {
	return a.Role == models.RoleBarber
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// WorksAt reports whether a is staff of the given barbershop.
func (a Actor) WorksAt(shop partition.ID) bool {
	if !a.IsBarber() {
		return false
	}
	mine, ok := a.BarbershopID.Get()
	other, ok2 := shop.Get()
	return ok && ok2 && mine == other
}

// Home is the default partition of a barber: their shop, no staff member.
func (a Actor) Home() partition.Partition {
	return partition.New(a.BarbershopID, partition.None())
}

// UserRef and ShopRef are the nullable ids stored in audit rows.
func (a Actor) UserRef() *uint {
	if a.UserID == 0 {
		return nil
	}
	v := a.UserID
	return &v
}

func (a Actor) ShopRef() *uint {
	return a.BarbershopID.Ptr()
}
