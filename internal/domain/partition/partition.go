package partition

import (
	"fmt"
	"strconv"
)

// ID is an optional tenant-side identifier. The zero value is None, which
// means "rows that have no value" and never "any value".
type ID struct {
	v     uint
	valid bool
}

func Some(v uint) ID {
	return ID{v: v, valid: true}
}

func None() ID {
	return ID{}
}

// FromPtr maps a nullable column value to an ID.
func FromPtr(p *uint) ID {
	if p == nil {
		return None()
	}
	return Some(*p)
}

func (id ID) Get() (uint, bool) {
	return id.v, id.valid
}

func (id ID) IsNone() bool {
	return !id.valid
}

// Ptr is the nullable column value for id.
func (id ID) Ptr() *uint {
	if !id.valid {
		return nil
	}
	v := id.v
	return &v
}

func (id ID) String() string {
	if !id.valid {
		return "-"
	}
	return strconv.FormatUint(uint64(id.v), 10)
}

// Partition scopes slots and bookings by (barbershop, barber).
type Partition struct {
	Shop  ID
	Staff ID
}

// Global is the legacy partition with neither barbershop nor barber.
var Global = Partition{}

func New(shop, staff ID) Partition {
	return Partition{Shop: shop, Staff: staff}
}

func ForShop(shopID uint) Partition {
	return Partition{Shop: Some(shopID)}
}

func ForStaff(shopID, barberID uint) Partition {
	return Partition{Shop: Some(shopID), Staff: Some(barberID)}
}

func (p Partition) IsGlobal() bool {
	return p.Shop.IsNone() && p.Staff.IsNone()
}

// Key is a stable textual form, used for lock names and log fields.
func (p Partition) Key() string {
	return fmt.Sprintf("shop:%s/barber:%s", p.Shop, p.Staff)
}

func (p Partition) String() string {
	return p.Key()
}
