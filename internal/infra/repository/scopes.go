package repository

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
)

// matchID filters col by id. None matches NULL only, never "any".
func matchID(db *gorm.DB, col string, id partition.ID) *gorm.DB {
	if v, ok := id.Get(); ok {
		return db.Where(col+" = ?", v)
	}
	return db.Where(col + " IS NULL")
}

// partitionScope restricts a query on slots or bookings to p. prefix
// qualifies the columns in joins ("bookings.").
func partitionScope(prefix string, p partition.Partition) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = matchID(db, prefix+"barbershop_id", p.Shop)
		return matchID(db, prefix+"barber_id", p.Staff)
	}
}

func dayScope(prefix string, d calendar.Date) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			prefix+"year = ? AND "+prefix+"month = ? AND "+prefix+"day = ?",
			d.Year, d.Month, d.Day,
		)
	}
}
