package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/account"
)

// partitionResolver turns a shop id plus the optional barber_id query
// value into a partition. Without barber_id the shop-wide partition is
// used; with it the barber must work at that shop.
type partitionResolver struct {
	accounts *account.Service
}

func (r partitionResolver) resolve(ctx context.Context, shop partition.ID, barberID string) (partition.Partition, error) {
	if shop.IsNone() {
		return partition.Partition{}, httperr.ErrBusiness("no_shop_selected")
	}

	barberID = strings.TrimSpace(barberID)
	if barberID == "" {
		return partition.New(shop, partition.None()), nil
	}

	id, err := strconv.ParseUint(barberID, 10, 64)
	if err != nil || id == 0 {
		return partition.Partition{}, httperr.ErrBusiness("not_found")
	}

	u, err := r.accounts.Get(ctx, uint(id))
	if err != nil {
		return partition.Partition{}, err
	}
	if u.Role != models.RoleBarber || partition.FromPtr(u.BarbershopID) != shop {
		return partition.Partition{}, httperr.ErrBusiness("not_found")
	}

	return partition.New(shop, partition.Some(u.ID)), nil
}
