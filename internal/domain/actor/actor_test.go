package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func TestWorksAt(t *testing.T) {
	barber := Actor{UserID: 1, Role: models.RoleBarber, BarbershopID: partition.Some(3)}

	assert.True(t, barber.WorksAt(partition.Some(3)))
	assert.False(t, barber.WorksAt(partition.Some(4)))
	assert.False(t, barber.WorksAt(partition.None()))

	client := Actor{UserID: 2, Role: models.RoleClient, BarbershopID: partition.Some(3)}
	assert.False(t, client.WorksAt(partition.Some(3)))

	admin := Actor{UserID: 3, Role: models.RoleAdmin}
	assert.False(t, admin.WorksAt(partition.None()))
}

func TestRefs(t *testing.T) {
	assert.Nil(t, Anonymous.UserRef())
	assert.Nil(t, Anonymous.ShopRef())
	assert.False(t, Anonymous.IsAuthenticated())

	a := Actor{UserID: 5, Role: models.RoleBarber, BarbershopID: partition.Some(9)}
	assert.Equal(t, uint(5), *a.UserRef())
	assert.Equal(t, uint(9), *a.ShopRef())
	assert.Equal(t, partition.ForShop(9), a.Home())
}
