package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/db/dbtest"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func setup(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	gdb := dbtest.Open(t)
	return NewService(
		repository.NewUserGormRepository(gdb),
		repository.NewBarbershopGormRepository(gdb),
		nil, nil,
	), gdb
}

func seedBarber(t *testing.T, gdb *gorm.DB, username, password string) (*models.User, *models.Barbershop) {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	shop := &models.Barbershop{Name: "Navalha " + username, Slug: "navalha-" + username, Active: true}
	u := &models.User{Username: username, PasswordHash: string(h), Role: models.RoleBarber}
	require.NoError(t, repository.NewBarbershopGormRepository(gdb).CreateWithOwner(context.Background(), shop, u))
	return u, shop
}

func barberActor(u *models.User) actor.Actor {
	return actor.Actor{UserID: u.ID, Role: models.RoleBarber, BarbershopID: partition.FromPtr(u.BarbershopID)}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s, gdb := setup(t)
	seedBarber(t, gdb, "ze", "secret")

	u, err := s.Authenticate(ctx, " ze ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ze", u.Username)

	_, err = s.Authenticate(ctx, "ze", "wrong")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = s.Authenticate(ctx, "nobody", "secret")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}

func TestPublicClientIsStable(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t)

	a, err := s.PublicClient(ctx)
	require.NoError(t, err)
	b, err := s.PublicClient(ctx)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, models.PublicClientUsername, a.Username)
	assert.Equal(t, models.RoleClient, a.Role)
	assert.Nil(t, a.BarbershopID)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	s, gdb := setup(t)

	u, err := s.EnsureAdmin(ctx, "admin", "")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = s.EnsureAdmin(ctx, "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	again, err := s.EnsureAdmin(ctx, "admin", "other")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)

	_, err = s.Authenticate(ctx, "admin", "pw")
	assert.NoError(t, err)

	seedBarber(t, gdb, "barber", "x")
	_, err = s.EnsureAdmin(ctx, "barber", "pw")
	assert.Error(t, err)
}

func TestUpdateProfile_PasswordRules(t *testing.T) {
	ctx := context.Background()
	s, gdb := setup(t)
	u, _ := seedBarber(t, gdb, "ze", "old")
	by := barberActor(u)

	_, err := s.UpdateProfile(ctx, by, ProfilePatch{NewPassword: "new", ConfirmPassword: "new"})
	assert.True(t, httperr.IsBusiness(err, "current_password_required"))

	_, err = s.UpdateProfile(ctx, by, ProfilePatch{CurrentPassword: "bad", NewPassword: "new", ConfirmPassword: "new"})
	assert.True(t, httperr.IsBusiness(err, "wrong_password"))

	_, err = s.UpdateProfile(ctx, by, ProfilePatch{CurrentPassword: "old", NewPassword: "new", ConfirmPassword: "nwe"})
	assert.True(t, httperr.IsBusiness(err, "password_mismatch"))

	_, err = s.UpdateProfile(ctx, by, ProfilePatch{CurrentPassword: "old", NewPassword: "new", ConfirmPassword: "new"})
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "ze", "new")
	assert.NoError(t, err)
}

func TestUpdateProfile_PropagatesToShop(t *testing.T) {
	ctx := context.Background()
	s, gdb := setup(t)
	u, shop := seedBarber(t, gdb, "ze", "pw")
	other, _ := seedBarber(t, gdb, "rui", "pw")

	name, phone, addr := "Navalha Nova", "1199", "Rua A, 1"
	got, err := s.UpdateProfile(ctx, barberActor(u), ProfilePatch{BusinessName: &name, Phone: &phone, Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Navalha Nova", got.BusinessName)

	var stored models.Barbershop
	require.NoError(t, gdb.First(&stored, shop.ID).Error)
	assert.Equal(t, "Navalha Nova", stored.Name)
	assert.Equal(t, "1199", stored.Phone)
	assert.Equal(t, "Rua A, 1", stored.Address)

	// another shop's name is taken
	taken := "Navalha Nova"
	_, err = s.UpdateProfile(ctx, barberActor(other), ProfilePatch{BusinessName: &taken})
	assert.True(t, httperr.IsBusiness(err, "name_taken"))

	dup := "ze"
	_, err = s.UpdateProfile(ctx, barberActor(other), ProfilePatch{Username: &dup})
	assert.True(t, httperr.IsBusiness(err, "username_taken"))
}

func TestAdminUpdateCredentials(t *testing.T) {
	ctx := context.Background()
	s, gdb := setup(t)
	_, shop := seedBarber(t, gdb, "ze", "pw")

	name, pw := "ze2", "fresh"
	u, err := s.AdminUpdateCredentials(ctx, shop.ID, &name, &pw)
	require.NoError(t, err)
	assert.Equal(t, "ze2", u.Username)

	_, err = s.Authenticate(ctx, "ze2", "fresh")
	assert.NoError(t, err)

	_, err = s.AdminUpdateCredentials(ctx, 999, &name, nil)
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestPublicClient_RefusesNonClientHolder(t *testing.T) {
	ctx := context.Background()
	s, gdb := setup(t)
	seedBarber(t, gdb, models.PublicClientUsername, "secret")

	_, err := s.PublicClient(ctx)
	assert.True(t, errors.Is(err, ErrPublicClientTaken), "got %v", err)
}

func TestReservedUsername(t *testing.T) {
	ctx := context.Background()
	s, gdb := setup(t)
	u, shop := seedBarber(t, gdb, "ze", "secret")

	for _, name := range []string{"Cliente", "cliente", " CLIENTE "} {
		_, err := s.UpdateProfile(ctx, barberActor(u), ProfilePatch{Username: &name})
		assert.True(t, httperr.IsBusiness(err, "username_taken"), "profile %q: %v", name, err)

		_, err = s.AdminUpdateCredentials(ctx, shop.ID, &name, nil)
		assert.True(t, httperr.IsBusiness(err, "username_taken"), "admin %q: %v", name, err)
	}

	_, err := s.EnsureAdmin(ctx, "cliente", "admin123")
	assert.Error(t, err)

	// The placeholder is still created as a client afterwards.
	pc, err := s.PublicClient(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, pc.Role)

	got, err := s.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ze", got.Username)
}
