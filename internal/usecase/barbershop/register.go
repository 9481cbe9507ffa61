package barbershop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/account"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/logger"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterBarbershopInput struct {
	Name    string
	Phone   string
	Address string

	Username string
	Password string
}

type RegisterBarbershopOutput struct {
	Barbershop *models.Barbershop
	Owner      *models.User
}

// ======================================================
// USE CASE
// ======================================================

type RegisterBarbershop struct {
	shops domain.Repository
	users account.Repository
	clock clock.Clock
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewRegisterBarbershop(
	shops domain.Repository,
	users account.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *RegisterBarbershop {
	return &RegisterBarbershop{
		shops: shops,
		users: users,
		clock: clk,
		audit: audit,
		log:   logger.OrNop(log),
	}
}

// Execute creates a barbershop with its first barber. Name, shop phone,
// barber phone and username must be unused; the slug is derived from the
// name and made unique.
func (uc *RegisterBarbershop) Execute(
	ctx context.Context,
	in RegisterBarbershopInput,
) (*RegisterBarbershopOutput, error) {

	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Username = strings.TrimSpace(in.Username)

	// --------------------------------------------------
	// 1. Uniqueness
	// --------------------------------------------------
	if taken, err := uc.shops.ExistsByName(ctx, in.Name); err != nil {
		return nil, err
	} else if taken {
		return nil, httperr.ErrBusiness("name_taken")
	}

	if in.Phone != "" {
		if taken, err := uc.shops.ExistsByPhone(ctx, in.Phone); err != nil {
			return nil, err
		} else if taken {
			return nil, httperr.ErrBusiness("phone_taken")
		}
		if taken, err := uc.users.ExistsBarberWithPhone(ctx, in.Phone); err != nil {
			return nil, err
		} else if taken {
			return nil, httperr.ErrBusiness("phone_taken")
		}
	}

	if models.IsReservedUsername(in.Username) {
		return nil, httperr.ErrBusiness("username_taken")
	}
	if taken, err := uc.usernameTaken(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, httperr.ErrBusiness("username_taken")
	}

	slug, err := uc.uniqueSlug(ctx, Slugify(in.Name))
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Create
	// --------------------------------------------------
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	shop := &models.Barbershop{
		Name:    in.Name,
		Slug:    slug,
		Phone:   in.Phone,
		Address: strings.TrimSpace(in.Address),
		Active:  true,
	}
	owner := &models.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         models.RoleBarber,
		BusinessName: in.Name,
		Phone:        in.Phone,
	}

	if err := uc.shops.CreateWithOwner(ctx, shop, owner); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race against a concurrent registration
			if taken, _ := uc.usernameTaken(ctx, in.Username); taken {
				return nil, httperr.ErrBusiness("username_taken")
			}
			return nil, httperr.ErrBusiness("slug_taken")
		}
		return nil, fmt.Errorf("create barbershop: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.U(shop.ID),
		UserID:       audit.U(owner.ID),
		Action:       audit.ActionShopRegistered,
		Entity:       "barbershop",
		EntityID:     audit.U(shop.ID),
		Metadata:     map[string]any{"slug": shop.Slug},
	})
	uc.log.Info("barbershop registered",
		zap.Uint("barbershop_id", shop.ID),
		zap.String("slug", shop.Slug),
	)

	return &RegisterBarbershopOutput{Barbershop: shop, Owner: owner}, nil
}

func (uc *RegisterBarbershop) usernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := uc.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// uniqueSlug tries base, then base-<unix time>, then base-<unix time>-N.
func (uc *RegisterBarbershop) uniqueSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	stamped := fmt.Sprintf("%s-%d", base, uc.clock.Now().Unix())

	for n := 0; ; n++ {
		switch {
		case n == 1:
			candidate = stamped
		case n > 1:
			candidate = fmt.Sprintf("%s-%d", stamped, n)
		}

		taken, err := uc.shops.ExistsBySlug(ctx, candidate, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
