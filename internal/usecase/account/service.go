package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/account"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/logger"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Service struct {
	users account.Repository
	shops barbershop.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewService(
	users account.Repository,
	shops barbershop.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Service {
	return &Service{users: users, shops: shops, audit: audit, log: logger.OrNop(log)}
}

// ErrPublicClientTaken means the public client's username is held by a
// real account; anonymous bookings are refused until that is resolved.
var ErrPublicClientTaken = errors.New("account: public client username taken")

func hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return httperr.ErrBusiness("not_found")
	}
	return err
}

// ======================================================
// LOOKUP
// ======================================================

func (s *Service) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	return u, notFound(err)
}

// Authenticate never tells an unknown username from a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}
	return u, nil
}

// ======================================================
// WELL-KNOWN USERS
// ======================================================

// PublicClient returns the placeholder requester of anonymous bookings,
// creating it on first use. Its password is random and never handed out.
// A row under the reserved name with any other role is refused.
func (s *Service) PublicClient(ctx context.Context) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, models.PublicClientUsername)
	if errors.Is(err, repository.ErrNotFound) {
		h, herr := hash(uuid.NewString())
		if herr != nil {
			return nil, herr
		}
		u, err = s.users.CreateIfAbsent(ctx, &models.User{
			Username:     models.PublicClientUsername,
			PasswordHash: h,
			Role:         models.RoleClient,
		})
	}
	if err != nil {
		return nil, err
	}

	if u.Role != models.RoleClient {
		return nil, fmt.Errorf("%w: %q belongs to a %s", ErrPublicClientTaken, u.Username, u.Role)
	}
	return u, nil
}

// EnsureAdmin creates the bootstrap admin once. An empty password skips it.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		s.log.Warn("admin bootstrap skipped: ADMIN_USERNAME or ADMIN_PASSWORD empty")
		return nil, nil
	}
	if models.IsReservedUsername(username) {
		return nil, fmt.Errorf("admin bootstrap: %q is reserved for the public client", username)
	}

	h, err := hash(password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.CreateIfAbsent(ctx, &models.User{
		Username:     username,
		PasswordHash: h,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleAdmin {
		return nil, fmt.Errorf("admin bootstrap: username %q belongs to a %s", username, u.Role)
	}
	return u, nil
}

// ======================================================
// PROFILE
// ======================================================

// ProfilePatch: nil fields stay unchanged. A password change needs the
// current password and a matching confirmation.
type ProfilePatch struct {
	Username     *string
	BusinessName *string
	Phone        *string
	Address      *string

	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// UpdateProfile edits the actor's own user. Business name, phone and
// address of a barber are copied to their barbershop.
func (s *Service) UpdateProfile(ctx context.Context, by actor.Actor, p ProfilePatch) (*models.User, error) {
	u, err := s.Get(ctx, by.UserID)
	if err != nil {
		return nil, err
	}

	if p.Username != nil {
		name := strings.TrimSpace(*p.Username)
		if name != u.Username {
			if models.IsReservedUsername(name) {
				return nil, httperr.ErrBusiness("username_taken")
			}
			_, err := s.users.GetByUsername(ctx, name)
			if err == nil {
				return nil, httperr.ErrBusiness("username_taken")
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
		u.Username = name
	}
	if p.BusinessName != nil {
		u.BusinessName = strings.TrimSpace(*p.BusinessName)
	}
	if p.Phone != nil {
		u.Phone = strings.TrimSpace(*p.Phone)
	}

	if p.NewPassword != "" {
		if p.CurrentPassword == "" {
			return nil, httperr.ErrBusiness("current_password_required")
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(p.CurrentPassword)) != nil {
			return nil, httperr.ErrBusiness("wrong_password")
		}
		if p.NewPassword != p.ConfirmPassword {
			return nil, httperr.ErrBusiness("password_mismatch")
		}
		if u.PasswordHash, err = hash(p.NewPassword); err != nil {
			return nil, err
		}
	}

	if shopID, ok := by.BarbershopID.Get(); ok && by.IsBarber() {
		if err := s.propagateToShop(ctx, shopID, p); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BarbershopID: by.ShopRef(),
		UserID:       audit.U(u.ID),
		Action:       audit.ActionProfileUpdated,
		Entity:       "user",
		EntityID:     audit.U(u.ID),
	})
	return u, nil
}

func (s *Service) propagateToShop(ctx context.Context, shopID uint, p ProfilePatch) error {
	if p.BusinessName == nil && p.Phone == nil && p.Address == nil {
		return nil
	}

	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return notFound(err)
	}

	if p.BusinessName != nil {
		name := strings.TrimSpace(*p.BusinessName)
		if name != shop.Name {
			taken, err := s.shops.ExistsByName(ctx, name)
			if err != nil {
				return err
			}
			if taken {
				return httperr.ErrBusiness("name_taken")
			}
		}
		shop.Name = name
	}
	if p.Phone != nil {
		shop.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		shop.Address = strings.TrimSpace(*p.Address)
	}

	return s.shops.Update(ctx, shop)
}

func (s *Service) save(ctx context.Context, u *models.User) error {
	err := s.users.Update(ctx, u)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return httperr.ErrBusiness("username_taken")
	}
	return err
}

// ======================================================
// ADMIN
// ======================================================

// AdminUpdateCredentials resets the login of a barbershop's main barber.
func (s *Service) AdminUpdateCredentials(
	ctx context.Context,
	shopID uint,
	username *string,
	password *string,
) (*models.User, error) {

	u, err := s.users.MainBarber(ctx, shopID)
	if err != nil {
		return nil, notFound(err)
	}

	if username != nil && strings.TrimSpace(*username) != "" {
		if models.IsReservedUsername(*username) {
			return nil, httperr.ErrBusiness("username_taken")
		}
		u.Username = strings.TrimSpace(*username)
	}
	if password != nil && *password != "" {
		if u.PasswordHash, err = hash(*password); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
