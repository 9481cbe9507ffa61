package barbershop

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/media"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/storage"
)

type UploadLogo struct {
	shops *Service
	store storage.ObjectStore
}

// NewUploadLogo accepts a nil store; uploads then fail with
// storage_unavailable.
func NewUploadLogo(shops *Service, store storage.ObjectStore) *UploadLogo {
	return &UploadLogo{shops: shops, store: store}
}

func (uc *UploadLogo) Execute(
	ctx context.Context,
	by actor.Actor,
	shopID uint,
	image io.Reader,
) (*models.Barbershop, error) {

	if uc.store == nil {
		return nil, httperr.ErrBusiness("storage_unavailable")
	}

	shop, err := uc.shops.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}

	body, err := media.ToWebP(image, media.MaxLogoSide)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("logos/%d/%s.webp", shop.ID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, media.ContentType, body)
	if err != nil {
		return nil, err
	}

	shop.LogoURL = url
	if err := uc.shops.repo.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("save logo url: %w", err)
	}

	uc.shops.audit.Dispatch(audit.Event{
		BarbershopID: audit.U(shop.ID),
		UserID:       by.UserRef(),
		Action:       audit.ActionLogoUploaded,
		Entity:       "barbershop",
		EntityID:     audit.U(shop.ID),
		Metadata:     map[string]any{"url": url, "bytes": len(body)},
	})
	return shop, nil
}
