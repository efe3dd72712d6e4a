package booking

import (
	"context"

	"github.com/massagehub/booking-api/internal/audit"
	domain "github.com/massagehub/booking-api/internal/domain/booking"
	"github.com/massagehub/booking-api/internal/httperr"
)

// DeleteShop removes a shop together with every appointment booked at it.
type DeleteShop struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteShop(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteShop {
	return &DeleteShop{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteShop) Execute(
	ctx context.Context,
	callerID uint,
	callerRole domain.Role,
	shopID uint,
) error {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return err
	}

	isOwner := shop.UserID != nil && *shop.UserID == callerID
	switch domain.DecideMutation(callerRole, isOwner, shop.UserID != nil) {
	case domain.Allow:
	case domain.DenyNoOwner:
		return httperr.ErrBusiness(httperr.CodeNoOwnerAssigned)
	default:
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if err := uc.repo.DeleteShopCascade(ctx, shop.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "shop_deleted",
		Entity:   "shop",
		EntityID: &shop.ID,
	})

	return nil
}
