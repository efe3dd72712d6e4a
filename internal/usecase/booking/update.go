package booking

import (
	"context"
	"time"

	"github.com/massagehub/booking-api/internal/audit"
	domain "github.com/massagehub/booking-api/internal/domain/booking"
	"github.com/massagehub/booking-api/internal/httperr"
	"github.com/massagehub/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateAppointmentInput is a partial patch. Nil fields keep their prior
// values.
type UpdateAppointmentInput struct {
	CallerID   uint
	CallerRole domain.Role

	AppointmentID uint

	ShopID *uint
	Date   *time.Time
	Status *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	decision := domain.DecideMutation(
		in.CallerRole,
		ap.UserID == in.CallerID,
		true,
	)
	if decision != domain.Allow {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if in.ShopID != nil {
		shop, err := uc.repo.GetShopByID(ctx, *in.ShopID)
		if err != nil {
			return nil, err
		}
		ap.ShopID = shop.ID
		ap.Shop = *shop
	}

	if in.Date != nil {
		ap.Date = *in.Date
	}

	if in.Status != nil {
		if !domain.Status(*in.Status).Valid() {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus)
		}
		ap.Status = *in.Status
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CallerID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
