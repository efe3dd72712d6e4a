package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/massagehub/booking-api/internal/audit"
	domain "github.com/massagehub/booking-api/internal/domain/booking"
	"github.com/massagehub/booking-api/internal/httperr"
	"github.com/massagehub/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID   uint
	UserRole domain.Role

	ShopID uint
	Date   time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID: in.UserID,
		ShopID: shop.ID,
		Date:   in.Date,
		Status: string(domain.InitialStatus()),
	}

	// Admins book past the cap; everyone else hits the capped insert,
	// which counts and creates atomically.
	capLimit := domain.MaxActiveAppointments
	if domain.ExemptFromCap(in.UserRole) {
		capLimit = 0
	}

	if err := uc.repo.CreateAppointmentCapped(ctx, ap, capLimit); err != nil {
		if httperr.IsBusiness(err, httperr.CodeCapExceeded) {
			return nil, httperr.ErrBusinessf(
				httperr.CodeCapExceeded,
				fmt.Sprintf("user %d has already made %d appointments", in.UserID, domain.MaxActiveAppointments),
			)
		}
		return nil, err
	}

	ap.Shop = *shop

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
