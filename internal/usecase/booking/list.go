package booking

import (
	"context"

	domain "github.com/massagehub/booking-api/internal/domain/booking"
	"github.com/massagehub/booking-api/internal/httperr"
	"github.com/massagehub/booking-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns all appointments for admin and staff callers (optionally
// narrowed to one shop) and only the caller's own for everyone else.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	callerID uint,
	callerRole domain.Role,
	shopID uint,
) ([]models.Appointment, error) {

	f := domain.ListFilter{}

	if domain.CanSeeAllAppointments(callerRole) {
		f.ShopID = shopID
	} else {
		f.UserID = callerID
	}

	return uc.repo.ListAppointments(ctx, f)
}

// GetAppointment resolves one appointment and applies the same visibility
// rule as the listing.
type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	callerID uint,
	callerRole domain.Role,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !domain.CanSeeAllAppointments(callerRole) && ap.UserID != callerID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	return ap, nil
}
