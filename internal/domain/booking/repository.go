package booking

import (
	"context"

	"github.com/massagehub/booking-api/internal/models"
)

type ListFilter struct {
	// UserID restricts the listing to one user's appointments. Zero means
	// no restriction.
	UserID uint
	// ShopID restricts the listing to one shop. Zero means no restriction.
	ShopID uint
}

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	// DeleteShopCascade removes the shop and every appointment referencing
	// it as one unit. Either both deletions happen or neither does.
	DeleteShopCascade(
		ctx context.Context,
		shopID uint,
	) error

	// -------- Appointment (create) --------

	// CreateAppointmentCapped inserts the appointment unless the owning
	// user already holds limit appointments (limit <= 0 disables the
	// check). The count and the insert are atomic with respect to
	// concurrent creates for the same user.
	CreateAppointmentCapped(
		ctx context.Context,
		ap *models.Appointment,
		limit int,
	) error

	// -------- Appointment (read) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
