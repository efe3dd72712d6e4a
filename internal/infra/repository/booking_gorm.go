package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/massagehub/booking-api/internal/domain/booking"
	"github.com/massagehub/booking-api/internal/httperr"
	"github.com/massagehub/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *BookingGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) DeleteShopCascade(
	ctx context.Context,
	shopID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("shop_id = ?", shopID).
			Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Shop{}, shopID).Error
	})
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointmentCapped(
	ctx context.Context,
	ap *models.Appointment,
	limit int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Serialize concurrent creates for the same user on the user row.
		// Locking the appointment rows themselves would not block a
		// competing insert (and locks nothing at zero rows), so a row
		// committed after this transaction's snapshot could slip past the
		// count. Once the user-row lock is granted the count runs as a
		// fresh statement and sees every committed appointment.
		var owner models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&owner, ap.UserID).Error; err != nil {
			return err
		}

		if limit > 0 {
			var count int64
			if err := tx.
				Model(&models.Appointment{}).
				Where("user_id = ?", ap.UserID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(limit) {
				return httperr.ErrBusiness(httperr.CodeCapExceeded)
			}
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Shop", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "address", "telephone")
		}).
		Order("date ASC")

	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ShopID != 0 {
		q = q.Where("shop_id = ?", f.ShopID)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(ap).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
