package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/massagehub/booking-api/internal/audit"
	domain "github.com/massagehub/booking-api/internal/domain/booking"
	"github.com/massagehub/booking-api/internal/httperr"
	"github.com/massagehub/booking-api/internal/models"
)

// MockRepository is a mock implementation of booking.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetShopByID(ctx context.Context, id uint) (*models.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shop), args.Error(1)
}

func (m *MockRepository) DeleteShopCascade(ctx context.Context, shopID uint) error {
	args := m.Called(ctx, shopID)
	return args.Error(0)
}

func (m *MockRepository) CreateAppointmentCapped(ctx context.Context, ap *models.Appointment, limit int) error {
	args := m.Called(ctx, ap, limit)
	return args.Error(0)
}

func (m *MockRepository) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) DeleteAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func newTestDispatcher() *audit.Dispatcher {
	// nil dispatcher drops events; tests do not assert on the audit trail
	return nil
}

func testShop(id uint) *models.Shop {
	return &models.Shop{
		ID:        id,
		Name:      "Aroma Spa",
		Address:   "123 Sukhumvit Road",
		Telephone: "0812345678",
		OpenTime:  "10:00",
		CloseTime: "22:00",
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateAppointment_Success(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, newTestDispatcher())

	date := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	repo.On("GetShopByID", mock.Anything, uint(5)).Return(testShop(5), nil)
	repo.On("CreateAppointmentCapped", mock.Anything, mock.AnythingOfType("*models.Appointment"), 3).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Appointment).ID = 42
		}).
		Return(nil)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:   7,
		UserRole: domain.RoleUser,
		ShopID:   5,
		Date:     date,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(42), ap.ID)
	assert.Equal(t, uint(7), ap.UserID)
	assert.Equal(t, uint(5), ap.ShopID)
	assert.Equal(t, "booked", ap.Status)
	assert.Equal(t, date, ap.Date)
	assert.Equal(t, "Aroma Spa", ap.Shop.Name)
	repo.AssertExpectations(t)
}

func TestCreateAppointment_ShopNotFound(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, newTestDispatcher())

	repo.On("GetShopByID", mock.Anything, uint(99)).
		Return(nil, httperr.ErrBusiness(httperr.CodeNotFound))

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:   7,
		UserRole: domain.RoleUser,
		ShopID:   99,
		Date:     time.Now(),
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	repo.AssertNotCalled(t, "CreateAppointmentCapped", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAppointment_CapExceeded(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, newTestDispatcher())

	repo.On("GetShopByID", mock.Anything, uint(5)).Return(testShop(5), nil)
	repo.On("CreateAppointmentCapped", mock.Anything, mock.Anything, 3).
		Return(httperr.ErrBusiness(httperr.CodeCapExceeded))

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:   7,
		UserRole: domain.RoleUser,
		ShopID:   5,
		Date:     time.Now(),
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeCapExceeded))
	// observability: the caller id travels in the message
	assert.Contains(t, err.Error(), "user 7")
}

func TestCreateAppointment_AdminBypassesCap(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, newTestDispatcher())

	repo.On("GetShopByID", mock.Anything, uint(5)).Return(testShop(5), nil)
	repo.On("CreateAppointmentCapped", mock.Anything, mock.Anything, 0).Return(nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:   1,
		UserRole: domain.RoleAdmin,
		ShopID:   5,
		Date:     time.Now(),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdateAppointment_PartialPatchKeepsOmittedFields(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateAppointment(repo, newTestDispatcher())

	date := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	existing := &models.Appointment{
		ID:     42,
		UserID: 7,
		ShopID: 5,
		Date:   date,
		Status: "booked",
	}

	repo.On("GetAppointmentByID", mock.Anything, uint(42)).Return(existing, nil)
	repo.On("UpdateAppointment", mock.Anything, existing).Return(nil)

	status := "cancelled"
	ap, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		CallerID:      7,
		CallerRole:    domain.RoleUser,
		AppointmentID: 42,
		Status:        &status,
	})

	assert.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	assert.Equal(t, date, ap.Date)
	assert.Equal(t, uint(5), ap.ShopID)
	repo.AssertNotCalled(t, "GetShopByID", mock.Anything, mock.Anything)
}

func TestUpdateAppointment_RevalidatesNewShop(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateAppointment(repo, newTestDispatcher())

	existing := &models.Appointment{ID: 42, UserID: 7, ShopID: 5, Status: "booked"}
	repo.On("GetAppointmentByID", mock.Anything, uint(42)).Return(existing, nil)
	repo.On("GetShopByID", mock.Anything, uint(9)).
		Return(nil, httperr.ErrBusiness(httperr.CodeNotFound))

	newShop := uint(9)
	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		CallerID:      7,
		CallerRole:    domain.RoleUser,
		AppointmentID: 42,
		ShopID:        &newShop,
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	repo.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything)
}

func TestUpdateAppointment_ForbiddenForStranger(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateAppointment(repo, newTestDispatcher())

	existing := &models.Appointment{ID: 42, UserID: 7, ShopID: 5, Status: "booked"}
	repo.On("GetAppointmentByID", mock.Anything, uint(42)).Return(existing, nil)

	status := "cancelled"
	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		CallerID:      8,
		CallerRole:    domain.RoleUser,
		AppointmentID: 42,
		Status:        &status,
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

func TestUpdateAppointment_AdminMayPatchAnyones(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateAppointment(repo, newTestDispatcher())

	existing := &models.Appointment{ID: 42, UserID: 7, ShopID: 5, Status: "booked"}
	repo.On("GetAppointmentByID", mock.Anything, uint(42)).Return(existing, nil)
	repo.On("UpdateAppointment", mock.Anything, existing).Return(nil)

	status := "completed"
	ap, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		CallerID:      1,
		CallerRole:    domain.RoleAdmin,
		AppointmentID: 42,
		Status:        &status,
	})

	assert.NoError(t, err)
	assert.Equal(t, "completed", ap.Status)
}

func TestUpdateAppointment_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateAppointment(repo, newTestDispatcher())

	existing := &models.Appointment{ID: 42, UserID: 7, ShopID: 5, Status: "booked"}
	repo.On("GetAppointmentByID", mock.Anything, uint(42)).Return(existing, nil)

	status := "rescheduled"
	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		CallerID:      7,
		CallerRole:    domain.RoleUser,
		AppointmentID: 42,
		Status:        &status,
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}

// ======================================================
// DELETE
// ======================================================

func TestDeleteAppointment_NotFoundIsNotSilent(t *testing.T) {
	repo := new(MockRepository)
	uc := NewDeleteAppointment(repo, newTestDispatcher())

	repo.On("GetAppointmentByID", mock.Anything, uint(99)).
		Return(nil, httperr.ErrBusiness(httperr.CodeNotFound))

	err := uc.Execute(context.Background(), 7, domain.RoleUser, 99)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	repo.AssertNotCalled(t, "DeleteAppointment", mock.Anything, mock.Anything)
}

func TestDeleteAppointment_OwnerAllowed(t *testing.T) {
	repo := new(MockRepository)
	uc := NewDeleteAppointment(repo, newTestDispatcher())

	existing := &models.Appointment{ID: 42, UserID: 7}
	repo.On("GetAppointmentByID", mock.Anything, uint(42)).Return(existing, nil)
	repo.On("DeleteAppointment", mock.Anything, existing).Return(nil)

	assert.NoError(t, uc.Execute(context.Background(), 7, domain.RoleUser, 42))
	repo.AssertExpectations(t)
}

func TestDeleteAppointment_StaffForbidden(t *testing.T) {
	repo := new(MockRepository)
	uc := NewDeleteAppointment(repo, newTestDispatcher())

	existing := &models.Appointment{ID: 42, UserID: 7}
	repo.On("GetAppointmentByID", mock.Anything, uint(42)).Return(existing, nil)

	err := uc.Execute(context.Background(), 3, domain.RoleStaff, 42)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
	repo.AssertNotCalled(t, "DeleteAppointment", mock.Anything, mock.Anything)
}

// ======================================================
// DELETE SHOP (cascade)
// ======================================================

func TestDeleteShop_OwnerCascades(t *testing.T) {
	repo := new(MockRepository)
	uc := NewDeleteShop(repo, newTestDispatcher())

	owner := uint(7)
	shop := testShop(5)
	shop.UserID = &owner

	repo.On("GetShopByID", mock.Anything, uint(5)).Return(shop, nil)
	repo.On("DeleteShopCascade", mock.Anything, uint(5)).Return(nil)

	assert.NoError(t, uc.Execute(context.Background(), 7, domain.RoleUser, 5))
	repo.AssertExpectations(t)
}

func TestDeleteShop_ForeignOwnerForbidden(t *testing.T) {
	repo := new(MockRepository)
	uc := NewDeleteShop(repo, newTestDispatcher())

	owner := uint(7)
	shop := testShop(5)
	shop.UserID = &owner

	repo.On("GetShopByID", mock.Anything, uint(5)).Return(shop, nil)

	err := uc.Execute(context.Background(), 8, domain.RoleUser, 5)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
	repo.AssertNotCalled(t, "DeleteShopCascade", mock.Anything, mock.Anything)
}

func TestDeleteShop_NoOwnerDistinctSignal(t *testing.T) {
	repo := new(MockRepository)
	uc := NewDeleteShop(repo, newTestDispatcher())

	repo.On("GetShopByID", mock.Anything, uint(5)).Return(testShop(5), nil)

	err := uc.Execute(context.Background(), 8, domain.RoleUser, 5)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoOwnerAssigned))
}

func TestDeleteShop_AdminOverridesMissingOwner(t *testing.T) {
	repo := new(MockRepository)
	uc := NewDeleteShop(repo, newTestDispatcher())

	repo.On("GetShopByID", mock.Anything, uint(5)).Return(testShop(5), nil)
	repo.On("DeleteShopCascade", mock.Anything, uint(5)).Return(nil)

	assert.NoError(t, uc.Execute(context.Background(), 1, domain.RoleAdmin, 5))
}

// ======================================================
// LIST / GET
// ======================================================

func TestListAppointments_UserSeesOnlyOwn(t *testing.T) {
	repo := new(MockRepository)
	uc := NewListAppointments(repo)

	repo.On("ListAppointments", mock.Anything, domain.ListFilter{UserID: 7}).
		Return([]models.Appointment{{ID: 1, UserID: 7}}, nil)

	aps, err := uc.Execute(context.Background(), 7, domain.RoleUser, 5)

	assert.NoError(t, err)
	assert.Len(t, aps, 1)
	// the shop filter is an admin/staff feature and must be ignored here
	repo.AssertCalled(t, "ListAppointments", mock.Anything, domain.ListFilter{UserID: 7})
}

func TestListAppointments_StaffFiltersByShop(t *testing.T) {
	repo := new(MockRepository)
	uc := NewListAppointments(repo)

	repo.On("ListAppointments", mock.Anything, domain.ListFilter{ShopID: 5}).
		Return([]models.Appointment{}, nil)

	_, err := uc.Execute(context.Background(), 3, domain.RoleStaff, 5)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetAppointment_StrangerForbidden(t *testing.T) {
	repo := new(MockRepository)
	uc := NewGetAppointment(repo)

	repo.On("GetAppointmentByID", mock.Anything, uint(42)).
		Return(&models.Appointment{ID: 42, UserID: 7}, nil)

	_, err := uc.Execute(context.Background(), 8, domain.RoleUser, 42)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

func TestGetAppointment_StaffSeesAll(t *testing.T) {
	repo := new(MockRepository)
	uc := NewGetAppointment(repo)

	repo.On("GetAppointmentByID", mock.Anything, uint(42)).
		Return(&models.Appointment{ID: 42, UserID: 7}, nil)

	ap, err := uc.Execute(context.Background(), 3, domain.RoleStaff, 42)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), ap.ID)
}
