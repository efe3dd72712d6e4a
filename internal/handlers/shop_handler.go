package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/massagehub/booking-api/internal/audit"
	"github.com/massagehub/booking-api/internal/config"
	domain "github.com/massagehub/booking-api/internal/domain/booking"
	"github.com/massagehub/booking-api/internal/httperr"
	"github.com/massagehub/booking-api/internal/httpresp"
	"github.com/massagehub/booking-api/internal/middleware"
	"github.com/massagehub/booking-api/internal/models"
	"github.com/massagehub/booking-api/internal/query"
	ucBooking "github.com/massagehub/booking-api/internal/usecase/booking"
	"github.com/massagehub/booking-api/internal/validators"
)

type ShopHandler struct {
	db         *gorm.DB
	config     *config.Config
	deleteShop *ucBooking.DeleteShop
	audit      *audit.Dispatcher
}

func NewShopHandler(
	db *gorm.DB,
	cfg *config.Config,
	deleteShop *ucBooking.DeleteShop,
	auditDispatcher *audit.Dispatcher,
) *ShopHandler {
	return &ShopHandler{
		db:         db,
		config:     cfg,
		deleteShop: deleteShop,
		audit:      auditDispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateShopRequest struct {
	Name      string `json:"name" binding:"required,max=50"`
	Address   string `json:"address" binding:"required"`
	Telephone string `json:"telephone" binding:"required"`
	OpenTime  string `json:"open_time" binding:"required"`
	CloseTime string `json:"close_time" binding:"required"`
}

// UpdateShopRequest is a partial patch; nil fields stay untouched.
type UpdateShopRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=50"`
	Address   *string `json:"address"`
	Telephone *string `json:"telephone"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
}

// Columns the public listing may filter, select and sort on.
var shopQueryColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"address":    true,
	"telephone":  true,
	"open_time":  true,
	"close_time": true,
	"created_at": true,
}

// ======================================================
// LIST (public)
// ======================================================

func (h *ShopHandler) List(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query(), shopQueryColumns)

	var total int64
	if err := opts.ApplyFilters(h.db.Model(&models.Shop{})).Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_shops", "Could not list shops.")
		return
	}

	var shops []models.Shop
	if err := opts.Apply(h.db.Model(&models.Shop{})).Find(&shops).Error; err != nil {
		httperr.Internal(c, "failed_to_list_shops", "Could not list shops.")
		return
	}

	pagination := &httpresp.Pagination{}
	if opts.HasNext(total) {
		pagination.Next = &httpresp.Page{Page: opts.Page + 1, Limit: opts.Limit}
	}
	if opts.HasPrev() {
		pagination.Prev = &httpresp.Page{Page: opts.Page - 1, Limit: opts.Limit}
	}

	httpresp.PagedList(c, shops, pagination)
}

// ======================================================
// GET (public)
// ======================================================

func (h *ShopHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reference", "Malformed shop id.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		httperr.NotFound(c, "not_found", "No shop found with that id.")
		return
	}

	httpresp.OK(c, shop)
}

// ======================================================
// CREATE
// ======================================================

func (h *ShopHandler) Create(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	if callerRole != domain.RoleAdmin && !h.config.ShopCreateOpen {
		httperr.Forbidden(c, "forbidden", "Only admins may create shops.")
		return
	}

	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_failed", err.Error())
		return
	}

	if !validators.IsTelephoneValid(req.Telephone) {
		httperr.BadRequest(c, "validation_failed", "Please add a valid telephone number.")
		return
	}
	if !validators.IsTimeOfDayValid(req.OpenTime) || !validators.IsTimeOfDayValid(req.CloseTime) {
		httperr.BadRequest(c, "validation_failed", "Opening hours must be HH:MM.")
		return
	}

	ownerID := callerID
	shop := models.Shop{
		Name:      req.Name,
		Address:   req.Address,
		Telephone: req.Telephone,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		UserID:    &ownerID,
	}

	if err := h.db.Create(&shop).Error; err != nil {
		httperr.BadRequest(c, "failed_to_create_shop", "Could not create shop; the name may already be taken.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "shop_created",
		Entity:   "shop",
		EntityID: &shop.ID,
	})

	httpresp.Created(c, shop)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ShopHandler) Update(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reference", "Malformed shop id.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		httperr.NotFound(c, "not_found", "No shop found with that id.")
		return
	}

	isOwner := shop.UserID != nil && *shop.UserID == callerID
	switch domain.DecideMutation(callerRole, isOwner, shop.UserID != nil) {
	case domain.Allow:
	case domain.DenyNoOwner:
		httperr.BadRequest(c, "no_owner_assigned", "This shop has no owner assigned.")
		return
	default:
		httperr.Forbidden(c, "forbidden", "Not authorized to update this shop.")
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_failed", err.Error())
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Telephone != nil {
		if !validators.IsTelephoneValid(*req.Telephone) {
			httperr.BadRequest(c, "validation_failed", "Please add a valid telephone number.")
			return
		}
		shop.Telephone = *req.Telephone
	}
	if req.OpenTime != nil {
		if !validators.IsTimeOfDayValid(*req.OpenTime) {
			httperr.BadRequest(c, "validation_failed", "Opening hours must be HH:MM.")
			return
		}
		shop.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if !validators.IsTimeOfDayValid(*req.CloseTime) {
			httperr.BadRequest(c, "validation_failed", "Opening hours must be HH:MM.")
			return
		}
		shop.CloseTime = *req.CloseTime
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not update shop.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "shop_updated",
		Entity:   "shop",
		EntityID: &shop.ID,
	})

	httpresp.OK(c, shop)
}

// ======================================================
// DELETE (cascades to appointments)
// ======================================================

func (h *ShopHandler) Delete(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reference", "Malformed shop id.")
		return
	}

	if err := h.deleteShop.Execute(c.Request.Context(), callerID, callerRole, id); err != nil {
		switch httperr.BusinessCode(err) {
		case httperr.CodeNotFound:
			httperr.NotFound(c, "not_found", "No shop found with that id.")
		case httperr.CodeNoOwnerAssigned:
			httperr.BadRequest(c, "no_owner_assigned", "This shop has no owner assigned.")
		case httperr.CodeForbidden:
			httperr.Forbidden(c, "forbidden", "Not authorized to delete this shop.")
		default:
			httperr.Internal(c, "failed_to_delete_shop", "Could not delete shop.")
		}
		return
	}

	httpresp.OK(c, gin.H{})
}

// ======================================================
// HELPERS
// ======================================================

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
