package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/massagehub/booking-api/internal/domain/booking"
	"github.com/massagehub/booking-api/internal/httperr"
	"github.com/massagehub/booking-api/internal/httpresp"
	"github.com/massagehub/booking-api/internal/middleware"
	ucBooking "github.com/massagehub/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucBooking.CreateAppointment
	updateUC *ucBooking.UpdateAppointment
	deleteUC *ucBooking.DeleteAppointment
	listUC   *ucBooking.ListAppointments
	getUC    *ucBooking.GetAppointment
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateAppointment,
	updateUC *ucBooking.UpdateAppointment,
	deleteUC *ucBooking.DeleteAppointment,
	listUC *ucBooking.ListAppointments,
	getUC *ucBooking.GetAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
		getUC:    getUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// The shop reference arrives as a string so a malformed id can be told
// apart from an absent one; the nested route supplies it via the path.
type CreateAppointmentRequest struct {
	Shop *string   `json:"shop"`
	Date time.Time `json:"date" binding:"required"`
}

type UpdateAppointmentRequest struct {
	Shop   *string    `json:"shop"`
	Date   *time.Time `json:"date"`
	Status *string    `json:"status"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	var shopID uint
	if raw := c.Query("shop"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_reference", "Malformed shop id.")
			return
		}
		shopID = id
	}

	aps, err := h.listUC.Execute(c.Request.Context(), callerID, callerRole, shopID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reference", "Malformed appointment id.")
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), callerID, callerRole, id)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case httperr.CodeNotFound:
			httperr.NotFound(c, "not_found", "No appointment found with that id.")
		case httperr.CodeForbidden:
			httperr.Forbidden(c, "forbidden", "Not authorized to view this appointment.")
		default:
			httperr.Internal(c, "failed_to_get_appointment", "Could not fetch appointment.")
		}
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_failed", err.Error())
		return
	}

	var shopID uint
	if raw := c.Param("id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_reference", "Malformed shop id.")
			return
		}
		shopID = id
	} else if req.Shop != nil {
		id, err := parseID(*req.Shop)
		if err != nil {
			httperr.BadRequest(c, "invalid_reference", "Malformed shop id.")
			return
		}
		shopID = id
	}
	if shopID == 0 {
		httperr.BadRequest(c, "invalid_reference", "A shop reference is required.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		UserID:   callerID,
		UserRole: callerRole,
		ShopID:   shopID,
		Date:     req.Date,
	})
	if err != nil {
		switch httperr.BusinessCode(err) {
		case httperr.CodeNotFound:
			httperr.NotFound(c, "not_found", "No shop found with that id.")
		case httperr.CodeCapExceeded:
			httperr.BadRequest(c, "cap_exceeded", err.Error())
		default:
			httperr.Internal(c, "failed_to_create_appointment", "Could not create appointment.")
		}
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE (partial)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reference", "Malformed appointment id.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_failed", err.Error())
		return
	}

	in := ucBooking.UpdateAppointmentInput{
		CallerID:      callerID,
		CallerRole:    callerRole,
		AppointmentID: id,
		Date:          req.Date,
		Status:        req.Status,
	}

	// The shop reference arrives as a string so a malformed id can be told
	// apart from an absent one.
	if req.Shop != nil {
		shopID, err := parseID(*req.Shop)
		if err != nil {
			httperr.BadRequest(c, "invalid_reference", "Malformed shop id.")
			return
		}
		in.ShopID = &shopID
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case httperr.CodeNotFound:
			httperr.NotFound(c, "not_found", "Appointment or shop not found.")
		case httperr.CodeForbidden:
			httperr.Forbidden(c, "forbidden", "Not authorized to update this appointment.")
		case httperr.CodeInvalidStatus:
			httperr.BadRequest(c, "validation_failed", "Status must be booked, completed or cancelled.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Could not update appointment.")
		}
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	callerRole := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reference", "Malformed appointment id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), callerID, callerRole, id); err != nil {
		switch httperr.BusinessCode(err) {
		case httperr.CodeNotFound:
			httperr.NotFound(c, "not_found", "No appointment found with that id.")
		case httperr.CodeForbidden:
			httperr.Forbidden(c, "forbidden", "Not authorized to delete this appointment.")
		default:
			httperr.Internal(c, "failed_to_delete_appointment", "Could not delete appointment.")
		}
		return
	}

	httpresp.OK(c, gin.H{})
}
