package scheduling

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/timegrid"
	"github.com/clinicdesk/clinicdesk/pkg/pagination"
)

// Handler exposes the scheduling engine over HTTP. It is the Go rendition
// of the dashboard's form/dialog layer: drafts and patches come in as JSON,
// grid and availability queries go out as JSON.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/calendar/slots", h.ListSlots)
	api.GET("/calendar/week", h.GetWeek)
	api.GET("/calendar/grid", h.GetGrid)
	api.GET("/calendar/availability", h.GetAvailability)

	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PUT("/appointments/:id", h.UpdateAppointment)
	api.DELETE("/appointments/:id", h.DeleteAppointment)

	api.POST("/bookings", h.RequestBooking)
	api.POST("/appointments/:id/edit", h.RequestEdit)
	api.GET("/session/dialog", h.GetDialog)
	api.POST("/session/dialog/cancel", h.CancelDialog)
	api.PUT("/session/filter", h.SetFilter)
}

func isValidationErr(err error) bool {
	return errors.Is(err, ErrMissingPatient) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidDuration)
}

func parseDay(value string) (time.Time, error) {
	return time.Parse(timegrid.DateFormat, value)
}

// -- Calendar --

// ListSlots handles GET /calendar/slots.
func (h *Handler) ListSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Slots())
}

// GetWeek handles GET /calendar/week. An anchor query parameter moves the
// session to that week; a delta parameter navigates relative to it.
func (h *Handler) GetWeek(c echo.Context) error {
	if anchorStr := c.QueryParam("anchor"); anchorStr != "" {
		anchor, err := parseDay(anchorStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid anchor date, want YYYY-MM-DD")
		}
		h.svc.SetAnchor(anchor)
	}

	week := h.svc.Week()
	if deltaStr := c.QueryParam("delta"); deltaStr != "" {
		delta, err := strconv.Atoi(deltaStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid delta")
		}
		week = h.svc.ShiftWeek(delta)
	}

	days := make([]string, 0, len(week))
	for _, d := range week {
		days = append(days, d.Format(timegrid.DateFormat))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"anchor": h.svc.Anchor().Format(timegrid.DateFormat),
		"days":   days,
	})
}

// GetGrid handles GET /calendar/grid.
func (h *Handler) GetGrid(c echo.Context) error {
	if anchorStr := c.QueryParam("anchor"); anchorStr != "" {
		anchor, err := parseDay(anchorStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid anchor date, want YYYY-MM-DD")
		}
		h.svc.SetAnchor(anchor)
	}
	if filterStr := c.QueryParam("filter"); filterStr != "" {
		if err := h.svc.SetFilter(Filter(filterStr)); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"filter": h.svc.ActiveFilter(),
		"days":   h.svc.Grid(),
	})
}

// GetAvailability handles GET /calendar/availability.
func (h *Handler) GetAvailability(c echo.Context) error {
	day, err := parseDay(c.QueryParam("day"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "day query parameter is required, want YYYY-MM-DD")
	}
	slot := c.QueryParam("time")
	if slot == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "time query parameter is required")
	}
	return c.JSON(http.StatusOK, map[string]bool{
		"available": h.svc.CanBookNewAt(day, slot),
	})
}

// -- Appointments --

// ListAppointments handles GET /appointments. A filter parameter narrows by
// type for display; the underlying collection is untouched.
func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	appts := h.svc.Store().List()

	if filterStr := c.QueryParam("filter"); filterStr != "" {
		filter := Filter(filterStr)
		if !filter.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown filter")
		}
		visible := make([]Appointment, 0, len(appts))
		for _, a := range appts {
			if filter.Matches(a.Type) {
				visible = append(visible, a)
			}
		}
		appts = visible
	}

	total := len(appts)
	start := pg.Offset
	if start > total {
		start = total
	}
	end := start + pg.Limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(appts[start:end], total, pg.Limit, pg.Offset))
}

// CreateAppointment handles POST /appointments.
func (h *Handler) CreateAppointment(c echo.Context) error {
	var draft Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appt, err := h.svc.ConfirmNewBooking(draft)
	if err != nil {
		if isValidationErr(err) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, appt)
}

// GetAppointment handles GET /appointments/:id.
func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	appt, err := h.svc.Store().Get(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, appt)
}

// UpdateAppointment handles PUT /appointments/:id.
func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var patch Patch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appt, err := h.svc.ConfirmEdit(id, patch)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		if isValidationErr(err) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, appt)
}

// DeleteAppointment handles DELETE /appointments/:id.
func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.ConfirmDelete(id); err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Booking flow --

// bookingRequest is the slot-click payload.
type bookingRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,slot_time"`
}

// RequestBooking handles POST /bookings. Clicking an occupied slot is not
// an error: the response reports opened=false and nothing else happens.
func (h *Handler) RequestBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	day, err := parseDay(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}

	opened, err := h.svc.RequestNewBooking(day, req.Time)
	if err != nil {
		if errors.Is(err, ErrDialogBusy) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"opened": opened,
		"dialog": h.svc.OpenDialog(),
	})
}

// RequestEdit handles POST /appointments/:id/edit, the appointment-click
// path that opens an edit dialog prefilled with the full record.
func (h *Handler) RequestEdit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dialog, err := h.svc.RequestEdit(id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		if errors.Is(err, ErrDialogBusy) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dialog)
}

// GetDialog handles GET /session/dialog.
func (h *Handler) GetDialog(c echo.Context) error {
	dialog := h.svc.OpenDialog()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"open":   dialog != nil,
		"dialog": dialog,
	})
}

// CancelDialog handles POST /session/dialog/cancel.
func (h *Handler) CancelDialog(c echo.Context) error {
	if err := h.svc.CancelDialog(); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// setFilterRequest is the filter-change payload.
type setFilterRequest struct {
	Filter string `json:"filter" validate:"required"`
}

// SetFilter handles PUT /session/filter.
func (h *Handler) SetFilter(c echo.Context) error {
	var req setFilterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetFilter(Filter(req.Filter)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"filter": req.Filter})
}
