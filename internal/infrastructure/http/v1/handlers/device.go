package handlers

import (
	"github.com/gin-gonic/gin"

	"devinventory/internal/core/apperror"
	"devinventory/internal/domain/device"
	"devinventory/internal/infrastructure/http/v1/dto"
)

// DeviceHandler handles the device inventory endpoints.
type DeviceHandler struct {
	*BaseHandler
	service *device.Service
}

// NewDeviceHandler creates a new device handler.
func NewDeviceHandler(base *BaseHandler, service *device.Service) *DeviceHandler {
	return &DeviceHandler{BaseHandler: base, service: service}
}

// List handles GET /devices.
func (h *DeviceHandler) List(c *gin.Context) {
	var q dto.DeviceListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.DeviceResponse, len(result.Items))
	for i, d := range result.Items {
		items[i] = dto.FromDevice(d)
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /devices/:id.
func (h *DeviceHandler) Get(c *gin.Context) {
	deviceID, ok := h.ParseID(c)
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), deviceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDevice(d))
}

// GetByKodeID handles GET /devices/by-code/:kodeId.
func (h *DeviceHandler) GetByKodeID(c *gin.Context) {
	d, err := h.service.GetByKodeID(c.Request.Context(), c.Param("kodeId"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDevice(d))
}

// Create handles POST /devices. The response carries the allocated kode ID.
func (h *DeviceHandler) Create(c *gin.Context) {
	var req dto.CreateDeviceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), d); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromDevice(d))
}

// Update handles PUT /devices/:id.
func (h *DeviceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	deviceID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateDeviceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, deviceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated := req.ApplyTo(existing)
	if err := h.service.Update(ctx, updated); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDevice(updated))
}

// Delete handles DELETE /devices/:id.
func (h *DeviceHandler) Delete(c *gin.Context) {
	deviceID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), deviceID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// History handles GET /devices/:id/history.
func (h *DeviceHandler) History(c *gin.Context) {
	deviceID, ok := h.ParseID(c)
	if !ok {
		return
	}

	entries, err := h.service.History(c.Request.Context(), deviceID, h.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = dto.FromAuditEntry(e)
	}
	h.OK(c, gin.H{"items": items})
}

// NextCode handles GET /devices/next-code?kodeItem=07&tanggalBeli=2024-03-01.
// Nothing is reserved: the number shown may be taken before the form is saved.
func (h *DeviceHandler) NextCode(c *gin.Context) {
	raw := c.Query("tanggalBeli")
	if raw == "" {
		h.Error(c, apperror.NewValidation("tanggalBeli is required").WithDetail("field", "tanggalBeli"))
		return
	}
	date, err := dto.ParseDate(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()).WithDetail("field", "tanggalBeli"))
		return
	}

	alloc, err := h.service.PreviewKodeID(c.Request.Context(), c.Query("kodeItem"), date.Time)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAllocation(alloc))
}

// Values handles GET /devices/values/:field (filter dropdowns and autocomplete).
func (h *DeviceHandler) Values(c *gin.Context) {
	values, err := h.service.UniqueValues(c.Request.Context(), c.Param("field"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": values})
}

// Summary handles GET /devices/summary.
func (h *DeviceHandler) Summary(c *gin.Context) {
	var q dto.DeviceListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSummary(summary))
}
