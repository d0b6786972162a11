package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthify-app/healthify-api/internal/dto"
	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/httpresp"
	"github.com/healthify-app/healthify-api/internal/middleware"
	ucDoctor "github.com/healthify-app/healthify-api/internal/usecase/doctor"
)

type AdminHandler struct {
	listPending *ucDoctor.ListPending
	decide      *ucDoctor.Decide
}

func NewAdminHandler(
	listPending *ucDoctor.ListPending,
	decide *ucDoctor.Decide,
) *AdminHandler {
	return &AdminHandler{
		listPending: listPending,
		decide:      decide,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	doctors, err := h.listPending.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.PendingDoctor, 0, len(doctors))
	for i := range doctors {
		out = append(out, dto.NewPendingDoctor(&doctors[i]))
	}

	httpresp.List(c, out)
}

// UpdateStatus rules on a pending doctor request; approval promotes
// the linked user in the same transaction.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	adminID, _, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Unauthorized access")
		return
	}

	doctorID, err := strconv.ParseUint(c.Param("doctorId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	d, err := h.decide.Execute(c.Request.Context(), adminID, uint(doctorID), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg": "Doctor request " + d.Status + " successfully.",
	})
}
