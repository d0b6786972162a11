package handlers

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/middleware"
	"github.com/healthify-app/healthify-api/internal/storage"
	"github.com/healthify-app/healthify-api/internal/store"
	ucDoctor "github.com/healthify-app/healthify-api/internal/usecase/doctor"
)

type DoctorHandler struct {
	submit *ucDoctor.SubmitRequest
	users  *store.UserStore
	photos storage.Storage
}

func NewDoctorHandler(
	submit *ucDoctor.SubmitRequest,
	users *store.UserStore,
	photos storage.Storage,
) *DoctorHandler {
	return &DoctorHandler{
		submit: submit,
		users:  users,
		photos: photos,
	}
}

type DoctorRequestForm struct {
	Specialization  string   `form:"specialization" binding:"required"`
	Experience      int      `form:"experience"`
	LicenseNumber   string   `form:"licenseNumber" binding:"required"`
	ClinicAddress   string   `form:"clinicAddress" binding:"required"`
	ClinicCity      string   `form:"clinicCity" binding:"required"`
	Availability    []string `form:"availability"`
	ConsultationFee float64  `form:"consultationFee"`

	ProfilePhoto *multipart.FileHeader `form:"profilePhoto"`
}

// SubmitRequest files a credential-approval request for the logged
// in patient.
func (h *DoctorHandler) SubmitRequest(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Unauthorized access")
		return
	}

	var form DoctorRequestForm
	if err := c.ShouldBind(&form); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	photoPath := ""
	if form.ProfilePhoto != nil {
		var err error
		photoPath, err = h.photos.Save(ctx, form.ProfilePhoto)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	d, err := h.submit.Execute(ctx, ucDoctor.SubmitRequestInput{
		UserID:          userID,
		Specialization:  form.Specialization,
		Experience:      form.Experience,
		LicenseNumber:   form.LicenseNumber,
		ClinicAddress:   form.ClinicAddress,
		ClinicCity:      form.ClinicCity,
		Availability:    form.Availability,
		ConsultationFee: form.ConsultationFee,
	})
	if err != nil {
		if photoPath != "" {
			if rmErr := h.photos.Remove(ctx, photoPath); rmErr != nil {
				log.Printf("failed to clean up photo %s: %v", photoPath, rmErr)
			}
		}
		writeError(c, err)
		return
	}

	if photoPath != "" {
		h.attachPhoto(ctx, userID, photoPath)
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":       "Doctor request submitted successfully. Waiting for admin approval.",
		"doctor_id": d.ID,
		"status":    d.Status,
	})
}

// attachPhoto points the user's profile photo at the uploaded file;
// the doctor request stands either way.
func (h *DoctorHandler) attachPhoto(ctx context.Context, userID uint, photoPath string) {
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		log.Printf("photo attach: user %d lookup failed: %v", userID, err)
		return
	}

	oldPhoto := user.ProfilePhoto
	user.ProfilePhoto = photoPath

	if err := h.users.Update(ctx, user); err != nil {
		log.Printf("photo attach: update for user %d failed: %v", userID, err)
		return
	}

	if oldPhoto != "" && oldPhoto != photoPath {
		if err := h.photos.Remove(ctx, oldPhoto); err != nil {
			log.Printf("failed to delete old photo %s: %v", oldPhoto, err)
		}
	}
}
