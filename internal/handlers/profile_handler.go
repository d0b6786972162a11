package handlers

import (
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthify-app/healthify-api/internal/audit"
	"github.com/healthify-app/healthify-api/internal/dto"
	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/middleware"
	"github.com/healthify-app/healthify-api/internal/storage"
	"github.com/healthify-app/healthify-api/internal/store"
)

type ProfileHandler struct {
	users  *store.UserStore
	photos storage.Storage
	audit  *audit.Dispatcher
}

func NewProfileHandler(
	users *store.UserStore,
	photos storage.Storage,
	auditor *audit.Dispatcher,
) *ProfileHandler {
	return &ProfileHandler{
		users:  users,
		photos: photos,
		audit:  auditor,
	}
}

type UpdateProfileRequest struct {
	Name    string `form:"name"`
	Phone   string `form:"phone"`
	Address string `form:"address"`
	City    string `form:"city"`
	State   string `form:"state"`
	Gender  string `form:"gender"`

	ProfilePhoto *multipart.FileHeader `form:"profilePhoto"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Unauthorized access")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserSummary(user)})
}

// UpdateProfile applies the submitted fields and, when a photo is
// attached, commits the new file before the old one is unlinked.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Unauthorized access")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.State != "" {
		user.State = req.State
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}

	oldPhoto := user.ProfilePhoto
	newPhoto := ""

	if req.ProfilePhoto != nil {
		newPhoto, err = h.photos.Save(ctx, req.ProfilePhoto)
		if err != nil {
			writeError(c, err)
			return
		}
		user.ProfilePhoto = newPhoto
	}

	if err := h.users.Update(ctx, user); err != nil {
		// the DB never referenced the new file, drop it again
		if newPhoto != "" {
			if rmErr := h.photos.Remove(ctx, newPhoto); rmErr != nil {
				log.Printf("failed to clean up photo %s: %v", newPhoto, rmErr)
			}
		}
		writeError(c, err)
		return
	}

	// old photo only goes away once the new reference is durable
	if newPhoto != "" && oldPhoto != "" && oldPhoto != newPhoto {
		if err := h.photos.Remove(ctx, oldPhoto); err != nil {
			log.Printf("failed to delete old photo %s: %v", oldPhoto, err)
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "profile_updated",
		Entity: "user",
	})

	c.JSON(http.StatusOK, gin.H{
		"msg":  "Profile updated successfully",
		"user": dto.NewUserSummary(user),
	})
}
