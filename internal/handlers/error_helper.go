package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthify-app/healthify-api/internal/httperr"
)

// business codes that map to 404 instead of 400
var notFoundCodes = map[string]bool{
	"doctor_not_found": true,
}

// writeError maps store/usecase failures onto the HTTP taxonomy.
// Anything unrecognized becomes a generic 500 with the detail kept
// server-side.
func writeError(c *gin.Context, err error) {
	var ve httperr.ValidationError
	if errors.As(err, &ve) {
		httperr.BadRequest(c, "validation_error", ve.Message)
		return
	}

	var ce httperr.ConflictError
	if errors.As(err, &ce) {
		httperr.BadRequest(c, "duplicate_key", ce.Field+" already exists")
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		if notFoundCodes[be.Code] {
			httperr.NotFound(c, be.Code, be.Code)
			return
		}
		httperr.BadRequest(c, be.Code, be.Code)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "record not found")
		return
	}

	log.Printf("internal error: %v", err)
	httperr.Internal(c, "internal_error", "internal error")
}
