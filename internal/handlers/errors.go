// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/noodl/inventory/internal/i18n"
	"github.com/noodl/inventory/internal/services"
	"github.com/noodl/inventory/internal/utils"
)

// respondError maps a service error onto the response envelope. resource
// names the i18n prefix used when the error is a missing lookup of the
// handler's own resource; pass "" when the missing row may be another one.
func respondError(c *gin.Context, resource string, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrNotFound):
		if resource != "" {
			utils.NotFoundResponse(c, resource)
			return
		}
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidArgument):
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyStockInsufficient))
	case errors.Is(err, services.ErrInvalidState):
		utils.UnprocessableResponse(c, i18n.T(lang, i18n.KeyStockInvalidState))
	case errors.Is(err, services.ErrStorageDisabled):
		utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyReportStorageDisabled))
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		c.Error(err)
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes the request body, answering 400 itself on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

func parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationID, resource), nil)
		return uuid.Nil, false
	}
	return id, true
}
