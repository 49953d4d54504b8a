package v1

import (
	"errors"
	"net/http"

	"corvus-contact/internal/delivery/http/response"
	"corvus-contact/internal/domain"
	"corvus-contact/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Client-facing messages. Provider details stay in server logs.
const (
	msgInvalidBody     = "Invalid request body"
	msgMissingFields   = "Name, email and message are required"
	msgNotConfigured   = "Email service is not configured"
	msgDeliveryFailed  = "Error sending email"
	msgEmailsDelivered = "Emails sent successfully"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	handlers := []gin.HandlerFunc{}
	if limit != nil {
		handlers = append(handlers, limit)
	}
	handlers = append(handlers, handler.SubmitContact)

	api.POST("/contact", handlers...)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates a contact form submission, notifies the operator and acknowledges the submitter by email.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var sub domain.ContactSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		_ = c.Error(apperror.New(http.StatusBadRequest, msgInvalidBody, err))
		return
	}

	if err := h.contactUC.SubmitContact(c.Request.Context(), &sub); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			_ = c.Error(apperror.BadRequest(msgMissingFields))
		case errors.Is(err, domain.ErrEmailNotConfigured):
			_ = c.Error(apperror.New(http.StatusInternalServerError, msgNotConfigured, err))
		default:
			_ = c.Error(apperror.New(http.StatusInternalServerError, msgDeliveryFailed, err))
		}
		return
	}

	response.Success(c, http.StatusOK, msgEmailsDelivered)
}
