package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nfrund/wabridge/internal/outbound"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// SendMessageRequest defines the DTO for the send-message endpoint.
// Without text or a template name the default template is sent.
type SendMessageRequest struct {
	To           string `json:"to" validate:"required"`
	Text         string `json:"text,omitempty"`
	TemplateName string `json:"templateName,omitempty"`
	Token        string `json:"token,omitempty"`
}

// Normalize trims the recipient and template name. Call it before
// validation so a blank recipient counts as missing.
func (r *SendMessageRequest) Normalize() {
	r.To = strings.TrimSpace(r.To)
	r.TemplateName = strings.TrimSpace(r.TemplateName)
}

// ToSendRequest maps the DTO onto the outbound request.
func (r SendMessageRequest) ToSendRequest() outbound.SendRequest {
	return outbound.SendRequest{
		To:           r.To,
		Text:         r.Text,
		TemplateName: r.TemplateName,
		Token:        r.Token,
	}
}

// validationMessage renders validator errors as "to is required".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		msgs = append(msgs, fmt.Sprintf("%s is %s", field, fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
