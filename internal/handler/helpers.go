package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Ruwaid884/verity-vendor-secure/internal/apierror"
	"github.com/Ruwaid884/verity-vendor-secure/internal/middleware"
)

var validate = validator.New()

// envelope is the shared response shape for every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

// respondError maps a taxonomy error to its status code and a safe message.
// Store failures are logged with the request id and masked for the client.
func respondError(c *gin.Context, err error) {
	ae := apierror.From(err)

	message := ae.Message
	if ae.Kind == apierror.KindStore {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("store failure")
		message = "Internal server error"
	}

	var errs interface{}
	if len(ae.Fields) > 0 {
		list := make([]fieldError, 0, len(ae.Fields))
		for field, msg := range ae.Fields {
			list = append(list, fieldError{Field: field, Message: msg})
		}
		errs = list
	}

	c.JSON(ae.HTTPStatus(), envelope{Success: false, Message: message, Errors: errs})
}

// bindAndValidate binds the JSON body and runs validator tags. Returns false
// after writing the 400 response — the caller must return immediately.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid JSON body"})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make([]fieldError, 0)
		for _, fe := range err.(validator.ValidationErrors) {
			fields = append(fields, fieldError{Field: fe.Field(), Message: fe.Tag()})
		}
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Validation failed", Errors: fields})
		return false
	}
	return true
}

// actorID extracts the authenticated actor from the JWT claims. Writes the
// 401 response itself when no valid actor is present.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: "Authentication required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: "Authentication required"})
		return uuid.Nil, false
	}
	return id, true
}

func vendorIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Vendor ID must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
