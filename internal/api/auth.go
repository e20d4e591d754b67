package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skybi/tools-sys/internal/api/schema"
	"github.com/skybi/tools-sys/internal/auth"
	"github.com/skybi/tools-sys/internal/user"
)

type contextKey int

const contextValueUser contextKey = iota

var (
	errInvalidCredentials = schema.NewError(http.StatusUnauthorized, "invalid username or password")
	errAccountDisabled    = schema.NewError(http.StatusForbidden, "account is disabled")
)

type endpointLoginRequestPayload struct {
	Username string `json:"username" required:"true"`
	Password string `json:"password" required:"true"`
	Remember bool   `json:"remember"`
}

type endpointLoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

// EndpointLogin handles the 'POST /api/auth/login' endpoint
func (service *Service) EndpointLogin(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[endpointLoginRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, validationErrs...)
		return
	}

	obj, err := service.Storage.Users().GetByUsername(request.Context(), payload.Username)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil || !auth.CheckPassword(obj.PasswordHash, payload.Password) {
		log.Debug().Str("username", payload.Username).Msg("rejected login attempt")
		service.writer.WriteErrors(writer, errInvalidCredentials)
		return
	}
	if !obj.Active {
		service.writer.WriteErrors(writer, errAccountDisabled)
		return
	}

	// The remember flag is accepted for compatibility; every token has the same lifetime
	token, expires, err := service.Tokens.Issue(obj)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	log.Info().Str("user_id", obj.ID.String()).Bool("remember", payload.Remember).Msg("user logged in")
	service.writer.WriteData(writer, &endpointLoginResponse{
		Token:     token,
		ExpiresAt: expires,
		User:      obj,
	})
}

// MiddlewareVerifyToken makes sure that the requesting client has provided a valid bearer token of an active user.
// Additionally, it injects the user object itself into the request context.
func (service *Service) MiddlewareVerifyToken(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		// Try to read the 'Authorization' header and verify it is of type 'Bearer'
		header := request.Header.Get("Authorization")
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			service.writer.WriteErrors(writer, schema.ErrUnauthorized)
			return
		}

		claims, err := service.Tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			service.writer.WriteErrors(writer, schema.ErrUnauthorized)
			return
		}
		id, _ := claims.UserID()

		// The token may outlive its user or the user may have been disabled in the meantime
		obj, err := service.Storage.Users().GetByID(request.Context(), id)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if obj == nil || !obj.Active {
			service.writer.WriteErrors(writer, schema.ErrUnauthorized)
			return
		}

		// Delegate to the next handler
		request = request.WithContext(context.WithValue(request.Context(), contextValueUser, obj))
		next(writer, request)
	}
}

// MiddlewareCheckAdmin makes sure that the authenticated user is an admin.
// It has to be used after MiddlewareVerifyToken.
func (service *Service) MiddlewareCheckAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		obj, ok := request.Context().Value(contextValueUser).(*user.User)
		if !ok {
			service.writer.WriteErrors(writer, schema.ErrUnauthorized)
			return
		}
		if !obj.Admin {
			service.writer.WriteErrors(writer, schema.ErrForbidden)
			return
		}
		next(writer, request)
	}
}
