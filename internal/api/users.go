package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/api/schema"
	"github.com/skybi/tools-sys/internal/auth"
	"github.com/skybi/tools-sys/internal/user"
)

var (
	errUserNotFound      = schema.NewError(http.StatusNotFound, "user not found")
	errUsernameTaken     = schema.NewError(http.StatusConflict, "the username is already taken")
	errSelfDeletion      = schema.NewError(http.StatusBadRequest, "you cannot delete your own account")
	errSelfDeactivation  = schema.NewError(http.StatusBadRequest, "you cannot disable your own account")
	errSelfDemotion      = schema.NewError(http.StatusBadRequest, "you cannot revoke your own admin rights")
	errUsernameMalformed = schema.NewError(http.StatusBadRequest, "the username must not be blank")
	errPasswordMalformed = schema.NewError(http.StatusBadRequest, "the password must not be blank")
)

type endpointCreateUserRequestPayload struct {
	Username *string `json:"username" required:"true" maxlen:"64"`
	Password *string `json:"password" required:"true" maxlen:"72"`
	Admin    *bool   `json:"is_admin"`
	Active   *bool   `json:"is_active"`
}

type endpointUpdateUserRequestPayload struct {
	Username *string `json:"username" maxlen:"64"`
	Password *string `json:"password" maxlen:"72"`
	Admin    *bool   `json:"is_admin"`
	Active   *bool   `json:"is_active"`
}

// EndpointGetUsers handles the 'GET /api/users' endpoint
func (service *Service) EndpointGetUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := service.Storage.Users().Get(request.Context())
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteData(writer, users)
}

// EndpointGetUser handles the 'GET /api/users/{id}' endpoint
func (service *Service) EndpointGetUser(writer http.ResponseWriter, request *http.Request) {
	obj, ok := service.fetchUser(writer, request)
	if !ok {
		return
	}
	service.writer.WriteData(writer, obj)
}

// EndpointCreateUser handles the 'POST /api/users' endpoint
func (service *Service) EndpointCreateUser(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[endpointCreateUserRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, validationErrs...)
		return
	}

	hash, err := auth.HashPassword(*payload.Password)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	create := &user.Create{
		Username:     *payload.Username,
		PasswordHash: hash,
		Admin:        payload.Admin != nil && *payload.Admin,
		Active:       payload.Active == nil || *payload.Active,
	}

	obj, err := service.Storage.Users().Create(request.Context(), create)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			service.writer.WriteErrors(writer, errUsernameTaken)
			return
		}
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteDataCode(writer, http.StatusCreated, obj)
}

// EndpointUpdateUser handles the 'PUT /api/users/{id}' endpoint.
// Only the fields present in the request body are changed.
func (service *Service) EndpointUpdateUser(writer http.ResponseWriter, request *http.Request) {
	old, ok := service.fetchUser(writer, request)
	if !ok {
		return
	}

	payload, validationErrs, err := schema.UnmarshalBody[endpointUpdateUserRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if payload != nil {
		if payload.Username != nil && isBlank(*payload.Username) {
			validationErrs = append(validationErrs, errUsernameMalformed)
		}
		if payload.Password != nil && isBlank(*payload.Password) {
			validationErrs = append(validationErrs, errPasswordMalformed)
		}
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, validationErrs...)
		return
	}

	client := request.Context().Value(contextValueUser).(*user.User)
	if client.ID == old.ID {
		if payload.Active != nil && !*payload.Active {
			service.writer.WriteErrors(writer, errSelfDeactivation)
			return
		}
		if payload.Admin != nil && !*payload.Admin {
			service.writer.WriteErrors(writer, errSelfDemotion)
			return
		}
	}

	update := &user.Update{
		Username: payload.Username,
		Admin:    payload.Admin,
		Active:   payload.Active,
	}
	if payload.Password != nil {
		hash, err := auth.HashPassword(*payload.Password)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		update.PasswordHash = &hash
	}

	obj, err := service.Storage.Users().Update(request.Context(), old.ID, update)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			service.writer.WriteErrors(writer, errUsernameTaken)
			return
		}
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, errUserNotFound)
		return
	}
	service.writer.WriteData(writer, obj)
}

// EndpointDeleteUser handles the 'DELETE /api/users/{id}' endpoint
func (service *Service) EndpointDeleteUser(writer http.ResponseWriter, request *http.Request) {
	obj, ok := service.fetchUser(writer, request)
	if !ok {
		return
	}

	client := request.Context().Value(contextValueUser).(*user.User)
	if client.ID == obj.ID {
		service.writer.WriteErrors(writer, errSelfDeletion)
		return
	}

	if err := service.Storage.Users().Delete(request.Context(), obj.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteData(writer, map[string]string{
		"message": "user deleted",
	})
}

// fetchUser retrieves the user referenced by the 'id' URL parameter.
// If it does not exist or an error occurs, the response is written and false is returned.
func (service *Service) fetchUser(writer http.ResponseWriter, request *http.Request) (*user.User, bool) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, errUserNotFound)
		return nil, false
	}

	obj, err := service.Storage.Users().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return nil, false
	}
	if obj == nil {
		service.writer.WriteErrors(writer, errUserNotFound)
		return nil, false
	}
	return obj, true
}

func isBlank(val string) bool {
	return strings.TrimSpace(val) == ""
}
