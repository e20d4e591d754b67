package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/api/schema"
	"github.com/skybi/tools-sys/internal/tool"
)

var errToolNotFound = schema.NewError(http.StatusNotFound, "tool not found")

type toolPayload struct {
	Name        *string `json:"name" required:"true" maxlen:"128"`
	Description *string `json:"description" maxlen:"4096"`
	Version     *string `json:"version" maxlen:"32"`
	Route       *string `json:"route" required:"true" maxlen:"256"`
	Icon        *string `json:"icon" maxlen:"256"`
}

// EndpointGetTools handles the 'GET /api/tools' endpoint
func (service *Service) EndpointGetTools(writer http.ResponseWriter, request *http.Request) {
	tools, err := service.Storage.Tools().Get(request.Context())
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteData(writer, tools)
}

// EndpointGetTool handles the 'GET /api/tools/{id}' endpoint
func (service *Service) EndpointGetTool(writer http.ResponseWriter, request *http.Request) {
	obj, ok := service.fetchTool(writer, request)
	if !ok {
		return
	}
	service.writer.WriteData(writer, obj)
}

// EndpointCreateTool handles the 'POST /api/tools' endpoint
func (service *Service) EndpointCreateTool(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[toolPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, validationErrs...)
		return
	}

	create := &tool.Create{
		Name:  *payload.Name,
		Route: *payload.Route,
	}
	if payload.Description != nil {
		create.Description = *payload.Description
	}
	if payload.Version != nil {
		create.Version = *payload.Version
	}
	if payload.Icon != nil {
		create.Icon = *payload.Icon
	}

	obj, err := service.Storage.Tools().Create(request.Context(), create)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteDataCode(writer, http.StatusCreated, obj)
}

// EndpointUpdateTool handles the 'PUT /api/tools/{id}' endpoint.
// Name and route are required like on creation; omitted optional fields are cleared.
func (service *Service) EndpointUpdateTool(writer http.ResponseWriter, request *http.Request) {
	old, ok := service.fetchTool(writer, request)
	if !ok {
		return
	}

	payload, validationErrs, err := schema.UnmarshalBody[toolPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, validationErrs...)
		return
	}

	empty := ""
	update := &tool.Update{
		Name:        payload.Name,
		Description: orDefault(payload.Description, &empty),
		Version:     orDefault(payload.Version, &empty),
		Route:       payload.Route,
		Icon:        orDefault(payload.Icon, &empty),
	}

	obj, err := service.Storage.Tools().Update(request.Context(), old.ID, update)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, errToolNotFound)
		return
	}
	service.writer.WriteData(writer, obj)
}

// EndpointDeleteTool handles the 'DELETE /api/tools/{id}' endpoint
func (service *Service) EndpointDeleteTool(writer http.ResponseWriter, request *http.Request) {
	obj, ok := service.fetchTool(writer, request)
	if !ok {
		return
	}

	if err := service.Storage.Tools().Delete(request.Context(), obj.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteData(writer, map[string]string{
		"message": "tool deleted",
	})
}

// fetchTool retrieves the tool referenced by the 'id' URL parameter.
// If it does not exist or an error occurs, the response is written and false is returned.
func (service *Service) fetchTool(writer http.ResponseWriter, request *http.Request) (*tool.Tool, bool) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, errToolNotFound)
		return nil, false
	}

	obj, err := service.Storage.Tools().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return nil, false
	}
	if obj == nil {
		service.writer.WriteErrors(writer, errToolNotFound)
		return nil, false
	}
	return obj, true
}

func orDefault[T any](val, def *T) *T {
	if val == nil {
		return def
	}
	return val
}
