package api

import "net/http"

// EndpointRoot handles the 'GET /' endpoint
func (service *Service) EndpointRoot(writer http.ResponseWriter, _ *http.Request) {
	service.writer.WriteData(writer, map[string]string{
		"message": "Tools-Sys API v" + Version,
	})
}

// EndpointHealth handles the 'GET /api/health' endpoint
func (service *Service) EndpointHealth(writer http.ResponseWriter, _ *http.Request) {
	service.writer.WriteData(writer, map[string]string{
		"status": "healthy",
	})
}
