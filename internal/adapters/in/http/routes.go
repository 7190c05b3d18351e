package http

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"

	"shipping/internal/generated/servers"
)

// Mount registers the shipment API on e behind token authentication and OpenAPI request
// validation. Routes registered on e outside of Mount are not affected.
func Mount(e *echo.Echo, srv *Server, verifier *TokenVerifier, doc *openapi3.T) error {
	validate, err := ValidateRequests(doc)
	if err != nil {
		return err
	}

	api := e.Group("", Authenticate(verifier), validate)
	servers.RegisterHandlers(api, srv)
	return nil
}
