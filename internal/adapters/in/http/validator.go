package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

var errMissingToken = errors.New("bearer token is required")

// ValidateRequests checks every request that matches an operation of doc against its
// parameters, security requirements and body. Paths the document does not describe, such
// as /health or /metrics, are passed through untouched.
//
// Security is satisfied by the caller Authenticate stored in the request context, so
// Authenticate must run first.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	// Match on paths only; the servers block lists documentation hosts.
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: authenticated,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				var routeErr *routers.RouteError
				if errors.As(err, &routeErr) {
					// Not an API operation; echo decides between a route and a 404.
					return next(ctx)
				}
				return writeError(ctx, http.StatusBadRequest, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				var secErr *openapi3filter.SecurityRequirementsError
				if errors.As(err, &secErr) {
					return writeError(ctx, http.StatusUnauthorized, errMissingToken.Error())
				}
				return writeError(ctx, http.StatusBadRequest, validationMessage(err))
			}

			return next(ctx)
		}
	}, nil
}

func authenticated(_ context.Context, input *openapi3filter.AuthenticationInput) error {
	if CallerFromContext(input.RequestValidationInput.Request.Context()).Validate() != nil {
		return errMissingToken
	}
	return nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("parameter %q: %s", reqErr.Parameter.Name, reqErr.Reason)
		}
		if reqErr.Err != nil {
			return fmt.Sprintf("request body: %s", reqErr.Err)
		}
		return reqErr.Reason
	}
	return err.Error()
}
