package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var openapiSpec []byte

// OpenAPISpec returns the embedded API description.
func OpenAPISpec() []byte { return openapiSpec }

// requestValidator checks incoming API requests against the embedded OpenAPI document.
type requestValidator struct {
	router routers.Router
}

func newRequestValidator() (*requestValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("loading openapi spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building openapi router: %w", err)
	}
	return &requestValidator{router: router}, nil
}

// Middleware rejects documented /api routes whose request does not match the
// spec. Undocumented paths (such as the SSE stream) pass through untouched.
func (v *requestValidator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		route, pathParams, err := v.router.FindRoute(r)
		if err != nil {
			// Let the mux produce its own 404/405.
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options:    &openapi3filter.Options{MultiError: true},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validationMessage flattens kin-openapi's nested errors into one line.
func validationMessage(err error) string {
	switch e := err.(type) {
	case openapi3.MultiError:
		return joinMessages(e, validationMessage)
	case *openapi3filter.RequestError:
		prefix := "request body"
		if e.Parameter != nil {
			prefix = fmt.Sprintf("parameter %q", e.Parameter.Name)
		}
		if e.Err == nil {
			return prefix + ": " + e.Reason
		}
		return prefix + ": " + detail(e.Err)
	default:
		return detail(err)
	}
}

func detail(err error) string {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		return joinMessages(multi, detail)
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if path := schemaErr.JSONPointer(); len(path) > 0 {
			return strings.Join(path, ".") + ": " + schemaErr.Reason
		}
		return schemaErr.Reason
	}
	return err.Error()
}

func joinMessages(errs openapi3.MultiError, msg func(error) string) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, msg(e))
	}
	return strings.Join(parts, "; ")
}
