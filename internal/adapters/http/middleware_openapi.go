package httpadapter

import (
	_ "embed"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed openapi.yaml
var openAPISpec []byte

var (
	apiRouterOnce sync.Once
	apiRouter     routers.Router
	apiRouterErr  error
)

func loadAPIRouter() (routers.Router, error) {
	apiRouterOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openAPISpec)
		if err != nil {
			apiRouterErr = err
			return
		}
		if err := doc.Validate(loader.Context); err != nil {
			apiRouterErr = err
			return
		}
		apiRouter, apiRouterErr = gorillamux.NewRouter(doc)
	})
	return apiRouter, apiRouterErr
}

// requestValidationMiddleware checks paths, methods and query parameters
// against the published API contract before the handlers run. Bodies are
// excluded: multipart uploads are streamed, not buffered for validation.
func requestValidationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/") {
			next.ServeHTTP(w, r)
			return
		}

		router, err := loadAPIRouter()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "api contract unavailable"})
			return
		}

		route, pathParams, err := router.FindRoute(r)
		if err != nil {
			// Unknown v1 paths fall through to the mux 404.
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				ExcludeRequestBody: true,
			},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		next.ServeHTTP(w, r)
	})
}
