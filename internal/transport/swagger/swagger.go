package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	// Renders the OpenAPI spec served at root.
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}
