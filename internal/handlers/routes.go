package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the short-link operations.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-link",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short link",
		Description:   "Shortens a URL with a generated code or a caller-supplied custom alias.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateShortLink)

	huma.Register(api, huma.Operation{
		OperationID: "resolve-short-link",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL for the short code.",
		Tags:        []string{"Links"},
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		OperationID: "delete-short-link",
		Method:      http.MethodDelete,
		Path:        "/{code}",
		Summary:     "Delete short link",
		Description: "Removes a short link. Deleting an absent code succeeds.",
		Tags:        []string{"Links"},
	}, urlHandler.DeleteShortLink)
}
