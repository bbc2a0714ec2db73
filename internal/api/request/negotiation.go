package request

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AcceptsJSON reports whether any comma-separated entry of the Accept header
// starts with application/json or */*. Media type parameters and q-values are
// not interpreted. A missing header is not acceptable.
func AcceptsJSON(h http.Header) bool {
	accept := h.Get(echo.HeaderAccept)
	if accept == "" {
		return false
	}

	for _, entry := range strings.Split(accept, ",") {
		entry = strings.TrimLeft(entry, " \t")
		if strings.HasPrefix(entry, echo.MIMEApplicationJSON) || strings.HasPrefix(entry, "*/*") {
			return true
		}
	}
	return false
}

// IsJSON reports whether Content-Type is exactly application/json.
func IsJSON(h http.Header) bool {
	return h.Get(echo.HeaderContentType) == echo.MIMEApplicationJSON
}
