// Package html provides helpers for the HTTP status pages.
package html

import (
	"io"
	"net/http"
)

type HtmlWriter interface {
	WriteHtml(writer io.Writer)
}

// HandleFunc registers handler for pattern on serveMux, adding the standard
// security headers to every response.
func HandleFunc(serveMux *http.ServeMux, pattern string,
	handler func(w http.ResponseWriter, req *http.Request)) {
	handleFunc(serveMux, pattern, handler)
}

func SetSecurityHeaders(w http.ResponseWriter) {
	setSecurityHeaders(w)
}

// WriteFooter writes the common page footer.
func WriteFooter(writer io.Writer) {
	writeFooter(writer)
}

// WriteHeader writes a table with process start time, uptime, memory use and
// the hostname.
func WriteHeader(writer io.Writer) {
	writeHeader(writer)
}
