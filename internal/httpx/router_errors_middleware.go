package httpx

import (
	"net/http"
	"strings"
)

// routerErrorWriter swaps the plain-text bodies ServeMux writes for unknown
// paths and wrong methods with {"error": ...}. Handler-written JSON passes through.
type routerErrorWriter struct {
	http.ResponseWriter
	swallow bool
}

func (w *routerErrorWriter) WriteHeader(code int) {
	h := w.Header()
	plain := strings.HasPrefix(h.Get("Content-Type"), "text/plain")
	if plain && (code == http.StatusNotFound || code == http.StatusMethodNotAllowed) {
		h.Del("Content-Length")
		JSONError(w.ResponseWriter, code, http.StatusText(code))
		w.swallow = true
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *routerErrorWriter) Write(b []byte) (int, error) {
	if w.swallow {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *routerErrorWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// RouterErrorsMiddleware makes the router's own 404 and 405 replies JSON.
// Allow headers set by the router are kept.
func RouterErrorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&routerErrorWriter{ResponseWriter: w}, r)
	})
}
