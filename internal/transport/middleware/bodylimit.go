package middleware

import (
	"net/http"

	"github.com/frahmantamala/firedept-portal/internal/transport"
)

// MaxRequestBody is the largest request body the API accepts.
const MaxRequestBody = 1 << 20

// BodyLimit rejects requests that declare a body over maxBytes and caps
// reads on the rest, so chunked uploads fail once they cross the limit.
func BodyLimit(base *transport.BaseHandler, maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				base.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
