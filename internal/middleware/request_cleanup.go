package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// at most this much of an unread body is drained, a bigger rest is dropped
// together with the connection
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest drains what the handler left unread in the request
// body and closes it, so a keep-alive connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			if n, err := io.CopyN(io.Discard, r.Body, maxDrainBytes); err == nil {
				log.Tracef("request body of %s not fully drained after %d bytes", r.URL.Path, n)
			}
			if err := r.Body.Close(); err != nil {
				log.Tracef("close request body of %s: %s", r.URL.Path, err)
			}
		})
	}
}
