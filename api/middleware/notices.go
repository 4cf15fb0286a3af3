package middleware

import (
	"net/http"

	"github.com/yukselticaret/trendyshop-backend/pkg/notify"
)

// Notices attaches a notice buffer to every request so services can report
// outcomes that the response envelope then carries.
func Notices() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, _ := notify.WithBuffer(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
