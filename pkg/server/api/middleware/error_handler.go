package middleware

import (
	"net/http"

	raven "github.com/getsentry/raven-go"
	"github.com/prometheus/common/log"

	"github.com/polaroidwall/polaroidwall/pkg/server/api"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/chain"
)

func NewErrorHandler(logger log.Logger) chain.TerminatingMiddleware {
	return func(next chain.Handler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			err := next(w, r)
			if err != nil {
				logger.With("method", r.Method).With("path", r.URL.Path).Error(err.Error())
			}
		}
	}
}

// DefaultErrorRenderer renders a 500 for any error a handler returns. Handlers
// render their own 4xx responses and return nil.
func DefaultErrorRenderer(next chain.Handler) chain.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		err := next(w, r)
		if err != nil {
			api.InternalError(err).Render(w, http.StatusInternalServerError)
		}
		return err
	}
}

func NewSentryReporter(sentry *raven.Client) chain.Middleware {
	return func(next chain.Handler) chain.Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			err := next(w, r)
			if err != nil {
				sentry.CaptureError(err, map[string]string{
					"method": r.Method,
					"path":   r.URL.Path,
				})
			}
			return err
		}
	}
}
