package middleware

import (
	"net/http"

	"github.com/polaroidwall/polaroidwall/pkg/server/api/chain"
	"github.com/polaroidwall/polaroidwall/pkg/version"
)

// VersionHeader is set on every response
const VersionHeader = "Polaroids-Version"

func AsJSON(next chain.Handler) chain.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json")
		return next(w, r)
	}
}

func WithVersion(next chain.Handler) chain.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set(VersionHeader, version.Version)
		return next(w, r)
	}
}
