package routes

import (
	"net/http"
	"strings"

	"github.com/polaroidwall/polaroidwall/pkg/server/api"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/chain"
	"github.com/polaroidwall/polaroidwall/pkg/storage"
)

// Uploads serves the files in dir read-only under storage.URLPrefix. Directory
// listings are never rendered.
func Uploads(dir string) chain.Handler {
	files := http.StripPrefix(storage.URLPrefix+"/", http.FileServer(http.Dir(dir)))

	return func(w http.ResponseWriter, r *http.Request) error {
		if strings.HasSuffix(r.URL.Path, "/") {
			w.Header().Set("Content-Type", "application/json")
			api.NotFoundError.Render(w, http.StatusNotFound)
			return nil
		}

		files.ServeHTTP(w, r)
		return nil
	}
}
