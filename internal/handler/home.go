package handler

import (
	"log/slog"
	"net/http"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/view"
)

// HandleHome renders the home page with the active broadcasts.
func HandleHome(admin *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		name := ""
		if user := UserFromContext(r.Context()); user != nil {
			name = user.Name
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := view.HomePage(name, admin.ActiveMessages()).Render(r.Context(), w); err != nil {
			slog.Error("render home", "error", err)
		}
	}
}
