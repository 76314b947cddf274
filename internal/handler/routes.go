package handler

import (
	"net/http"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/apperror"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/metrics"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
)

// Deps are the services behind the HTTP API.
type Deps struct {
	Auth       *service.AuthService
	Directory  *service.DirectoryService
	Swaps      *service.SwapService
	Ratings    *service.RatingService
	Admin      *service.AdminService
	Broadcasts *service.Broadcaster
	Errors     *apperror.Handler
	// Metrics is optional. When set, routes are instrumented and /metrics is served.
	Metrics *metrics.Metrics
	// LoginLimiter is optional and keyed by client IP.
	LoginLimiter *service.TokenBucket
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	if d.Errors == nil {
		d.Errors = apperror.NewHandler(nil, 0)
	}

	authH := NewAuthHandler(d.Auth, d.LoginLimiter, d.Errors, d.CookieSecure)
	dirH := NewDirectoryHandler(d.Directory, d.Ratings, d.Errors)
	swapH := NewSwapHandler(d.Swaps, d.Ratings, d.Errors)
	msgH := NewMessageHandler(d.Admin, d.Broadcasts)
	adminH := NewAdminHandler(d.Admin, d.Errors)

	handle := func(pattern string, h http.Handler) {
		if d.Metrics != nil {
			h = d.Metrics.Instrument(pattern, h)
		}
		mux.Handle(pattern, h)
	}
	authed := func(fn http.HandlerFunc) http.Handler { return RequireAuth(d.Auth, fn) }
	admin := func(fn http.HandlerFunc) http.Handler { return RequireAdmin(d.Auth, fn) }

	handle("GET /healthz", http.HandlerFunc(HandleHealthz))
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	handle("POST /api/auth/register", http.HandlerFunc(authH.HandleRegister))
	handle("POST /api/auth/login", http.HandlerFunc(authH.HandleLogin))
	handle("POST /api/auth/logout", http.HandlerFunc(authH.HandleLogout))
	handle("GET /api/auth/me", authed(authH.HandleMe))
	handle("PATCH /api/profile", authed(authH.HandleUpdateProfile))
	handle("POST /api/profile/photo", authed(authH.HandleUploadPhoto))

	handle("GET /api/users", authed(dirH.HandleBrowse))
	handle("GET /api/users/{id}", authed(dirH.HandleProfile))

	handle("GET /api/swaps", authed(swapH.HandleList))
	handle("POST /api/swaps", authed(swapH.HandleCreate))
	handle("GET /api/swaps/{id}", authed(swapH.HandleGet))
	handle("POST /api/swaps/{id}/accept", authed(swapH.HandleAccept))
	handle("POST /api/swaps/{id}/reject", authed(swapH.HandleReject))
	handle("POST /api/swaps/{id}/complete", authed(swapH.HandleComplete))
	handle("DELETE /api/swaps/{id}", authed(swapH.HandleWithdraw))
	handle("POST /api/swaps/{id}/rating", authed(swapH.HandleRate))

	handle("GET /api/messages", http.HandlerFunc(msgH.HandleList))
	handle("GET /api/messages/stream", http.HandlerFunc(msgH.HandleStream))

	handle("GET /api/admin/stats", admin(adminH.HandleStats))
	handle("GET /api/admin/users", admin(adminH.HandleUsers))
	handle("POST /api/admin/users/{id}/ban", admin(adminH.HandleBan))
	handle("GET /api/admin/swaps", admin(adminH.HandleSwaps))
	handle("GET /api/admin/messages", admin(adminH.HandleMessages))
	handle("POST /api/admin/messages", admin(adminH.HandleBroadcast))
	handle("POST /api/admin/reset", admin(adminH.HandleReset))
	handle("GET /api/admin/errors", admin(adminH.HandleErrors))

	handle("GET /", OptionalAuth(d.Auth, HandleHome(d.Admin)))
}
