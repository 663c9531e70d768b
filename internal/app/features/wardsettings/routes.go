// internal/app/features/wardsettings/routes.go
package wardsettings

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted at /ward.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/{dept}", func(r chi.Router) {
		r.Get("/roster", h.ServeRoster)
		r.Put("/roster", h.ServeSaveRoster)
		r.Get("/shift-options", h.ServeShiftOptions)
		r.Put("/shift-options", h.ServeSaveShiftOptions)
	})
	return r
}
