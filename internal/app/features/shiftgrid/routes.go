// internal/app/features/shiftgrid/routes.go
package shiftgrid

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted at /schedule.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{dept}/{ym}", h.ServeMonth)
	r.Put("/{dept}/{ym}/cells", h.ServeCells)
	r.Get("/{dept}/{ym}/export.xlsx", h.ServeExport)
	return r
}
