// internal/app/features/dutysheet/routes.go
package dutysheet

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted at /assignments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{dept}", h.ServeDates)
	r.Get("/{dept}/{date}", h.ServeSheet)
	r.Put("/{dept}/{date}", h.ServeSave)
	r.Post("/{dept}/{date}/regenerate", h.ServeRegenerate)
	return r
}
