package dashboard

import "github.com/go-chi/chi/v5"

// MountRoutes registers dashboard routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleDashboard)
	r.Get("/dashboard/charts", h.handleChartData)
}
