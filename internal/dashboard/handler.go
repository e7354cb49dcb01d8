// Package dashboard serves the revenue dashboard page and its chart data.
// The handler owns the filter contract: parse, validate, recompute all four
// charts in one pass, and replace them atomically.
package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/retailpulse/retailpulse/internal/aggregate"
	"github.com/retailpulse/retailpulse/internal/dataset"
	"github.com/retailpulse/retailpulse/internal/platform/httpx"
	"github.com/retailpulse/retailpulse/internal/session"
	"github.com/retailpulse/retailpulse/internal/view"
)

var quarterRegex = regexp.MustCompile(`^\d{4}Q[1-4]$`)

// Handler coordinates HTTP requests for the revenue dashboard.
type Handler struct {
	logger     *slog.Logger
	data       *dataset.Dataset
	templates  *view.Engine
	renderers  Renderers
	selections *session.SelectionStore
	validator  *validator.Validate
}

// NewHandler constructs the dashboard HTTP handler. The dataset is the
// immutable enriched table built at startup.
func NewHandler(logger *slog.Logger, data *dataset.Dataset, templates *view.Engine, renderers Renderers, selections *session.SelectionStore) *Handler {
	v := validator.New()
	_ = v.RegisterValidation("quarter", func(fl validator.FieldLevel) bool {
		return quarterRegex.MatchString(fl.Field().String())
	})
	return &Handler{
		logger:     logger,
		data:       data,
		templates:  templates,
		renderers:  renderers,
		selections: selections,
		validator:  v,
	}
}

type filterRequest struct {
	States   []string `validate:"dive,len=2,alpha,uppercase"`
	Quarters []string `validate:"dive,quarter"`
	Products []string `validate:"dive,min=1,max=120"`
}

// parseFilters reads the three multi-value query parameters. The applied
// return reports whether the request carries an explicit selection (the form
// always submits the apply marker, so clearing every dropdown still counts
// as a selection, distinct from a bare page load).
func (h *Handler) parseFilters(query url.Values) (aggregate.Filter, bool, error) {
	req := filterRequest{
		States:   query["states"],
		Quarters: query["quarters"],
		Products: query["products"],
	}
	if err := h.validator.Struct(req); err != nil {
		return aggregate.Filter{}, false, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	applied := query.Has("apply") || len(req.States) > 0 || len(req.Quarters) > 0 || len(req.Products) > 0
	return aggregate.Filter{
		States:   req.States,
		Quarters: req.Quarters,
		Products: req.Products,
	}, applied, nil
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filter, applied, err := h.parseFilters(r.URL.Query())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	if h.selections != nil {
		id := h.selections.SessionID(w, r)
		if applied {
			if err := h.selections.Save(r.Context(), id, filter); err != nil {
				h.logger.Warn("save selection", slog.Any("error", err))
			}
		} else {
			stored, err := h.selections.Load(r.Context(), id)
			if err != nil {
				h.logger.Warn("load selection", slog.Any("error", err))
			} else {
				filter = stored
			}
		}
	}

	set := aggregate.Aggregate(h.data.Aggregate, filter)
	charts, err := buildCharts(set, h.renderers)
	if err != nil {
		h.logger.Error("render charts", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	vm := ViewModel{
		Summary: h.data.Summary,
		Options: OptionsViewModel{
			States:   h.data.States(),
			Quarters: h.data.Quarters(),
			Products: h.data.Categories(),
		},
		Selected: SelectedViewModel{
			States:   toSelectionSet(filter.States),
			Quarters: toSelectionSet(filter.Quarters),
			Products: toSelectionSet(filter.Products),
		},
		Charts: charts,
	}

	viewData := view.TemplateData{
		Title:       "Revenue Dashboard",
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// handleChartData serves the four chart payloads as JSON for programmatic
// consumers. Same filter contract as the page; selections are not persisted.
func (h *Handler) handleChartData(w http.ResponseWriter, r *http.Request) {
	filter, _, err := h.parseFilters(r.URL.Query())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	set := aggregate.Aggregate(h.data.Aggregate, filter)
	httpx.JSON(w, http.StatusOK, set)
}
