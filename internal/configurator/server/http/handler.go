package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/autopeer-io/voltura/internal/configurator/core/engine"
	"github.com/autopeer-io/voltura/internal/configurator/core/filter"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/internal/configurator/core/service"
	"github.com/autopeer-io/voltura/internal/pkg/metrics"
	httpmw "github.com/autopeer-io/voltura/internal/pkg/middleware/http"
	"github.com/autopeer-io/voltura/pkg/log"
	"github.com/autopeer-io/voltura/pkg/price"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

type handler struct {
	svc *service.Service
}

// NewHandler routes the configurator API, health checks and metrics.
func NewHandler(svc *service.Service, logger log.Logger, timeout time.Duration) http.Handler {
	h := &handler{svc: svc}

	r := mux.NewRouter()
	r.Use(httpmw.Logging(logger), httpmw.Timeout(timeout))

	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.readyz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/vehicles", h.listVehicles).Methods(http.MethodGet)
	api.HandleFunc("/sessions", h.createSession).Methods(http.MethodPost)

	sess := api.PathPrefix("/sessions/{sid}").Subrouter()
	sess.HandleFunc("/vehicles", h.sessionVehicles).Methods(http.MethodGet)
	sess.HandleFunc("/filter", h.applyFilter).Methods(http.MethodPost)
	sess.HandleFunc("/open/{vehicleID}", h.open).Methods(http.MethodPost)
	sess.HandleFunc("/version/{id}", h.selectVersion).Methods(http.MethodPut)
	sess.HandleFunc("/color/{id}", h.selectColor).Methods(http.MethodPut)
	sess.HandleFunc("/addons/{id}/toggle", h.toggleAddon).Methods(http.MethodPost)
	sess.HandleFunc("/price", h.getPrice).Methods(http.MethodGet)
	sess.HandleFunc("/save", h.save).Methods(http.MethodPost)

	// mux subrouters report a method mismatch as 404 unless each one has
	// its own handler.
	for _, router := range []*mux.Router{r, api, sess} {
		router.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)
	}

	// Preflight requests never match a method-restricted route.
	return httpmw.CORS(r)
}

func (h *handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: "method " + r.Method + " not allowed"})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) readyz(w http.ResponseWriter, _ *http.Request) {
	if err := h.svc.Catalog().Err(); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type vehiclesResponse struct {
	Count    int            `json:"count"`
	Vehicles []service.Card `json:"vehicles"`
}

func newVehiclesResponse(vs []model.Vehicle) vehiclesResponse {
	return vehiclesResponse{Count: len(vs), Vehicles: service.NewCards(vs)}
}

func (h *handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := filter.Input{
		BodyType:   q.Get("bodyType"),
		Drivetrain: q.Get("drivetrain"),
		PriceMin:   q.Get("priceMin"),
		PriceMax:   q.Get("priceMax"),
	}
	h.writeJSON(w, r, http.StatusOK, newVehiclesResponse(h.svc.Filter(in)))
}

type sessionResponse struct {
	ID string `json:"id"`
	vehiclesResponse
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	sess := h.svc.NewSession()
	h.writeJSON(w, r, http.StatusCreated, sessionResponse{
		ID:               sess.ID(),
		vehiclesResponse: newVehiclesResponse(sess.FilteredView()),
	})
}

func (h *handler) session(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	sess, err := h.svc.Session(mux.Vars(r)["sid"])
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (h *handler) sessionVehicles(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, newVehiclesResponse(sess.FilteredView()))
}

func (h *handler) applyFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var in filter.Input
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, newVehiclesResponse(sess.ApplyFilter(filter.Parse(in))))
}

func (h *handler) open(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := sess.Open(r.Context(), mux.Vars(r)["vehicleID"])
	h.writeView(w, r, view, err)
}

func (h *handler) selectVersion(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := sess.SelectVersion(mux.Vars(r)["id"])
	h.writeView(w, r, view, err)
}

func (h *handler) selectColor(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := sess.SelectColor(mux.Vars(r)["id"])
	h.writeView(w, r, view, err)
}

func (h *handler) toggleAddon(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := sess.ToggleAddon(mux.Vars(r)["id"])
	h.writeView(w, r, view, err)
}

type priceResponse struct {
	Price          int64  `json:"price"`
	FormattedPrice string `json:"formattedPrice"`
}

func (h *handler) getPrice(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	total := sess.ComputePrice()
	h.writeJSON(w, r, http.StatusOK, priceResponse{Price: total, FormattedPrice: price.Format(total)})
}

type saveRequest struct {
	Source string `json:"source"`
}

func (h *handler) save(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req saveRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	source, err := model.ParseSource(req.Source)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := sess.Save(r.Context(), source)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, rec)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (h *handler) writeView(w http.ResponseWriter, r *http.Request, view service.View, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, view)
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrVehicleNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidSource), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNotOpened):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error(err, "Request failed")
	}
	h.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).Error(err, "Failed to write response")
	}
}
