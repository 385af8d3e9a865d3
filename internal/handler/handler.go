package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/metrics"
)

// EmployeeRepository is implemented by *repository.Repository.
type EmployeeRepository interface {
	GetAllEmployees(ctx context.Context) ([]domain.Employee, error)
	ReplaceEmployees(ctx context.Context, employees []domain.Employee) error
	DeleteEmployee(ctx context.Context, id int64) (bool, error)
	Ping(ctx context.Context) error
}

// StatusStore is implemented by *status.Store.
type StatusStore interface {
	SystemStatus(ctx context.Context) (bool, error)
	SetSystemStatus(ctx context.Context, on bool) error
	Ping(ctx context.Context) error
}

// Notifier is implemented by *notify.Publisher.
type Notifier interface {
	RosterReplaced(ctx context.Context, employees []domain.Employee) error
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	admin      domain.Admin
	repository EmployeeRepository
	status     StatusStore
	notifier   Notifier
	metrics    *metrics.Metrics
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(
	cfg *config.Config,
	admin domain.Admin,
	repo EmployeeRepository,
	st StatusStore,
	notifier Notifier,
	m *metrics.Metrics,
) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		admin:      admin,
		repository: repo,
		status:     st,
		notifier:   notifier,
		metrics:    m,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Health)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below needs a valid session cookie
	h.Mux.Route("/api", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requiredRole(RoleAdmin))

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.GetAllEmployees)
			r.Post("/", h.ReplaceEmployees)
			r.Get("/view", h.ViewEmployees)
			r.Get("/export", h.ExportEmployees)
			r.Delete("/{id}", h.DeleteEmployee)
		})

		r.Get("/dashboard", h.GetDashboard)
		r.Post("/toggle", h.ToggleSystemStatus)
	})
}
