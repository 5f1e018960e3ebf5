package views

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MemorialTransportation/web-backend/internal/company"
	"github.com/MemorialTransportation/web-backend/internal/employee"
	"github.com/MemorialTransportation/web-backend/internal/fleet"
	"github.com/MemorialTransportation/web-backend/internal/middleware"
	"github.com/MemorialTransportation/web-backend/internal/session"
	"github.com/MemorialTransportation/web-backend/internal/utils"
)

const (
	LoginPath     = "/employee-login"
	LogoutPath    = "/employee-logout"
	DashboardPath = "/employee-dashboard"
	FleetMapPath  = "/fleet-map"
)

// Deps are the collaborators the pages render from.
type Deps struct {
	Company  *company.Profile
	Gate     *employee.Gate
	Sessions middleware.SessionStore
	Fleet    *fleet.Store
	Limiter  *middleware.LoginLimiter
	Log      *zap.Logger
}

type Views struct {
	Deps
	pages *renderer
}

func New(deps Deps) (*Views, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Views{Deps: deps, pages: r}, nil
}

// Register mounts the page routes on r.
func (v *Views) Register(r chi.Router) {
	r.Get(LoginPath, v.loginPage)
	r.Post(LoginPath, v.loginSubmit)
	r.Post(LogoutPath, v.logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ViewGuard(v.Sessions, LoginPath))
		r.Get(DashboardPath, v.withSession(v.dashboard))
		r.Get(FleetMapPath, v.withSession(v.fleetMap))
	})
}

type loginData struct {
	Company  *company.Profile
	Username string
	Error    string
}

func (v *Views) loginPage(w http.ResponseWriter, r *http.Request) {
	if v.Gate.SessionPresent(r) {
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		return
	}
	v.render(w, r, http.StatusOK, "login.html", loginData{Company: v.Company})
}

func (v *Views) loginSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := r.ParseForm(); err != nil {
		v.render(w, r, http.StatusBadRequest, "login.html", loginData{Company: v.Company, Error: "Invalid form submission"})
		return
	}
	username := r.PostFormValue("username")
	data := loginData{Company: v.Company, Username: username}

	if ok, _ := v.Limiter.Allow(middleware.ClientIP(r)); !ok {
		data.Error = "Too many login attempts, try again later"
		v.render(w, r, http.StatusTooManyRequests, "login.html", data)
		return
	}

	_, err := v.Gate.Login(r.Context(), w, username, r.PostFormValue("password"))
	switch {
	case err == nil:
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
	case employee.IsInputError(err):
		data.Error = err.Error()
		v.render(w, r, http.StatusBadRequest, "login.html", data)
	case errors.Is(err, employee.ErrInvalidCredentials):
		data.Error = employee.ErrInvalidCredentials.Error()
		v.render(w, r, http.StatusUnauthorized, "login.html", data)
	default:
		v.Log.Error("login failed", zap.Error(err), zap.String("request_id", utils.GetRequestID(r.Context())))
		data.Error = "Login failed. Please try again."
		v.render(w, r, http.StatusInternalServerError, "login.html", data)
	}
}

func (v *Views) logout(w http.ResponseWriter, r *http.Request) {
	v.Gate.Logout(w)
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// withSession hands the guarded page the session token explicitly.
func (v *Views) withSession(page func(w http.ResponseWriter, r *http.Request, tok session.Token)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, ok := utils.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		page(w, r, tok)
	}
}

type statusCount struct {
	Status fleet.Status
	Count  int64
}

type dashboardData struct {
	Company     *company.Profile
	Employee    employee.Profile
	FullName    string
	RoleDisplay string
	Summary     []statusCount
	Demo        bool
}

func (v *Views) dashboard(w http.ResponseWriter, r *http.Request, tok session.Token) {
	summary, err := v.summary(r.Context())
	if err != nil {
		v.fail(w, r, err)
		return
	}

	p := employee.ProfileFromToken(tok)
	v.render(w, r, http.StatusOK, "dashboard.html", dashboardData{
		Company:     v.Company,
		Employee:    p,
		FullName:    p.DisplayName(),
		RoleDisplay: titleCase(string(p.Role)),
		Summary:     summary,
		Demo:        v.Fleet.Demo(),
	})
}

func (v *Views) summary(ctx context.Context) ([]statusCount, error) {
	counts, err := v.Fleet.Summary(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]statusCount, 0, len(fleet.Statuses))
	for _, s := range fleet.Statuses {
		out = append(out, statusCount{Status: s, Count: counts[s]})
	}
	return out, nil
}

type fleetData struct {
	Company  *company.Profile
	Employee employee.Profile
	Trucks   []fleet.Truck
	Demo     bool
}

func (v *Views) fleetMap(w http.ResponseWriter, r *http.Request, tok session.Token) {
	trucks, err := v.Fleet.List(r.Context(), "")
	if err != nil {
		v.fail(w, r, err)
		return
	}

	v.render(w, r, http.StatusOK, "fleet.html", fleetData{
		Company:  v.Company,
		Employee: employee.ProfileFromToken(tok),
		Trucks:   trucks,
		Demo:     v.Fleet.Demo(),
	})
}

func (v *Views) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := v.pages.render(w, status, page, data); err != nil {
		v.fail(w, r, err)
	}
}

func (v *Views) fail(w http.ResponseWriter, r *http.Request, err error) {
	v.Log.Error("rendering page",
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("request_id", utils.GetRequestID(r.Context())),
	)
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}
