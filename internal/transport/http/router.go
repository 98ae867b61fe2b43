package http

import (
	"net/http"
	"time"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/netutil"
	"collegeconnect/internal/observability/middleware"
	"collegeconnect/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Identity      service.IdentityService
	Tokens        service.TokenService
	Provision     service.ProvisionService
	Registrations service.RegistrationService
	Users         service.UserService
	Colleges      service.CollegeService
	CollegeAdmins service.CollegeAdminService
	Counselors    service.CounselorService
	Students      service.StudentService
	Peers         service.PeerService
	Appointments  service.AppointmentService
}

type Options struct {
	CORSOrigins        []string
	RateLimitPerMinute int // 0 disables rate limiting
	MaxUploadBytes     int64
	TrustProxy         bool
	RequestTimeout     time.Duration
}

type handler struct {
	svc  Services
	opts Options
}

func (h *handler) clientIP(r *http.Request) string {
	return netutil.ClientIP(r, h.opts.TrustProxy)
}

func NewRouter(svc Services, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	h := &handler{svc: svc, opts: opts}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.WithRequestAndTrace)
	r.Use(middleware.WithMetrics)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(opts.RequestTimeout))
	if opts.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute))
	}
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authn := authenticate(svc.Tokens)
	admin := requireRole(domain.RoleAdmin)
	staff := requireRole(domain.RoleAdmin, domain.RoleCollegeAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/refresh", h.refresh)
			r.Post("/logout", h.logout)
			r.With(authn).Get("/me", h.me)
			r.With(authn).Post("/change-password", h.changePassword)
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Post("/", h.submitRegistration)
			r.Group(func(r chi.Router) {
				r.Use(authn, admin)
				r.Get("/", h.listRegistrations)
				r.Get("/{id}", h.getRegistration)
				r.Post("/{id}/approve", h.approveRegistration)
				r.Post("/{id}/reject", h.rejectRegistration)
				r.Post("/{id}/pending", h.reopenRegistration)
				r.Get("/{id}/documents/{kind}", h.registrationDocument)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Route("/users", func(r chi.Router) {
				r.Use(admin)
				r.Get("/", h.listUsers)
				r.Post("/", h.createUser)
				r.Get("/{id}", h.getUser)
				r.Patch("/{id}", h.updateUser)
				r.Patch("/{id}/status", h.toggleUser)
				r.Delete("/{id}", h.deleteUser)
				r.Post("/{id}/profile", h.provisionProfile)
			})

			r.Route("/colleges", func(r chi.Router) {
				r.Get("/", h.listColleges)
				r.Get("/{id}", h.getCollege)
				r.Get("/{id}/logo", h.collegeLogo)
				r.Get("/{id}/documents/{index}", h.collegeDocument)
				r.With(staff).Put("/{id}", h.updateCollege)
				r.With(admin).Delete("/{id}", h.deleteCollege)
			})

			r.Route("/college-admins", func(r chi.Router) {
				r.Get("/", h.listCollegeAdmins)
				r.Get("/user/{userId}", h.getCollegeAdminByUser)
				r.Get("/{id}", h.getCollegeAdmin)
				r.Get("/{id}/proof", h.collegeAdminProof)
				r.With(staff).Put("/{id}", h.updateCollegeAdmin)
				r.With(admin).Delete("/{id}", h.deleteCollegeAdmin)
			})

			r.Route("/counselors", func(r chi.Router) {
				r.Get("/", h.listCounselors)
				r.Get("/college/{collegeId}", h.listCounselorsByCollege)
				r.Get("/{id}", h.getCounselor)
				r.With(staff).Post("/", h.createCounselor)
				r.With(staff).Put("/{id}", h.updateCounselor)
				r.With(staff).Put("/{id}/status", h.updateCounselorStatus)
				r.With(admin).Delete("/{id}", h.deleteCounselor)
			})

			r.Route("/students", func(r chi.Router) {
				r.Get("/", h.listStudents)
				r.Get("/{id}", h.getStudent)
				r.With(admin).Put("/{id}", h.updateStudent)
				r.With(admin).Delete("/{id}", h.deleteStudent)
			})

			r.Route("/peers", func(r chi.Router) {
				peerManagers := requireRole(domain.RoleAdmin, domain.RoleCounselor)
				r.Get("/", h.listPeers)
				r.Get("/{id}", h.getPeer)
				r.With(peerManagers).Post("/", h.createPeer)
				r.With(peerManagers).Put("/{id}/students", h.assignPeerStudents)
				r.With(admin).Delete("/{id}", h.deletePeer)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Post("/", h.scheduleAppointment)
				r.Get("/", h.listAppointments)
				r.Get("/{id}", h.getAppointment)
				r.Patch("/{id}/status", h.updateAppointmentStatus)
			})
		})
	})

	return r
}
