package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/clinicdesk/internal/appointment"
	appointmentdomain "github.com/smallbiznis/clinicdesk/internal/appointment/domain"
	"github.com/smallbiznis/clinicdesk/internal/auth"
	authdomain "github.com/smallbiznis/clinicdesk/internal/auth/domain"
	"github.com/smallbiznis/clinicdesk/internal/auth/session"
	"github.com/smallbiznis/clinicdesk/internal/bill"
	billdomain "github.com/smallbiznis/clinicdesk/internal/bill/domain"
	"github.com/smallbiznis/clinicdesk/internal/branchtarget"
	branchtargetdomain "github.com/smallbiznis/clinicdesk/internal/branchtarget/domain"
	"github.com/smallbiznis/clinicdesk/internal/client"
	clientdomain "github.com/smallbiznis/clinicdesk/internal/client/domain"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/smallbiznis/clinicdesk/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/clinicdesk/internal/dashboard/domain"
	"github.com/smallbiznis/clinicdesk/internal/doctor"
	doctordomain "github.com/smallbiznis/clinicdesk/internal/doctor/domain"
	"github.com/smallbiznis/clinicdesk/internal/observability"
	obsmiddleware "github.com/smallbiznis/clinicdesk/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/clinicdesk/internal/observability/metrics"
	obstracing "github.com/smallbiznis/clinicdesk/internal/observability/tracing"
	"github.com/smallbiznis/clinicdesk/internal/performance"
	performancedomain "github.com/smallbiznis/clinicdesk/internal/performance/domain"
	"github.com/smallbiznis/clinicdesk/internal/ratelimit"
	"github.com/smallbiznis/clinicdesk/internal/report"
	reportdomain "github.com/smallbiznis/clinicdesk/internal/report/domain"
	"github.com/smallbiznis/clinicdesk/internal/staff"
	staffdomain "github.com/smallbiznis/clinicdesk/internal/staff/domain"
	"github.com/smallbiznis/clinicdesk/internal/target"
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
	"github.com/smallbiznis/clinicdesk/internal/treatment"
	treatmentdomain "github.com/smallbiznis/clinicdesk/internal/treatment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	ratelimit.Module,
	doctor.Module,
	staff.Module,
	client.Module,
	treatment.Module,
	appointment.Module,
	bill.Module,
	target.Module,
	branchtarget.Module,
	performance.Module,
	dashboard.Module,
	report.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Log:             log,
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func corsConfig(cfg config.Config) cors.Config {
	return cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", obsmiddleware.HeaderRequestID},
		ExposeHeaders:    []string{obsmiddleware.HeaderRequestID, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func registerGin(cfg config.Config, obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(cfg, obsCfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	clinic          *config.ClinicConfigHolder
	authsvc         authdomain.Service
	sessions        *session.Manager
	loginLimiter    *ratelimit.LoginLimiter
	obsMetrics      *obsmetrics.HTTPMetrics
	doctorSvc       doctordomain.Service
	staffSvc        staffdomain.Service
	clientSvc       clientdomain.Service
	treatmentSvc    treatmentdomain.Service
	appointmentSvc  appointmentdomain.Service
	billSvc         billdomain.Service
	targetSvc       targetdomain.Service
	branchTargetSvc branchtargetdomain.Service
	performanceSvc  performancedomain.Service
	dashboardSvc    dashboarddomain.Service
	reportSvc       reportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Clinic          *config.ClinicConfigHolder
	AuthService     authdomain.Service
	Sessions        *session.Manager
	LoginLimiter    *ratelimit.LoginLimiter
	ObsMetrics      *obsmetrics.HTTPMetrics
	DoctorSvc       doctordomain.Service
	StaffSvc        staffdomain.Service
	ClientSvc       clientdomain.Service
	TreatmentSvc    treatmentdomain.Service
	AppointmentSvc  appointmentdomain.Service
	BillSvc         billdomain.Service
	TargetSvc       targetdomain.Service
	BranchTargetSvc branchtargetdomain.Service
	PerformanceSvc  performancedomain.Service
	DashboardSvc    dashboarddomain.Service
	ReportSvc       reportdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		clinic:          p.Clinic,
		authsvc:         p.AuthService,
		sessions:        p.Sessions,
		loginLimiter:    p.LoginLimiter,
		obsMetrics:      p.ObsMetrics,
		doctorSvc:       p.DoctorSvc,
		staffSvc:        p.StaffSvc,
		clientSvc:       p.ClientSvc,
		treatmentSvc:    p.TreatmentSvc,
		appointmentSvc:  p.AppointmentSvc,
		billSvc:         p.BillSvc,
		targetSvc:       p.TargetSvc,
		branchTargetSvc: p.BranchTargetSvc,
		performanceSvc:  p.PerformanceSvc,
		dashboardSvc:    p.DashboardSvc,
		reportSvc:       p.ReportSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAuthRoutes() {
	group := s.engine.Group("/auth")
	{
		group.POST("/login", s.Login)
		group.POST("/logout", s.Logout)
		group.GET("/me", s.WebAuthRequired(), s.Me)
	}
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.WebAuthRequired())

	api.GET("/config", s.GetClinicConfig)
	api.GET("/dashboard", s.GetDashboard)

	api.POST("/doctors", s.CreateDoctor)
	api.GET("/doctors", s.ListDoctors)
	api.GET("/doctors/:id", s.GetDoctorByID)
	api.PUT("/doctors/:id", s.UpdateDoctor)
	api.DELETE("/doctors/:id", s.DeleteDoctor)

	api.POST("/staff", s.CreateStaff)
	api.GET("/staff", s.ListStaff)
	api.GET("/staff/:id", s.GetStaffByID)
	api.PUT("/staff/:id", s.UpdateStaff)
	api.DELETE("/staff/:id", s.DeleteStaff)

	api.POST("/clients", s.CreateClient)
	api.GET("/clients", s.ListClients)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	api.POST("/treatments", s.CreateTreatment)
	api.GET("/treatments", s.ListTreatments)
	api.GET("/treatments/:id", s.GetTreatmentByID)
	api.PUT("/treatments/:id", s.UpdateTreatment)
	api.DELETE("/treatments/:id", s.DeleteTreatment)

	api.POST("/appointments", s.CreateAppointment)
	api.GET("/appointments", s.ListAppointments)
	api.GET("/appointments/:id", s.GetAppointmentByID)
	api.PUT("/appointments/:id", s.UpdateAppointment)
	api.DELETE("/appointments/:id", s.DeleteAppointment)

	api.POST("/bills/derive", s.DeriveBill)
	api.POST("/bills", s.CreateBill)
	api.GET("/bills", s.ListBills)
	api.GET("/bills/:id", s.GetBillByID)
	api.PUT("/bills/:id", s.UpdateBill)
	api.DELETE("/bills/:id", s.DeleteBill)

	api.POST("/targets", s.CreateTarget)
	api.GET("/targets", s.ListTargets)
	api.GET("/targets/:id", s.GetTargetByID)
	api.PUT("/targets/:id", s.UpdateTarget)
	api.DELETE("/targets/:id", s.DeleteTarget)

	api.POST("/branch-targets", s.CreateBranchTarget)
	api.GET("/branch-targets", s.ListBranchTargets)
	api.GET("/branch-targets/latest", s.GetLatestBranchTarget)
	api.GET("/branch-targets/:id", s.GetBranchTargetByID)
	api.PUT("/branch-targets/:id", s.UpdateBranchTarget)
	api.DELETE("/branch-targets/:id", s.DeleteBranchTarget)

	reports := api.Group("/reports")
	{
		reports.GET("/performance/staff", s.StaffPerformance)
		reports.GET("/performance/doctors", s.DoctorPerformance)
		reports.GET("/bills", s.BillReport)
	}
}
