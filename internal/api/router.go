package api

import (
	"fmt"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/auth"
	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	employeeHttp "github.com/nekogravitycat/office-seat-booking/internal/employee/http"
	"github.com/nekogravitycat/office-seat-booking/internal/file"
	fileHttp "github.com/nekogravitycat/office-seat-booking/internal/file/http"
	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/office"
	officeHttp "github.com/nekogravitycat/office-seat-booking/internal/office/http"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/scheduled"
	scheduledHttp "github.com/nekogravitycat/office-seat-booking/internal/scheduled/http"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
	seatHttp "github.com/nekogravitycat/office-seat-booking/internal/seat/http"
	"github.com/nekogravitycat/office-seat-booking/internal/user"
)

// Config carries the services and settings the router is assembled from.
type Config struct {
	IsProduction      bool
	ProdOrigins       []string
	FloorPlanMaxBytes int64
	Logger            *slog.Logger

	UserService      user.Service
	EmployeeService  employee.Service
	OfficeService    office.Service
	SeatService      seat.Service
	FileService      file.Service
	ScheduledService scheduled.Service
	JWTManager       *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if err := request.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := gin.New()

	r.Use(gin.Recovery(), logging.Middleware(cfg.Logger))
	if !cfg.IsProduction {
		r.Use(gin.Logger())
	}

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // frontend dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{logging.RequestIDHeader}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks that the authenticated user is an admin.
	adminMiddleware := RequireAdmin(cfg.UserService)

	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	officeHandler := officeHttp.NewHandler(cfg.OfficeService, fileHandler, cfg.FloorPlanMaxBytes)
	seatHandler := seatHttp.NewHandler(cfg.SeatService)
	employeeHandler := employeeHttp.NewHandler(cfg.EmployeeService)
	scheduledHandler := scheduledHttp.NewHandler(cfg.ScheduledService)

	v1 := r.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)
		officeHttp.RegisterRoutes(v1, officeHandler, authMiddleware, adminMiddleware)
		seatHttp.RegisterRoutes(v1, seatHandler, authMiddleware, adminMiddleware)
		employeeHttp.RegisterRoutes(v1, employeeHandler, authMiddleware, adminMiddleware)
		scheduledHttp.RegisterRoutes(v1, scheduledHandler, authMiddleware)
	}

	return r, nil
}
