package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/office-seat-booking/internal/api"
	"github.com/nekogravitycat/office-seat-booking/internal/auth"
	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/file"
	"github.com/nekogravitycat/office-seat-booking/internal/office"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/cache"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/storage"
	"github.com/nekogravitycat/office-seat-booking/internal/scheduled"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
	"github.com/nekogravitycat/office-seat-booking/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	ProdOrigins       []string
	DBPool            *pgxpool.Pool
	Cache             cache.Cache // nil disables lookup caching
	Logger            *slog.Logger
	JWTSecret         string
	JWTTTL            time.Duration
	BcryptCost        int
	AdminEmails       []string
	Location          *time.Location
	StoragePath       string
	FloorPlanMaxBytes int64
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router           *gin.Engine
	JWTManager       *auth.JWTManager
	ScheduledService scheduled.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	// Employee Module
	employeeRepo := employee.NewPgxRepository(cfg.DBPool)
	employeeService := employee.NewService(employeeRepo, cfg.Cache)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, employeeService, passwordHasher, cfg.AdminEmails)

	// File Module
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store)

	// Office Module
	officeRepo := office.NewPgxRepository(cfg.DBPool)
	officeService := office.NewService(officeRepo, cfg.Cache)

	// Seat Module
	seatRepo := seat.NewPgxRepository(cfg.DBPool)
	seatService := seat.NewService(seatRepo, officeService, cfg.Cache)

	// Scheduled Seat Module
	scheduledRepo := scheduled.NewPgxRepository(cfg.DBPool)
	scheduledService := scheduled.NewService(scheduledRepo, seatService, employeeService, scheduled.SystemClock, cfg.Location)

	router, err := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		FloorPlanMaxBytes: cfg.FloorPlanMaxBytes,
		Logger:            cfg.Logger,
		UserService:       userService,
		EmployeeService:   employeeService,
		OfficeService:     officeService,
		SeatService:       seatService,
		FileService:       fileService,
		ScheduledService:  scheduledService,
		JWTManager:        jwtManager,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Router:           router,
		JWTManager:       jwtManager,
		ScheduledService: scheduledService,
	}, nil
}
