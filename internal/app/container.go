package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/LindembergOli/producao-imac-sub000/domain"
	"github.com/LindembergOli/producao-imac-sub000/internal/config"
	"github.com/LindembergOli/producao-imac-sub000/internal/infrastructure/audit"
	"github.com/LindembergOli/producao-imac-sub000/internal/infrastructure/auth"
	"github.com/LindembergOli/producao-imac-sub000/internal/infrastructure/database"
	"github.com/LindembergOli/producao-imac-sub000/internal/infrastructure/notifications"
	"github.com/LindembergOli/producao-imac-sub000/internal/infrastructure/repositories"
	"github.com/LindembergOli/producao-imac-sub000/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo    domain.UserRepository
	RefreshRepo domain.RefreshTokenRepository
	ResetRepo   domain.PasswordResetRepository

	// Services
	PasswordSvc     domain.PasswordService
	PasswordPolicy  domain.PasswordPolicy
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuditLogger     domain.AuditLogger
	AuthSvc         domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.RefreshRepo = repositories.NewRefreshTokenRepository(c.DB)
	c.ResetRepo = repositories.NewPasswordResetRepository(c.RedisClient)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptCost)
	c.PasswordPolicy = services.NewPasswordPolicy()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTAccessSecret,
		c.Config.JWTRefreshSecret,
		c.Config.JWTIssuer,
		c.Config.JWTAudience,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
		c.Config.TwilioAlertNumber,
	)
	c.AuditLogger = audit.NewLogAuditLogger()

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.RefreshRepo,
		c.ResetRepo,
		c.PasswordSvc,
		c.PasswordPolicy,
		c.TokenSvc,
		c.NotificationSvc,
		c.AuditLogger,
		services.AuthConfig{
			MaxFailedLogins: c.Config.LockoutMaxAttempts,
			LockoutDuration: c.Config.LockoutDuration,
			RefreshTTL:      c.Config.RefreshTTL,
			ResetTokenTTL:   c.Config.ResetTokenTTL,
			ResetTokenBytes: c.Config.ResetTokenBytes,
		},
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
