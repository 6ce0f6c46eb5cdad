package services

import (
	"github.com/redis/go-redis/v9"
	portsrepo "github.com/tablekit/resto_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/tablekit/resto_backoffice_app/internal/core/ports/services"
	"github.com/tablekit/resto_backoffice_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache *redis.Client) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since most services record through it
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Role = NewRoleService(repos.RoleRepo)

	container.Session = NewSessionService(
		repos.UserRepo,
		repos.AssignmentRepo,
		repos.LocationRepo,
		container.Audit,
		cache,
		cfg.SessionCacheTTL,
	)

	container.Location = NewLocationService(repos.LocationRepo, container.Audit)

	container.User = NewUserService(
		repos.UserRepo,
		repos.RoleRepo,
		repos.AssignmentRepo,
		container.Session,
		container.Audit,
	)

	// Initialize TokenService
	container.TokenService = NewTokenService(cfg, container.User)

	// Initialize GoogleOAuthHandlerSvcFacade
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade     = (*userService)(nil)
	_ portssvc.SessionSvcFacade  = (*sessionService)(nil)
	_ portssvc.LocationSvcFacade = (*locationService)(nil)
)
