package repositories

// RepositoryProvider holds all the repository facades used by the services
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	RoleRepo       RoleRepositoryFacade
	LocationRepo   LocationRepositoryFacade
	AssignmentRepo AssignmentRepositoryFacade
	AuditRepo      AuditLogRepositoryFacade
}
