package app

import (
	"fmt"

	permissionHTTP "github.com/allisson/credentials/internal/permission/http"
	permissionRepo "github.com/allisson/credentials/internal/permission/repository"
	permissionUseCase "github.com/allisson/credentials/internal/permission/usecase"
)

// PermissionRepository returns the permission repository based on database driver.
func (c *Container) PermissionRepository() (permissionUseCase.PermissionRepository, error) {
	return resolve(
		c,
		&c.permissionRepositoryInit,
		"permissionRepository",
		&c.permissionRepository,
		c.initPermissionRepository,
	)
}

// PermissionUseCase returns the permission use case.
func (c *Container) PermissionUseCase() (permissionUseCase.PermissionUseCase, error) {
	return resolve(c, &c.permissionUseCaseInit, "permissionUseCase", &c.permissionUseCase, c.initPermissionUseCase)
}

// PermissionIndex returns the ACL-filtered credential search.
func (c *Container) PermissionIndex() (permissionUseCase.PermissionIndex, error) {
	return resolve(c, &c.permissionIndexInit, "permissionIndex", &c.permissionIndex, c.initPermissionIndex)
}

// PermissionHandler returns the HTTP handler for permission grants.
func (c *Container) PermissionHandler() (*permissionHTTP.PermissionHandler, error) {
	return resolve(
		c,
		&c.permissionHandlerInit,
		"permissionHandler",
		&c.permissionHandler,
		func() (*permissionHTTP.PermissionHandler, error) {
			useCase, err := c.PermissionUseCase()
			if err != nil {
				return nil, fmt.Errorf("failed to get permission use case for permission handler: %w", err)
			}
			return permissionHTTP.NewPermissionHandler(useCase, c.Logger()), nil
		},
	)
}

func (c *Container) initPermissionRepository() (permissionUseCase.PermissionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for permission repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return permissionRepo.NewPostgreSQLPermissionRepository(db), nil
	case "mysql":
		return permissionRepo.NewMySQLPermissionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initPermissionUseCase() (permissionUseCase.PermissionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for permission use case: %w", err)
	}

	repo, err := c.PermissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission repository for permission use case: %w", err)
	}

	baseUseCase := permissionUseCase.NewPermissionUseCase(txManager, repo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for permission use case: %w", err)
		}
		return permissionUseCase.NewPermissionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initPermissionIndex() (permissionUseCase.PermissionIndex, error) {
	repo, err := c.PermissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission repository for permission index: %w", err)
	}

	finder, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for permission index: %w", err)
	}

	baseIndex := permissionUseCase.NewPermissionIndex(repo, finder)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for permission index: %w", err)
		}
		return permissionUseCase.NewPermissionIndexWithMetrics(baseIndex, businessMetrics), nil
	}

	return baseIndex, nil
}
