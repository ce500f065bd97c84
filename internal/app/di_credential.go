package app

import (
	"fmt"

	credentialHTTP "github.com/allisson/credentials/internal/credential/http"
	credentialRepo "github.com/allisson/credentials/internal/credential/repository"
	credentialService "github.com/allisson/credentials/internal/credential/service"
	credentialUseCase "github.com/allisson/credentials/internal/credential/usecase"
	permissionUseCase "github.com/allisson/credentials/internal/permission/usecase"
)

// credentialRepository is satisfied by both credential repositories. The permission
// index searches through the same store.
type credentialRepository interface {
	credentialUseCase.CredentialRepository
	permissionUseCase.CredentialFinder
}

// CredentialRepository returns the credential repository based on database driver.
func (c *Container) CredentialRepository() (credentialRepository, error) {
	return resolve(
		c,
		&c.credentialRepositoryInit,
		"credentialRepository",
		&c.credentialRepository,
		c.initCredentialRepository,
	)
}

// CredentialUseCase returns the credential use case.
func (c *Container) CredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	return resolve(c, &c.credentialUseCaseInit, "credentialUseCase", &c.credentialUseCase, c.initCredentialUseCase)
}

// RotationUseCase returns the use case re-encrypting versions under the active key.
func (c *Container) RotationUseCase() (credentialUseCase.RotationUseCase, error) {
	return resolve(c, &c.rotationUseCaseInit, "rotationUseCase", &c.rotationUseCase, c.initRotationUseCase)
}

// CredentialHandler returns the HTTP handler for credential operations.
func (c *Container) CredentialHandler() (*credentialHTTP.CredentialHandler, error) {
	return resolve(c, &c.credentialHandlerInit, "credentialHandler", &c.credentialHandler, c.initCredentialHandler)
}

func (c *Container) initCredentialRepository() (credentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return credentialRepo.NewPostgreSQLCredentialRepository(db), nil
	case "mysql":
		return credentialRepo.NewMySQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// generators wires the secret generators. They share one RSA key pair generator.
func (c *Container) generators() credentialUseCase.Generators {
	passwords := credentialService.NewPasswordGenerator(c.config.PasswordDefaultLength)
	salts := credentialService.NewCryptSaltFactory()
	keyPairs := credentialService.NewRsaKeyPairGenerator()

	return credentialUseCase.Generators{
		Password: passwords,
		User: credentialService.NewUserGenerator(
			credentialService.NewUsernameGenerator(passwords),
			passwords,
			salts,
		),
		Rsa:         credentialService.NewRsaGenerator(keyPairs),
		Ssh:         credentialService.NewSshGenerator(keyPairs),
		Certificate: credentialService.NewCertificateGenerator(keyPairs),
		Salt:        salts,
		Strength:    credentialService.NewPasswordStrengthChecker(c.config.PasswordMinStrengthScore),
	}
}

func (c *Container) initCredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for credential use case: %w", err)
	}

	repo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for credential use case: %w", err)
	}

	encryptor, err := c.Encryptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryptor for credential use case: %w", err)
	}

	baseUseCase := credentialUseCase.NewCredentialUseCase(
		txManager,
		repo,
		encryptor,
		c.generators(),
		c.config.PasswordDefaultLength,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
		}
		return credentialUseCase.NewCredentialUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initRotationUseCase() (credentialUseCase.RotationUseCase, error) {
	repo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for rotation use case: %w", err)
	}

	encryptor, err := c.Encryptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryptor for rotation use case: %w", err)
	}

	baseUseCase := credentialUseCase.NewRotationUseCase(repo, encryptor, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for rotation use case: %w", err)
		}
		return credentialUseCase.NewRotationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initCredentialHandler() (*credentialHTTP.CredentialHandler, error) {
	credentials, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for credential handler: %w", err)
	}

	permissions, err := c.PermissionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission use case for credential handler: %w", err)
	}

	index, err := c.PermissionIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission index for credential handler: %w", err)
	}

	return credentialHTTP.NewCredentialHandler(credentials, permissions, index, c.Logger()), nil
}
