package app

import (
	"context"
	"fmt"

	cryptoRepository "github.com/allisson/credentials/internal/crypto/repository"
	cryptoService "github.com/allisson/credentials/internal/crypto/service"
	cryptoUseCase "github.com/allisson/credentials/internal/crypto/usecase"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KMSService returns the KMS service used to unwrap encryption keys.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyRegistry returns the registry of configured encryption keys.
func (c *Container) KeyRegistry() (*cryptoService.KeyRegistry, error) {
	return resolve(c, &c.keyRegistryInit, "keyRegistry", &c.keyRegistry, c.initKeyRegistry)
}

// Encryptor returns the encryptor bound to the key registry.
func (c *Container) Encryptor() (*cryptoService.Encryptor, error) {
	return resolve(c, &c.encryptorInit, "encryptor", &c.encryptor, func() (*cryptoService.Encryptor, error) {
		registry, err := c.KeyRegistry()
		if err != nil {
			return nil, fmt.Errorf("failed to get key registry for encryptor: %w", err)
		}
		return cryptoService.NewEncryptor(registry), nil
	})
}

// CanaryRepository returns the canary repository based on database driver.
func (c *Container) CanaryRepository() (cryptoUseCase.CanaryRepository, error) {
	return resolve(c, &c.canaryRepositoryInit, "canaryRepository", &c.canaryRepository, c.initCanaryRepository)
}

// CanaryUseCase returns the canary use case.
func (c *Container) CanaryUseCase() (cryptoUseCase.CanaryUseCase, error) {
	return resolve(c, &c.canaryUseCaseInit, "canaryUseCase", &c.canaryUseCase, c.initCanaryUseCase)
}

// initKeyRegistry parses ENCRYPTION_KEYS, unwrapping them with KMS when configured.
func (c *Container) initKeyRegistry() (*cryptoService.KeyRegistry, error) {
	registry, err := cryptoService.LoadKeyRegistry(
		context.Background(),
		cryptoService.KeyRegistryConfig{
			EncryptionKeys:   c.config.EncryptionKeys,
			ActiveKeyID:      c.config.ActiveEncryptionKeyID,
			DefaultAlgorithm: c.config.EncryptionAlgorithm,
			KMSKeyURI:        c.config.KMSKeyURI,
		},
		c.KMSService(),
		c.AEADManager(),
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load key registry: %w", err)
	}
	return registry, nil
}

func (c *Container) initCanaryRepository() (cryptoUseCase.CanaryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for canary repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return cryptoRepository.NewPostgreSQLCanaryRepository(db), nil
	case "mysql":
		return cryptoRepository.NewMySQLCanaryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initCanaryUseCase() (cryptoUseCase.CanaryUseCase, error) {
	registry, err := c.KeyRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to get key registry for canary use case: %w", err)
	}

	canaryRepository, err := c.CanaryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get canary repository for canary use case: %w", err)
	}

	baseUseCase := cryptoUseCase.NewCanaryUseCase(registry, canaryRepository, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for canary use case: %w", err)
		}
		return cryptoUseCase.NewCanaryUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
