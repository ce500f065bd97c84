package app

import (
	"fmt"

	auditRepo "github.com/allisson/credentials/internal/audit/repository"
	auditService "github.com/allisson/credentials/internal/audit/service"
	auditUseCase "github.com/allisson/credentials/internal/audit/usecase"
)

// AuditRepository returns the request audit repository based on database driver.
func (c *Container) AuditRepository() (auditUseCase.AuditRepository, error) {
	return resolve(c, &c.auditRepositoryInit, "auditRepository", &c.auditRepository, c.initAuditRepository)
}

// AuditSigner returns the signer for request audit records. Signing keys are derived
// from the encryption keys.
func (c *Container) AuditSigner() (auditService.AuditSigner, error) {
	return resolve(c, &c.auditSignerInit, "auditSigner", &c.auditSigner, func() (auditService.AuditSigner, error) {
		registry, err := c.KeyRegistry()
		if err != nil {
			return nil, fmt.Errorf("failed to get key registry for audit signer: %w", err)
		}
		return auditService.NewAuditSigner(registry), nil
	})
}

// SecurityEventsLog returns the CEF security event sink.
func (c *Container) SecurityEventsLog() (auditService.SecurityEventsLog, error) {
	return resolve(
		c,
		&c.securityEventsLogInit,
		"securityEventsLog",
		&c.securityEventsLog,
		func() (auditService.SecurityEventsLog, error) {
			sink, err := auditService.OpenSecurityEventsLog(c.config.SecurityEventsLogPath, c.config.CEFProductVersion)
			if err != nil {
				return nil, fmt.Errorf("failed to open security events log: %w", err)
			}
			return sink, nil
		},
	)
}

// AuditRecorder returns the recorder writing security events and signed request records.
func (c *Container) AuditRecorder() (auditUseCase.AuditRecorder, error) {
	return resolve(c, &c.auditRecorderInit, "auditRecorder", &c.auditRecorder, c.initAuditRecorder)
}

func (c *Container) initAuditRepository() (auditUseCase.AuditRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return auditRepo.NewPostgreSQLAuditRepository(db), nil
	case "mysql":
		return auditRepo.NewMySQLAuditRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAuditRecorder() (auditUseCase.AuditRecorder, error) {
	repo, err := c.AuditRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit repository for audit recorder: %w", err)
	}

	signer, err := c.AuditSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit signer for audit recorder: %w", err)
	}

	eventsLog, err := c.SecurityEventsLog()
	if err != nil {
		return nil, fmt.Errorf("failed to get security events log for audit recorder: %w", err)
	}

	baseRecorder := auditUseCase.NewAuditRecorder(repo, signer, eventsLog, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for audit recorder: %w", err)
		}
		return auditUseCase.NewAuditRecorderWithMetrics(baseRecorder, businessMetrics), nil
	}

	return baseRecorder, nil
}
