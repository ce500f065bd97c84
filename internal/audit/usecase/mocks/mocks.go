// Package mocks provides testify mocks for the audit use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
)

// MockAuditRepository is a mock implementation of usecase.AuditRepository.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, record *auditDomain.RequestAuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByTimeRange(
	ctx context.Context,
	start, end time.Time,
	offset, limit int,
) ([]*auditDomain.RequestAuditRecord, error) {
	args := m.Called(ctx, start, end, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.RequestAuditRecord), args.Error(1)
}

// MockAuditRecorder is a mock implementation of usecase.AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(
	ctx context.Context,
	info *auditDomain.RequestInfo,
	statusCode int,
	actor string,
) error {
	args := m.Called(ctx, info, statusCode, actor)
	return args.Error(0)
}

func (m *MockAuditRecorder) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*auditDomain.VerificationReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditDomain.VerificationReport), args.Error(1)
}

// MockAuditSigner is a mock implementation of service.AuditSigner.
type MockAuditSigner struct {
	mock.Mock
}

func (m *MockAuditSigner) Sign(record *auditDomain.RequestAuditRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockAuditSigner) Verify(record *auditDomain.RequestAuditRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// MockSecurityEventsLog is a mock implementation of service.SecurityEventsLog.
type MockSecurityEventsLog struct {
	mock.Mock
}

func (m *MockSecurityEventsLog) Log(event *auditDomain.SecurityEventAuditRecord) error {
	args := m.Called(event)
	return args.Error(0)
}
