package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
	"github.com/allisson/credentials/internal/permission/usecase/mocks"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func version(name string, age time.Duration) *credentialDomain.CredentialVersionData {
	return &credentialDomain.CredentialVersionData{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Type:      credentialDomain.TypePassword,
		CreatedAt: baseTime.Add(-age),
	}
}

func newIndex(
	repo *mocks.MockPermissionRepository,
	finder *mocks.MockCredentialFinder,
) *permissionIndex {
	index := NewPermissionIndex(repo, finder).(*permissionIndex)
	index.now = func() time.Time { return baseTime }
	return index
}

func TestPermissionIndex_FindByPath(t *testing.T) {
	ctx := context.Background()

	t.Run("wildcard grant filters siblings and orders newest first", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		a := version("/path/to/credentialA", 2*time.Hour)
		b := version("/path/to/credentialB", time.Hour)
		// The store only filters on the lowercased prefix, so a sibling sharing the
		// text prefix can still come back.
		sibling := version("/path/toX/credentialA", 0)

		finder.On("FindAllCurrentByNamePrefix", ctx, "/path/to/").
			Return([]*credentialDomain.CredentialVersionData{a, sibling, b}, nil).Once()
		repo.On("FindByActor", ctx, "alice").Return([]*permissionDomain.Permission{
			{Path: "/path/to/*", Operations: []permissionDomain.Operation{permissionDomain.OperationRead}},
		}, nil).Once()

		result, err := newIndex(repo, finder).FindByPath(ctx, "/path/to", "alice", nil)
		require.NoError(t, err)
		assert.Equal(t, []*credentialDomain.CredentialVersionData{b, a}, result)
	})

	t.Run("prefix must align on a segment", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		inside := version("/my-namespace/db", 0)
		outside := version("/my-namespace2/db", 0)

		finder.On("FindAllCurrentByNamePrefix", ctx, "/my-namespace/").
			Return([]*credentialDomain.CredentialVersionData{inside, outside}, nil).Once()
		repo.On("FindByActor", ctx, "alice").Return([]*permissionDomain.Permission{
			{Path: "/*", Operations: []permissionDomain.Operation{permissionDomain.OperationRead}},
		}, nil).Once()

		result, err := newIndex(repo, finder).FindByPath(ctx, "my-namespace", "alice", nil)
		require.NoError(t, err)
		assert.Equal(t, []*credentialDomain.CredentialVersionData{inside}, result)
	})

	t.Run("names not covered by any grant are hidden", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		finder.On("FindAllCurrentByNamePrefix", ctx, "/team/").
			Return([]*credentialDomain.CredentialVersionData{version("/team/secret", 0)}, nil).Once()
		repo.On("FindByActor", ctx, "bob").Return([]*permissionDomain.Permission{}, nil).Once()

		result, err := newIndex(repo, finder).FindByPath(ctx, "/team", "bob", nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("grants without read hide names", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		finder.On("FindAllCurrentByNamePrefix", ctx, "/prod/").
			Return([]*credentialDomain.CredentialVersionData{version("/prod/db-password", 0)}, nil).Once()
		repo.On("FindByActor", ctx, "writer").Return([]*permissionDomain.Permission{
			{Path: "/prod/*", Operations: []permissionDomain.Operation{
				permissionDomain.OperationWrite,
				permissionDomain.OperationDelete,
				permissionDomain.OperationReadACL,
				permissionDomain.OperationWriteACL,
			}},
		}, nil).Once()

		result, err := newIndex(repo, finder).FindByPath(ctx, "/prod", "writer", nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("no candidates skips the permission lookup", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		finder.On("FindAllCurrentByNamePrefix", ctx, "/empty/").
			Return([]*credentialDomain.CredentialVersionData{}, nil).Once()

		result, err := newIndex(repo, finder).FindByPath(ctx, "/empty", "bob", nil)
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		repo.AssertNotCalled(t, "FindByActor")
	})

	t.Run("expiry filter", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		soon := version("/certs/soon", 0)
		soonExpiry := baseTime.AddDate(0, 0, 10)
		soon.ExpiryDate = &soonExpiry
		later := version("/certs/later", 0)
		laterExpiry := baseTime.AddDate(0, 0, 100)
		later.ExpiryDate = &laterExpiry
		noExpiry := version("/certs/password", 0)

		finder.On("FindAllCurrentByNamePrefix", ctx, "/certs/").
			Return([]*credentialDomain.CredentialVersionData{soon, later, noExpiry}, nil).Once()
		repo.On("FindByActor", ctx, "alice").Return([]*permissionDomain.Permission{
			{Path: "/certs/*", Operations: []permissionDomain.Operation{permissionDomain.OperationRead}},
		}, nil).Once()

		days := 30
		result, err := newIndex(repo, finder).FindByPath(ctx, "/certs", "alice", &days)
		require.NoError(t, err)
		assert.Equal(t, []*credentialDomain.CredentialVersionData{soon}, result)
	})

	t.Run("finder error", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		finder.On("FindAllCurrentByNamePrefix", ctx, "/x/").Return(nil, errors.New("db down")).Once()

		_, err := newIndex(repo, finder).FindByPath(ctx, "/x", "alice", nil)
		assert.ErrorContains(t, err, "failed to find credentials by path: db down")
	})
}

func TestPermissionIndex_FindByNameLike(t *testing.T) {
	ctx := context.Background()

	t.Run("case-insensitive substring", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		match := version("/my-namespace/db", time.Minute)
		newer := version("/other/my-namespace-copy", 0)

		finder.On("FindAllCurrentByNameLike", ctx, "NAMESPACE").
			Return([]*credentialDomain.CredentialVersionData{match, newer}, nil).Once()
		repo.On("FindByActor", ctx, "alice").Return([]*permissionDomain.Permission{
			{Path: "/my-namespace/*", Operations: []permissionDomain.Operation{permissionDomain.OperationRead}},
			{Path: "/other/my-namespace-copy", Operations: []permissionDomain.Operation{permissionDomain.OperationRead}},
		}, nil).Once()

		result, err := newIndex(repo, finder).FindByNameLike(ctx, "NAMESPACE", "alice", nil)
		require.NoError(t, err)
		assert.Equal(t, []*credentialDomain.CredentialVersionData{newer, match}, result)
	})

	t.Run("write-only grant hides names", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		finder.On("FindAllCurrentByNameLike", ctx, "prod").
			Return([]*credentialDomain.CredentialVersionData{version("/prod/db-password", 0)}, nil).Once()
		repo.On("FindByActor", ctx, "writer").Return([]*permissionDomain.Permission{
			{Path: "/prod/*", Operations: []permissionDomain.Operation{permissionDomain.OperationWrite}},
		}, nil).Once()

		result, err := newIndex(repo, finder).FindByNameLike(ctx, "prod", "writer", nil)
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("permission lookup error", func(t *testing.T) {
		repo := &mocks.MockPermissionRepository{}
		finder := &mocks.MockCredentialFinder{}

		finder.On("FindAllCurrentByNameLike", ctx, "db").
			Return([]*credentialDomain.CredentialVersionData{version("/db", 0)}, nil).Once()
		repo.On("FindByActor", ctx, "alice").Return(nil, errors.New("db down")).Once()

		_, err := newIndex(repo, finder).FindByNameLike(ctx, "db", "alice", nil)
		assert.ErrorContains(t, err, "failed to find permissions: db down")
	})
}
