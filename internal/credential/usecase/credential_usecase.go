package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	credentialService "github.com/allisson/credentials/internal/credential/service"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
)

// Generators groups the services used to produce credential values.
type Generators struct {
	Password    credentialService.PasswordGenerator
	User        credentialService.UserGenerator
	Rsa         credentialService.RsaGenerator
	Ssh         credentialService.SshGenerator
	Certificate credentialService.CertificateGenerator
	Salt        credentialService.SaltFactory
	Strength    credentialService.PasswordStrengthChecker
}

type credentialUseCase struct {
	txManager             database.TxManager
	repo                  CredentialRepository
	encryptor             Encryptor
	generators            Generators
	defaultPasswordLength int
}

// NewCredentialUseCase creates a CredentialUseCase.
func NewCredentialUseCase(
	txManager database.TxManager,
	repo CredentialRepository,
	encryptor Encryptor,
	generators Generators,
	defaultPasswordLength int,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:             txManager,
		repo:                  repo,
		encryptor:             encryptor,
		generators:            generators,
		defaultPasswordLength: defaultPasswordLength,
	}
}

func (c *credentialUseCase) Set(
	ctx context.Context,
	input *credentialDomain.SetInput,
) (credentialDomain.CredentialVersion, error) {
	name := credentialDomain.NormalizeName(input.Name)

	version, err := c.newSetVersion(name, input.Type, input.Value)
	if err != nil {
		return nil, err
	}

	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := c.findExisting(txCtx, name, input.Type); err != nil {
			return err
		}
		return c.repo.Save(txCtx, version.Data())
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

func (c *credentialUseCase) newSetVersion(
	name string,
	t credentialDomain.CredentialType,
	value credentialDomain.CredentialValue,
) (credentialDomain.CredentialVersion, error) {
	switch t {
	case credentialDomain.TypePassword:
		password, err := valueAs[credentialDomain.StringCredentialValue](value)
		if err != nil {
			return nil, err
		}
		if err := c.generators.Strength.Check(string(password)); err != nil {
			return nil, err
		}
		version := credentialDomain.NewPasswordCredentialVersion(name, c.encryptor)
		return version, version.SetPasswordAndGenerationParameters(string(password), nil)

	case credentialDomain.TypeUser:
		user, err := valueAs[*credentialDomain.UserCredentialValue](value)
		if err != nil {
			return nil, err
		}
		if user == nil || user.Password == "" {
			return nil, credentialDomain.ErrMissingValue
		}
		if err := c.generators.Strength.Check(user.Password, user.Username); err != nil {
			return nil, err
		}
		salt, err := c.generators.Salt.GenerateSalt(user.Password)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewUserCredentialVersion(name, c.encryptor)
		stored := &credentialDomain.UserCredentialValue{Username: user.Username, Password: user.Password, Salt: salt}
		return version, version.SetValue(stored, nil)

	case credentialDomain.TypeValue:
		s, err := valueAs[credentialDomain.StringCredentialValue](value)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewValueCredentialVersion(name, c.encryptor)
		return version, version.SetValue(string(s))

	case credentialDomain.TypeJSON:
		m, err := valueAs[credentialDomain.JSONCredentialValue](value)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewJSONCredentialVersion(name, c.encryptor)
		return version, version.SetValue(m)

	case credentialDomain.TypeRsa:
		keys, err := valueAs[*credentialDomain.RsaCredentialValue](value)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewRsaCredentialVersion(name, c.encryptor)
		return version, version.SetValue(keys, nil)

	case credentialDomain.TypeSsh:
		keys, err := valueAs[*credentialDomain.SshCredentialValue](value)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewSshCredentialVersion(name, c.encryptor)
		return version, version.SetValue(keys, nil)

	case credentialDomain.TypeCertificate:
		cert, err := valueAs[*credentialDomain.CertificateCredentialValue](value)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewCertificateCredentialVersion(name, c.encryptor)
		return version, version.SetValue(cert, nil)

	default:
		return nil, credentialDomain.ErrUnknownCredentialType
	}
}

func (c *credentialUseCase) Generate(
	ctx context.Context,
	input *credentialDomain.GenerateInput,
) (credentialDomain.CredentialVersion, error) {
	if _, err := credentialDomain.ParseCredentialType(string(input.Type)); err != nil {
		return nil, err
	}
	if !input.Type.Generatable() {
		return nil, credentialDomain.ErrCannotGenerateType
	}
	name := credentialDomain.NormalizeName(input.Name)
	requested, err := c.normalizeParameters(input.Type, input.Parameters)
	if err != nil {
		return nil, err
	}

	var result credentialDomain.CredentialVersion
	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := c.findExisting(txCtx, name, input.Type)
		if err != nil {
			return err
		}
		if existing != nil && !input.Overwrite {
			matches, err := existing.MatchesGenerationParameters(requested)
			if err != nil {
				return err
			}
			if matches {
				result = existing
				return nil
			}
		}

		version, err := c.generateVersion(name, input.Type, input.Parameters, input.Value)
		if err != nil {
			return err
		}
		if err := c.repo.Save(txCtx, version.Data()); err != nil {
			return err
		}
		result = version
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *credentialUseCase) Regenerate(ctx context.Context, name string) (credentialDomain.CredentialVersion, error) {
	name = credentialDomain.NormalizeName(name)

	var result credentialDomain.CredentialVersion
	err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := c.findExisting(txCtx, name, "")
		if err != nil {
			return err
		}
		if existing == nil {
			return credentialDomain.ErrCredentialNotFound
		}

		regenerable, ok := existing.(credentialDomain.Regenerable)
		if !ok {
			return credentialDomain.ErrCannotRegenerate
		}
		params, err := regenerable.StoredGenerationParameters()
		if err != nil {
			return err
		}
		if params == nil {
			return credentialDomain.ErrCannotRegenerate
		}

		var value *credentialDomain.UserCredentialValue
		if existing.CredentialType() == credentialDomain.TypeUser {
			value = &credentialDomain.UserCredentialValue{Username: existing.Data().Username}
		}

		version, err := c.generateVersion(name, existing.CredentialType(), params, value)
		if err != nil {
			return err
		}
		if err := c.repo.Save(txCtx, version.Data()); err != nil {
			return err
		}
		result = version
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *credentialUseCase) generateVersion(
	name string,
	t credentialDomain.CredentialType,
	params credentialDomain.GenerationParameters,
	value *credentialDomain.UserCredentialValue,
) (credentialDomain.CredentialVersion, error) {
	switch t {
	case credentialDomain.TypePassword:
		p, err := paramsAs[*credentialDomain.StringGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		p = p.WithDefaults(c.defaultPasswordLength)
		p.Username = ""
		password, err := c.generators.Password.Generate(p)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewPasswordCredentialVersion(name, c.encryptor)
		return version, version.SetPasswordAndGenerationParameters(password, p)

	case credentialDomain.TypeUser:
		p, err := paramsAs[*credentialDomain.StringGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		p = p.WithDefaults(c.defaultPasswordLength)
		user, err := c.generators.User.Generate(p, value)
		if err != nil {
			return nil, err
		}
		stored := *p
		stored.Username = ""
		version := credentialDomain.NewUserCredentialVersion(name, c.encryptor)
		return version, version.SetValue(user, &stored)

	case credentialDomain.TypeRsa:
		p, err := paramsAs[*credentialDomain.RsaSshGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		p = p.WithDefaults()
		keys, err := c.generators.Rsa.Generate(p)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewRsaCredentialVersion(name, c.encryptor)
		return version, version.SetValue(keys, p)

	case credentialDomain.TypeSsh:
		p, err := paramsAs[*credentialDomain.SshGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		p = p.WithDefaults()
		keys, err := c.generators.Ssh.Generate(p)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewSshCredentialVersion(name, c.encryptor)
		return version, version.SetValue(keys, p)

	case credentialDomain.TypeCertificate:
		p, err := paramsAs[*credentialDomain.CertificateGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		p = p.WithDefaults()
		cert, err := c.generators.Certificate.Generate(p)
		if err != nil {
			return nil, err
		}
		version := credentialDomain.NewCertificateCredentialVersion(name, c.encryptor)
		return version, version.SetValue(cert, p)

	default:
		return nil, credentialDomain.ErrCannotGenerateType
	}
}

// normalizeParameters applies the type's defaults so requested parameters compare
// equal to the stored ones. Nil stays nil.
func (c *credentialUseCase) normalizeParameters(
	t credentialDomain.CredentialType,
	params credentialDomain.GenerationParameters,
) (credentialDomain.GenerationParameters, error) {
	if params == nil {
		return nil, nil
	}

	switch t {
	case credentialDomain.TypePassword, credentialDomain.TypeUser:
		p, err := paramsAs[*credentialDomain.StringGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		p = p.WithDefaults(c.defaultPasswordLength)
		if t == credentialDomain.TypePassword {
			p.Username = ""
		}
		return p, nil
	case credentialDomain.TypeRsa:
		p, err := paramsAs[*credentialDomain.RsaSshGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		return p.WithDefaults(), nil
	case credentialDomain.TypeSsh:
		p, err := paramsAs[*credentialDomain.SshGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		return p.WithDefaults(), nil
	case credentialDomain.TypeCertificate:
		p, err := paramsAs[*credentialDomain.CertificateGenerationParameters](params)
		if err != nil {
			return nil, err
		}
		return p.WithDefaults(), nil
	default:
		return nil, credentialDomain.ErrCannotGenerateType
	}
}

func (c *credentialUseCase) GetByName(
	ctx context.Context,
	name string,
	current bool,
	versions int,
) ([]credentialDomain.CredentialVersion, error) {
	name = credentialDomain.NormalizeName(name)

	if current {
		data, err := c.repo.FindMostRecent(ctx, name)
		if err != nil {
			return nil, err
		}
		version, err := credentialDomain.NewCredentialVersionFromData(data, c.encryptor)
		if err != nil {
			return nil, err
		}
		return []credentialDomain.CredentialVersion{version}, nil
	}

	rows, err := c.repo.FindAllVersions(ctx, name, versions)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, credentialDomain.ErrCredentialNotFound
	}

	result := make([]credentialDomain.CredentialVersion, 0, len(rows))
	for _, data := range rows {
		version, err := credentialDomain.NewCredentialVersionFromData(data, c.encryptor)
		if err != nil {
			return nil, err
		}
		result = append(result, version)
	}
	return result, nil
}

func (c *credentialUseCase) GetByID(ctx context.Context, id uuid.UUID) (credentialDomain.CredentialVersion, error) {
	data, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return credentialDomain.NewCredentialVersionFromData(data, c.encryptor)
}

// findExisting returns the current version of name, or nil when there is none. A
// non-empty t must match the stored type.
func (c *credentialUseCase) findExisting(
	ctx context.Context,
	name string,
	t credentialDomain.CredentialType,
) (credentialDomain.CredentialVersion, error) {
	data, err := c.repo.FindMostRecent(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if t != "" && data.Type != t {
		return nil, credentialDomain.ErrTypeMismatch
	}
	return credentialDomain.NewCredentialVersionFromData(data, c.encryptor)
}

func valueAs[T credentialDomain.CredentialValue](value credentialDomain.CredentialValue) (T, error) {
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, credentialDomain.ErrMissingValue
	}
	return typed, nil
}

// paramsAs converts params to T. Nil params give the zero T, which every parameter
// type's WithDefaults accepts.
func paramsAs[T credentialDomain.GenerationParameters](params credentialDomain.GenerationParameters) (T, error) {
	var zero T
	if params == nil {
		return zero, nil
	}
	typed, ok := params.(T)
	if !ok {
		return zero, credentialDomain.ErrInvalidParameters
	}
	return typed, nil
}
