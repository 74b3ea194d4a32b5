package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/database"
	"github.com/taskmanager/pkg/dtos"
	"github.com/taskmanager/pkg/entities"
	"github.com/taskmanager/pkg/errutil"
	"github.com/taskmanager/pkg/metrics"
	"github.com/taskmanager/pkg/utils"
)

// TokenIssuer signs identity assertions for authenticated users.
type TokenIssuer interface {
	Issue(email string, userID uint) (string, error)
}

type Service interface {
	Register(ctx context.Context, req dtos.DTOForUserCreate) error
	Login(ctx context.Context, req dtos.DTOForUserLogin) (string, error)
	ProfileDetails(ctx context.Context, userID uint) (entities.User, error)
	ProfileUpdate(ctx context.Context, userID uint, req dtos.DTOForProfileUpdate) (entities.User, error)
	EmailVerify(ctx context.Context, email string) error
	CodeVerify(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, req dtos.ResetPasswordDTO) error
}

type service struct {
	repository Repository
	hasher     PasswordHasher
	tokens     TokenIssuer
	codes      *CodeService
}

func NewService(r Repository, hasher PasswordHasher, tokens TokenIssuer, codes *CodeService) Service {
	return &service{
		repository: r,
		hasher:     hasher,
		tokens:     tokens,
		codes:      codes,
	}
}

func (s *service) Register(ctx context.Context, req dtos.DTOForUserCreate) error {
	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		metrics.RecordAuth("register", metrics.ResultFailure)
		return err
	}

	user := entities.User{
		Email:     utils.NormalizeEmail(req.Email),
		Password:  passwordHash,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Mobile:    strings.TrimSpace(req.Mobile),
	}

	if err := s.repository.CreateUser(ctx, &user); err != nil {
		if database.IsDuplicateKey(err) {
			metrics.RecordAuth("register", metrics.ResultFailure)
			return errutil.Conflict(fmt.Sprintf(constant.ALREADY_EXISTS, "User"))
		}
		return errutil.Internal("create user", err)
	}

	metrics.RecordAuth("register", metrics.ResultSuccess)
	return nil
}

func (s *service) Login(ctx context.Context, req dtos.DTOForUserLogin) (string, error) {
	user, err := s.repository.FindUserByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordAuth("login", metrics.ResultNotFound)
			return "", errutil.Credentials(constant.USER_NOT_FOUND)
		}
		return "", errutil.Internal("find user by email", err)
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		metrics.RecordAuth("login", metrics.ResultFailure)
		return "", errutil.Credentials(constant.INVALID_PASSWORD)
	}

	token, err := s.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return "", errutil.Internal("issue token", err)
	}

	metrics.RecordAuth("login", metrics.ResultSuccess)
	return token, nil
}

func (s *service) ProfileDetails(ctx context.Context, userID uint) (entities.User, error) {
	user, err := s.repository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, errutil.NotFound(constant.USER_NOT_FOUND)
		}
		return entities.User{}, errutil.Internal("find user by id", err)
	}
	return user, nil
}

func (s *service) ProfileUpdate(ctx context.Context, userID uint, req dtos.DTOForProfileUpdate) (entities.User, error) {
	fields := map[string]any{}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Mobile != nil {
		fields["mobile"] = strings.TrimSpace(*req.Mobile)
	}

	user, err := s.repository.UpdateProfile(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, errutil.NotFound(constant.USER_NOT_FOUND)
		}
		return entities.User{}, errutil.Internal("update profile", err)
	}
	return user, nil
}

func (s *service) EmailVerify(ctx context.Context, email string) error {
	err := s.codes.Issue(ctx, utils.NormalizeEmail(email))
	recordCodeFlow("email_verify", err)
	return err
}

func (s *service) CodeVerify(ctx context.Context, email, code string) error {
	err := s.codes.Verify(ctx, utils.NormalizeEmail(email), strings.TrimSpace(code))
	recordCodeFlow("code_verify", err)
	return err
}

func (s *service) ResetPassword(ctx context.Context, req dtos.ResetPasswordDTO) error {
	err := s.resetPassword(ctx, utils.NormalizeEmail(req.Email), strings.TrimSpace(req.Code), req.Password)
	recordCodeFlow("reset_password", err)
	return err
}

// resetPassword checks the code before paying for a hash. Consume re-checks it atomically.
func (s *service) resetPassword(ctx context.Context, email, code, password string) error {
	if err := s.codes.Verify(ctx, email, code); err != nil {
		return err
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	return s.codes.Consume(ctx, email, code, passwordHash)
}

func (s *service) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, ErrPasswordTooLong) {
		return "", errutil.Validation(constant.PASSWORD_TOO_LONG)
	}
	if err != nil {
		return "", errutil.Internal("hash password", err)
	}
	return hash, nil
}

func recordCodeFlow(flow string, err error) {
	switch {
	case err == nil:
		metrics.RecordAuth(flow, metrics.ResultSuccess)
	case errutil.IsCode(err, errutil.CodeNotFound):
		metrics.RecordAuth(flow, metrics.ResultNotFound)
	default:
		metrics.RecordAuth(flow, metrics.ResultFailure)
	}
}
