package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/errutil"
	"github.com/taskmanager/pkg/mail"
	"github.com/taskmanager/pkg/utils"
)

// CodeService issues, checks and consumes the one-time codes used for password recovery.
type CodeService struct {
	repository Repository
	mailer     mail.Sender
	ttl        time.Duration
	subject    string
	now        func() time.Time
	generate   func() (string, error)
}

func NewCodeService(r Repository, mailer mail.Sender, ttl time.Duration) *CodeService {
	return &CodeService{
		repository: r,
		mailer:     mailer,
		ttl:        ttl,
		subject:    constant.VERIFICATION_TITLE,
		now:        func() time.Time { return time.Now().UTC() },
		generate:   utils.GenerateVerificationCode,
	}
}

// Issue mails a fresh code to email and stores it only once delivery succeeded.
func (c *CodeService) Issue(ctx context.Context, email string) error {
	if _, err := c.repository.FindUserByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errutil.NotFound(constant.EMAIL_NOT_EXIST)
		}
		return errutil.Internal("find user by email", err)
	}

	code, err := c.generate()
	if err != nil {
		return errutil.Internal("generate verification code", err)
	}

	if err := c.mailer.Send(ctx, email, c.subject, fmt.Sprintf(constant.VERIFICATION_BODY, code)); err != nil {
		return errutil.DeliveryWrap(constant.EMAIL_SEND_FAILED, err)
	}

	saved, err := c.repository.SaveCode(ctx, email, code, c.now().Add(c.ttl))
	if err != nil {
		return errutil.Internal("save verification code", err)
	}
	if !saved {
		return errutil.NotFound(constant.EMAIL_NOT_EXIST)
	}
	return nil
}

// Verify reports whether code is the live code for email. It does not consume the code.
func (c *CodeService) Verify(ctx context.Context, email, code string) error {
	if !utils.IsVerificationCode(code) {
		return errutil.Validation(constant.WRONG_CODE)
	}
	ok, err := c.repository.CodeMatches(ctx, email, code, c.now())
	if err != nil {
		return errutil.Internal("match verification code", err)
	}
	if !ok {
		return errutil.Validation(constant.WRONG_CODE)
	}
	return nil
}

// Consume sets passwordHash and invalidates the code in a single conditional update.
func (c *CodeService) Consume(ctx context.Context, email, code, passwordHash string) error {
	if !utils.IsVerificationCode(code) {
		return errutil.Validation(constant.WRONG_CODE)
	}
	ok, err := c.repository.ResetPassword(ctx, email, code, passwordHash, c.now())
	if err != nil {
		return errutil.Internal("reset password", err)
	}
	if !ok {
		return errutil.Validation(constant.WRONG_CODE)
	}
	return nil
}
