package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

type EmailVerificationUseCase struct {
	tokenRepository contract.ITokenRepository
	userRepository  contract.IUserRepository
	emailService    contract.IEmailService
	hasher          contract.IHasher
	RandomGenerator contract.IRandomGenerator
	UUIDGenerator   contract.IUUIDGenerator
	config          usecasecontract.IConfigProvider
	logger          usecasecontract.IAppLogger
	now             func() time.Time
}

var _ usecasecontract.IEmailVerificationUC = (*EmailVerificationUseCase)(nil)

func NewEmailVerificationUseCase(
	tr contract.ITokenRepository,
	ur contract.IUserRepository,
	es contract.IEmailService,
	hasher contract.IHasher,
	rg contract.IRandomGenerator,
	uuidgen contract.IUUIDGenerator,
	cfg usecasecontract.IConfigProvider,
	logger usecasecontract.IAppLogger,
) *EmailVerificationUseCase {
	return &EmailVerificationUseCase{
		tokenRepository: tr,
		userRepository:  ur,
		emailService:    es,
		hasher:          hasher,
		RandomGenerator: rg,
		UUIDGenerator:   uuidgen,
		config:          cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// SetClock replaces the time source.
func (eu *EmailVerificationUseCase) SetClock(now Clock) {
	eu.now = now
}

func (eu *EmailVerificationUseCase) RequestVerificationEmail(ctx context.Context, user *entity.User) error {
	if err := eu.tokenRepository.RevokeAllTokensForUser(ctx, user.ID, entity.TokenTypeEmailVerification); err != nil {
		return passThrough(eu.logger, "revoke verification tokens", err)
	}

	plainToken, err := eu.RandomGenerator.GenerateRandomToken(32)
	if err != nil {
		return passThrough(eu.logger, "create verification token", err)
	}
	verifier, err := eu.RandomGenerator.GenerateRandomToken(16)
	if err != nil {
		return passThrough(eu.logger, "create verification verifier", err)
	}
	now := eu.now()
	newToken := entity.Token{
		ID:        eu.UUIDGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypeEmailVerification,
		TokenHash: eu.hasher.HashString(plainToken),
		Verifier:  verifier,
		ExpiresAt: now.Add(eu.config.GetEmailVerificationTokenExpiry()).UTC(),
		CreatedAt: now.UTC(),
	}
	if err = eu.tokenRepository.CreateToken(ctx, &newToken); err != nil {
		return passThrough(eu.logger, "store verification token", err)
	}

	link := fmt.Sprintf("%s/users/verifyEmail?verifier=%s&token=%s",
		eu.config.GetAppBaseURL(), url.QueryEscape(verifier), url.QueryEscape(plainToken))
	body := fmt.Sprintf("Hi %s,\n\nWelcome to TakeTravel! Please confirm your email address: %s\n\nThe link is valid for %s.",
		user.Name, link, eu.config.GetEmailVerificationTokenExpiry())
	if err = eu.emailService.SendEmail(ctx, user.Email, "Verify your email address", body); err != nil {
		_ = eu.tokenRepository.RevokeToken(ctx, newToken.ID)
		eu.logger.Errorf("failed to send verification email to %s: %v", user.Email, err)
		return apperror.Unexpected("There was an error sending the email. Try again later!", err)
	}
	return nil
}

func (eu *EmailVerificationUseCase) VerifyEmailToken(ctx context.Context, verifier, plainToken string) (*entity.User, error) {
	invalid := apperror.Validation("Token is invalid or has expired")

	token, err := eu.tokenRepository.GetTokenByVerifier(ctx, verifier)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, invalid
		}
		return nil, passThrough(eu.logger, "load verification token", err)
	}
	if token.TokenType != entity.TokenTypeEmailVerification || !token.Usable(eu.now()) {
		return nil, invalid
	}
	if !eu.hasher.CheckHash(plainToken, token.TokenHash) {
		return nil, invalid
	}

	user, err := eu.userRepository.GetUserByID(ctx, token.UserID)
	if err != nil {
		return nil, passThrough(eu.logger, "load user for verification", err)
	}
	if user.EmailVerified {
		return nil, apperror.Validation("Email is already verified")
	}
	if err := eu.tokenRepository.ConsumeToken(ctx, token.ID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, invalid
		}
		return nil, passThrough(eu.logger, "consume verification token", err)
	}
	user.EmailVerified = true
	updated, err := eu.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return nil, passThrough(eu.logger, "mark email verified", err)
	}
	return updated, nil
}
