package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

const (
	errBadCredentials  = "Incorrect email or password"
	errInvalidSession  = "Invalid token. Please log in again!"
	errUserGone        = "The user belonging to this token does no longer exist."
	errPasswordChanged = "User recently changed password! Please log in again."
)

// signupInput carries the fields every account needs.
type signupInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// UserUsecase implements the UserUseCase interface.
type UserUsecase struct {
	userRepo        contract.IUserRepository
	tokenRepo       contract.ITokenRepository
	emailUsecase    usecasecontract.IEmailVerificationUC
	hasher          contract.IHasher
	jwtService      JWTService
	mailService     contract.IEmailService
	logger          usecasecontract.IAppLogger
	config          usecasecontract.IConfigProvider
	validator       usecasecontract.IValidator
	uuidGenerator   contract.IUUIDGenerator
	randomGenerator contract.IRandomGenerator
	metrics         AuthMetrics
	now             func() time.Time
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	tokenRepo contract.ITokenRepository,
	emailUC usecasecontract.IEmailVerificationUC,
	hasher contract.IHasher,
	jwtService JWTService,
	mailService contract.IEmailService,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	randomgen contract.IRandomGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		emailUsecase:    emailUC,
		hasher:          hasher,
		jwtService:      jwtService,
		mailService:     mailService,
		logger:          logger,
		config:          cfg,
		validator:       validator,
		uuidGenerator:   uuidGenerator,
		randomGenerator: randomgen,
		now:             time.Now,
	}
}

// check if UserUseCase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// SetMetrics attaches an optional auth metrics sink.
func (uc *UserUsecase) SetMetrics(m AuthMetrics) {
	uc.metrics = m
}

// SetClock replaces the time source.
func (uc *UserUsecase) SetClock(now Clock) {
	uc.now = now
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newAccount validates credentials and builds an unsaved active user.
func (uc *UserUsecase) newAccount(name, email, password string, role entity.UserRole) (*entity.User, error) {
	in := signupInput{Name: strings.TrimSpace(name), Email: normalizeEmail(email), Password: password}
	if err := uc.validator.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}
	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		return nil, passThrough(uc.logger, "hash password", err)
	}
	now := uc.now()
	return &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		Photo:        entity.DefaultPhoto,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ensureEmailFree reports a Conflict when an active account already uses email.
func (uc *UserUsecase) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !apperror.Is(err, apperror.KindNotFound) {
		return passThrough(uc.logger, "check existing email", err)
	}
	if existing != nil {
		return apperror.Conflict("Email already in use. Please use another email")
	}
	return nil
}

func (uc *UserUsecase) persistNewAccount(ctx context.Context, user *entity.User) error {
	if err := uc.ensureEmailFree(ctx, user.Email); err != nil {
		return err
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return apperror.Conflict("Email already in use. Please use another email")
		}
		return passThrough(uc.logger, "create user", err)
	}
	if uc.config.GetSendActivationEmail() {
		if err := uc.emailUsecase.RequestVerificationEmail(ctx, user); err != nil {
			uc.logger.Warnf("verification email for %s not sent: %v", user.ID, err)
		}
	}
	return nil
}

// Signup registers a traveler account. Staff and guide roles cannot be
// chosen here.
func (uc *UserUsecase) Signup(ctx context.Context, name, email, password string, role entity.UserRole) (*entity.User, error) {
	if role == "" {
		role = entity.DefaultRole()
	}
	if !role.SelfServiceRole() {
		return nil, apperror.Validation("Invalid input data", fmt.Sprintf("role %q cannot be chosen at signup", role))
	}
	user, err := uc.newAccount(name, email, password, role)
	if err != nil {
		return nil, err
	}
	if err := uc.persistNewAccount(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignupGuide registers an unverified guide. Nothing is stored unless every
// guide attribute is present.
func (uc *UserUsecase) SignupGuide(ctx context.Context, app usecasecontract.GuideApplication) (*entity.User, error) {
	app.Email = normalizeEmail(app.Email)
	app.PhoneNumber = strings.TrimSpace(app.PhoneNumber)
	app.Specialization = strings.TrimSpace(app.Specialization)
	if err := uc.validator.ValidateStruct(app); err != nil {
		return nil, err
	}
	user, err := uc.newAccount(app.Name, app.Email, app.Password, entity.UserRoleGuide)
	if err != nil {
		return nil, err
	}

	languages := app.Languages
	if len(languages) == 0 {
		languages = []string{"English"}
	}
	experience := *app.Experience
	user.PhoneNumber = &app.PhoneNumber
	user.Experience = &experience
	user.Languages = languages
	user.Specialization = &app.Specialization
	user.Verified = false

	if err := uc.persistNewAccount(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUsecase) issueSession(user *entity.User) (*usecasecontract.Session, error) {
	token, expiresAt, err := uc.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, passThrough(uc.logger, "sign session token", err)
	}
	return &usecasecontract.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (uc *UserUsecase) loginFailed() error {
	if uc.metrics != nil {
		uc.metrics.LoginFailed()
	}
	return apperror.Auth(errBadCredentials)
}

// Login checks credentials. An unknown email and a wrong password produce
// the same error.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*usecasecontract.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Validation("Please provide email and password!")
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, uc.loginFailed()
		}
		return nil, passThrough(uc.logger, "load user for login", err)
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, uc.loginFailed()
	}
	return uc.issueSession(user)
}

// Authenticate resolves a session token to its active user.
func (uc *UserUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, apperror.Auth("You are not logged in! Please log in to get access.")
	}
	claims, err := uc.jwtService.ParseToken(token)
	if err != nil {
		return nil, apperror.Auth(errInvalidSession)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Auth(errUserGone)
		}
		return nil, passThrough(uc.logger, "load user for session", err)
	}
	if claims.IssuedAt == nil || user.ChangedPasswordAfter(claims.IssuedAt.Time) {
		return nil, apperror.Auth(errPasswordChanged)
	}
	return user, nil
}

// ForgotPassword mails a single-use reset link to the account holder.
func (uc *UserUsecase) ForgotPassword(ctx context.Context, email, resetBaseURL string) error {
	user, err := uc.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.NotFound("There is no user with that email address.")
		}
		return passThrough(uc.logger, "load user for password reset", err)
	}

	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, user.ID, entity.TokenTypePasswordReset); err != nil {
		return passThrough(uc.logger, "revoke reset tokens", err)
	}
	resetToken, err := uc.randomGenerator.GenerateRandomToken(32)
	if err != nil {
		return passThrough(uc.logger, "create reset token", err)
	}
	verifier, err := uc.randomGenerator.GenerateRandomToken(16)
	if err != nil {
		return passThrough(uc.logger, "create reset verifier", err)
	}

	now := uc.now()
	tokenEntity := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypePasswordReset,
		TokenHash: uc.hasher.HashString(resetToken),
		Verifier:  verifier,
		ExpiresAt: now.Add(uc.config.GetPasswordResetTokenExpiry()),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		return passThrough(uc.logger, "store reset token", err)
	}

	if resetBaseURL == "" {
		resetBaseURL = uc.config.GetAppBaseURL() + "/users/resetPassword"
	}
	resetLink := fmt.Sprintf("%s?verifier=%s&token=%s", resetBaseURL, url.QueryEscape(verifier), url.QueryEscape(resetToken))
	body := fmt.Sprintf("Hi %s,\n\nForgot your password? Submit a PATCH request with your new password to: %s\n\nThe link is valid for %s. If you didn't forget your password, please ignore this email.",
		user.Name, resetLink, uc.config.GetPasswordResetTokenExpiry())

	if err := uc.mailService.SendEmail(ctx, user.Email, "Your password reset token", body); err != nil {
		_ = uc.tokenRepo.RevokeToken(ctx, tokenEntity.ID)
		uc.logger.Errorf("failed to send password reset email to %s: %v", user.Email, err)
		return apperror.Unexpected("There was an error sending the email. Try again later!", err)
	}
	return nil
}

// setPassword stores a new hash. The change time is backdated one second so
// the session issued right after it stays valid.
func (uc *UserUsecase) setPassword(ctx context.Context, userID, newPassword string) error {
	if err := uc.validator.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	hashedPassword, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		return passThrough(uc.logger, "hash password", err)
	}
	changedAt := uc.now().Add(-time.Second)
	if err := uc.userRepo.UpdateUserPassword(ctx, userID, hashedPassword, changedAt); err != nil {
		return passThrough(uc.logger, "update password", err)
	}
	return nil
}

// ResetPassword consumes a reset token and logs the user in.
func (uc *UserUsecase) ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) (*usecasecontract.Session, error) {
	invalid := apperror.Validation("Token is invalid or has expired")

	token, err := uc.tokenRepo.GetTokenByVerifier(ctx, verifier)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, invalid
		}
		return nil, passThrough(uc.logger, "load reset token", err)
	}
	if token.TokenType != entity.TokenTypePasswordReset || !token.Usable(uc.now()) {
		return nil, invalid
	}
	if !uc.hasher.CheckHash(resetToken, token.TokenHash) {
		return nil, invalid
	}

	if err := uc.validator.ValidatePasswordStrength(newPassword); err != nil {
		return nil, err
	}
	if err := uc.tokenRepo.ConsumeToken(ctx, token.ID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, invalid
		}
		return nil, passThrough(uc.logger, "consume reset token", err)
	}
	if err := uc.setPassword(ctx, token.UserID, newPassword); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetUserByID(ctx, token.UserID)
	if err != nil {
		return nil, passThrough(uc.logger, "reload user after reset", err)
	}
	return uc.issueSession(user)
}

// UpdatePassword changes the password of a logged-in user.
func (uc *UserUsecase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*usecasecontract.Session, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, passThrough(uc.logger, "load user for password update", err)
	}
	if err := uc.hasher.ComparePasswordHash(currentPassword, user.PasswordHash); err != nil {
		return nil, apperror.Auth("Your current password is wrong.")
	}
	if err := uc.setPassword(ctx, userID, newPassword); err != nil {
		return nil, err
	}
	user, err = uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, passThrough(uc.logger, "reload user after password update", err)
	}
	return uc.issueSession(user)
}

// LoginWithOAuth signs in a Google account, creating a traveler on first use.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, name, email string) (*usecasecontract.Session, error) {
	email = normalizeEmail(email)
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !apperror.Is(err, apperror.KindNotFound) {
		return nil, passThrough(uc.logger, "load user for oauth", err)
	}
	if user == nil {
		if strings.TrimSpace(name) == "" {
			name = email
		}
		now := uc.now()
		user = &entity.User{
			ID:            uc.uuidGenerator.NewUUID(),
			Name:          strings.TrimSpace(name),
			Email:         email,
			Photo:         entity.DefaultPhoto,
			Role:          entity.UserRoleUser,
			EmailVerified: true,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.userRepo.CreateUser(ctx, user); err != nil {
			return nil, passThrough(uc.logger, "create oauth user", err)
		}
	}
	return uc.issueSession(user)
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, passThrough(uc.logger, "load user", err)
	}
	return user, nil
}

// ListUsers returns every active account.
func (uc *UserUsecase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepo.ListUsers(ctx, contract.UserFilter{})
	if err != nil {
		return nil, passThrough(uc.logger, "list users", err)
	}
	return users, nil
}

// PromoteUser promotes a user to an Admin role.
func (uc *UserUsecase) PromoteUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, passThrough(uc.logger, "load user for promotion", err)
	}
	if user.Role.IsAdmin() {
		return nil, apperror.Validation("user is already an admin")
	}
	user.Role = entity.UserRoleAdmin
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, passThrough(uc.logger, "promote user", err)
	}
	return updated, nil
}

// DemoteUser demotes an Admin back to a regular user.
func (uc *UserUsecase) DemoteUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, passThrough(uc.logger, "load user for demotion", err)
	}
	switch user.Role {
	case entity.UserRoleSuperAdmin:
		return nil, apperror.Forbidden("a superadmin cannot be demoted")
	case entity.UserRoleAdmin:
	default:
		return nil, apperror.Validation("user is not an admin")
	}
	user.Role = entity.UserRoleUser
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, passThrough(uc.logger, "demote user", err)
	}
	return updated, nil
}

// SeedAdmin makes sure a superadmin with the given email exists. It does
// nothing when the account is already present.
func (uc *UserUsecase) SeedAdmin(ctx context.Context, name, email, password string) (*entity.User, error) {
	existing, err := uc.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err == nil {
		if existing.Role != entity.UserRoleSuperAdmin {
			uc.logger.Warnf("seed admin %s exists with role %s; leaving it unchanged", existing.Email, existing.Role)
		}
		return existing, nil
	}
	if !apperror.Is(err, apperror.KindNotFound) {
		return nil, passThrough(uc.logger, "load seed admin", err)
	}

	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	user, err := uc.newAccount(name, email, password, entity.UserRoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	user.EmailVerified = true
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		return nil, passThrough(uc.logger, "create seed admin", err)
	}
	uc.logger.Infof("seeded superadmin %s", user.Email)
	return user, nil
}
