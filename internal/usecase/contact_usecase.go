package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

type contactInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

type ContactUsecase struct {
	repo          contract.IContactRepository
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
}

var _ usecasecontract.IContactUseCase = (*ContactUsecase)(nil)

func NewContactUsecase(repo contract.IContactRepository, validator usecasecontract.IValidator, uuidGenerator contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *ContactUsecase {
	return &ContactUsecase{repo: repo, validator: validator, uuidGenerator: uuidGenerator, logger: logger}
}

func (uc *ContactUsecase) Submit(ctx context.Context, name, email, message string) (*entity.Contact, error) {
	in := contactInput{
		Name:    strings.TrimSpace(name),
		Email:   normalizeEmail(email),
		Message: strings.TrimSpace(message),
	}
	if err := uc.validator.ValidateStruct(in); err != nil {
		return nil, err
	}
	c := &entity.Contact{
		ID:        uc.uuidGenerator.NewUUID(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateContact(ctx, c); err != nil {
		return nil, passThrough(uc.logger, "store contact", err)
	}
	return c, nil
}

func (uc *ContactUsecase) List(ctx context.Context) ([]*entity.Contact, error) {
	contacts, err := uc.repo.ListContacts(ctx)
	if err != nil {
		return nil, passThrough(uc.logger, "list contacts", err)
	}
	return contacts, nil
}
