package contract

import (
	"context"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

type IContactRepository interface {
	CreateContact(ctx context.Context, contact *entity.Contact) error
	ListContacts(ctx context.Context) ([]*entity.Contact, error)
}
