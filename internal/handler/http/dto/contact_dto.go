package dto

import (
	"time"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
)

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func ToContactResponses(contacts []*entity.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ContactResponse{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Message:   c.Message,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
