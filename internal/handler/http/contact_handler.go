package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

type ContactHandler struct {
	contactUsecase usecasecontract.IContactUseCase
}

func NewContactHandler(contactUsecase usecasecontract.IContactUseCase) *ContactHandler {
	return &ContactHandler{contactUsecase: contactUsecase}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !BindAndValidate(c, &req) {
		return
	}
	if _, err := h.contactUsecase.Submit(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		ErrorHandler(c, err)
		return
	}
	MessageHandler(c, http.StatusCreated, "Thanks for reaching out! We will get back to you soon.")
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contactUsecase.List(c.Request.Context())
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	ListHandler(c, len(contacts), gin.H{"contacts": dto.ToContactResponses(contacts)})
}
