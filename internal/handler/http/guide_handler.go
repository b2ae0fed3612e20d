package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// GuideHandler serves the guide directory and its admin approval flow.
type GuideHandler struct {
	guideUsecase usecasecontract.IGuideUseCase
}

func NewGuideHandler(guideUsecase usecasecontract.IGuideUseCase) *GuideHandler {
	return &GuideHandler{guideUsecase: guideUsecase}
}

// ListPublicGuides shows approved guides to anyone.
func (h *GuideHandler) ListPublicGuides(c *gin.Context) {
	guides, err := h.guideUsecase.ListGuides(c.Request.Context(), true)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	ListHandler(c, len(guides), gin.H{"guides": dto.ToPublicGuides(guides)})
}

// ListGuides is the admin view; ?verified=true narrows it to approved guides.
func (h *GuideHandler) ListGuides(c *gin.Context) {
	h.listGuides(c, c.Query("verified") == "true")
}

// AvailableGuides lists guides that may be assigned to bookings.
func (h *GuideHandler) AvailableGuides(c *gin.Context) {
	h.listGuides(c, true)
}

func (h *GuideHandler) listGuides(c *gin.Context, onlyVerified bool) {
	guides, err := h.guideUsecase.ListGuides(c.Request.Context(), onlyVerified)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	ListHandler(c, len(guides), gin.H{"guides": dto.ToUserResponses(guides)})
}

func (h *GuideHandler) ApproveGuide(c *gin.Context) {
	guide, err := h.guideUsecase.ApproveGuide(c.Request.Context(), c.Param("id"))
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"user": dto.ToUserResponse(*guide)})
}

// RejectGuide deactivates a guide account.
func (h *GuideHandler) RejectGuide(c *gin.Context) {
	if err := h.guideUsecase.RejectGuide(c.Request.Context(), c.Param("id")); err != nil {
		ErrorHandler(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
