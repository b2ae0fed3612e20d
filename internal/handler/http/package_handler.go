package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/apperror"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

type PackageHandler struct {
	packageUsecase usecasecontract.IPackageUseCase
}

func NewPackageHandler(packageUsecase usecasecontract.IPackageUseCase) *PackageHandler {
	return &PackageHandler{packageUsecase: packageUsecase}
}

// ListPackages returns the active catalog, optionally narrowed by
// ?difficulty= and ?destination=.
func (h *PackageHandler) ListPackages(c *gin.Context) {
	var filter entity.PackageFilter
	if raw := strings.TrimSpace(c.Query("difficulty")); raw != "" {
		d := entity.Difficulty(strings.ToLower(raw))
		if !d.IsValid() {
			ErrorHandler(c, apperror.Validation("Invalid input data", "difficulty must be one of: easy, moderate, challenging, difficult"))
			return
		}
		filter.Difficulty = &d
	}
	if raw := strings.TrimSpace(c.Query("destination")); raw != "" {
		filter.Destination = &raw
	}

	packages, err := h.packageUsecase.ListActive(c.Request.Context(), filter)
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	ListHandler(c, len(packages), gin.H{"packages": dto.ToPackageResponses(packages)})
}

func (h *PackageHandler) GetPackage(c *gin.Context) {
	pkg, err := h.packageUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"package": dto.ToPackageResponse(*pkg)})
}

func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req dto.PackageRequest
	if !BindAndValidate(c, &req) {
		return
	}
	pkg, err := h.packageUsecase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, gin.H{"package": dto.ToPackageResponse(*pkg)})
}

func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	var req dto.PackageUpdateRequest
	if !BindAndValidate(c, &req) {
		return
	}
	pkg, err := h.packageUsecase.Update(c.Request.Context(), c.Param("id"), req.ToEntity())
	if err != nil {
		ErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"package": dto.ToPackageResponse(*pkg)})
}

// DeletePackage hides the package from the catalog.
func (h *PackageHandler) DeletePackage(c *gin.Context) {
	if err := h.packageUsecase.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		ErrorHandler(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PurgePackage removes the package document for good.
func (h *PackageHandler) PurgePackage(c *gin.Context) {
	if err := h.packageUsecase.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		ErrorHandler(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
