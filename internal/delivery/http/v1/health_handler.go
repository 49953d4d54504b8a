package v1

import (
	"net/http"

	"corvus-contact/internal/delivery/http/response"
	"corvus-contact/internal/usecase"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Message string            `json:"message"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// healthHandler godoc
// @Summary      Health check
// @Description  Reports liveness and which email and rate limit backends are active
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func healthHandler(uc usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uc == nil {
			response.Success(c, http.StatusOK, "System operational")
			return
		}
		c.JSON(http.StatusOK, healthResponse{
			Message: "System operational",
			Checks:  uc.Check(c.Request.Context()),
		})
	}
}
