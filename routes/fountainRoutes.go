package routes

import (
	"os"
	"strconv"

	"fountains-be/controllers"
	"fountains-be/middlewares"

	"github.com/gin-gonic/gin"
)

// FountainRoutes sets up the fountain and report routes
func FountainRoutes(r *gin.Engine) {
	reportsPerDay := 10
	if v, err := strconv.Atoi(os.Getenv("REPORTS_PER_DAY")); err == nil && v > 0 {
		reportsPerDay = v
	}

	api := r.Group("/api/v1")
	{
		api.GET("/fountains", middlewares.ValidateQueryParams(), controllers.GetAllFountains)
		api.GET("/fountains/:id", middlewares.ValidateFountainID(), controllers.GetFountain)
		api.PUT("/fountains/:id", middlewares.ValidateFountainID(), middlewares.ValidateFountainUpdate(), controllers.UpdateFountain)
		api.POST("/fountains/:id/reports", middlewares.ValidateFountainID(), middlewares.ValidateReportData(), middlewares.ReportRateLimiter(reportsPerDay), controllers.CreateReport)
		api.GET("/fountains/:id/reports", middlewares.ValidateFountainID(), controllers.GetFountainReports)
	}
}
