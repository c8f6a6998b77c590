package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"fountains-be/middlewares"
	"fountains-be/models"

	"github.com/gin-gonic/gin"
)

// serverError logs the failure and responds with the generic 500 envelope.
// The underlying error is only exposed in development.
func serverError(c *gin.Context, message string, err error) {
	log.Println(message+":", err)

	if os.Getenv("GO_ENV") == "development" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": message,
	})
}

func fountainNotFound(c *gin.Context, id int) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "Not found",
		"message": fmt.Sprintf("Fountain with ID %d not found", id),
	})
}

// GetAllFountains lists fountains, narrowed by the optional inpark, status
// and note query parameters.
func GetAllFountains(c *gin.Context) {
	filters := models.FountainFilters{
		InPark: c.Query("inpark"),
		Status: c.Query("status"),
		Note:   c.Query("note"),
	}

	fountains, err := models.GetAllFountains(filters)
	if err != nil {
		serverError(c, "Failed to retrieve fountains", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(fountains),
		"data":    fountains,
	})
}

// GetFountain retrieves a single fountain along with its reports.
func GetFountain(c *gin.Context) {
	id := c.GetInt("fountain_id")

	fountain, err := models.GetFountainByID(id)
	if err != nil {
		serverError(c, "Failed to retrieve fountain", err)
		return
	}
	if fountain == nil {
		fountainNotFound(c, id)
		return
	}

	reports, err := models.GetReportsByFountainID(id)
	if err != nil {
		serverError(c, "Failed to retrieve fountain", err)
		return
	}

	type fountainWithReports struct {
		models.Fountain
		Reports []models.Report `json:"reports"`
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    fountainWithReports{Fountain: *fountain, Reports: reports},
	})
}

// UpdateFountain applies a partial update and responds with the full
// post-update record.
func UpdateFountain(c *gin.Context) {
	id := c.GetInt("fountain_id")
	input := c.MustGet("fountain_update").(middlewares.FountainUpdateInput)

	fountain, err := models.GetFountainByID(id)
	if err != nil {
		serverError(c, "Failed to update fountain", err)
		return
	}
	if fountain == nil {
		fountainNotFound(c, id)
		return
	}

	changes, err := models.UpdateFountain(id, models.FountainUpdate{
		Status:     input.Status,
		Accessible: input.Accessible,
		Note:       input.Note,
		Name:       input.Name,
		Location:   input.Location,
	})
	if err != nil {
		serverError(c, "Failed to update fountain", err)
		return
	}
	if changes == 0 {
		fountainNotFound(c, id)
		return
	}

	updated, err := models.GetFountainByID(id)
	if err != nil {
		serverError(c, "Failed to update fountain", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fountain updated successfully",
		"data":    updated,
	})
}
