package controllers

import (
	"net/http"

	"fountains-be/middlewares"
	"fountains-be/models"

	"github.com/gin-gonic/gin"
)

// CreateReport files a condition report against a fountain. Critical issue
// types feed back into the fountain's status: not_working forces
// out_of_service, needs_maintenance forces needs_maintenance.
func CreateReport(c *gin.Context) {
	id := c.GetInt("fountain_id")
	input := c.MustGet("report_input").(middlewares.ReportInput)

	fountain, err := models.GetFountainByID(id)
	if err != nil {
		serverError(c, "Failed to create report", err)
		return
	}
	if fountain == nil {
		fountainNotFound(c, id)
		return
	}

	reportID, err := models.CreateReport(models.Report{
		FountainID:    models.FountainRef(id),
		IssueType:     models.IssueType(input.IssueType),
		Description:   input.Description,
		ReporterEmail: input.ReporterEmail,
	})
	if err != nil {
		serverError(c, "Failed to create report", err)
		return
	}

	newReport, err := models.GetReportByID(reportID)
	if err != nil {
		serverError(c, "Failed to create report", err)
		return
	}

	var forcedStatus models.FountainStatus
	switch models.IssueType(input.IssueType) {
	case models.IssueNotWorking:
		forcedStatus = models.StatusOutOfService
	case models.IssueNeedsMaintenance:
		forcedStatus = models.StatusNeedsMaintenance
	}
	if forcedStatus != "" {
		if _, err := models.UpdateFountain(id, models.FountainUpdate{Status: &forcedStatus}); err != nil {
			serverError(c, "Failed to create report", err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Report submitted successfully",
		"data":    newReport,
	})
}

// GetFountainReports lists a fountain's reports, newest first.
func GetFountainReports(c *gin.Context) {
	id := c.GetInt("fountain_id")

	fountain, err := models.GetFountainByID(id)
	if err != nil {
		serverError(c, "Failed to retrieve reports", err)
		return
	}
	if fountain == nil {
		fountainNotFound(c, id)
		return
	}

	reports, err := models.GetReportsByFountainID(id)
	if err != nil {
		serverError(c, "Failed to retrieve reports", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(reports),
		"data":    reports,
	})
}
