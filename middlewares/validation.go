package middlewares

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fountains-be/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var validStatuses = map[string]bool{
	"working": true, "needs_maintenance": true, "out_of_service": true,
}

var validIssueTypes = map[string]bool{
	"not_working": true, "needs_maintenance": true, "vandalized": true,
	"low_pressure": true, "other": true,
}

const (
	statusList    = "working, needs_maintenance, out_of_service"
	issueTypeList = "not_working, needs_maintenance, vandalized, low_pressure, other"
)

// ReportInput is a validated report creation body, handed to the controller
// via the gin context.
type ReportInput struct {
	IssueType     string  `json:"issue_type"`
	Description   *string `json:"description"`
	ReporterEmail *string `json:"reporter_email"`
}

// FountainUpdateInput is a validated partial-update body. Nil fields were
// not present in the request.
type FountainUpdateInput struct {
	Status     *models.FountainStatus
	Accessible *models.Accessible
	Note       *string
	Name       *string
	Location   *string
}

// ValidateFountainID checks the :id route param and stores the parsed id
// under "fountain_id".
func ValidateFountainID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid fountain ID",
				"message": "Fountain ID must be a positive integer",
			})
			c.Abort()
			return
		}

		c.Set("fountain_id", id)
		c.Next()
	}
}

// ValidateReportData checks a report creation body, collecting every
// violation, and stores the parsed input under "report_input".
func ValidateReportData() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ReportInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Validation failed",
				"messages": []string{err.Error()},
			})
			c.Abort()
			return
		}

		var errors []string

		if strings.TrimSpace(input.IssueType) == "" {
			errors = append(errors, "issue_type is required and must be a non-empty string")
		} else if !validIssueTypes[input.IssueType] {
			errors = append(errors, "issue_type must be one of: "+issueTypeList)
		}

		if input.Description != nil && len(*input.Description) > 500 {
			errors = append(errors, "description must not exceed 500 characters")
		}

		if input.ReporterEmail != nil && *input.ReporterEmail != "" {
			if err := validate.Var(*input.ReporterEmail, "email"); err != nil {
				errors = append(errors, "reporter_email must be a valid email address")
			}
		}

		if len(errors) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Validation failed",
				"messages": errors,
			})
			c.Abort()
			return
		}

		c.Set("report_input", input)
		c.Next()
	}
}

// ValidateFountainUpdate checks a fountain update body, collecting every
// violation, and stores the parsed input under "fountain_update".
func ValidateFountainUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		// accessible is bound untyped so a 0/1 value can be told apart
		// from a boolean and reported with the right message.
		var body struct {
			Status     *string `json:"status"`
			Accessible any     `json:"accessible"`
			Note       *string `json:"note"`
			Name       *string `json:"name"`
			Location   *string `json:"location"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Validation failed",
				"messages": []string{err.Error()},
			})
			c.Abort()
			return
		}

		var errors []string
		var input FountainUpdateInput

		if body.Status == nil && body.Accessible == nil && body.Note == nil &&
			body.Name == nil && body.Location == nil {
			errors = append(errors, "At least one field must be provided for update")
		}

		if body.Status != nil {
			if !validStatuses[*body.Status] {
				errors = append(errors, "status must be one of: "+statusList)
			} else {
				status := models.FountainStatus(*body.Status)
				input.Status = &status
			}
		}

		if body.Accessible != nil {
			switch v := body.Accessible.(type) {
			case bool:
				accessible := models.Accessible(v)
				input.Accessible = &accessible
			case float64:
				if v == 0 || v == 1 {
					accessible := models.Accessible(v == 1)
					input.Accessible = &accessible
				} else {
					errors = append(errors, "accessible must be a boolean or 0/1")
				}
			default:
				errors = append(errors, "accessible must be a boolean or 0/1")
			}
		}

		if body.Note != nil {
			if len(*body.Note) > 200 {
				errors = append(errors, "note must not exceed 200 characters")
			} else {
				input.Note = body.Note
			}
		}

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				errors = append(errors, "name must be a non-empty string")
			} else if len(*body.Name) > 200 {
				errors = append(errors, "name must not exceed 200 characters")
			} else {
				input.Name = body.Name
			}
		}

		if body.Location != nil {
			if strings.TrimSpace(*body.Location) == "" {
				errors = append(errors, "location must be a non-empty string")
			} else if len(*body.Location) > 300 {
				errors = append(errors, "location must not exceed 300 characters")
			} else {
				input.Location = body.Location
			}
		}

		if len(errors) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Validation failed",
				"messages": errors,
			})
			c.Abort()
			return
		}

		c.Set("fountain_update", input)
		c.Next()
	}
}

// ValidateQueryParams checks the fountain listing query parameters.
func ValidateQueryParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		var errors []string

		if inpark := c.Query("inpark"); inpark != "" && inpark != "Y" && inpark != "N" {
			errors = append(errors, `inpark parameter must be "Y" or "N"`)
		}

		if status := c.Query("status"); status != "" && !validStatuses[status] {
			errors = append(errors, fmt.Sprintf("status parameter must be one of: %s", statusList))
		}

		if len(errors) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Invalid query parameters",
				"messages": errors,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
