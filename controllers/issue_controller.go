package controllers

import (
	"net/http"
	"strconv"

	"github.com/civic-lens/api-go/models"
	"github.com/civic-lens/api-go/services"
	"github.com/civic-lens/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IssueController struct {
	DB     *gorm.DB
	Issues *services.IssueService
}

func NewIssueController(db *gorm.DB) *IssueController {
	return &IssueController{DB: db, Issues: services.NewIssueService(db)}
}

type CreateIssueRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Subcategory string  `json:"subcategory"`
	Latitude    float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   float64 `json:"longitude" binding:"required,min=-180,max=180"`
	AreaName    string  `json:"area_name"`
	ImageURL    string  `json:"image_url"`
}

type ListIssuesQuery struct {
	Category string   `form:"category"`
	City     string   `form:"city"`
	Status   string   `form:"status"`
	Lat      *float64 `form:"lat"`
	Lon      *float64 `form:"lon"`
	Radius   *float64 `form:"radius"`
	Skip     int      `form:"skip,default=0" binding:"min=0"`
	Limit    int      `form:"limit,default=100" binding:"min=1,max=100"`
}

// CreateIssue godoc
// @Summary Report a new civic issue
// @Description Rejects near-duplicate reports within 100 meters
// @Tags issues
// @Accept json
// @Produce json
// @Success 201 {object} models.Issue
// @Router /issues [post]
func (ic *IssueController) CreateIssue(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.Issues.Create(user.UserID, services.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AreaName:    req.AreaName,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if err == services.ErrDuplicateIssue {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A similar issue already exists nearby. Please check existing reports."})
			return
		}
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// ListIssues godoc
// @Summary List issues with optional filters
// @Description Filters combine with AND; the geo filter needs lat, lon and radius together
// @Tags issues
// @Produce json
// @Param category query string false "Category"
// @Param city query string false "Area name substring"
// @Param status query string false "Lifecycle status"
// @Param lat query number false "Center latitude"
// @Param lon query number false "Center longitude"
// @Param radius query number false "Radius in meters"
// @Success 200 {array} models.Issue
// @Router /issues [get]
func (ic *IssueController) ListIssues(c *gin.Context) {
	var query ListIssuesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issues, err := ic.Issues.List(services.ListIssuesFilter{
		Category: query.Category,
		AreaName: query.City,
		Status:   query.Status,
		Lat:      query.Lat,
		Lon:      query.Lon,
		Radius:   query.Radius,
		Skip:     query.Skip,
		Limit:    query.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssue godoc
// @Summary Get issue details
// @Tags issues
// @Produce json
// @Param id path integer true "Issue ID"
// @Success 200 {object} models.Issue
// @Router /issues/{id} [get]
func (ic *IssueController) GetIssue(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue id"})
		return
	}

	issue, err := ic.Issues.Get(id)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus godoc
// @Summary Update an issue's lifecycle status
// @Description Any transition is legal; the reporter gets a notification
// @Tags issues
// @Accept json
// @Produce json
// @Param id path integer true "Issue ID"
// @Success 200 {object} models.Issue
// @Router /issues/{id}/status [patch]
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue id"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := models.ParseIssueStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	issue, err := ic.Issues.UpdateStatus(id, status)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// VoteIssue godoc
// @Summary Cast, toggle or switch a vote on an issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path integer true "Issue ID"
// @Success 200 {object} map[string]interface{}
// @Router /issues/{id}/vote [post]
func (ic *IssueController) VoteIssue(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue id"})
		return
	}

	var input struct {
		VoteType models.VoteType `json:"vote_type" binding:"required,oneof=upvote downvote"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ic.Issues.CastVote(id, user.UserID, input.VoteType)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Vote recorded",
		"upvotes":   result.Upvotes,
		"downvotes": result.Downvotes,
	})
}

// CreateComment godoc
// @Summary Add a comment to an issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path integer true "Issue ID"
// @Success 201 {object} models.Comment
// @Router /issues/{id}/comments [post]
func (ic *IssueController) CreateComment(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue id"})
		return
	}

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := ic.Issues.CreateComment(id, user.UserID, input.Text)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetComments godoc
// @Summary List an issue's comments, oldest first
// @Tags issues
// @Produce json
// @Param id path integer true "Issue ID"
// @Success 200 {array} models.Comment
// @Router /issues/{id}/comments [get]
func (ic *IssueController) GetComments(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue id"})
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	comments, err := ic.Issues.ListComments(id, skip, limit)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
