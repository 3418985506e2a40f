package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/civic-lens/api-go/geo"
	"github.com/civic-lens/api-go/models"
	"gorm.io/gorm"
)

// Engagement policy. The duplicate heuristic is intentionally loose:
// a lowercased title-prefix substring match combined with a distance
// window, so rephrased reports of the same pothole still collide.
const (
	trustScoreIssueReported = 5

	duplicateTitlePrefixLen = 20
	duplicateRadiusMeters   = 100.0

	defaultListLimit = 100
)

type IssueService struct {
	DB *gorm.DB
}

func NewIssueService(db *gorm.DB) *IssueService {
	return &IssueService{DB: db}
}

type CreateIssueInput struct {
	Title       string
	Description string
	Category    string
	Subcategory string
	Latitude    float64
	Longitude   float64
	AreaName    string
	ImageURL    string
}

// Create persists a new issue and rewards the reporter's trust score in
// one transaction. A near-duplicate candidate blocks the whole write.
func (s *IssueService) Create(reporterID uint, input CreateIssueInput) (*models.Issue, error) {
	var issue models.Issue

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		dup, err := findDuplicateCandidate(tx, input.Title, input.Latitude, input.Longitude)
		if err != nil {
			return err
		}
		if dup != nil {
			return ErrDuplicateIssue
		}

		issue = models.Issue{
			Title:       input.Title,
			Description: input.Description,
			Category:    input.Category,
			Subcategory: input.Subcategory,
			Latitude:    input.Latitude,
			Longitude:   input.Longitude,
			AreaName:    input.AreaName,
			ImageURL:    input.ImageURL,
			ReporterID:  reporterID,
			Status:      models.StatusReported,
		}
		if err := tx.Create(&issue).Error; err != nil {
			return err
		}

		// No compensating decrement exists: the reward stands even if the
		// report is later rejected.
		return tx.Model(&models.User{}).Where("id = ?", reporterID).
			UpdateColumn("trust_score", gorm.Expr("trust_score + ?", trustScoreIssueReported)).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Reporter").First(&issue, issue.ID).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// findDuplicateCandidate returns an existing issue whose title contains
// the new title's lowercased prefix and whose location falls inside the
// duplicate window, or nil when the report looks fresh.
func findDuplicateCandidate(tx *gorm.DB, title string, lat, lon float64) (*models.Issue, error) {
	prefix := duplicateTitlePrefix(title)

	var candidates []models.Issue
	if err := tx.Where("LOWER(title) LIKE ?", "%"+prefix+"%").Find(&candidates).Error; err != nil {
		return nil, err
	}

	for i := range candidates {
		if geo.WithinRadius(lat, lon, candidates[i].Latitude, candidates[i].Longitude, duplicateRadiusMeters) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// duplicateTitlePrefix lowercases the title and truncates it to the
// prefix length. A truncation landing mid-word would keep a fragment
// ("broken streetlight n") that no rephrased title contains, so the
// trailing partial word is dropped.
func duplicateTitlePrefix(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	runes := []rune(lowered)
	if len(runes) <= duplicateTitlePrefixLen {
		return lowered
	}
	if runes[duplicateTitlePrefixLen] == ' ' {
		return string(runes[:duplicateTitlePrefixLen])
	}
	cut := string(runes[:duplicateTitlePrefixLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		return strings.TrimSpace(cut[:i])
	}
	return cut
}

// Get returns an issue with its reporter loaded.
func (s *IssueService) Get(issueID uint) (*models.Issue, error) {
	var issue models.Issue
	if err := s.DB.Preload("Reporter").First(&issue, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// UpdateStatus sets the new status (any transition is legal) and emits
// a status-update notification to the reporter, atomically.
func (s *IssueService) UpdateStatus(issueID uint, status models.IssueStatus) (*models.Issue, error) {
	var issue models.Issue

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&issue, issueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIssueNotFound
			}
			return err
		}

		oldStatus := issue.Status
		if err := tx.Model(&issue).Update("status", status).Error; err != nil {
			return err
		}

		notification := models.Notification{
			UserID:  issue.ReporterID,
			Type:    models.NotificationStatusUpdate,
			Title:   "Issue Status Updated",
			Message: fmt.Sprintf("Your issue '%s' status changed from %s to %s", issue.Title, oldStatus, status),
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Reporter").First(&issue, issue.ID).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

type ListIssuesFilter struct {
	Category string
	AreaName string
	Status   string
	Lat      *float64
	Lon      *float64
	Radius   *float64
	Skip     int
	Limit    int
}

// List returns issues matching all supplied filters, newest first.
// The radius filter applies only when lat, lon and radius are all set;
// a partial geo triple means no geo filter at all.
func (s *IssueService) List(f ListIssuesFilter) ([]models.Issue, error) {
	q := s.DB.Model(&models.Issue{}).Preload("Reporter")

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.AreaName != "" {
		q = q.Where("LOWER(area_name) LIKE ?", "%"+strings.ToLower(f.AreaName)+"%")
	}
	if f.Status != "" {
		// Unknown status strings are ignored rather than rejected.
		if status, ok := models.ParseIssueStatus(f.Status); ok {
			q = q.Where("status = ?", status)
		}
	}

	q = q.Order("created_at DESC")

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	if f.Lat != nil && f.Lon != nil && f.Radius != nil {
		// Coarse SQL bounding box first, so only nearby candidates come
		// back; the exact great-circle check trims the box corners.
		latDelta, lonDelta := geo.BoundingBox(*f.Lat, *f.Radius)
		q = q.Where("latitude BETWEEN ? AND ?", *f.Lat-latDelta, *f.Lat+latDelta).
			Where("longitude BETWEEN ? AND ?", *f.Lon-lonDelta, *f.Lon+lonDelta)

		var candidates []models.Issue
		if err := q.Find(&candidates).Error; err != nil {
			return nil, err
		}

		within := make([]models.Issue, 0, len(candidates))
		for _, issue := range candidates {
			if geo.WithinRadius(*f.Lat, *f.Lon, issue.Latitude, issue.Longitude, *f.Radius) {
				within = append(within, issue)
			}
		}

		if f.Skip >= len(within) {
			return []models.Issue{}, nil
		}
		within = within[f.Skip:]
		if len(within) > limit {
			within = within[:limit]
		}
		return within, nil
	}

	var issues []models.Issue
	if err := q.Offset(f.Skip).Limit(limit).Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// CreateComment appends a comment and notifies the reporter when
// someone else comments on their issue.
func (s *IssueService) CreateComment(issueID, userID uint, text string) (*models.Comment, error) {
	var comment models.Comment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var issue models.Issue
		if err := tx.First(&issue, issueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIssueNotFound
			}
			return err
		}

		comment = models.Comment{
			IssueID: issueID,
			UserID:  userID,
			Text:    text,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		if issue.ReporterID != userID {
			var commenter models.User
			if err := tx.First(&commenter, userID).Error; err != nil {
				return err
			}
			notification := models.Notification{
				UserID:  issue.ReporterID,
				Type:    models.NotificationReaction,
				Title:   "New Comment",
				Message: fmt.Sprintf("%s commented on your issue '%s'", commenter.Username, issue.Title),
			}
			return tx.Create(&notification).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns an issue's comments oldest first.
func (s *IssueService) ListComments(issueID uint, skip, limit int) ([]models.Comment, error) {
	var issue models.Issue
	if err := s.DB.First(&issue, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}

	var comments []models.Comment
	err := s.DB.Preload("User").
		Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Offset(skip).Limit(limit).
		Find(&comments).Error
	return comments, err
}
