package stream

import (
	"fmt"
	"strings"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
)

// stream entry field names
const (
	fieldSubmissionID = "submission_id"
	fieldTitle        = "title"
	fieldContent      = "content"
	fieldCategory     = "category"
	fieldOwner        = "owner"
	fieldOwnerID      = "owner_id"
)

type StreamMessage struct {
	ID     string
	Fields map[string]string
}

// ParseSubmission reads a registration submission from a stream entry
func ParseSubmission(msg *StreamMessage) (*models.Submission, error) {
	submission := &models.Submission{
		SubmissionID: msg.Fields[fieldSubmissionID],
		Title:        msg.Fields[fieldTitle],
		Content:      msg.Fields[fieldContent],
		Category:     msg.Fields[fieldCategory],
		Owner:        msg.Fields[fieldOwner],
		OwnerID:      msg.Fields[fieldOwnerID],
	}

	if submission.SubmissionID == "" {
		return nil, fmt.Errorf("%w: message %s has no %s", models.ErrInvalidInput, msg.ID, fieldSubmissionID)
	}
	if strings.TrimSpace(submission.Content) == "" {
		return nil, fmt.Errorf("%w: message %s has no %s", models.ErrInvalidInput, msg.ID, fieldContent)
	}

	return submission, nil
}

// submissionFields is the inverse of ParseSubmission
func submissionFields(s *models.Submission) map[string]interface{} {
	return map[string]interface{}{
		fieldSubmissionID: s.SubmissionID,
		fieldTitle:        s.Title,
		fieldContent:      s.Content,
		fieldCategory:     s.Category,
		fieldOwner:        s.Owner,
		fieldOwnerID:      s.OwnerID,
	}
}
