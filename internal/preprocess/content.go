package preprocess

import (
	"context"
	"fmt"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/rs/zerolog/log"
)

// ListContent returns a page of the owner's registered works, newest first
func (s *Service) ListContent(ctx context.Context, ownerID string, limit, offset int) (*models.ContentPage, error) {
	if limit <= 0 {
		limit = defaultContentLimit
	}
	limit = min(limit, maxContentLimit)
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", models.ErrInvalidInput)
	}

	records, err := s.store.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	page := &models.ContentPage{
		Content: make([]models.ContentSummary, 0, len(records)),
		Pagination: models.Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: int64(offset+len(records)) < total,
		},
	}
	for _, r := range records {
		page.Content = append(page.Content, models.ContentSummary{
			ID:            r.ID,
			Title:         r.Title,
			Category:      r.Category,
			CertificateID: r.CertificateID,
			CreatedAt:     r.CreatedAt,
			Preview:       preview(r.RawText),
		})
	}

	return page, nil
}

// GetContent returns a registered work to its owner or an admin
func (s *Service) GetContent(ctx context.Context, id, userID string, admin bool) (*models.ContentDetail, error) {
	record, err := s.owned(ctx, id, userID, admin)
	if err != nil {
		return nil, err
	}

	return &models.ContentDetail{
		ID:            record.ID,
		Title:         record.Title,
		Owner:         record.Owner,
		Category:      record.Category,
		RawText:       record.RawText,
		CertificateID: record.CertificateID,
		CreatedAt:     record.CreatedAt,
	}, nil
}

// DeleteContent removes a registered work on behalf of its owner or an admin
func (s *Service) DeleteContent(ctx context.Context, id, userID string, admin bool) error {
	record, err := s.owned(ctx, id, userID, admin)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, record.ID); err != nil {
		return err
	}

	log.Info().
		Str("content_id", record.ID).
		Str("certificate_id", record.CertificateID).
		Str("user_id", userID).
		Msg("Content deleted")

	return nil
}

func (s *Service) owned(ctx context.Context, id, userID string, admin bool) (*models.ContentRecord, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && record.OwnerID != userID {
		return nil, fmt.Errorf("%w: content %s", models.ErrForbidden, id)
	}
	return record, nil
}

// preview keeps the first previewLength runes, marking a cut with "..."
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}
