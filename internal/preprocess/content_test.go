package preprocess

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedContent(store *fakeContentStore, id, ownerID, text string, created time.Time) {
	store.records["CERT-"+id] = &models.ContentRecord{
		ID:            id,
		Title:         "title-" + id,
		OwnerID:       ownerID,
		Category:      "poetry",
		RawText:       text,
		CertificateID: "CERT-" + id,
		CreatedAt:     created,
	}
}

func TestListContent(t *testing.T) {
	store := newFakeContentStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedContent(store, "c1", "u1", "short text", base)
	seedContent(store, "c2", "u1", strings.Repeat("é", previewLength+5), base.Add(time.Hour))
	seedContent(store, "c3", "u1", "third", base.Add(2*time.Hour))
	seedContent(store, "c4", "u2", "someone else", base)

	svc := NewService(store, nil, nil)

	page, err := svc.ListContent(context.Background(), "u1", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, models.Pagination{Total: 3, Limit: 2, Offset: 0, HasMore: true}, page.Pagination)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "c3", page.Content[0].ID)
	assert.Equal(t, strings.Repeat("é", previewLength)+"...", page.Content[1].Preview)

	page, err = svc.ListContent(context.Background(), "u1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, defaultContentLimit, page.Pagination.Limit)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "short text", page.Content[0].Preview)
	assert.False(t, page.Pagination.HasMore)

	page, err = svc.ListContent(context.Background(), "nobody", 500, 0)
	require.NoError(t, err)
	assert.Equal(t, maxContentLimit, page.Pagination.Limit)
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)

	_, err = svc.ListContent(context.Background(), "u1", 10, -1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestGetContent_OwnerOrAdmin(t *testing.T) {
	store := newFakeContentStore()
	seedContent(store, "c1", "u1", "Sunlight on the harbour water", time.Now())
	svc := NewService(store, nil, nil)

	detail, err := svc.GetContent(context.Background(), "c1", "u1", false)
	require.NoError(t, err)
	assert.Equal(t, "Sunlight on the harbour water", detail.RawText)
	assert.Equal(t, "CERT-c1", detail.CertificateID)

	_, err = svc.GetContent(context.Background(), "c1", "u2", false)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.GetContent(context.Background(), "c1", "admin-1", true)
	assert.NoError(t, err)

	_, err = svc.GetContent(context.Background(), "missing", "u1", false)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteContent(t *testing.T) {
	store := newFakeContentStore()
	seedContent(store, "c1", "u1", "words", time.Now())
	seedContent(store, "c2", "u1", "more words", time.Now())
	svc := NewService(store, nil, nil)

	assert.ErrorIs(t, svc.DeleteContent(context.Background(), "c1", "u2", false), models.ErrForbidden)
	assert.Len(t, store.records, 2)

	require.NoError(t, svc.DeleteContent(context.Background(), "c1", "u1", false))
	require.NoError(t, svc.DeleteContent(context.Background(), "c2", "admin-1", true))
	assert.Empty(t, store.records)

	_, err := svc.Verify(context.Background(), &models.VerifyRequest{CertificateID: "CERT-c1", Content: "words"}, "u1")
	assert.ErrorIs(t, err, models.ErrNotFound, "a deleted certificate no longer verifies")

	assert.ErrorIs(t, svc.DeleteContent(context.Background(), "c1", "u1", false), models.ErrNotFound)
}
