package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Detector runs and reports detections
type Detector interface {
	DetectText(ctx context.Context, req *models.DetectRequest, userID string) (*models.DetectResponse, error)
	DetectVideo(ctx context.Context, req *models.DetectVideoRequest, userID string) (*models.DetectResponse, error)
	GetDetection(ctx context.Context, id, userID string, admin bool) (*models.DetectResponse, error)
	History(ctx context.Context, userID string, limit, offset int) (*models.DetectionHistory, error)
	ListAll(ctx context.Context, limit, offset int) (*models.DetectionHistory, error)
	Analytics(ctx context.Context) (*models.AnalyticsOverview, error)
	Thresholds(ctx context.Context) models.ThresholdConfig
	UpdateTier(ctx context.Context, name string, update models.TierUpdate) (models.ThresholdConfig, error)
}

// Registrar registers content and verifies ownership
type Registrar interface {
	Register(ctx context.Context, submission *models.Submission) (*models.Registration, error)
	Submit(ctx context.Context, submission *models.Submission) (*models.SubmitResponse, error)
	SubmissionStatus(ctx context.Context, submissionID, userID string, admin bool) (*models.SubmissionStatus, error)
	Verify(ctx context.Context, req *models.VerifyRequest, userID string) (*models.Verification, error)
	ListContent(ctx context.Context, ownerID string, limit, offset int) (*models.ContentPage, error)
	GetContent(ctx context.Context, id, userID string, admin bool) (*models.ContentDetail, error)
	DeleteContent(ctx context.Context, id, userID string, admin bool) error
}

// Cataloger manages content categories
type Cataloger interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Handler holds dependencies for handlers
type Handler struct {
	detector   Detector
	registrar  Registrar
	categories Cataloger
	computeSem chan struct{} // bounds concurrent detections
}

func NewHandler(detector Detector, registrar Registrar, categories Cataloger, maxConcurrent int) *Handler {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Handler{
		detector:   detector,
		registrar:  registrar,
		categories: categories,
		computeSem: make(chan struct{}, maxConcurrent),
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

func (h *Handler) DetectText(c *gin.Context) {
	var req models.DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	if !h.acquire(c) {
		return
	}
	defer h.release()

	resp, err := h.detector.DetectText(c.Request.Context(), &req, c.GetString(ctxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DetectVideo accepts a JSON body or a multipart upload. Only the upload's
// filename and content type are used; the bytes are never read.
func (h *Handler) DetectVideo(c *gin.Context) {
	var req models.DetectVideoRequest
	if c.ContentType() == "multipart/form-data" {
		req.Title = c.PostForm("title")
		if file, err := c.FormFile("file"); err == nil {
			req.Filename = file.Filename
			req.ContentType = file.Header.Get("Content-Type")
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	if !h.acquire(c) {
		return
	}
	defer h.release()

	resp, err := h.detector.DetectVideo(c.Request.Context(), &req, c.GetString(ctxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetDetection(c *gin.Context) {
	resp, err := h.detector.GetDetection(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID), c.GetString(ctxRole) == RoleAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) History(c *gin.Context) {
	limit, offset, ok := bindPage(c)
	if !ok {
		return
	}

	history, err := h.detector.History(c.Request.Context(), c.GetString(ctxUserID), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// ListDetections pages through every user's detections for admins
func (h *Handler) ListDetections(c *gin.Context) {
	limit, offset, ok := bindPage(c)
	if !ok {
		return
	}

	history, err := h.detector.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) RegisterContent(c *gin.Context) {
	submission, ok := bindSubmission(c)
	if !ok {
		return
	}

	reg, err := h.registrar.Register(c.Request.Context(), submission)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reg)
}

// SubmitContent queues a registration on the stream and returns immediately
func (h *Handler) SubmitContent(c *gin.Context) {
	submission, ok := bindSubmission(c)
	if !ok {
		return
	}

	resp, err := h.registrar.Submit(c.Request.Context(), submission)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

func (h *Handler) SubmissionStatus(c *gin.Context) {
	status, err := h.registrar.SubmissionStatus(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID), c.GetString(ctxRole) == RoleAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) VerifyOwnership(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	v, err := h.registrar.Verify(c.Request.Context(), &req, c.GetString(ctxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) ListContent(c *gin.Context) {
	limit, offset, ok := bindPage(c)
	if !ok {
		return
	}

	page, err := h.registrar.ListContent(c.Request.Context(), c.GetString(ctxUserID), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetContent(c *gin.Context) {
	detail, err := h.registrar.GetContent(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID), c.GetString(ctxRole) == RoleAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) DeleteContent(c *gin.Context) {
	err := h.registrar.DeleteContent(c.Request.Context(), c.Param("id"), c.GetString(ctxUserID), c.GetString(ctxRole) == RoleAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidBody(c)
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidBody(c)
		return
	}

	category, err := h.categories.UpdateCategory(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.categories.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (h *Handler) GetThresholds(c *gin.Context) {
	c.JSON(http.StatusOK, h.detector.Thresholds(c.Request.Context()))
}

func (h *Handler) UpdateThreshold(c *gin.Context) {
	var update models.TierUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		invalidBody(c)
		return
	}

	cfg, err := h.detector.UpdateTier(c.Request.Context(), c.Param("tier"), update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) Analytics(c *gin.Context) {
	overview, err := h.detector.Analytics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// acquire takes a detection slot, or writes 408 if the request goes away first
func (h *Handler) acquire(c *gin.Context) bool {
	select {
	case h.computeSem <- struct{}{}:
		return true
	case <-c.Request.Context().Done():
		abort(c, http.StatusRequestTimeout, "Request cancelled", "REQUEST_TIMEOUT")
		return false
	}
}

func (h *Handler) release() {
	<-h.computeSem
}

// bindSubmission reads a registration body. The owner id always comes from the token.
func bindSubmission(c *gin.Context) (*models.Submission, bool) {
	var submission models.Submission
	if err := c.ShouldBindJSON(&submission); err != nil {
		invalidBody(c)
		return nil, false
	}
	submission.SubmissionID = ""
	submission.OwnerID = c.GetString(ctxUserID)
	if submission.Owner == "" {
		submission.Owner = submission.OwnerID
	}
	return &submission, true
}

// bindPage reads the limit and offset query parameters. Zero means the
// service default.
func bindPage(c *gin.Context) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		abortInvalid(c, "limit must be an integer")
		return 0, 0, false
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		abortInvalid(c, "offset must be an integer")
		return 0, 0, false
	}
	return limit, offset, true
}

func invalidBody(c *gin.Context) {
	abortInvalid(c, "Invalid request body")
}

func abortInvalid(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message, "INVALID_REQUEST")
}

// writeError maps service errors onto HTTP status codes
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUnsupportedMediaType):
		abort(c, http.StatusBadRequest, err.Error(), "UNSUPPORTED_MEDIA_TYPE")
	case errors.Is(err, models.ErrInvalidInput):
		abortInvalid(c, err.Error())
	case errors.Is(err, models.ErrNotFound):
		abort(c, http.StatusNotFound, "Resource not found", "NOT_FOUND")
	case errors.Is(err, models.ErrForbidden):
		abort(c, http.StatusForbidden, "Access denied", "FORBIDDEN")
	case errors.Is(err, models.ErrConflict):
		abort(c, http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, models.ErrCorpusUnavailable):
		abort(c, http.StatusServiceUnavailable, "Content registry is unavailable", "CORPUS_UNAVAILABLE")
	case errors.Is(err, context.DeadlineExceeded):
		abort(c, http.StatusGatewayTimeout, "Detection timed out", "DETECTION_TIMEOUT")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		_ = c.Error(err)
		c.Abort()
	}
}
