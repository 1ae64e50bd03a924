package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rewearhq/rewear-backend/internal/application"
	"github.com/rewearhq/rewear-backend/internal/interface/middleware"
	"github.com/rewearhq/rewear-backend/pkg/response"
)

type ItemHandler struct {
	Items      *application.ItemService
	Redemption *application.RedemptionService
	Logger     *logrus.Logger
}

func NewItemHandler(items *application.ItemService, redemption *application.RedemptionService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{Items: items, Redemption: redemption, Logger: logger}
}

// Create POST /api/items (authenticated, multipart with optional image)
func (h *ItemHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"title": "is required"})
		return
	}
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil || price <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"price": "must be a positive integer"})
		return
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	var (
		image       io.Reader
		filename    string
		contentType string
	)
	file, header, ferr := c.Request.FormFile("image")
	if ferr == nil {
		defer func(f multipart.File) { _ = f.Close() }(file)
		image = file
		filename = header.Filename
		contentType = header.Header.Get("Content-Type")
	}

	it, err := h.Items.Create(c.Request.Context(), uid, application.CreateItemInput{
		Title:       title,
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Type:        c.PostForm("type"),
		Size:        c.PostForm("size"),
		Condition:   c.PostForm("condition"),
		Tags:        tags,
		Price:       price,
	}, image, filename, contentType)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toItemResponse(it), "item submitted for approval", nil)
}

// List GET /api/items — approved and available, newest first
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.Items.ListAvailable(c.Request.Context())
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemResponses(items), "items", nil)
}

// MyItems GET /api/items/user (authenticated)
func (h *ItemHandler) MyItems(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	items, err := h.Items.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemResponses(items), "your items", nil)
}

// Pending GET /api/items/pending (administrator)
func (h *ItemHandler) Pending(c *gin.Context) {
	items, err := h.Items.ListUnapproved(c.Request.Context())
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemResponses(items), "pending items", nil)
}

// Approve PUT /api/items/approve/:id (administrator) {approve}
func (h *ItemHandler) Approve(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"approve": "is required"})
		return
	}
	it, err := h.Items.SetApproval(c.Request.Context(), id, *req.Approve)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	msg := "item rejected"
	if *req.Approve {
		msg = "item approved"
	}
	response.Success(c, http.StatusOK, toItemResponse(it), msg, nil)
}

// Redeem POST /api/items/redeem/:id (authenticated) {type:"redeem"}
func (h *ItemHandler) Redeem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Type != "redeem" {
		response.Error(c, http.StatusBadRequest, "invalid action type", nil)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	receipt, err := h.Redemption.Redeem(c.Request.Context(), uid, id)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, receipt, "redeem successful", nil)
}

// Get GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	it, err := h.Items.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemResponse(it), "item", nil)
}

// Search GET /api/items/search?q=
func (h *ItemHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Items.Search(c.Request.Context(), q, size)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func itemID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "malformed item id", nil)
		return "", false
	}
	return id, true
}
