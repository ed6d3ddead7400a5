package handler

import (
	"net/http"
	"strconv"
	"strings"

	"djibtrade/internal/middleware"
	"djibtrade/internal/service"
	"djibtrade/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlaceholderImageURL backs listings when no upload backend is configured.
const PlaceholderImageURL = "/media/products/placeholder.png"

type ProductHandler struct {
	svc   *service.ProductService
	cloud cloudinary.Client // nil when uploads are disabled
}

func NewProductHandler(svc *service.ProductService, cloud cloudinary.Client) *ProductHandler {
	return &ProductHandler{svc: svc, cloud: cloud}
}

type createProductJSON struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	UnitPrice       int64  `json:"unit_price"`
	Currency        string `json:"currency"`
	Stock           *int64 `json:"stock"`
	Category        *uint  `json:"category"`
	City            string `json:"city"`
	ImageURL        string `json:"image_url"`
	ContactMethod   string `json:"contact_method"`
	WhatsappContact string `json:"whatsapp_contact"`
	PhoneContact    string `json:"phone_contact"`
}

// Create accepts JSON (image_url of a pre-uploaded asset) or multipart form
// data with an "image" file. The owner is always the authenticated caller.
func (h *ProductHandler) Create(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var in service.CreateProductInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var ok bool
		in, ok = h.bindMultipart(c, ownerID)
		if !ok {
			return
		}
	} else {
		var req createProductJSON
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		in = service.CreateProductInput{
			Title:           req.Title,
			Description:     req.Description,
			UnitPrice:       req.UnitPrice,
			Currency:        req.Currency,
			Stock:           req.Stock,
			CategoryID:      req.Category,
			City:            req.City,
			ImageURL:        req.ImageURL,
			ContactMethod:   req.ContactMethod,
			WhatsappContact: req.WhatsappContact,
			PhoneContact:    req.PhoneContact,
		}
	}

	p, err := h.svc.Create(ownerID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *ProductHandler) bindMultipart(c *gin.Context, ownerID uint) (service.CreateProductInput, bool) {
	in := service.CreateProductInput{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		Currency:        c.PostForm("currency"),
		City:            c.PostForm("city"),
		ContactMethod:   c.PostForm("contact_method"),
		WhatsappContact: c.PostForm("whatsapp_contact"),
		PhoneContact:    c.PostForm("phone_contact"),
	}
	if v := c.PostForm("unit_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"unit_price": "nombre entier attendu"}})
			return in, false
		}
		in.UnitPrice = n
	}
	if v := c.PostForm("stock"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"stock": "nombre entier attendu"}})
			return in, false
		}
		in.Stock = &n
	}
	if v := c.PostForm("category"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"category": "identifiant attendu"}})
			return in, false
		}
		id := uint(n)
		in.CategoryID = &id
	}

	file, err := c.FormFile("image")
	if err != nil {
		// Leave ImageURL empty; the service reports the missing image as a
		// field-level validation error.
		return in, true
	}
	if h.cloud == nil {
		in.ImageURL = PlaceholderImageURL
		return in, true
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return in, false
	}
	defer f.Close()
	folder := "djibtrade/products/" + strconv.FormatUint(uint64(ownerID), 10)
	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return in, false
	}
	in.ImageURL = url
	return in, true
}

type updateProductJSON struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	UnitPrice       *int64  `json:"unit_price"`
	Currency        *string `json:"currency"`
	Stock           *int64  `json:"stock"`
	Category        *uint   `json:"category"`
	ClearCategory   bool    `json:"clear_category"`
	City            *string `json:"city"`
	ImageURL        *string `json:"image_url"`
	ContactMethod   *string `json:"contact_method"`
	WhatsappContact *string `json:"whatsapp_contact"`
	PhoneContact    *string `json:"phone_contact"`
}

// Update patches a listing. Only the owner, a moderator, or an admin gets
// through; the image is not required here.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req updateProductJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Update(id, middleware.GetUserID(c), middleware.GetRole(c), service.UpdateProductInput{
		Title:           req.Title,
		Description:     req.Description,
		UnitPrice:       req.UnitPrice,
		Currency:        req.Currency,
		Stock:           req.Stock,
		CategoryID:      req.Category,
		ClearCategory:   req.ClearCategory,
		City:            req.City,
		ImageURL:        req.ImageURL,
		ContactMethod:   req.ContactMethod,
		WhatsappContact: req.WhatsappContact,
		PhoneContact:    req.PhoneContact,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.svc.Destroy(id, middleware.GetUserID(c), middleware.GetRole(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Get is public and counts a view on every call.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	p, err := h.svc.Retrieve(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

// List is public; ?category=<id> filters, newest first.
func (h *ProductHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	var categoryID *uint
	if v := c.Query("category"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		id := uint(n)
		categoryID = &id
	}
	list, err := h.svc.List(categoryID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}

func parseID(c *gin.Context, param string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return uint(n), nil
}
