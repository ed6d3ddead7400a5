package service

import (
	"errors"

	"djibtrade/internal/domain"
	"djibtrade/internal/models"
	"djibtrade/pkg/whatsapp"

	evbus "github.com/asaskevich/EventBus"
	"gorm.io/gorm"
)

// ProductService owns the listing lifecycle: validation, derived fields,
// mutation authorization, and the creation event.
type ProductService struct {
	products   ProductStore
	users      UserStore
	categories CategoryStore
	bus        evbus.Bus
}

func NewProductService(products ProductStore, users UserStore, categories CategoryStore, bus evbus.Bus) *ProductService {
	return &ProductService{products: products, users: users, categories: categories, bus: bus}
}

// CreateProductInput carries client-supplied fields. The owner always comes
// from the authenticated caller, never from the payload.
type CreateProductInput struct {
	Title           string
	Description     string
	UnitPrice       int64
	Currency        string
	Stock           *int64
	CategoryID      *uint
	City            string
	ImageURL        string
	ContactMethod   string
	WhatsappContact string
	PhoneContact    string
}

// UpdateProductInput uses pointers for patch semantics: nil means leave the
// stored value alone.
type UpdateProductInput struct {
	Title           *string
	Description     *string
	UnitPrice       *int64
	Currency        *string
	Stock           *int64
	CategoryID      *uint
	ClearCategory   bool
	City            *string
	ImageURL        *string
	ContactMethod   *string
	WhatsappContact *string
	PhoneContact    *string
}

// Create validates, persists the listing bound to ownerID, and publishes
// product.created exactly once after the row exists.
func (s *ProductService) Create(ownerID uint, in CreateProductInput) (*models.Product, error) {
	ve := domain.NewValidationError()
	if in.Title == "" {
		ve.Add("title", "le titre est requis")
	}
	if in.UnitPrice < 1 {
		ve.Add("unit_price", "le prix unitaire doit être supérieur ou égal à 1")
	}
	currency := domain.Currency(in.Currency)
	if in.Currency == "" {
		currency = domain.CurrencyDJF
	} else if !currency.Valid() {
		ve.Add("currency", "la devise doit être DJF ou USD")
	}
	stock := int64(1)
	if in.Stock != nil {
		if *in.Stock < 0 {
			ve.Add("stock", "le stock ne peut pas être négatif")
		} else {
			stock = *in.Stock
		}
	}
	contact := domain.ContactMethod(in.ContactMethod)
	if in.ContactMethod == "" {
		contact = domain.ContactWhatsapp
	} else if !contact.Valid() {
		ve.Add("contact_method", "la méthode de contact doit être whatsapp, phone ou both")
	}
	if in.ImageURL == "" {
		ve.Add("image", "une image est requise")
	}
	if in.CategoryID != nil {
		ok, err := s.categories.Exists(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			ve.Add("category", "catégorie inconnue")
		}
	}
	if !ve.Empty() {
		return nil, ve
	}

	owner, err := s.users.GetByID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	p := &models.Product{
		OwnerID:         owner.ID,
		Title:           in.Title,
		Description:     in.Description,
		UnitPrice:       in.UnitPrice,
		Currency:        currency,
		Stock:           stock,
		CategoryID:      in.CategoryID,
		City:            in.City,
		ImageURL:        in.ImageURL,
		ContactMethod:   contact,
		WhatsappContact: in.WhatsappContact,
		PhoneContact:    in.PhoneContact,
	}
	deriveFields(p, owner.Phone)

	if err := s.products.Create(p); err != nil {
		return nil, err
	}
	s.bus.Publish(TopicProductCreated, p)
	return p, nil
}

// Update applies a patch after the authorization check, then re-derives
// total_price and whatsapp_link from the values now in effect. Never fires
// the creation event.
func (s *ProductService) Update(productID, callerID uint, callerRole string, in UpdateProductInput) (*models.Product, error) {
	p, err := s.getProduct(productID)
	if err != nil {
		return nil, err
	}
	if !domain.CanModifyListing(callerID, callerRole, p.OwnerID) {
		return nil, domain.ErrPermissionDenied
	}

	ve := domain.NewValidationError()
	if in.Title != nil {
		if *in.Title == "" {
			ve.Add("title", "le titre ne peut pas être vide")
		} else {
			p.Title = *in.Title
		}
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if *in.UnitPrice < 1 {
			ve.Add("unit_price", "le prix unitaire doit être supérieur ou égal à 1")
		} else {
			p.UnitPrice = *in.UnitPrice
		}
	}
	if in.Currency != nil {
		c := domain.Currency(*in.Currency)
		if !c.Valid() {
			ve.Add("currency", "la devise doit être DJF ou USD")
		} else {
			p.Currency = c
		}
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			ve.Add("stock", "le stock ne peut pas être négatif")
		} else {
			p.Stock = *in.Stock
		}
	}
	switch {
	case in.ClearCategory:
		p.CategoryID = nil
	case in.CategoryID != nil:
		ok, err := s.categories.Exists(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			ve.Add("category", "catégorie inconnue")
		} else {
			p.CategoryID = in.CategoryID
		}
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		p.ImageURL = *in.ImageURL
	}
	if in.ContactMethod != nil {
		m := domain.ContactMethod(*in.ContactMethod)
		if !m.Valid() {
			ve.Add("contact_method", "la méthode de contact doit être whatsapp, phone ou both")
		} else {
			p.ContactMethod = m
		}
	}
	if in.WhatsappContact != nil {
		p.WhatsappContact = *in.WhatsappContact
	}
	if in.PhoneContact != nil {
		p.PhoneContact = *in.PhoneContact
	}
	if !ve.Empty() {
		return nil, ve
	}

	ownerPhone := ""
	if owner, err := s.users.GetByID(p.OwnerID); err == nil {
		ownerPhone = owner.Phone
	}
	deriveFields(p, ownerPhone)

	if err := s.products.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Destroy removes the listing after the same authorization check as Update.
// Notifications referencing it keep their rows with the link cleared.
func (s *ProductService) Destroy(productID, callerID uint, callerRole string) error {
	p, err := s.getProduct(productID)
	if err != nil {
		return err
	}
	if !domain.CanModifyListing(callerID, callerRole, p.OwnerID) {
		return domain.ErrPermissionDenied
	}
	if err := s.products.Delete(p.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// Retrieve is public and bumps the views counter by exactly one on every
// call, whoever the caller is.
func (s *ProductService) Retrieve(productID uint) (*models.Product, error) {
	if err := s.products.IncrementViews(productID); err != nil {
		return nil, err
	}
	return s.getProduct(productID)
}

func (s *ProductService) List(categoryID *uint, limit, offset int) ([]models.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.products.List(categoryID, limit, offset)
}

func (s *ProductService) getProduct(id uint) (*models.Product, error) {
	p, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// deriveFields recomputes the stored derived values. Incomplete inputs make
// the fields null, they never raise: a listing without stock shows no total,
// an owner without a phone gets no wa.me link.
func deriveFields(p *models.Product, ownerPhone string) {
	if p.UnitPrice > 0 && p.Stock > 0 {
		total := p.UnitPrice * p.Stock
		p.TotalPrice = &total
	} else {
		p.TotalPrice = nil
	}
	if link := whatsapp.Link(ownerPhone); link != "" {
		p.WhatsappLink = &link
	} else {
		p.WhatsappLink = nil
	}
}
