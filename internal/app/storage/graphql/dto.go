package graphql

import (
	"time"

	"github.com/noizee/storefront/internal/app/domain/blog"
	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/domain/customer"
	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/app/domain/session"
)

// Wire DTOs mirror the backend schema. Domain types stay tag-free; these are
// the only structs that know the JSON field names.

type inventoryDTO struct {
	ColorID  string `json:"colorId"`
	SizeID   string `json:"sizeId"`
	Quantity int    `json:"quantity"`
}

type productDTO struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	BasePrice     float64        `json:"basePrice"`
	ImageURL      string         `json:"imageUrl"`
	CategoryID    string         `json:"categoryId"`
	CollectionIDs []string       `json:"collectionIds"`
	IsNew         bool           `json:"isNew"`
	IsPublished   bool           `json:"isPublished"`
	Inventory     []inventoryDTO `json:"inventory"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (d productDTO) toDomain() catalog.Product {
	inv := make([]catalog.InventoryLevel, 0, len(d.Inventory))
	for _, level := range d.Inventory {
		inv = append(inv, catalog.InventoryLevel{
			ColorID:  level.ColorID,
			SizeID:   level.SizeID,
			Quantity: level.Quantity,
		})
	}
	return catalog.Product{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		BasePrice:     d.BasePrice,
		ImageURL:      d.ImageURL,
		CategoryID:    d.CategoryID,
		CollectionIDs: d.CollectionIDs,
		IsNew:         d.IsNew,
		IsPublished:   d.IsPublished,
		Inventory:     inv,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func productInput(p catalog.Product) map[string]interface{} {
	return map[string]interface{}{
		"name":          p.Name,
		"description":   p.Description,
		"basePrice":     p.BasePrice,
		"imageUrl":      p.ImageURL,
		"categoryId":    p.CategoryID,
		"collectionIds": p.CollectionIDs,
		"isNew":         p.IsNew,
		"isPublished":   p.IsPublished,
	}
}

type categoryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d categoryDTO) toDomain() catalog.Category {
	return catalog.Category{ID: d.ID, Name: d.Name, Slug: d.Slug, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type colorDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Hex       string    `json:"hex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d colorDTO) toDomain() catalog.Color {
	return catalog.Color{ID: d.ID, Name: d.Name, Hex: d.Hex, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type sizeDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d sizeDTO) toDomain() catalog.Size {
	return catalog.Size{ID: d.ID, Name: d.Name, SortOrder: d.SortOrder, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type collectionDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (d collectionDTO) toDomain() catalog.Collection {
	return catalog.Collection{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type postDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl"`
	TagIDs      []string  `json:"tagIds"`
	Status      string    `json:"status"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (d postDTO) toDomain() blog.Post {
	return blog.Post{
		ID:          d.ID,
		Title:       d.Title,
		Slug:        d.Slug,
		Excerpt:     d.Excerpt,
		Content:     d.Content,
		ImageURL:    d.ImageURL,
		TagIDs:      d.TagIDs,
		Status:      d.Status,
		PublishedAt: d.PublishedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func postInput(p blog.Post) map[string]interface{} {
	return map[string]interface{}{
		"title":    p.Title,
		"slug":     p.Slug,
		"excerpt":  p.Excerpt,
		"content":  p.Content,
		"imageUrl": p.ImageURL,
		"tagIds":   p.TagIDs,
		"status":   p.Status,
	}
}

type tagDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d tagDTO) toDomain() blog.Tag {
	return blog.Tag{ID: d.ID, Name: d.Name, Slug: d.Slug, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type orderLineDTO struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	ColorID     string  `json:"colorId"`
	SizeID      string  `json:"sizeId"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type orderDTO struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customerId"`
	Status     string         `json:"status"`
	Lines      []orderLineDTO `json:"lines"`
	Total      float64        `json:"total"`
	PlacedAt   time.Time      `json:"placedAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (d orderDTO) toDomain() order.Order {
	lines := make([]order.Line, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, order.Line{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			ColorID:     l.ColorID,
			SizeID:      l.SizeID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return order.Order{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		Status:     d.Status,
		Lines:      lines,
		Total:      d.Total,
		PlacedAt:   d.PlacedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func orderInput(o order.Order) map[string]interface{} {
	lines := make([]map[string]interface{}, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, map[string]interface{}{
			"productId":   l.ProductID,
			"productName": l.ProductName,
			"colorId":     l.ColorID,
			"sizeId":      l.SizeID,
			"quantity":    l.Quantity,
			"unitPrice":   l.UnitPrice,
		})
	}
	return map[string]interface{}{
		"customerId": o.CustomerID,
		"lines":      lines,
	}
}

type customerDTO struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (d customerDTO) toDomain() customer.Customer {
	return customer.Customer{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		Username:    d.Username,
		Email:       d.Email,
		IsAdmin:     d.IsAdmin,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type loginDTO struct {
	Token string      `json:"token"`
	User  customerDTO `json:"user"`
}

func (d loginDTO) toSession() session.Session {
	return session.Session{
		Token:       d.Token,
		IsAdmin:     d.User.IsAdmin,
		UserID:      d.User.ID,
		DisplayName: d.User.DisplayName,
		Username:    d.User.Username,
		Email:       d.User.Email,
	}
}
