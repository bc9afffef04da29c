package graphql

import (
	"context"

	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/listquery"
)

func productID(d productDTO) string       { return d.ID }
func categoryID(d categoryDTO) string     { return d.ID }
func colorID(d colorDTO) string           { return d.ID }
func sizeID(d sizeDTO) string             { return d.ID }
func collectionID(d collectionDTO) string { return d.ID }

// --- products ---------------------------------------------------------------

func (s *Store) ListProducts(ctx context.Context, p listquery.Params) ([]catalog.Product, int, error) {
	items, count, err := fetchPage[productDTO](ctx, s, kindProduct, "Products", queryProducts, "products", p, productID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Product, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	d, err := fetchOne[productDTO](ctx, s, kindProduct, "Product", queryProduct, "product", id)
	if err != nil {
		return catalog.Product{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	vars := map[string]interface{}{"input": productInput(p)}
	d, err := mutateCreate[productDTO](ctx, s, kindProduct, "CreateProduct", mutationCreateProduct, "createProduct", vars, productID)
	if err != nil {
		return catalog.Product{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	vars := map[string]interface{}{"id": p.ID, "input": productInput(p)}
	d, err := mutateUpdate[productDTO](ctx, s, kindProduct, "UpdateProduct", mutationUpdateProduct, "updateProduct", vars, productID)
	if err != nil {
		return catalog.Product{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return mutateDelete(ctx, s, kindProduct, "DeleteProduct", mutationDeleteProduct, "deleteProduct", id)
}

func (s *Store) SetInventory(ctx context.Context, productID string, levels []catalog.InventoryLevel) (catalog.Product, error) {
	wire := make([]map[string]interface{}, 0, len(levels))
	for _, l := range levels {
		wire = append(wire, map[string]interface{}{
			"colorId":  l.ColorID,
			"sizeId":   l.SizeID,
			"quantity": l.Quantity,
		})
	}
	vars := map[string]interface{}{"productId": productID, "levels": wire}
	d, err := mutateUpdate[productDTO](ctx, s, kindProduct, "SetInventory", mutationSetInventory, "setInventory",
		vars, func(d productDTO) string { return d.ID })
	if err != nil {
		return catalog.Product{}, err
	}
	return d.toDomain(), nil
}

// --- categories -------------------------------------------------------------

func (s *Store) ListCategories(ctx context.Context, p listquery.Params) ([]catalog.Category, int, error) {
	items, count, err := fetchPage[categoryDTO](ctx, s, kindCategory, "Categories", queryCategories, "categories", p, categoryID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Category, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	vars := map[string]interface{}{"input": map[string]interface{}{"name": c.Name, "slug": c.Slug}}
	d, err := mutateCreate[categoryDTO](ctx, s, kindCategory, "CreateCategory", mutationCreateCategory, "createCategory", vars, categoryID)
	if err != nil {
		return catalog.Category{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) UpdateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	vars := map[string]interface{}{"id": c.ID, "input": map[string]interface{}{"name": c.Name, "slug": c.Slug}}
	d, err := mutateUpdate[categoryDTO](ctx, s, kindCategory, "UpdateCategory", mutationUpdateCategory, "updateCategory", vars, categoryID)
	if err != nil {
		return catalog.Category{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return mutateDelete(ctx, s, kindCategory, "DeleteCategory", mutationDeleteCategory, "deleteCategory", id)
}

// --- colors -----------------------------------------------------------------

func (s *Store) ListColors(ctx context.Context, p listquery.Params) ([]catalog.Color, int, error) {
	items, count, err := fetchPage[colorDTO](ctx, s, kindColor, "Colors", queryColors, "colors", p, colorID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Color, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) CreateColor(ctx context.Context, c catalog.Color) (catalog.Color, error) {
	vars := map[string]interface{}{"input": map[string]interface{}{"name": c.Name, "hex": c.Hex}}
	d, err := mutateCreate[colorDTO](ctx, s, kindColor, "CreateColor", mutationCreateColor, "createColor", vars, colorID)
	if err != nil {
		return catalog.Color{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) UpdateColor(ctx context.Context, c catalog.Color) (catalog.Color, error) {
	vars := map[string]interface{}{"id": c.ID, "input": map[string]interface{}{"name": c.Name, "hex": c.Hex}}
	d, err := mutateUpdate[colorDTO](ctx, s, kindColor, "UpdateColor", mutationUpdateColor, "updateColor", vars, colorID)
	if err != nil {
		return catalog.Color{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) DeleteColor(ctx context.Context, id string) error {
	return mutateDelete(ctx, s, kindColor, "DeleteColor", mutationDeleteColor, "deleteColor", id)
}

// --- sizes ------------------------------------------------------------------

func (s *Store) ListSizes(ctx context.Context, p listquery.Params) ([]catalog.Size, int, error) {
	items, count, err := fetchPage[sizeDTO](ctx, s, kindSize, "Sizes", querySizes, "sizes", p, sizeID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Size, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) CreateSize(ctx context.Context, sz catalog.Size) (catalog.Size, error) {
	vars := map[string]interface{}{"input": map[string]interface{}{"name": sz.Name, "sortOrder": sz.SortOrder}}
	d, err := mutateCreate[sizeDTO](ctx, s, kindSize, "CreateSize", mutationCreateSize, "createSize", vars, sizeID)
	if err != nil {
		return catalog.Size{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) UpdateSize(ctx context.Context, sz catalog.Size) (catalog.Size, error) {
	vars := map[string]interface{}{"id": sz.ID, "input": map[string]interface{}{"name": sz.Name, "sortOrder": sz.SortOrder}}
	d, err := mutateUpdate[sizeDTO](ctx, s, kindSize, "UpdateSize", mutationUpdateSize, "updateSize", vars, sizeID)
	if err != nil {
		return catalog.Size{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) DeleteSize(ctx context.Context, id string) error {
	return mutateDelete(ctx, s, kindSize, "DeleteSize", mutationDeleteSize, "deleteSize", id)
}

// --- collections ------------------------------------------------------------

func (s *Store) ListCollections(ctx context.Context, p listquery.Params) ([]catalog.Collection, int, error) {
	items, count, err := fetchPage[collectionDTO](ctx, s, kindCollection, "Collections", queryCollections, "collections", p, collectionID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Collection, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) CreateCollection(ctx context.Context, c catalog.Collection) (catalog.Collection, error) {
	vars := map[string]interface{}{"input": map[string]interface{}{"name": c.Name, "slug": c.Slug, "description": c.Description}}
	d, err := mutateCreate[collectionDTO](ctx, s, kindCollection, "CreateCollection", mutationCreateCollection, "createCollection", vars, collectionID)
	if err != nil {
		return catalog.Collection{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) UpdateCollection(ctx context.Context, c catalog.Collection) (catalog.Collection, error) {
	vars := map[string]interface{}{"id": c.ID, "input": map[string]interface{}{"name": c.Name, "slug": c.Slug, "description": c.Description}}
	d, err := mutateUpdate[collectionDTO](ctx, s, kindCollection, "UpdateCollection", mutationUpdateCollection, "updateCollection", vars, collectionID)
	if err != nil {
		return catalog.Collection{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	return mutateDelete(ctx, s, kindCollection, "DeleteCollection", mutationDeleteCollection, "deleteCollection", id)
}
