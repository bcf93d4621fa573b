package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"hampernest-be/internal/logger"

	"go.uber.org/zap"
)

// Resolver is the product lookup consumed by the cart and checkout flows.
// A missing product resolves to (nil, nil); callers treat nil as unresolved.
type Resolver interface {
	GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error)
}

type ListOptions struct {
	CategoryID   *string
	SellerID     *string
	OnlyActive   bool
	FeaturedOnly bool
	Limit        int
}

type Repository interface {
	Resolver
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Create(ctx context.Context, input NewProductInput, sellerID string) (*Product, error)
	Update(ctx context.Context, input UpdateProductInput, sellerID string) error
	Deactivate(ctx context.Context, productID, sellerID string) error
	Approve(ctx context.Context, productID string) error
	ListCategories(ctx context.Context) ([]*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, seller_id, category_id, name, slug, description, base_price,
	sku, is_customizable, customization_options, images, tags,
	is_active, is_featured, is_approved, created_at, updated_at`

func (r *repository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if opts.OnlyActive {
		query += ` AND is_active = TRUE`
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, opts.ProductID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product",
			zap.String("product_id", opts.ProductID), zap.Error(err))
		return nil, err
	}

	if err := r.loadVariants(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	var (
		conds []string
		args  []any
	)
	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if opts.SellerID != nil {
		args = append(args, *opts.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id = $%d", len(args)))
	}
	if opts.OnlyActive {
		conds = append(conds, "is_active = TRUE")
	}
	if opts.FeaturedOnly {
		conds = append(conds, "is_featured = TRUE")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, input NewProductInput, sellerID string) (*Product, error) {
	optsJSON, err := json.Marshal(input.CustomizationOptions)
	if err != nil {
		return nil, fmt.Errorf("encode customization options: %w", err)
	}
	imagesJSON, _ := json.Marshal(input.Images)
	tagsJSON, _ := json.Marshal(input.Tags)

	slug := Slugify(input.Name, sellerID)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			seller_id, category_id, name, slug, description, base_price, sku,
			is_customizable, customization_options, images, tags
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+productColumns,
		sellerID, input.CategoryID, input.Name, slug, input.Description,
		input.BasePrice, input.SKU, input.IsCustomizable, optsJSON, imagesJSON, tagsJSON,
	)

	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, input UpdateProductInput, sellerID string) error {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.BasePrice != nil {
		add("base_price", *input.BasePrice)
	}
	if input.CategoryID != nil {
		add("category_id", *input.CategoryID)
	}
	if input.IsActive != nil {
		add("is_active", *input.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, input.ProductID, sellerID)
	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d AND seller_id = $%d`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotProductOwner
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, productID, sellerID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW()
		 WHERE id = $1 AND seller_id = $2`,
		productID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotProductOwner
	}
	return nil
}

// Approve marks a product approved for the storefront. Admin-only; the
// caller's permission check happens at the transport layer.
func (r *repository) Approve(ctx context.Context, productID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_approved = TRUE, updated_at = NOW() WHERE id = $1`,
		productID,
	)
	if err != nil {
		return fmt.Errorf("approve product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, parent_id, icon_url, is_active, sort_order, created_at
		FROM categories WHERE is_active = TRUE ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.IconURL,
			&c.IsActive, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *repository) loadVariants(ctx context.Context, p *Product) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, sku, price_adjustment, attributes,
		       inventory_count, is_active, created_at
		FROM product_variants WHERE product_id = $1 ORDER BY created_at`,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("load variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		v := &Variant{}
		var attrs []byte
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.SKU, &v.PriceAdjustment,
			&attrs, &v.InventoryCount, &v.IsActive, &v.CreatedAt); err != nil {
			return err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &v.Attributes); err != nil {
				return fmt.Errorf("decode variant attributes: %w", err)
			}
		}
		p.Variants = append(p.Variants, v)
	}
	return rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	var optsJSON, imagesJSON, tagsJSON []byte

	err := row.Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.BasePrice, &p.SKU, &p.IsCustomizable, &optsJSON, &imagesJSON, &tagsJSON,
		&p.IsActive, &p.IsFeatured, &p.IsApproved, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(optsJSON) > 0 {
		if err := json.Unmarshal(optsJSON, &p.CustomizationOptions); err != nil {
			return nil, fmt.Errorf("decode customization options: %w", err)
		}
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return p, nil
}
