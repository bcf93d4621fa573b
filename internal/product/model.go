package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptionType enumerates the customization inputs a seller can attach to a
// hamper product.
type OptionType string

const (
	OptionImageUpload OptionType = "image_upload"
	OptionTextInput   OptionType = "text_input"
	OptionColorPicker OptionType = "color_picker"
	OptionDropdown    OptionType = "dropdown"
	OptionCheckbox    OptionType = "checkbox"
)

// CustomizationOption is a seller-defined input a customer fills in to
// personalize a product. Options are positional: the customer's value for the
// option at index i is stored under the cart key "option_<i>".
type CustomizationOption struct {
	Type           OptionType `json:"type"`
	Label          string     `json:"label"`
	Required       bool       `json:"required"`
	Choices        []string   `json:"choices,omitempty"`         // dropdown / checkbox
	MaxLength      *int       `json:"max_length,omitempty"`      // text input
	AllowedFormats []string   `json:"allowed_formats,omitempty"` // image upload
	MaxFileSizeMB  *int       `json:"max_file_size_mb,omitempty"`
}

type Variant struct {
	ID              string            `json:"id"`
	ProductID       string            `json:"product_id"`
	Name            string            `json:"name"`
	SKU             *string           `json:"sku,omitempty"`
	PriceAdjustment decimal.Decimal   `json:"price_adjustment"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	InventoryCount  int               `json:"inventory_count"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"`
}

type Product struct {
	ID                   string                `json:"id"`
	SellerID             string                `json:"seller_id"`
	CategoryID           string                `json:"category_id"`
	Name                 string                `json:"name"`
	Slug                 string                `json:"slug"`
	Description          *string               `json:"description,omitempty"`
	BasePrice            decimal.Decimal       `json:"base_price"`
	SKU                  *string               `json:"sku,omitempty"`
	IsCustomizable       bool                  `json:"is_customizable"`
	CustomizationOptions []CustomizationOption `json:"customization_options,omitempty"`
	Images               []string              `json:"images,omitempty"`
	Tags                 []string              `json:"tags,omitempty"`
	IsActive             bool                  `json:"is_active"`
	IsFeatured           bool                  `json:"is_featured"`
	IsApproved           bool                  `json:"is_approved"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`

	Variants []*Variant `json:"variants,omitempty"`
}

// Variant returns the variant with the given id, nil when the product has no
// such variant.
func (p *Product) Variant(variantID string) *Variant {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v
		}
	}
	return nil
}

type GetProductOptions struct {
	ProductID  string
	OnlyActive bool
}

type NewProductInput struct {
	CategoryID           string                `json:"category_id"`
	Name                 string                `json:"name"`
	Description          *string               `json:"description"`
	BasePrice            decimal.Decimal       `json:"base_price"`
	SKU                  *string               `json:"sku"`
	IsCustomizable       bool                  `json:"is_customizable"`
	CustomizationOptions []CustomizationOption `json:"customization_options"`
	Images               []string              `json:"images"`
	Tags                 []string              `json:"tags"`
}

type UpdateProductInput struct {
	ProductID   string           `json:"-"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	CategoryID  *string          `json:"category_id"`
	IsActive    *bool            `json:"is_active"`
}
