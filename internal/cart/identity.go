package cart

import (
	"encoding/json"
	"fmt"
)

// identityKey derives the merge identity of a line item. Two adds with the
// same product, variant, and structurally equal customization must land on
// the same key regardless of map insertion order, so the customization part
// is canonicalized through encoding/json, which marshals map keys in sorted
// order at every nesting level.
func identityKey(productID, variantID string, customization map[string]any) (string, error) {
	if len(customization) == 0 {
		return productID + "|" + variantID, nil
	}

	canonical, err := json.Marshal(customization)
	if err != nil {
		return "", fmt.Errorf("canonicalize customization: %w", err)
	}
	return productID + "|" + variantID + "|" + string(canonical), nil
}
