package lookup

import (
	"errors"
	"strings"
)

// barcodeVariants expands a scanned barcode into the spellings worth
// searching. A 12-digit UPC also exists in the database as a 13-digit
// EAN with a leading zero, and vice versa.
func barcodeVariants(code string) ([]string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("barcode must not be empty")
	}

	variants := []string{code}
	switch {
	case len(code) == 12:
		variants = append(variants, "0"+code)
	case len(code) == 13 && strings.HasPrefix(code, "0"):
		variants = append(variants, code[1:])
	}
	return variants, nil
}
