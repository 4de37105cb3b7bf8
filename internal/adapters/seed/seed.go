// Package seed provides the bundled local review collection.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"guest_reviews/internal/domain"
)

//go:embed reviews.json
var bundled []byte

var validate = validator.New()

// Reviews returns the bundled collection.
func Reviews() ([]domain.Review, error) {
	return decode(bundled)
}

// Load reads a collection from path, or the bundled one when path is empty.
func Load(path string) ([]domain.Review, error) {
	if path == "" {
		return Reviews()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return decode(b)
}

func decode(b []byte) ([]domain.Review, error) {
	var out []domain.Review
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	for i := range out {
		if err := validate.Struct(out[i]); err != nil {
			return nil, fmt.Errorf("seed: record %d: %w", i, err)
		}
	}
	return out, nil
}
