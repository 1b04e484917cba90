package repository

import (
	"errors"
	"fmt"

	"github.com/Itish41/asset-audit/engine"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the engine error taxonomy.
func translate(kind, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &engine.NotFoundError{Kind: kind, ID: id}
	}
	return &engine.DependencyError{Op: fmt.Sprintf("%s %s", kind, id), Err: err}
}
