package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoreDocument is the row a PostgresPersister keeps per key.
type StoreDocument struct {
	Key       string `gorm:"primaryKey"`
	Data      datatypes.JSON
	UpdatedAt time.Time
}

// PostgresPersister keeps each key as one row of store_documents.
type PostgresPersister struct {
	db *gorm.DB
}

// NewPostgresPersister migrates the store_documents table and returns a
// persister over it.
func NewPostgresPersister(db *gorm.DB) (*PostgresPersister, error) {
	if err := db.AutoMigrate(&StoreDocument{}); err != nil {
		return nil, fmt.Errorf("migrate store_documents: %w", err)
	}
	return &PostgresPersister{db: db}, nil
}

func (p *PostgresPersister) Load(ctx context.Context, key string) ([]byte, error) {
	var doc StoreDocument
	err := p.db.WithContext(ctx).First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return []byte(doc.Data), nil
}

func (p *PostgresPersister) Save(ctx context.Context, key string, data []byte) error {
	doc := StoreDocument{Key: key, Data: datatypes.JSON(data), UpdatedAt: time.Now()}
	if err := p.db.WithContext(ctx).Save(&doc).Error; err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
