package staticpage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Get(ctx context.Context, hotelID, pageType string) (*Page, error)
	Upsert(ctx context.Context, p *Page, columns []string) (*Page, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Get returns nil without error when the hotel has not saved the page yet.
func (r *repository) Get(ctx context.Context, hotelID, pageType string) (*Page, error) {
	var p Page
	err := r.db.WithContext(ctx).Where("hotel_id = ? AND type = ?", hotelID, pageType).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts p or, when the hotel already has the type, overwrites only columns.
func (r *repository) Upsert(ctx context.Context, p *Page, columns []string) (*Page, error) {
	var out Page
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hotel_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
		}).Create(p).Error
		if err != nil {
			return err
		}
		return tx.Where("hotel_id = ? AND type = ?", p.HotelID, p.Type).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
