package sitepage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"theroom/internal/database"
)

type Repository interface {
	List(ctx context.Context, hotelID string) ([]WebsitePage, error)
	Get(ctx context.Context, hotelID, id string) (*WebsitePage, error)
	GetBySlug(ctx context.Context, hotelID, slug string) (*WebsitePage, error)
	Create(ctx context.Context, p *WebsitePage) error
	UpdateLocked(ctx context.Context, hotelID, id string, fn func(p *WebsitePage) error) (*WebsitePage, error)
	Delete(ctx context.Context, hotelID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, hotelID string) ([]WebsitePage, error) {
	pages := []WebsitePage{}
	err := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("created_at ASC").Find(&pages).Error
	return pages, err
}

func (r *repository) Get(ctx context.Context, hotelID, id string) (*WebsitePage, error) {
	return r.first(ctx, "hotel_id = ? AND id = ?", hotelID, id)
}

func (r *repository) GetBySlug(ctx context.Context, hotelID, slug string) (*WebsitePage, error) {
	return r.first(ctx, "hotel_id = ? AND slug = ?", hotelID, slug)
}

func (r *repository) first(ctx context.Context, query string, args ...any) (*WebsitePage, error) {
	var p WebsitePage
	err := r.db.WithContext(ctx).Where(query, args...).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *WebsitePage) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if database.IsUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}

func (r *repository) UpdateLocked(ctx context.Context, hotelID, id string, fn func(p *WebsitePage) error) (*WebsitePage, error) {
	var p WebsitePage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("hotel_id = ? AND id = ?", hotelID, id).
			First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}
		if err := fn(&p); err != nil {
			return err
		}
		if err := tx.Save(&p).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrSlugTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, hotelID, id string) error {
	res := r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&WebsitePage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}
