package media

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, u *Upload) error
	GetByURL(ctx context.Context, hotelID, url string) (*Upload, error)
	Delete(ctx context.Context, hotelID, id string) error
	ListByHotel(ctx context.Context, hotelID, kind string) ([]*Upload, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *Upload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetByURL(ctx context.Context, hotelID, url string) (*Upload, error) {
	var u Upload
	err := r.db.WithContext(ctx).Where("hotel_id = ? AND file_url = ?", hotelID, url).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Delete(ctx context.Context, hotelID, id string) error {
	return r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&Upload{}).Error
}

func (r *repository) ListByHotel(ctx context.Context, hotelID, kind string) ([]*Upload, error) {
	q := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	uploads := []*Upload{}
	err := q.Order("created_at DESC").Find(&uploads).Error
	return uploads, err
}
