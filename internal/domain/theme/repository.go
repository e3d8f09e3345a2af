package theme

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	List(ctx context.Context, hotelID string) ([]Theme, error)
	Get(ctx context.Context, hotelID, id string) (*Theme, error)
	Active(ctx context.Context, hotelID string) (*Theme, error)
	Create(ctx context.Context, t *Theme) error
	UpdateLocked(ctx context.Context, hotelID, id string, fn func(t *Theme) error) (*Theme, error)
	DeleteInactive(ctx context.Context, hotelID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, hotelID string) ([]Theme, error) {
	themes := []Theme{}
	err := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("created_at DESC").Find(&themes).Error
	return themes, err
}

func (r *repository) Get(ctx context.Context, hotelID, id string) (*Theme, error) {
	var t Theme
	err := r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrThemeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Active(ctx context.Context, hotelID string) (*Theme, error) {
	var t Theme
	err := r.db.WithContext(ctx).Where("hotel_id = ? AND is_active = ?", hotelID, true).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveTheme
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Create(ctx context.Context, t *Theme) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// UpdateLocked locks every theme of the hotel, applies fn to the target and saves it.
// When fn activates the target, the other themes are deactivated in the same transaction.
func (r *repository) UpdateLocked(ctx context.Context, hotelID, id string, fn func(t *Theme) error) (*Theme, error) {
	var target Theme
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var themes []Theme
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("hotel_id = ?", hotelID).
			Find(&themes).Error; err != nil {
			return err
		}
		found := false
		for _, t := range themes {
			if t.ID == id {
				target, found = t, true
				break
			}
		}
		if !found {
			return ErrThemeNotFound
		}

		wasActive := target.IsActive
		if err := fn(&target); err != nil {
			return err
		}
		if target.IsActive && !wasActive {
			if err := tx.Model(&Theme{}).
				Where("hotel_id = ? AND id <> ? AND is_active = ?", hotelID, id, true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&target).Error
	})
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *repository) DeleteInactive(ctx context.Context, hotelID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t Theme
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("hotel_id = ? AND id = ?", hotelID, id).
			First(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThemeNotFound
		}
		if err != nil {
			return err
		}
		if t.IsActive {
			return ErrActiveTheme
		}
		return tx.Delete(&t).Error
	})
}
