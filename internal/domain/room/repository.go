package room

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListByHotel(ctx context.Context, hotelID string) ([]Room, error)
	Get(ctx context.Context, hotelID, id string) (*Room, error)
	Create(ctx context.Context, r *Room) error
	UpdateLocked(ctx context.Context, hotelID, id string, fn func(r *Room) error) (*Room, error)
	Delete(ctx context.Context, hotelID, id string) (*Room, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByHotel(ctx context.Context, hotelID string) ([]Room, error) {
	rooms := []Room{}
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *repository) Get(ctx context.Context, hotelID, id string) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) Create(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// UpdateLocked applies fn to the room under a row lock so concurrent media appends
// are serialized.
func (r *repository) UpdateLocked(ctx context.Context, hotelID, id string, fn func(r *Room) error) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("hotel_id = ? AND id = ?", hotelID, id).
			First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if err := fn(&room); err != nil {
			return err
		}
		return tx.Save(&room).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Delete removes the room and returns what was removed, or nil when nothing matched.
func (r *repository) Delete(ctx context.Context, hotelID, id string) (*Room, error) {
	var room Room
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("hotel_id = ? AND id = ?", hotelID, id).First(&room).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return tx.Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&Room{}).Error
	})
	if err != nil || !found {
		return nil, err
	}
	return &room, nil
}
