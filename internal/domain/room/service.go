package room

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"theroom/internal/media"
	"theroom/internal/pkg/localized"
)

const mediaPrefix = "room"

// MediaStore persists uploaded room media.
type MediaStore interface {
	StoreBatch(ctx context.Context, hotelID, prefix string, images, videos []media.File) (media.Batch, error)
	Discard(ctx context.Context, uploads ...*media.Upload)
	Remove(ctx context.Context, hotelID, url string) error
}

type Service struct {
	repo  Repository
	media MediaStore
	langs *localized.Languages
}

func NewService(repo Repository, store MediaStore, langs *localized.Languages) *Service {
	return &Service{repo: repo, media: store, langs: langs}
}

// Files are the new media sent with a create or update.
type Files struct {
	Images []media.File
	Videos []media.File
}

func (f Files) empty() bool { return len(f.Images) == 0 && len(f.Videos) == 0 }

func (s *Service) List(ctx context.Context, hotelID string) ([]Room, error) {
	return s.repo.ListByHotel(ctx, hotelID)
}

func (s *Service) Get(ctx context.Context, hotelID, id string) (*Room, error) {
	return s.repo.Get(ctx, hotelID, id)
}

func (s *Service) Create(ctx context.Context, hotelID string, p Payload, files Files) (*Room, error) {
	if p.Price == nil {
		return nil, ErrPriceRequired
	}
	if err := p.validate(s.langs); err != nil {
		return nil, err
	}

	r := newRoom(hotelID)
	p.apply(r)

	batch, err := s.storeMedia(ctx, hotelID, files)
	if err != nil {
		return nil, err
	}
	r.Images = append(r.Images, batch.ImageURLs()...)
	r.Videos = append(r.Videos, batch.VideoURLs()...)

	if err := s.repo.Create(ctx, r); err != nil {
		s.discard(ctx, batch)
		return nil, err
	}
	log.Info().Str("hotel_id", hotelID).Str("room_id", r.ID).Msg("room created")
	return r, nil
}

// Update changes the supplied fields and appends new media after the existing lists.
func (s *Service) Update(ctx context.Context, hotelID, id string, p Payload, files Files) (*Room, error) {
	if err := p.validate(s.langs); err != nil {
		return nil, err
	}
	if !files.empty() {
		// avoid writing files for a room the tenant does not own
		if _, err := s.repo.Get(ctx, hotelID, id); err != nil {
			return nil, err
		}
	}

	batch, err := s.storeMedia(ctx, hotelID, files)
	if err != nil {
		return nil, err
	}

	r, err := s.repo.UpdateLocked(ctx, hotelID, id, func(r *Room) error {
		p.apply(r)
		r.Images = append(slices.Clone(r.Images), batch.ImageURLs()...)
		r.Videos = append(slices.Clone(r.Videos), batch.VideoURLs()...)
		return nil
	})
	if err != nil {
		s.discard(ctx, batch)
		return nil, err
	}
	return r, nil
}

// Delete is idempotent. Media of a removed room is deleted best-effort.
func (s *Service) Delete(ctx context.Context, hotelID, id string) error {
	r, err := s.repo.Delete(ctx, hotelID, id)
	if err != nil || r == nil {
		return err
	}
	for _, url := range slices.Concat(r.Images, r.Videos) {
		if err := s.media.Remove(ctx, hotelID, url); err != nil {
			log.Warn().Err(err).Str("room_id", id).Str("url", url).Msg("failed to remove room media")
		}
	}
	return nil
}

// RemoveMedia detaches url from the room's images or videos and deletes the file.
func (s *Service) RemoveMedia(ctx context.Context, hotelID, id, url string) (*Room, error) {
	r, err := s.repo.UpdateLocked(ctx, hotelID, id, func(r *Room) error {
		images := slices.DeleteFunc(slices.Clone(r.Images), func(u string) bool { return u == url })
		videos := slices.DeleteFunc(slices.Clone(r.Videos), func(u string) bool { return u == url })
		if len(images) == len(r.Images) && len(videos) == len(r.Videos) {
			return ErrMediaNotFound
		}
		r.Images, r.Videos = images, videos
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.media.Remove(ctx, hotelID, url); err != nil {
		log.Warn().Err(err).Str("room_id", id).Str("url", url).Msg("failed to remove room media")
	}
	return r, nil
}

func (s *Service) storeMedia(ctx context.Context, hotelID string, files Files) (media.Batch, error) {
	if files.empty() {
		return media.Batch{}, nil
	}
	return s.media.StoreBatch(ctx, hotelID, mediaPrefix, files.Images, files.Videos)
}

func (s *Service) discard(ctx context.Context, batch media.Batch) {
	s.media.Discard(context.WithoutCancel(ctx), slices.Concat(batch.Images, batch.Videos)...)
}
