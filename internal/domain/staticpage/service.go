package staticpage

import (
	"context"

	"github.com/rs/zerolog/log"

	"theroom/internal/media"
	"theroom/internal/pkg/localized"
)

type MediaStore interface {
	ProcessImage(ctx context.Context, hotelID, prefix string, f media.File) (*media.Upload, error)
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

// Get never reports a missing page; an unsaved type yields an empty view.
func (s *Service) Get(ctx context.Context, hotelID, pageType string) (View, error) {
	if !validType(pageType) {
		return View{}, ErrUnknownType
	}
	p, err := s.repo.Get(ctx, hotelID, pageType)
	if err != nil {
		return View{}, err
	}
	if p == nil {
		return emptyView(pageType), nil
	}
	return p.View(), nil
}

type UpsertInput struct {
	Title   *localized.Text
	Content *localized.Text
	Image   *media.File
}

// Upsert saves the supplied fields. A new image replaces the stored one; without
// one the current image is kept.
func (s *Service) Upsert(ctx context.Context, hotelID, pageType string, in UpsertInput) (View, error) {
	if !validType(pageType) {
		return View{}, ErrUnknownType
	}
	for field, text := range map[string]*localized.Text{"title": in.Title, "content": in.Content} {
		if text != nil && s.langs != nil {
			if err := s.langs.Validate(field, *text); err != nil {
				return View{}, err
			}
		}
	}

	p := &Page{HotelID: hotelID, Type: pageType, Title: localized.Text{}, Content: localized.Text{}}
	var columns []string
	if in.Title != nil {
		p.Title = in.Title.Clone()
		columns = append(columns, "title")
	}
	if in.Content != nil {
		p.Content = in.Content.Clone()
		columns = append(columns, "content")
	}

	var previous string
	var upload *media.Upload
	if in.Image != nil {
		current, err := s.repo.Get(ctx, hotelID, pageType)
		if err != nil {
			return View{}, err
		}
		if current != nil {
			previous = current.ImageURL
		}
		upload, err = s.media.ProcessImage(ctx, hotelID, "page-"+pageType, *in.Image)
		if err != nil {
			return View{}, err
		}
		p.ImageURL = upload.FileURL
		columns = append(columns, "image_url")
	}

	saved, err := s.repo.Upsert(ctx, p, columns)
	if err != nil {
		if upload != nil {
			s.media.Discard(context.WithoutCancel(ctx), upload)
		}
		return View{}, err
	}
	if previous != "" && previous != saved.ImageURL {
		if err := s.media.Remove(ctx, hotelID, previous); err != nil {
			log.Warn().Err(err).Str("hotel_id", hotelID).Str("type", pageType).Msg("failed to remove replaced page image")
		}
	}
	return saved.View(), nil
}
