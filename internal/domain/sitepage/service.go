package sitepage

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"theroom/internal/pkg/apperr"
	"theroom/internal/pkg/localized"
)

type Service struct {
	repo  Repository
	langs *localized.Languages
}

func NewService(repo Repository, langs *localized.Languages) *Service {
	return &Service{repo: repo, langs: langs}
}

func (s *Service) List(ctx context.Context, hotelID string) ([]WebsitePage, error) {
	return s.repo.List(ctx, hotelID)
}

func (s *Service) Get(ctx context.Context, hotelID, id string) (*WebsitePage, error) {
	return s.repo.Get(ctx, hotelID, id)
}

func (s *Service) Create(ctx context.Context, hotelID, name, slug string) (*WebsitePage, error) {
	name = strings.TrimSpace(name)
	slug = NormalizeSlug(slug)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if slug == "" {
		return nil, apperr.Validation("slug is required")
	}
	if err := s.ensureSlugFree(ctx, hotelID, slug, ""); err != nil {
		return nil, err
	}

	p := &WebsitePage{HotelID: hotelID, Name: name, Slug: slug, Components: []Component{}}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateInput holds the optional parts of a page save. Components replace the
// stored list wholesale.
type UpdateInput struct {
	Name       *string
	Slug       *string
	Components *[]Component
}

func (s *Service) Update(ctx context.Context, hotelID, id string, in UpdateInput) (*WebsitePage, error) {
	var name, slug string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("name must not be empty")
		}
	}
	if in.Slug != nil {
		slug = NormalizeSlug(*in.Slug)
		if slug == "" {
			return nil, apperr.Validation("slug must not be empty")
		}
		// a missing page is NotFound even when the slug is taken
		if _, err := s.repo.Get(ctx, hotelID, id); err != nil {
			return nil, err
		}
		if err := s.ensureSlugFree(ctx, hotelID, slug, id); err != nil {
			return nil, err
		}
	}
	var components []Component
	if in.Components != nil {
		var err error
		if components, err = ValidateComponents(*in.Components, s.langs); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateLocked(ctx, hotelID, id, func(p *WebsitePage) error {
		if in.Slug != nil && slug != p.Slug {
			if p.IsSystemPage {
				return ErrSystemPageSlug
			}
			p.Slug = slug
		}
		if in.Name != nil {
			p.Name = name
		}
		if in.Components != nil {
			p.Components = components
		}
		return nil
	})
}

func (s *Service) UpdateMeta(ctx context.Context, hotelID, id string, name, slug *string) (*WebsitePage, error) {
	return s.Update(ctx, hotelID, id, UpdateInput{Name: name, Slug: slug})
}

// ReplaceComponents is the builder's save: the list is stored as sent.
func (s *Service) ReplaceComponents(ctx context.Context, hotelID, id string, components []Component) (*WebsitePage, error) {
	return s.Update(ctx, hotelID, id, UpdateInput{Components: &components})
}

func (s *Service) Delete(ctx context.Context, hotelID, id string) error {
	p, err := s.repo.Get(ctx, hotelID, id)
	if err != nil {
		return err
	}
	if p.IsSystemPage {
		return ErrSystemPage
	}
	return s.repo.Delete(ctx, hotelID, id)
}

// SeedSystemPages creates the pages every hotel starts with. Existing ones are left alone.
func (s *Service) SeedSystemPages(ctx context.Context, hotelID string) error {
	_, err := s.repo.GetBySlug(ctx, hotelID, HomeSlug)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrPageNotFound) {
		return err
	}
	err = s.repo.Create(ctx, &WebsitePage{
		HotelID:      hotelID,
		Name:         HomeName,
		Slug:         HomeSlug,
		Components:   []Component{},
		IsSystemPage: true,
	})
	if errors.Is(err, ErrSlugTaken) {
		return nil
	}
	if err == nil {
		log.Info().Str("hotel_id", hotelID).Msg("system pages seeded")
	}
	return err
}

// OwnsPage reports whether pageID is one of the hotel's pages.
func (s *Service) OwnsPage(ctx context.Context, hotelID, pageID string) (bool, error) {
	_, err := s.repo.Get(ctx, hotelID, pageID)
	if errors.Is(err, ErrPageNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) ensureSlugFree(ctx context.Context, hotelID, slug, exceptID string) error {
	other, err := s.repo.GetBySlug(ctx, hotelID, slug)
	if errors.Is(err, ErrPageNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != exceptID {
		return ErrSlugTaken
	}
	return nil
}
