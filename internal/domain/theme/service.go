package theme

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"theroom/internal/pkg/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, hotelID string) ([]Theme, error) {
	return s.repo.List(ctx, hotelID)
}

func (s *Service) Get(ctx context.Context, hotelID, id string) (*Theme, error) {
	return s.repo.Get(ctx, hotelID, id)
}

// Active returns the theme the public site renders with.
func (s *Service) Active(ctx context.Context, hotelID string) (*Theme, error) {
	return s.repo.Active(ctx, hotelID)
}

// Create adds an inactive theme with the default configuration.
func (s *Service) Create(ctx context.Context, hotelID, name string) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	t := &Theme{HotelID: hotelID, Name: name, IsActive: false, Config: DefaultConfig()}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateInput is a partial theme change. IsActive true activates the theme and
// deactivates the others; false only deactivates it.
type UpdateInput struct {
	Name     *string
	IsActive *bool
	Config   map[string]any
}

func (s *Service) Update(ctx context.Context, hotelID, id string, in UpdateInput) (*Theme, error) {
	var name string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("name must not be empty")
		}
	}
	t, err := s.repo.UpdateLocked(ctx, hotelID, id, func(t *Theme) error {
		if in.Name != nil {
			t.Name = name
		}
		if in.Config != nil {
			t.Config = cloneConfig(in.Config)
		}
		if in.IsActive != nil {
			t.IsActive = *in.IsActive
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if in.IsActive != nil && *in.IsActive {
		log.Info().Str("hotel_id", hotelID).Str("theme_id", id).Msg("theme activated")
	}
	return t, nil
}

func (s *Service) Activate(ctx context.Context, hotelID, id string) (*Theme, error) {
	active := true
	return s.Update(ctx, hotelID, id, UpdateInput{IsActive: &active})
}

func (s *Service) Rename(ctx context.Context, hotelID, id, name string) (*Theme, error) {
	return s.Update(ctx, hotelID, id, UpdateInput{Name: &name})
}

// UpdateConfig replaces the stored configuration.
func (s *Service) UpdateConfig(ctx context.Context, hotelID, id string, config map[string]any) (*Theme, error) {
	if config == nil {
		config = map[string]any{}
	}
	return s.Update(ctx, hotelID, id, UpdateInput{Config: config})
}

func (s *Service) Delete(ctx context.Context, hotelID, id string) error {
	return s.repo.DeleteInactive(ctx, hotelID, id)
}
