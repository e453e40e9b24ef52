package setting

import (
	"context"
	"net/http"

	"ice.edu/helpinghand/internal/entity"
	repository "ice.edu/helpinghand/internal/modules/setting/repository"
	"ice.edu/helpinghand/pkg/apperror"
)

// SettingService exposes site settings as a flat key/value map.
type SettingService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	UpdateAll(ctx context.Context, settings map[string]string) (map[string]string, error)
}

type service struct {
	repo repository.SettingRepository
}

func NewSettingService(repo repository.SettingRepository) SettingService {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

func (s *service) UpdateAll(ctx context.Context, settings map[string]string) (map[string]string, error) {
	if len(settings) == 0 {
		return nil, apperror.New(http.StatusBadRequest, "settings object is required", apperror.ErrInvalidInput)
	}

	rows := make([]*entity.SiteSetting, 0, len(settings))
	for key, value := range settings {
		if key == "" {
			return nil, apperror.New(http.StatusBadRequest, "setting keys must not be empty", apperror.ErrInvalidInput)
		}
		rows = append(rows, &entity.SiteSetting{Key: key, Value: value})
	}

	if err := s.repo.Upsert(ctx, rows); err != nil {
		return nil, err
	}

	return s.GetAll(ctx)
}
