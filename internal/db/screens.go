package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/pharos-signage/pharos/internal/model"
)

const screenColumns = `
	id, device_id, name, location, paired,
	current_playlist, current_playlist_started_at,
	created_at, updated_at`

func (s *pgStore) CreateScreen(name string, location *string) (model.Screen, error) {
	var screen model.Screen
	q := `
	INSERT INTO screens (name, location, paired, created_at, updated_at)
	VALUES ($1, $2, false, now(), now())
	RETURNING ` + screenColumns + `;`
	if err := s.db.Get(&screen, q, name, location); err != nil {
		log.Error().Err(err).Msg("failed to create screen")
		return model.Screen{}, err
	}
	return screen, nil
}

func (s *pgStore) GetScreenByID(id int) (model.Screen, error) {
	var screen model.Screen
	err := s.db.Get(&screen, `
		SELECT `+screenColumns+`
		FROM screens
		WHERE id = $1
		`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Screen{}, ErrScreenNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to get screen by id")
		return model.Screen{}, err
	}
	return screen, nil
}

func (s *pgStore) GetScreenByDeviceID(deviceID *string) (model.Screen, error) {
	var screen model.Screen
	err := s.db.Get(&screen, `
		SELECT `+screenColumns+`
		FROM screens
		WHERE device_id = $1
		`, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Screen{}, ErrScreenNotFound
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to get screen by device id")
		return model.Screen{}, err
	}
	return screen, nil
}

func (s *pgStore) ListScreens() ([]model.Screen, error) {
	var screens []model.Screen
	err := s.db.Select(&screens, `
		SELECT `+screenColumns+`
		FROM screens
		ORDER BY id
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list screens")
		return nil, err
	}
	return screens, nil
}

func (s *pgStore) UpdateScreen(id int, name, location *string) error {
	res, err := s.db.Exec(`
		UPDATE screens
		SET name = COALESCE($2, name),
		location = COALESCE($3, location),
		updated_at = now()
		WHERE id = $1
		`, id, name, location)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to update screen")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}

func (s *pgStore) DeleteScreen(id int) error {
	res, err := s.db.Exec(`DELETE FROM screens WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to delete screen")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}

func (s *pgStore) PairScreen(id int, deviceID *string) error {
	res, err := s.db.Exec(`
		UPDATE screens
		SET paired = TRUE,
		device_id = COALESCE($2, device_id),
		updated_at = now()
		WHERE id = $1
		`, id, deviceID)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to pair screen")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}
