// Пакет session — явный контейнер состояния сессии с определённым
// жизненным циклом: init (регидрация по сохранённому id), save, clear.
// На диск попадает только id пользователя; всё остальное каждый раз
// перечитывается с сервера.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"courier-console/internal/entities"
	"courier-console/pkg/apperrors"
)

const idFileName = "session.id"

type Store struct {
	mu     sync.RWMutex
	auth   entities.AuthState
	dir    string
	logger *zap.Logger
}

func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию сессии: %w", err)
		}
	}
	return &Store{dir: dir, logger: logger.Named("session")}, nil
}

func (s *Store) Auth() entities.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth.ID != 0
}

// Save запоминает личность в памяти и пишет id в файл.
func (s *Store) Save(auth entities.AuthState) error {
	s.mu.Lock()
	s.auth = auth
	s.mu.Unlock()

	path := filepath.Join(s.dir, idFileName)
	if err := os.WriteFile(path, []byte(strconv.FormatInt(auth.ID, 10)), 0o600); err != nil {
		return fmt.Errorf("не удалось сохранить id сессии: %w", err)
	}
	return nil
}

// Clear сбрасывает состояние и удаляет сохранённый id.
func (s *Store) Clear() {
	s.mu.Lock()
	s.auth = entities.AuthState{}
	s.mu.Unlock()

	if err := os.Remove(filepath.Join(s.dir, idFileName)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("не удалось удалить файл сессии", zap.Error(err))
	}
}

// StoredID читает сохранённый id; ErrSessionNotFound — если файла нет
// или содержимое испорчено.
func (s *Store) StoredID() (int64, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, idFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, apperrors.ErrSessionNotFound
		}
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrSessionNotFound
	}
	return id, nil
}

// Rehydrate восстанавливает сессию при старте: по сохранённому id
// перечитывает пользователя с сервера. Любая неудача очищает сессию.
func (s *Store) Rehydrate(ctx context.Context, fetchByID func(context.Context, int64) (entities.AuthState, error)) error {
	id, err := s.StoredID()
	if err != nil {
		return err
	}

	auth, err := fetchByID(ctx, id)
	if err != nil {
		s.logger.Warn("регидрация сессии не удалась", zap.Int64("id", id), zap.Error(err))
		s.Clear()
		return err
	}

	s.mu.Lock()
	s.auth = auth
	s.mu.Unlock()

	s.logger.Info("сессия восстановлена", zap.Int64("id", auth.ID))
	return nil
}
