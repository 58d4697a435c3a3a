package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/setting"
	"workerTracker/internal/models/task"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const backend = "sqlite"

// Storage - файловое хранилище на gorm. Схема создаётся AutoMigrate при открытии.
type Storage struct {
	db *gorm.DB
}

func New(path string) (*Storage, error) {
	if path == "" {
		return nil, errors.New("sqlite: пустой путь к базе")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	dbLogger := gormlogger.New(
		zap.NewStdLog(logger.Logger),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		logger.Error("Repository: Ошибка открытия SQLite", err, zap.String("path", path))
		return nil, fmt.Errorf("открытие sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("доступ к пулу sqlite: %w", err)
	}
	// один писатель: параллельные транзакции записи в SQLite упираются в SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&taskRow{}, &noteRow{}, &notificationRow{}, &settingRow{}); err != nil {
		logger.Error("Repository: Ошибка миграции SQLite", err)
		return nil, fmt.Errorf("миграция sqlite: %w", err)
	}

	for key, value := range setting.Defaults() {
		row := settingRow{Key: key, Value: value}
		if err := db.Where(settingRow{Key: key}).FirstOrCreate(&row).Error; err != nil {
			return nil, fmt.Errorf("засев настроек: %w", err)
		}
	}

	logger.Info("Repository: SQLite открыт", zap.String("path", path))
	return &Storage{db: db}, nil
}

func (s *Storage) Close() {
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Repository: Ошибка закрытия SQLite", err)
		return
	}
	logger.Info("Repository: SQLite закрыт")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("доступ к пулу sqlite: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

// CalendarSnapshot выбирает задачи и заметки диапазона внутри одной транзакции.
func (s *Storage) CalendarSnapshot(ctx context.Context, start, end dates.DayKey) ([]*task.Task, []*note.Note, error) {
	defer metrics.TrackStoreOperation(backend, "calendar_snapshot").ObserveDuration()

	var taskRows []taskRow
	var noteRows []noteRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scheduled_date BETWEEN ? AND ?", start.String(), end.String()).
			Order("id").Find(&taskRows).Error; err != nil {
			return err
		}
		return tx.Where("associated_date BETWEEN ? AND ?", start.String(), end.String()).
			Order("id").Find(&noteRows).Error
	})
	if err != nil {
		logger.Error("Repository: Ошибка снимка календаря", err)
		return nil, nil, fmt.Errorf("снимок календаря: %w", err)
	}

	tasks := make([]*task.Task, 0, len(taskRows))
	for i := range taskRows {
		tasks = append(tasks, taskRows[i].toTask())
	}
	notes := make([]*note.Note, 0, len(noteRows))
	for i := range noteRows {
		notes = append(notes, noteRows[i].toNote())
	}
	return tasks, notes, nil
}

// ensureDir создаёт каталог под файл базы
func ensureDir(path string) error {
	if strings.Contains(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(strings.TrimPrefix(path, "file:"))
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("создание каталога %q: %w", dir, err)
	}
	return nil
}
