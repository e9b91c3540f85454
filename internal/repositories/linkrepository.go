package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mkravets/shortener/internal/database"
	"github.com/mkravets/shortener/internal/model"
)

// ErrCodeTaken возвращается при нарушении уникальности ключа:
// код (или числовой id) уже занят другой записью.
var ErrCodeTaken = errors.New("short code already taken")

// LinkRepositoryInterface определяет методы репозитория коротких ссылок.
// Две пары Save/Get соответствуют двум формам первичного ключа:
// строковый код (режим random) и числовой id (режим sequence).
type LinkRepositoryInterface interface {
	SaveByCode(ctx context.Context, link *model.ShortLink) error
	GetByCode(ctx context.Context, code string) (*model.ShortLink, error)
	SaveByID(ctx context.Context, link *model.ShortLink) error
	GetByID(ctx context.Context, id int64) (*model.ShortLink, error)
	Ping(ctx context.Context) error
}

// LinkRepository реализует LinkRepositoryInterface с использованием PostgreSQL.
type LinkRepository struct {
	DB database.DBInterface
}

// NewLinkRepository создаёт новый экземпляр LinkRepository.
func NewLinkRepository(db database.DBInterface) *LinkRepository {
	return &LinkRepository{DB: db}
}

// SaveByCode сохраняет ссылку с кодом в роли первичного ключа.
// Конфликт по коду возвращается как ErrCodeTaken.
func (r *LinkRepository) SaveByCode(ctx context.Context, link *model.ShortLink) error {
	query := `INSERT INTO short_urls (code, long_url, owner_id, created_at, expires_at, is_custom)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.(*database.DB).Pool.Exec(ctx, query,
		link.Code, link.LongURL, nullable(link.OwnerID), link.CreatedAt, link.ExpiresAt, link.IsCustom)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("database insert error: %w", err)
	}
	return nil
}

// GetByCode извлекает ссылку по коду. Отсутствие записи — (nil, nil).
func (r *LinkRepository) GetByCode(ctx context.Context, code string) (*model.ShortLink, error) {
	query := `SELECT code, long_url, COALESCE(owner_id, ''), created_at, expires_at, is_custom
              FROM short_urls WHERE code = $1`

	link := &model.ShortLink{}
	err := r.DB.(*database.DB).Pool.QueryRow(ctx, query, code).Scan(
		&link.Code, &link.LongURL, &link.OwnerID, &link.CreatedAt, &link.ExpiresAt, &link.IsCustom,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return link, nil
}

// SaveByID сохраняет ссылку с числовым id в роли первичного ключа.
// Id выдаётся внешним счётчиком, конфликт здесь означает сбой счётчика.
func (r *LinkRepository) SaveByID(ctx context.Context, link *model.ShortLink) error {
	query := `INSERT INTO sequence_urls (id, long_url, owner_id, created_at, ttl_seconds)
              VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.(*database.DB).Pool.Exec(ctx, query,
		link.ID, link.LongURL, nullable(link.OwnerID), link.CreatedAt, int64(link.TTL.Seconds()))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("database insert error: %w", err)
	}
	return nil
}

// GetByID извлекает ссылку по числовому идентификатору.
func (r *LinkRepository) GetByID(ctx context.Context, id int64) (*model.ShortLink, error) {
	query := `SELECT id, long_url, COALESCE(owner_id, ''), created_at, ttl_seconds
              FROM sequence_urls WHERE id = $1`

	link := &model.ShortLink{}
	var ttlSeconds int64
	err := r.DB.(*database.DB).Pool.QueryRow(ctx, query, id).Scan(
		&link.ID, &link.LongURL, &link.OwnerID, &link.CreatedAt, &ttlSeconds,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	link.TTL = time.Duration(ttlSeconds) * time.Second
	return link, nil
}

// Ping проверяет доступность базы данных.
func (r *LinkRepository) Ping(ctx context.Context) error {
	_, err := r.DB.(*database.DB).Pool.Exec(ctx, "SELECT 1")
	return err
}

// isUniqueViolation распознаёт нарушение уникального ограничения (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
