package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mkravets/shortener/internal/base62"
	"github.com/mkravets/shortener/internal/model"
	"github.com/mkravets/shortener/internal/repositories"
	"github.com/mkravets/shortener/internal/util"
	"go.uber.org/zap"
)

// Режимы назначения кодов. Выбираются конфигурацией деплоя, а не на
// каждый запрос: от режима зависит форма первичного ключа в БД.
const (
	ModeRandom   = "random"   // случайный код, уникальность держит БД
	ModeSequence = "sequence" // монотонный id, код выводится кодеком
)

const (
	// DefaultCodeLength — длина случайного кода. 7 символов достаточно,
	// 8 делает повторные попытки практически невозможными.
	DefaultCodeLength = 8
	// DefaultMaxRetries — предел попыток при коллизии случайного кода.
	DefaultMaxRetries = 5
)

// Repository — durable-хранилище коротких ссылок.
type Repository interface {
	SaveByCode(ctx context.Context, link *model.ShortLink) error
	GetByCode(ctx context.Context, code string) (*model.ShortLink, error)
	SaveByID(ctx context.Context, link *model.ShortLink) error
	GetByID(ctx context.Context, id int64) (*model.ShortLink, error)
	Ping(ctx context.Context) error
}

// Cache — кэширующий слой код → URL.
type Cache interface {
	Get(ctx context.Context, code string) (string, bool, error)
	SetAbsolute(ctx context.Context, code, url string, expiresAt *time.Time) error
	SetRelative(ctx context.Context, code, url string, ttl time.Duration) error
	Delete(ctx context.Context, code string) error
}

// Sequence — источник уникальных числовых идентификаторов.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}

// CreateRequest — параметры создания короткой ссылки.
// ExpiresAt действует в режиме random, TTL — в режиме sequence;
// одновременно они не используются.
type CreateRequest struct {
	LongURL   string
	Alias     string
	OwnerID   string
	ExpiresAt *time.Time
	TTL       time.Duration
}

// ShortenerService реализует создание и разрешение коротких ссылок
// поверх durable-хранилища и кэша.
type ShortenerService struct {
	Repo   Repository
	Cache  Cache
	Seq    Sequence
	Logger *zap.Logger
	Mode   string

	codeLength int
	maxRetries int

	// подменяется в тестах ради детерминированных кодов
	randomCode func(length int) (string, error)
	now        func() time.Time
}

// NewShortenerService создаёт сервис. seq обязателен только в режиме
// sequence. codeLength и maxRetries <= 0 заменяются значениями по умолчанию.
func NewShortenerService(repo Repository, cache Cache, seq Sequence, logger *zap.Logger, mode string, codeLength, maxRetries int) *ShortenerService {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &ShortenerService{
		Repo:       repo,
		Cache:      cache,
		Seq:        seq,
		Logger:     logger,
		Mode:       mode,
		codeLength: codeLength,
		maxRetries: maxRetries,
		randomCode: base62.RandomCode,
		now:        time.Now,
	}
}

// CreateShortLink создаёт короткую ссылку и возвращает её код.
// URL нормализуется до записи, кэш прогревается тем же значением,
// что ушло в БД: кэш и хранилище не должны расходиться.
func (s *ShortenerService) CreateShortLink(ctx context.Context, req CreateRequest) (string, error) {
	if strings.TrimSpace(req.LongURL) == "" {
		return "", ErrEmptyURL
	}
	longURL := util.NormalizeURL(req.LongURL)

	if alias := strings.TrimSpace(req.Alias); alias != "" {
		return s.createWithAlias(ctx, alias, longURL, req)
	}

	switch s.Mode {
	case ModeSequence:
		return s.createSequential(ctx, longURL, req)
	default:
		return s.createRandom(ctx, longURL, req)
	}
}

// createWithAlias сохраняет ссылку под кодом, выбранным пользователем.
// Конфликт не повторяется: пользователь должен выбрать другой код.
func (s *ShortenerService) createWithAlias(ctx context.Context, alias, longURL string, req CreateRequest) (string, error) {
	if s.Mode == ModeSequence {
		return "", ErrAliasUnsupported
	}

	link := &model.ShortLink{
		Code:      alias,
		LongURL:   longURL,
		OwnerID:   req.OwnerID,
		CreatedAt: s.now(),
		ExpiresAt: req.ExpiresAt,
		IsCustom:  true,
	}

	if err := s.Repo.SaveByCode(ctx, link); err != nil {
		if errors.Is(err, repositories.ErrCodeTaken) {
			return "", ErrAliasTaken
		}
		return "", err
	}

	if err := s.Cache.SetAbsolute(ctx, link.Code, link.LongURL, link.ExpiresAt); err != nil {
		return "", err
	}
	return link.Code, nil
}

// createRandom генерирует случайный код и полагается на ограничение
// уникальности БД; редкая коллизия — новая попытка с новым кодом.
func (s *ShortenerService) createRandom(ctx context.Context, longURL string, req CreateRequest) (string, error) {
	var lastErr error
	for i := 0; i < s.maxRetries; i++ {
		code, err := s.randomCode(s.codeLength)
		if err != nil {
			return "", err
		}

		link := &model.ShortLink{
			Code:      code,
			LongURL:   longURL,
			OwnerID:   req.OwnerID,
			CreatedAt: s.now(),
			ExpiresAt: req.ExpiresAt,
		}

		err = s.Repo.SaveByCode(ctx, link)
		if err == nil {
			if err := s.Cache.SetAbsolute(ctx, code, longURL, req.ExpiresAt); err != nil {
				return "", err
			}
			return code, nil
		}
		if !errors.Is(err, repositories.ErrCodeTaken) {
			return "", err
		}

		lastErr = err
		s.Logger.Warn("Коллизия случайного кода, повторная попытка",
			zap.String("code", code), zap.Int("attempt", i+1))
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", ErrRetriesExhausted
}

// createSequential получает следующий id счётчика и детерминированно
// выводит код. Коллизии исключены построением — повторов нет.
func (s *ShortenerService) createSequential(ctx context.Context, longURL string, req CreateRequest) (string, error) {
	id, err := s.Seq.Next(ctx)
	if err != nil {
		return "", err
	}

	code, err := base62.Encode(id)
	if err != nil {
		return "", err
	}

	link := &model.ShortLink{
		ID:        id,
		LongURL:   longURL,
		OwnerID:   req.OwnerID,
		CreatedAt: s.now(),
		TTL:       req.TTL,
	}

	if err := s.Repo.SaveByID(ctx, link); err != nil {
		return "", err
	}

	if err := s.Cache.SetRelative(ctx, code, longURL, req.TTL); err != nil {
		return "", err
	}
	return code, nil
}

// ResolveShortLink возвращает исходный URL по коду. Попадание в кэш —
// быстрый путь без обращения к БД. Промах разрешается через хранилище
// с проверкой срока жизни и обратным прогревом кэша.
func (s *ShortenerService) ResolveShortLink(ctx context.Context, code string) (string, error) {
	url, ok, err := s.Cache.Get(ctx, code)
	if err != nil {
		return "", err
	}
	if ok {
		return url, nil
	}

	link, err := s.lookup(ctx, code)
	if err != nil {
		return "", err
	}
	if link == nil {
		return "", ErrNotFound
	}
	if link.Expired(s.now()) {
		return "", ErrExpired
	}

	if err := s.warm(ctx, code, link); err != nil {
		return "", err
	}
	return link.LongURL, nil
}

// lookup переводит код в ключ хранилища согласно режиму. В режиме
// sequence некорректный код означает «не найдено», а не сбой.
func (s *ShortenerService) lookup(ctx context.Context, code string) (*model.ShortLink, error) {
	if s.Mode != ModeSequence {
		return s.Repo.GetByCode(ctx, code)
	}

	id, err := base62.Decode(code)
	if err != nil {
		return nil, nil
	}
	// отсечь коды с незначащими ведущими нулями: Encode их не выдаёт
	if canonical, _ := base62.Encode(id); canonical != code {
		return nil, nil
	}
	return s.Repo.GetByID(ctx, id)
}

// warm прогревает кэш той же политикой TTL, что и на создании.
// В режиме sequence берётся остаток жизни, а не исходный TTL: иначе
// повторный прогрев продлил бы кэш за логический срок годности.
func (s *ShortenerService) warm(ctx context.Context, code string, link *model.ShortLink) error {
	if s.Mode == ModeSequence {
		ttl := link.TTL
		if ttl > 0 {
			ttl = time.Until(link.CreatedAt.Add(link.TTL))
			if ttl <= 0 {
				return s.Cache.Delete(ctx, code)
			}
		}
		return s.Cache.SetRelative(ctx, code, link.LongURL, ttl)
	}
	return s.Cache.SetAbsolute(ctx, code, link.LongURL, link.ExpiresAt)
}

// Ping проверяет доступность durable-хранилища.
func (s *ShortenerService) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}
