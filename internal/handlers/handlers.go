package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mkravets/shortener/internal/auth"
	"github.com/mkravets/shortener/internal/model"
	"github.com/mkravets/shortener/internal/service"
	"go.uber.org/zap"
)

// Shortener — движок создания и разрешения коротких ссылок.
type Shortener interface {
	CreateShortLink(ctx context.Context, req service.CreateRequest) (string, error)
	ResolveShortLink(ctx context.Context, code string) (string, error)
	Ping(ctx context.Context) error
}

// Handler связывает HTTP-маршруты с движком.
type Handler struct {
	Service  Shortener
	Auth     *auth.Auth
	Logger   *zap.Logger
	BaseURL  string
	validate *validator.Validate
}

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// NewHandler создаёт обработчик и регистрирует правило валидации alias.
func NewHandler(svc Shortener, authService *auth.Auth, logger *zap.Logger, baseURL string) *Handler {
	v := validator.New()
	_ = v.RegisterValidation("shortcode", func(fl validator.FieldLevel) bool {
		return aliasPattern.MatchString(fl.Field().String())
	})

	return &Handler{
		Service:  svc,
		Auth:     authService,
		Logger:   logger,
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		validate: v,
	}
}

// CreateShort обрабатывает POST /create-short: JSON-запрос, ответ —
// голый код в text/plain. 409 — занятый alias, 400 — ошибки валидации.
func (h *Handler) CreateShort(res http.ResponseWriter, req *http.Request) {
	var body model.CreateShortRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(res, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(body); err != nil {
		http.Error(res, fmt.Sprintf("validation failed: %v", err), http.StatusBadRequest)
		return
	}

	ownerID := h.Auth.GetOrSetOwnerID(res, req)

	code, err := h.Service.CreateShortLink(req.Context(), service.CreateRequest{
		LongURL:   body.LongURL,
		Alias:     body.Alias,
		OwnerID:   ownerID,
		ExpiresAt: body.ExpiresAt,
		TTL:       time.Duration(body.TTLSeconds) * time.Second,
	})
	if err != nil {
		h.writeCreateError(res, err)
		return
	}

	res.Header().Set("Content-Type", "text/plain")
	res.WriteHeader(http.StatusOK)
	res.Write([]byte(code))
}

// ReceiveShorten обрабатывает POST /api/shorten: {"url": ...} →
// {"result": "<base-url>/<code>"}.
func (h *Handler) ReceiveShorten(res http.ResponseWriter, req *http.Request) {
	var body model.ShortenRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(res, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ownerID := h.Auth.GetOrSetOwnerID(res, req)

	code, err := h.Service.CreateShortLink(req.Context(), service.CreateRequest{
		LongURL: body.URL,
		OwnerID: ownerID,
	})
	if err != nil {
		h.writeCreateError(res, err)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusCreated)
	json.NewEncoder(res).Encode(model.ShortenResponse{
		Result: h.BaseURL + "/" + code,
	})
}

// ResponseURL обрабатывает GET /{code}: 302 с Location на исходный URL.
// 404 — кода нет, 410 — код был, но истёк.
func (h *Handler) ResponseURL(res http.ResponseWriter, req *http.Request) {
	code := chi.URLParam(req, "code")
	if code == "" {
		http.Error(res, "Bad Request: missing code in URL", http.StatusBadRequest)
		return
	}

	url, err := h.Service.ResolveShortLink(req.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpired):
			http.Error(res, "Gone", http.StatusGone)
		case errors.Is(err, service.ErrNotFound):
			http.NotFound(res, req)
		default:
			h.Logger.Error("Ошибка разрешения кода", zap.String("code", code), zap.Error(err))
			http.Error(res, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	res.Header().Set("Location", url)
	res.WriteHeader(http.StatusFound)
}

// PingHandler проверяет доступность durable-хранилища.
func (h *Handler) PingHandler(res http.ResponseWriter, req *http.Request) {
	if err := h.Service.Ping(req.Context()); err != nil {
		h.Logger.Error("База данных недоступна", zap.Error(err))
		http.Error(res, "database unavailable", http.StatusInternalServerError)
		return
	}
	res.WriteHeader(http.StatusOK)
}

func (h *Handler) writeCreateError(res http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAliasTaken):
		http.Error(res, "alias already exists", http.StatusConflict)
	case errors.Is(err, service.ErrEmptyURL), errors.Is(err, service.ErrAliasUnsupported):
		http.Error(res, err.Error(), http.StatusBadRequest)
	default:
		h.Logger.Error("Ошибка создания короткой ссылки", zap.Error(err))
		http.Error(res, "Internal Server Error", http.StatusInternalServerError)
	}
}
