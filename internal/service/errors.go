package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyURL — пустой исходный URL в запросе на создание.
	ErrEmptyURL = errors.New("original URL is required")

	// ErrAliasTaken — выбранный пользователем код уже занят.
	// Повторных попыток не делается: код выбран сознательно.
	ErrAliasTaken = errors.New("alias already exists")

	// ErrAliasUnsupported — пользовательский код запрошен в режиме
	// sequence, где код выводится из числового ключа и задать его нельзя.
	ErrAliasUnsupported = errors.New("custom alias is not supported in sequence mode")

	// ErrNotFound — код не найден либо ссылка логически истекла.
	// Для вызывающего эти случаи неразличимы.
	ErrNotFound = errors.New("short link not found")

	// ErrExpired уточняет ErrNotFound: запись существует, но срок её
	// жизни прошёл. errors.Is(ErrExpired, ErrNotFound) == true.
	ErrExpired = fmt.Errorf("%w: expired", ErrNotFound)

	// ErrRetriesExhausted — не удалось подобрать свободный код за
	// отведённое число попыток и ни одной коллизии не зафиксировано.
	// На практике возникать не должен.
	ErrRetriesExhausted = errors.New("failed to generate unique short code")
)
