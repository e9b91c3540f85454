package model

import "time"

// ShortLink — центральная сущность: сопоставление кода и длинного URL.
//
// В режиме random первичным ключом хранилища является Code, поле ID не
// используется. В режиме sequence первичный ключ — ID, а Code выводится
// из него кодеком и отдельно не хранится. Срок жизни задаётся ровно
// одним способом: ExpiresAt (random) либо TTL (sequence), никогда обоими.
type ShortLink struct {
	Code      string
	ID        int64
	LongURL   string
	OwnerID   string
	CreatedAt time.Time
	ExpiresAt *time.Time
	TTL       time.Duration
	IsCustom  bool
}

// Expired сообщает, истёк ли срок жизни ссылки к моменту now.
func (l *ShortLink) Expired(now time.Time) bool {
	if l.ExpiresAt != nil && !now.Before(*l.ExpiresAt) {
		return true
	}
	if l.TTL > 0 && !now.Before(l.CreatedAt.Add(l.TTL)) {
		return true
	}
	return false
}
