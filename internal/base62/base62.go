// Package base62 реализует позиционное кодирование чисел в base62
// и генерацию случайных кодов над тем же алфавитом.
package base62

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Alphabet — фиксированный 62-символьный алфавит: цифры, затем
// заглавные, затем строчные латинские буквы. Порядок менять нельзя:
// от него зависят уже выданные коды.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = int64(len(Alphabet))

var (
	// ErrInvalidLength возвращается генератором при length <= 0.
	ErrInvalidLength = errors.New("base62: length must be positive")
	// ErrNegative возвращается кодеком для отрицательных чисел.
	ErrNegative = errors.New("base62: negative numbers are not encodable")
)

// индекс символа в алфавите, -1 для посторонних символов
var charIndex [256]int64

func init() {
	for i := range charIndex {
		charIndex[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		charIndex[Alphabet[i]] = int64(i)
	}
}

// Encode переводит неотрицательное число в base62-строку,
// старший разряд первым. Encode(0) == "0".
func Encode(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegative
	}
	if n == 0 {
		return string(Alphabet[0]), nil
	}

	buf := make([]byte, 0, 11) // 11 символов хватает на весь int64
	for n > 0 {
		buf = append(buf, Alphabet[n%base])
		n /= base
	}

	// разряды набраны с младшего — разворачиваем
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// Decode восстанавливает число из base62-строки. Строка с символами
// вне алфавита считается некорректным входом.
func Decode(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("base62: empty string")
	}

	var n int64
	for i := 0; i < len(s); i++ {
		idx := charIndex[s[i]]
		if idx < 0 {
			return 0, fmt.Errorf("base62: invalid character %q at position %d", s[i], i)
		}
		n = n*base + idx
	}
	return n, nil
}

// RandomCode возвращает случайный код заданной длины. Каждая позиция
// выбирается равномерно и независимо из алфавита.
func RandomCode(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(Alphabet[rand.Int63n(base)])
	}
	return sb.String(), nil
}

// RandomCodeWith — то же самое, но с подменяемым источником случайности.
// Два вызова с одинаково посеянными источниками дают одинаковый код.
func RandomCodeWith(r *rand.Rand, length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(Alphabet[r.Int63n(base)])
	}
	return sb.String(), nil
}
