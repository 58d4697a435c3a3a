// Package dates приводит даты и время к единому виду.
//
// Все границы дня считаются в UTC: значения со смещением переводятся в UTC
// перед отсечением времени, значения без смещения читаются как UTC.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidRange      = errors.New("invalid date range")
)

// DayKey - каноничная строка YYYY-MM-DD, ключ дня в календаре.
type DayKey string

// форматы без смещения, время в них читается как UTC
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// DayKeyOf отсекает время у t, предварительно переводя его в UTC.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.UTC().Format(DayLayout))
}

// ParseDayKey принимает YYYY-MM-DD или ISO-8601 дату-время.
func ParseDayKey(value string) (DayKey, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	if len(s) == len(DayLayout) {
		t, err := time.Parse(DayLayout, s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
		}
		return DayKeyOf(t), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return boundedKey(t, value)
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return boundedKey(t, value)
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// boundedKey отсекает время и отклоняет дни, которые уже не укладываются в YYYY-MM-DD:
// 9999-12-31T23:00:00-05:00 в UTC попадает в 10000 год.
func boundedKey(t time.Time, value string) (DayKey, error) {
	key := DayKeyOf(t)
	if !key.Valid() {
		return "", fmt.Errorf("%w: %q out of range", ErrInvalidDate, value)
	}
	return key, nil
}

// MustDayKey для тестов и констант.
func MustDayKey(value string) DayKey {
	key, err := ParseDayKey(value)
	if err != nil {
		panic(err)
	}
	return key
}

func (d DayKey) String() string {
	return string(d)
}

// Time возвращает полночь дня в UTC.
func (d DayKey) Time() time.Time {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Next - следующий день. Для 9999-12-31 результат невалиден, Range его не запрашивает.
func (d DayKey) Next() DayKey {
	return DayKeyOf(d.Time().AddDate(0, 0, 1))
}

func (d DayKey) Before(other DayKey) bool {
	return d < other
}

// Within: ключи YYYY-MM-DD сравниваются как строки
func (d DayKey) Within(start, end DayKey) bool {
	return d >= start && d <= end
}

func (d DayKey) Valid() bool {
	_, err := time.Parse(DayLayout, string(d))
	return err == nil
}

// DaysBetween - количество дней в отрезке [start, end] включительно.
func DaysBetween(start, end DayKey) (int, error) {
	if !start.Valid() || !end.Valid() {
		return 0, ErrInvalidDate
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	hours := end.Time().Sub(start.Time()).Hours()
	return int(hours/24) + 1, nil
}

// Range перечисляет все дни отрезка [start, end] по порядку.
func Range(start, end DayKey) ([]DayKey, error) {
	n, err := DaysBetween(start, end)
	if err != nil {
		return nil, err
	}
	// число шагов известно заранее: за 9999-12-31 следующего ключа нет
	days := make([]DayKey, 0, n)
	d := start
	for i := 0; i < n; i++ {
		if i > 0 {
			d = d.Next()
		}
		days = append(days, d)
	}
	return days, nil
}

// ToClockMinutes разбирает HH:MM в минуты от полуночи.
func ToClockMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 || !twoDigits(parts[0]) || !twoDigits(parts[1]) {
		return 0, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidTimeFormat, hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: invalid hour in %q", ErrInvalidTimeFormat, hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: invalid minute in %q", ErrInvalidTimeFormat, hhmm)
	}
	return hour*60 + minute, nil
}

func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// At собирает момент времени из дня и смещения в минутах.
func At(day DayKey, minutes int) time.Time {
	return day.Time().Add(time.Duration(minutes) * time.Minute)
}
