// Package deadline выводит дедлайн розыгрыша из текста сообщения.
//
// Стратегии пробуются по порядку, побеждает первая сработавшая.
// Любая ошибка парсинга означает «не нашли» и наружу не отдается.
// Время без явной таймзоны считается локальным. Голое время суток
// («до 18:00»), которое сегодня уже прошло, переносится на завтра;
// фразы с явной датой возвращаются как распарсены.
package deadline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/ru"
)

type strategy func(text string, now time.Time) *time.Time

// Числовые даты раньше разбора естественного языка: в строке
// «15/09/2026 18:00» голое время не должно перетянуть на себя дату.
var strategies = []strategy{
	numericDate,
	naturalLanguage,
	hintPatterns,
}

// Extract возвращает первый найденный момент времени или nil.
func Extract(text string, now time.Time) *time.Time {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, s := range strategies {
		if ts := s(text, now); ts != nil {
			return ts
		}
	}
	return nil
}

var parser = func() *when.Parser {
	p := when.New(nil)
	p.Add(ru.All...)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// naturalLanguage разбирает «завтра 21:00», «в пятницу» и т.п. по всему
// тексту. Результат принимается, только если он строго в будущем.
func naturalLanguage(text string, now time.Time) *time.Time {
	r, err := parser.Parse(text, now)
	if err != nil || r == nil {
		return nil
	}
	if !r.Time.After(now) {
		return nil
	}
	t := r.Time
	return &t
}

// Числовые даты вида 15.09.2026 или 2026-09-15 18:00,
// день впереди месяца.
var dateTokenRe = regexp.MustCompile(
	`\d{1,2}[./-]\d{1,2}[./-]\d{2,4}(?:[ T]\d{1,2}:\d{2})?|\d{4}-\d{2}-\d{2}(?:[ T]\d{1,2}:\d{2})?`,
)

func numericDate(text string, now time.Time) *time.Time {
	for _, tok := range dateTokenRe.FindAllString(text, -1) {
		ts, err := dateparse.ParseIn(tok, now.Location(), dateparse.PreferMonthFirst(false))
		if err != nil {
			continue
		}
		if ts.After(now) {
			return &ts
		}
	}
	return nil
}

// Подсказки «до 18:00», «deadline: завтра 21:00», «заканчивается 15 августа».
var hintRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:до|until)\s+(\d{1,2}[:.]\d{2})`),
	regexp.MustCompile(`(?i)deadline[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?i)(?:заканч[^\n]*?|ends\s+)(\d{1,2}\s+\p{L}+|\d{1,2}[:.]\d{2})`),
}

func hintPatterns(text string, now time.Time) *time.Time {
	for _, re := range hintRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if ts := parsePhrase(m[1], now); ts != nil {
			return ts
		}
	}
	return nil
}

var clockRe = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)

// parsePhrase разбирает фразу, выцепленную подсказкой.
func parsePhrase(phrase string, now time.Time) *time.Time {
	phrase = strings.TrimSpace(phrase)
	if m := clockRe.FindStringSubmatch(phrase); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h > 23 || min > 59 {
			return nil
		}
		t := time.Date(now.Year(), now.Month(), now.Day(), h, min, 0, 0, now.Location())
		if !t.After(now) {
			t = t.Add(24 * time.Hour)
		}
		return &t
	}
	if r, err := parser.Parse(phrase, now); err == nil && r != nil {
		t := r.Time
		return &t
	}
	if ts, err := dateparse.ParseIn(phrase, now.Location(), dateparse.PreferMonthFirst(false)); err == nil {
		return &ts
	}
	return nil
}
