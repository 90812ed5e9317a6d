package classify

import "regexp"

// urlRe вытаскивает все ссылки вида http(s)://... до первого пробела.
var urlRe = regexp.MustCompile(`(?i)https?://[^\s]+`)

// Ключевые слова, по которым сообщение считается розыгрышем.
// \b в RE2 работает только для ASCII, поэтому границы слов
// прописаны явно через классы букв/цифр.
var keywordRe = regexp.MustCompile(
	`(?i)(?:^|[^\p{L}\d])(?:giveaway|розыгрыш|gifts?|stars?|приз|порталс?|portals?|тон|ton)(?:[^\p{L}\d]|$)`,
)

// Classify решает, похоже ли сообщение на розыгрыш, и возвращает
// все найденные ссылки в порядке появления. Ссылки собираются
// независимо от результата классификации. Чистая функция.
func Classify(text string) (bool, []string) {
	links := urlRe.FindAllString(text, -1)
	if text == "" {
		return false, nil
	}
	return keywordRe.MatchString(text) || len(links) > 0, links
}
