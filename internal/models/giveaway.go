package models

import "time"

// Giveaway описывает карточку розыгрыша, собранную из пересланного сообщения.
// Все поля, кроме Archived, после создания не меняются.
type Giveaway struct {
	ID          string
	SourceLabel string
	RawText     string
	Links       []string
	Deadline    *time.Time
	Archived    bool
	CreatedAt   time.Time
}
