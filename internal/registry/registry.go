package registry

import (
	"time"

	"giveawaybot/internal/models"
)

// Registry хранит карточки розыгрышей. Реализации обязаны быть
// безопасными для конкурентного доступа: в хранилище пишут и обработчики
// апдейтов, и колбэк планировщика.
type Registry interface {
	// Create сохраняет новую карточку и возвращает её идентификатор.
	// Коллизия сгенерированного идентификатора разрешается повтором,
	// существующая запись никогда не перезаписывается.
	Create(sourceLabel, rawText string, links []string, deadline *time.Time) (string, error)
	// Get возвращает (nil, nil), если карточки нет.
	Get(id string) (*models.Giveaway, error)
	// Archive помечает карточку архивной. Возвращает, изменилось ли
	// что-то: повторный вызов и неизвестный id дают false без ошибки.
	Archive(id string) (bool, error)
	// ListActive возвращает до limit неархивных карточек в порядке
	// создания.
	ListActive(limit int) ([]models.Giveaway, error)
}
