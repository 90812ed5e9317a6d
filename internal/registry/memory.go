package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"giveawaybot/internal/models"
)

// Memory хранит карточки в памяти процесса, вариант по умолчанию.
// Карточки живут до завершения процесса.
type Memory struct {
	mu      sync.Mutex
	records map[string]*models.Giveaway
	order   []string

	// newID подменяется в тестах, чтобы проверить повтор при коллизии.
	newID func() string
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]*models.Giveaway),
		newID:   shortID,
	}
}

// shortID возвращает короткий идентификатор: первые 8 символов UUID.
func shortID() string {
	return uuid.NewString()[:8]
}

func (m *Memory) Create(sourceLabel, rawText string, links []string, deadline *time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var id string
	for {
		id = m.newID()
		if _, exists := m.records[id]; !exists {
			break
		}
	}

	g := &models.Giveaway{
		ID:          id,
		SourceLabel: sourceLabel,
		RawText:     rawText,
		Links:       append([]string(nil), links...),
		Deadline:    deadline,
		Archived:    false,
		CreatedAt:   time.Now(),
	}
	m.records[id] = g
	m.order = append(m.order, id)
	return id, nil
}

func (m *Memory) Get(id string) (*models.Giveaway, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	// Отдаем копию, чтобы никто не менял запись мимо мьютекса.
	cp := *g
	cp.Links = append([]string(nil), g.Links...)
	return &cp, nil
}

func (m *Memory) Archive(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.records[id]
	if !ok || g.Archived {
		return false, nil
	}
	g.Archived = true
	return true, nil
}

func (m *Memory) ListActive(limit int) ([]models.Giveaway, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Giveaway
	for _, id := range m.order {
		if len(out) >= limit {
			break
		}
		g := m.records[id]
		if g.Archived {
			continue
		}
		cp := *g
		cp.Links = append([]string(nil), g.Links...)
		out = append(out, cp)
	}
	return out, nil
}
