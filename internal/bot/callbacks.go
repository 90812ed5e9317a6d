package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleCallback обрабатывает клики по inline-кнопкам.
// Формат callback_data: remind:<id>:<минуты> или archive:<id>.
func (h *Handler) handleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		h.answer(cq.ID, "Неизвестное действие")
		return
	}

	parts := strings.Split(cq.Data, ":")
	switch {
	case parts[0] == "remind" && len(parts) == 3:
		h.handleRemind(cq, parts[1], parts[2])
	case parts[0] == "archive" && len(parts) == 2:
		h.handleArchive(cq, parts[1])
	default:
		// Если callback_data не узнаём, сообщим пользователю
		h.answer(cq.ID, "Неизвестное действие")
	}
}

func (h *Handler) handleRemind(cq *tgbotapi.CallbackQuery, id, minsStr string) {
	chatID := cq.Message.Chat.ID

	mins, err := strconv.Atoi(minsStr)
	if err != nil || mins <= 0 {
		h.answer(cq.ID, "Некорректный интервал")
		return
	}

	h.answer(cq.ID, "") // Закрыть «часовые песочки» для пользователя

	g, err := h.reg.Get(id)
	if err != nil {
		log.Println("Ошибка чтения карточки:", err)
		h.reply(chatID, "Ошибка при постановке напоминания.")
		return
	}
	if g == nil {
		h.reply(chatID, fmt.Sprintf("Розыгрыш с ID %s не найден.", id))
		return
	}

	// Напоминание можно поставить и на архивную карточку: при
	// срабатывании оно всё равно молча погасится.
	h.sched.Schedule(chatID, id, time.Duration(mins)*time.Minute)
	h.reply(chatID, fmt.Sprintf("Напоминание поставлено через %d мин. (ID: %s)", mins, id))
}

func (h *Handler) handleArchive(cq *tgbotapi.CallbackQuery, id string) {
	chatID := cq.Message.Chat.ID
	h.answer(cq.ID, "")

	g, err := h.reg.Get(id)
	if err != nil {
		log.Println("Ошибка чтения карточки:", err)
		h.reply(chatID, "Ошибка при архивировании.")
		return
	}
	if g == nil {
		h.reply(chatID, fmt.Sprintf("Розыгрыш с ID %s не найден.", id))
		return
	}

	changed, err := h.reg.Archive(id)
	if err != nil {
		log.Println("Ошибка Archive:", err)
		h.reply(chatID, "Ошибка при архивировании.")
		return
	}
	if changed {
		h.reply(chatID, fmt.Sprintf("Розыгрыш %s отправлен в архив.", id))
	} else {
		h.reply(chatID, fmt.Sprintf("Розыгрыш %s уже в архиве.", id))
	}
}

func (h *Handler) answer(callbackID, text string) {
	if _, err := h.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Println("Ошибка AnswerCallbackQuery:", err)
	}
}
