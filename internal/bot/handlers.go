package bot

import (
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"giveawaybot/internal/classify"
	"giveawaybot/internal/deadline"
	"giveawaybot/internal/models"
	"giveawaybot/internal/registry"
	"giveawaybot/internal/scheduler"
)

// Сколько активных карточек показывает /list и сколько кнопок-ссылок
// вешаем на карточку.
const (
	listLimit   = 20
	maxLinkRows = 4
)

// api описывает то, что обработчикам нужно от transport-слоя. *tgbotapi.BotAPI
// его реализует, в тестах вместо него подставляется заглушка.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Handler связывает классификатор, хранилище и планировщик.
type Handler struct {
	api   api
	reg   registry.Registry
	sched *scheduler.Scheduler
}

func NewHandler(a api, reg registry.Registry) *Handler {
	return &Handler{api: a, reg: reg}
}

// SetScheduler подключает планировщик. Отдельным шагом, потому что
// планировщику при создании нужен Notify этого же обработчика.
func (h *Handler) SetScheduler(s *scheduler.Scheduler) {
	h.sched = s
}

// HandleUpdate разбирает один апдейт: inline-кнопки, команды,
// обычный текст.
func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(update.Message)
		return
	}
	h.handleMessage(update.Message)
}

func (h *Handler) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.cmdStart(msg)
	case "help":
		h.cmdHelp(msg)
	case "list":
		h.cmdList(msg)
	default:
		h.reply(msg.Chat.ID, "Неизвестная команда. Используйте /help")
	}
}

func (h *Handler) cmdStart(msg *tgbotapi.Message) {
	text := "Привет! Пересылай мне посты о розыгрышах (Portals, Stars и т.п.). " +
		"Я вытащу ссылки, определю дедлайн и смогу напомнить о нём."
	h.reply(msg.Chat.ID, text)
}

func (h *Handler) cmdHelp(msg *tgbotapi.Message) {
	text := "Справка:\n" +
		"Перешли пост с розыгрышем — я сделаю карточку с кнопками.\n" +
		"/list — показать активные розыгрыши\n" +
		"Кнопки под карточкой: открыть ссылку, напомнить, в архив."
	h.reply(msg.Chat.ID, text)
}

func (h *Handler) cmdList(msg *tgbotapi.Message) {
	active, err := h.reg.ListActive(listLimit)
	if err != nil {
		log.Println("Ошибка ListActive:", err)
		h.reply(msg.Chat.ID, "Ошибка при получении списка розыгрышей")
		return
	}
	if len(active) == 0 {
		h.reply(msg.Chat.ID, "Сейчас нет активных карточек.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Активные:\n")
	for _, g := range active {
		sb.WriteString("• " + listLine(&g) + "\n")
	}
	h.reply(msg.Chat.ID, sb.String())
}

// handleMessage — основной конвейер: классификация, дедлайн, карточка.
func (h *Handler) handleMessage(msg *tgbotapi.Message) {
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	isGiveaway, links := classify.Classify(text)
	if !isGiveaway {
		h.reply(msg.Chat.ID, "Не похоже на розыгрыш. Если всё же он — пришли сообщение со ссылкой и условиями.")
		return
	}

	var label string
	if msg.ForwardFromChat != nil {
		label = msg.ForwardFromChat.Title
	}

	dl := deadline.Extract(text, time.Now())
	id, err := h.reg.Create(label, text, links, dl)
	if err != nil {
		log.Println("Ошибка создания карточки:", err)
		h.reply(msg.Chat.ID, "Не получилось сохранить карточку, попробуйте ещё раз.")
		return
	}

	g, err := h.reg.Get(id)
	if err != nil || g == nil {
		log.Println("Карточка пропала сразу после создания:", id, err)
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, card(g))
	out.ReplyMarkup = buildKeyboard(g.Links, g.ID)
	h.send(out)
}

// Notify вызывается планировщиком. Проверка архива делается именно здесь,
// в момент срабатывания: карточку могли заархивировать после постановки
// напоминания.
func (h *Handler) Notify(chatID int64, giveawayID string) {
	g, err := h.reg.Get(giveawayID)
	if err != nil {
		log.Println("Ошибка чтения карточки в напоминании:", err)
		return
	}
	if g == nil || g.Archived {
		return
	}

	out := tgbotapi.NewMessage(chatID, "⏰ Напоминание по розыгрышу "+g.ID+"\n\n"+card(g))
	out.ReplyMarkup = buildKeyboard(g.Links, g.ID)
	h.send(out)
}

// card строит текст карточки, один и тот же при создании и в напоминании.
func card(g *models.Giveaway) string {
	label := g.SourceLabel
	if label == "" {
		label = "переслано"
	}
	s := fmt.Sprintf("🎁 Розыгрыш (%s)\nID: %s\nСсылок: %d", label, g.ID, len(g.Links))
	if g.Deadline != nil {
		s += "\nДедлайн: " + g.Deadline.Format("2006-01-02 15:04")
	}
	return s
}

// listLine форматирует одну строку в выводе /list.
func listLine(g *models.Giveaway) string {
	label := g.SourceLabel
	if label == "" {
		label = "unknown"
	}
	dl := "none"
	if g.Deadline != nil {
		dl = g.Deadline.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%s: %s | links: %d | deadline: %s", g.ID, label, len(g.Links), dl)
}

// buildKeyboard собирает кнопки карточки: до четырёх ссылок,
// напоминания и архив.
func buildKeyboard(links []string, id string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, url := range links {
		if i == maxLinkRows {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Открыть ссылку", url),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Напомнить через 10 мин", "remind:"+id+":10"),
		tgbotapi.NewInlineKeyboardButtonData("через 1 час", "remind:"+id+":60"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("В архив", "archive:"+id),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		// Доставка не гарантируется, повторов нет.
		log.Println("Ошибка отправки:", err)
	}
}
