package bot

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NewBot инициализирует и возвращает *tgbotapi.BotAPI
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	// Можно включить Debug-логирование:
	bot.Debug = false
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Запустить бота"},
		{Command: "help", Description: "Справка"},
		{Command: "list", Description: "Показать активные розыгрыши"},
	}

	config := tgbotapi.NewSetMyCommands(commands...)
	_, err = bot.Request(config)
	if err != nil {
		log.Fatalf("Ошибка при установке команд: %v", err)
	}
	log.Printf("Бот %s успешно инициализирован", bot.Self.UserName)
	return bot, nil
}

// Run запускает основной цикл: чтение апдейтов и их обработку.
// Каждый апдейт обрабатывается в своей горутине, хранилище карточек
// рассчитано на конкурентный доступ.
func Run(bot *tgbotapi.BotAPI, h *Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		go h.HandleUpdate(update)
	}
	return nil
}
