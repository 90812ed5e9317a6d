package main

import (
	"context"
	"log"

	"giveawaybot/internal/bot"
	"giveawaybot/internal/config"
	"giveawaybot/internal/database"
	"giveawaybot/internal/registry"
	"giveawaybot/internal/scheduler"
)

func main() {
	// 1. Читаем конфиг (env или .env)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	// 2. Выбираем хранилище: память по умолчанию, PostgreSQL при
	// заданном DATABASE_URL
	var reg registry.Registry = registry.NewMemory()
	if cfg.DatabaseURL != "" {
		pool, err := database.ConnectPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Не удалось подключиться к PostgreSQL: %v", err)
		}
		defer pool.Close()

		reg, err = registry.NewPostgres(context.Background(), pool)
		if err != nil {
			log.Fatalf("Не удалось подготовить схему: %v", err)
		}
	}

	// 3. Создаём инстанс бота
	botAPI, err := bot.NewBot(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Ошибка при создании бота: %v", err)
	}

	// 4. Собираем обработчик и планировщик напоминаний
	handler := bot.NewHandler(botAPI, reg)
	sched := scheduler.New(handler.Notify)
	handler.SetScheduler(sched)
	sched.Start()
	defer sched.Stop()

	// 5. Запускаем основной цикл обработки
	if err := bot.Run(botAPI, handler); err != nil {
		log.Fatalf("Ошибка запуска бота: %v", err)
	}
}
