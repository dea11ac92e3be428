package mylog

import (
	"context"
	"io"
	"log/slog"
	"os"

	"replygen/app/config"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

func Preinit() {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})))
}

// Init routes records to out and, when configured, errors and records
// carrying a "telegram" attribute to the Telegram chat.
func Init(cfg *config.Config, out io.Writer) error {
	router := slogmulti.Router()

	router = router.Add(console.NewHandler(out, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
		NoColor:   out != os.Stderr && out != os.Stdout,
	}))

	if cfg.Log.Telegram.Token != "" {
		router = router.Add(
			slogtelegram.Option{
				Level:     slog.LevelDebug,
				Token:     cfg.Log.Telegram.Token,
				Username:  cfg.Log.Telegram.ChatID,
				AddSource: true,
			}.NewTelegramHandler(),

			func(_ context.Context, r slog.Record) bool {
				hasTelegram := false

				r.Attrs(func(attr slog.Attr) bool {
					if attr.Key == "telegram" {
						hasTelegram = true
						return false
					}

					return true
				})

				return r.Level == slog.LevelError || hasTelegram
			},
		)
	}

	slog.SetDefault(slog.New(router.Handler()))

	return nil
}

// OpenFile opens the append-only log file used when the terminal is owned by
// the front end.
func OpenFile(cfg *config.Config) (*os.File, error) {
	return os.OpenFile(cfg.Log.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
}
