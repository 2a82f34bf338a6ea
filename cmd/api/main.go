package main

import (
	"github.com/alper-collab/tasarim-anketi/internal/config"
	"github.com/alper-collab/tasarim-anketi/internal/mail"
	"github.com/alper-collab/tasarim-anketi/internal/server"
)

func main() {
	cfg := config.Load()

	sender := mail.NewSMTPSender(mail.Config{
		Host:          cfg.SMTPHost,
		Port:          cfg.SMTPPort,
		Username:      cfg.SMTPUsername,
		Password:      cfg.SMTPPassword,
		Secure:        cfg.SMTPSecure,
		SenderName:    cfg.SenderName,
		SenderAddress: cfg.SenderAddress,
	})

	app := server.New(cfg, sender)
	if err := app.Run(); err != nil {
		cfg.ServerLog.Fatalf("sunucu başlatılamadı: %v", err)
	}
}
