package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/speeti/speeti/internal/config"
)

// Module exposes the mail client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.MailServiceAddress == "" {
		p.Logger.Info("mail provider address not set, status mails disabled")
		return Disabled{}, nil
	}
	return NewHTTPClient(p.Config.MailServiceAddress, p.Config.MailSender, p.Logger)
}
