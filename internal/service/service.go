package service

import (
	"log/slog"

	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/config"
	"github.com/hance08/bankdash/internal/export"
	"github.com/hance08/bankdash/internal/session"
)

type Service struct {
	Auth     *AuthService
	Customer *CustomerService
	Banker   *BankerService
	Export   *ExportService
}

func NewService(backend api.Backend, store session.Store, saver *export.Saver, cfg *config.Config, logger *slog.Logger) *Service {
	guard := session.NewGuard(store)
	return &Service{
		Auth:     NewAuthService(backend, store),
		Customer: NewCustomerService(backend, guard, store, cfg, logger),
		Banker:   NewBankerService(backend, guard, store, cfg),
		Export:   NewExportService(saver),
	}
}
