package fx

import (
	"groupassign/internal/config"

	"go.uber.org/fx"
)

// Application creates the main FX application with all modules.
func Application() *fx.App {
	options := []fx.Option{
		CoreModule,
		AppModule,
	}

	if config.IsProduction() {
		options = append(options, fx.NopLogger)
	}

	return fx.New(options...)
}
