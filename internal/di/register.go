package di

import "github.com/samber/do/v2"

// RegisterSingletons registers all service providers as singletons.
// Services are registered in dependency order:
// 1. Config (no dependencies)
// 2. Logger (depends on Config)
// 3. Tokens (depends on Config)
// 4. Clients (depends on Config, Logger, Tokens)
// 5. Batch (depends on Logger).
func RegisterSingletons(i do.Injector) {
	do.Provide(i, NewConfig)
	do.Provide(i, NewLogger)
	do.Provide(i, NewTokens)
	do.Provide(i, NewClients)
	do.Provide(i, NewBatch)
}
