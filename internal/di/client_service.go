package di

import (
	"net/http"

	"github.com/samber/do/v2"

	"github.com/majidmanzarpour/workspace-cli/internal/api"
	"github.com/majidmanzarpour/workspace-cli/internal/auth"
	"github.com/majidmanzarpour/workspace-cli/internal/retry"
)

// ClientService holds one configured API client per service family.
type ClientService struct {
	clients map[string]*api.Client
}

// Get returns the client for a family name such as "gmail" or "drive".
func (s *ClientService) Get(family string) (*api.Client, bool) {
	c, ok := s.clients[family]
	return c, ok
}

// Families lists the family names with a configured client.
func (s *ClientService) Families() []string {
	names := make([]string, 0, len(s.clients))
	for name := range s.clients {
		names = append(names, name)
	}
	return names
}

// NewClients builds every family client, applying the shared HTTP timeout,
// logger, and any per-family retry overrides from config.
func NewClients(i do.Injector) (*ClientService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)
	logSvc := do.MustInvoke[*LoggerService](i)
	tokSvc := do.MustInvoke[*TokenService](i)

	httpClient := &http.Client{Timeout: cfgSvc.Config.HTTP.Timeout()}

	ctors := map[string]func(auth.TokenProvider) *api.Client{
		"gmail":    api.Gmail,
		"drive":    api.Drive,
		"calendar": api.Calendar,
		"docs":     api.Docs,
		"sheets":   api.Sheets,
		"slides":   api.Slides,
		"tasks":    api.Tasks,
		"chat":     api.Chat,
		"contacts": api.Contacts,
		"groups":   api.Groups,
		"admin":    api.Admin,
	}

	clients := make(map[string]*api.Client, len(ctors))
	for family, ctor := range ctors {
		client := ctor(tokSvc.Provider).
			WithHTTPClient(httpClient).
			WithLogger(*logSvc.Logger).
			WithCircuitBreaker(api.NewCircuitBreaker(family, api.DefaultCircuitConfig(), logSvc.Logger))

		if override, ok := cfgSvc.Config.Retry[family]; ok {
			client = client.WithRetryConfig(override.Apply(basePolicy(family)))
		}

		clients[family] = client
	}

	return &ClientService{clients: clients}, nil
}

// basePolicy mirrors the retry preset each family constructor installs,
// so config overrides layer on the right baseline.
func basePolicy(family string) retry.Config {
	switch family {
	case "gmail", "drive":
		return retry.Conservative()
	case "docs", "sheets", "slides":
		return retry.Aggressive()
	default:
		return retry.DefaultConfig()
	}
}
