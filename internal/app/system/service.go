package system

import "context"

// Service is a long-running piece of the shop client, such as the cache
// janitor, the change-feed invalidator or the gateway's HTTP server. The
// manager drives Start and Stop in a deterministic order.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
