package app

import (
	"context"
	"encoding/json"

	"github.com/PaesslerAG/jsonpath"

	"github.com/noizee/storefront/internal/entitycache"
	"github.com/noizee/storefront/internal/gqlclient"
	"github.com/noizee/storefront/pkg/logger"
)

// entityChangedSubscription is the backend's change feed. Events carry the
// entity kind, its id and what happened, never the changed fields.
const entityChangedSubscription = `subscription EntityChanged {
  entityChanged {
    kind
    id
    action
  }
}`

// Invalidator listens to the backend's change feed and keeps the entity
// cache coherent with edits made by other admins: creates and deletes drop
// the kind's cached lists, updates evict the entity snapshot so the next
// read refetches.
type Invalidator struct {
	sub   *gqlclient.Subscriber
	cache *entitycache.Cache
	log   *logger.Logger
	subID string
}

// NewInvalidator creates an invalidator over an existing subscriber.
func NewInvalidator(sub *gqlclient.Subscriber, cache *entitycache.Cache, log *logger.Logger) *Invalidator {
	if log == nil {
		log = logger.NewDefault("invalidator")
	}
	return &Invalidator{sub: sub, cache: cache, log: log}
}

// Name implements system.Service.
func (inv *Invalidator) Name() string { return "cache-invalidator" }

// Start connects and subscribes to the change feed.
func (inv *Invalidator) Start(ctx context.Context) error {
	if err := inv.sub.Connect(ctx); err != nil {
		return err
	}
	id, err := inv.sub.Subscribe(entityChangedSubscription, nil, inv.handle)
	if err != nil {
		return err
	}
	inv.subID = id
	return nil
}

// Stop tears the subscription down.
func (inv *Invalidator) Stop(context.Context) error {
	if inv.subID != "" {
		inv.sub.Unsubscribe(inv.subID)
	}
	return inv.sub.Close()
}

func (inv *Invalidator) handle(data json.RawMessage) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		inv.log.WithError(err).Warn("undecodable change event")
		return
	}

	kind := stringAt(doc, "$.entityChanged.kind")
	id := stringAt(doc, "$.entityChanged.id")
	action := stringAt(doc, "$.entityChanged.action")
	if kind == "" || action == "" {
		inv.log.Warn("change event missing kind or action")
		return
	}

	switch action {
	case "created":
		inv.cache.InvalidateLists(kind)
	case "updated":
		if id != "" {
			inv.cache.Evict(kind, id)
		}
	case "deleted":
		if id != "" {
			inv.cache.Delete(kind, id)
		} else {
			inv.cache.InvalidateLists(kind)
		}
	default:
		inv.log.WithField("action", action).Debug("ignoring unknown change action")
		return
	}
	inv.log.WithField("kind", kind).WithField("action", action).Debug("applied change event")
}

func stringAt(doc interface{}, path string) string {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
