// Package app composes the shop's services into a running application.
//
// # Package Structure
//
//	internal/app/
//	├── application.go      # Application struct, wiring, and lifecycle
//	├── janitor.go          # Scheduled entity cache expiry sweep
//	├── invalidator.go      # Backend change feed -> cache invalidation
//	├── domain/             # Domain models (pure data structures)
//	│   ├── catalog/        # Products, categories, colors, sizes, collections
//	│   ├── blog/           # Posts and tags
//	│   ├── order/          # Orders and fulfillment statuses
//	│   ├── customer/       # Shop accounts
//	│   ├── cart/           # Cart lines
//	│   └── session/        # Admin session and its two states
//	├── storage/            # Storage interfaces and implementations
//	│   ├── interfaces.go   # Store interfaces (ProductStore, OrderStore, ...)
//	│   ├── memory/         # In-memory implementation for tests and dev
//	│   └── graphql/        # Backend implementation with entity caching
//	├── services/           # Business logic per domain
//	├── httpapi/            # HTTP handlers and routing
//	├── system/             # Lifecycle management
//	└── validation/         # Input error sentinel
//
// The app package wires services to their stores, registers lifecycle
// services (cache janitor, change feed invalidator) with the system
// manager, and rehydrates persisted state (session, cart, preferences) on
// start. Business rules live in internal/app/services/; request and
// response handling in internal/app/httpapi/.
package app
