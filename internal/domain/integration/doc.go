// Package integration defines the domain model for synchronizing product
// buy prices between an external retail platform (the pricing source) and
// an external marketplace order platform.
//
// The package follows the Ports & Adapters pattern: the port interfaces
// (OrderSource, PriceSource, PriceWriter) are defined here in the domain
// layer, and the concrete HTTP adapters live in
// internal/infrastructure/ecommerce.
package integration
