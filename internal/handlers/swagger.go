package handlers

// @title Table Ops API
// @version 1.0
// @description A single-function dispatch service mapping JSON request envelopes to managed key-value table operations

// @contact.name API Support
// @contact.url https://github.com/your-org/table-ops-api

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name ops
// @tag.description Envelope dispatch against the item store
