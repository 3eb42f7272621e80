// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (session/protocol state) and contracts (interfaces) only.
package domain
