// Package constants holds identifiers shared between configuration and infrastructure.
package constants

// Pub/Sub providers accepted by the pubsub.provider setting.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Storage drivers accepted by the storage.driver setting.
const (
	StorageDriverFile     = "file"
	StorageDriverBlob     = "blob"
	StorageDriverPostgres = "postgres"
)

// Environments that skip Pub/Sub push token verification.
const (
	EnvLocal   = "local"
	EnvDevelop = "develop"
)
