package ports

// Durable storage keys shared by the session and theme stores.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyTheme    = "theme"
)

// KeyValueStore is durable client-side storage of string values, the terminal
// counterpart of browser local storage. Writes are persisted before they
// return. There is no schema versioning.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(keys ...string) error
}

// BatchSetter is implemented by stores that can persist several values in a
// single write.
type BatchSetter interface {
	SetMany(values map[string]string) error
}
