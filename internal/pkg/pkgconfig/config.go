package pkgconfig

// Config is the read-only configuration surface used by the application.
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetFloat(key string) float64
	GetString(key string) string
	GetArray(key string) []string
	GetMap(key string) map[string]string
	Close() error
}
