// Package env provides the environment snapshot used for secret overrides.
//
// A snapshot is taken once, explicitly, by the caller. Dotenv files are merged with
// github.com/joho/godotenv but only fill variables the process does not already
// define, matching godotenv.Load, without touching os.Setenv.
//
//	environ, err := env.Snapshot(env.DefaultDotenvFile)
//	key, ok := environ.Lookup("EXCHANGE_RATE_API_KEY")
package env
