// Package ratepipe is the application shell of the exchange-rate pipeline's
// configuration layer. NewApp assembles an Fx application from options:
// WithSettings provides the settings resolver, WithStatusListener exposes it
// over HTTP, and WithModules adds the caller's own modules.
package ratepipe
