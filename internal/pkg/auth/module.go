package auth

import "go.uber.org/fx"

// Module provides credential hashing via fx.
var Module = fx.Provide(func() PasswordHasher {
	return NewBcryptHasher(0)
})
