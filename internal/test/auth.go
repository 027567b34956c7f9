package test

import "errors"

// ErrHashMismatch is returned by HasherStub.Compare on a wrong password.
var ErrHashMismatch = errors.New("hash mismatch")

// HasherStub is a fast reversible stand-in for the bcrypt hasher.
type HasherStub struct {
	HashErr error
}

// Hash prefixes the password so tests can recognize hashed values.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "hashed:" + password, nil
}

// Compare accepts only the hash produced by Hash for the same password.
func (h HasherStub) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return ErrHashMismatch
	}
	return nil
}
