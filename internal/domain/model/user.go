package model

// User is a registered shopper. Identity is the username; registration
// resolves collisions by appending "0" until a free name is found, and the
// suffixed name becomes the true identity.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	Points       int64
}

// UserFromRecord deserializes a stored record.
func UserFromRecord(rec Record) (*User, error) {
	username, err := recordString(rec, "username")
	if err != nil {
		return nil, err
	}
	email, err := recordString(rec, "email")
	if err != nil {
		return nil, err
	}
	password, err := recordString(rec, "password")
	if err != nil {
		return nil, err
	}
	points, err := recordInt(rec, "points")
	if err != nil {
		return nil, err
	}
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: password,
		Points:       points,
	}, nil
}

// ToRecord serializes the user. Exact inverse of UserFromRecord.
func (u *User) ToRecord() Record {
	return Record{
		"username": u.Username,
		"email":    u.Email,
		"password": u.PasswordHash,
		"points":   u.Points,
	}
}
