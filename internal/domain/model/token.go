package model

import "time"

// tokenTimeLayout qualifies token codes down to the second.
const tokenTimeLayout = "20060102150405"

// RedemptionToken is a QR-code capability bound to exactly one user.
// Multiple live tokens per user are allowed and tokens are not invalidated
// after use.
type RedemptionToken struct {
	Owner    string
	IssuedAt time.Time
	Code     string
}

// TokenCode derives the deterministic code for a token issued to username
// at the given time.
func TokenCode(username string, issuedAt time.Time) string {
	return username + "_" + issuedAt.Format(tokenTimeLayout)
}

// NewRedemptionToken issues a token for the user with a derived code.
func NewRedemptionToken(username string, issuedAt time.Time) *RedemptionToken {
	return &RedemptionToken{
		Owner:    username,
		IssuedAt: issuedAt,
		Code:     TokenCode(username, issuedAt),
	}
}

// TokenFromRecord deserializes a stored record.
func TokenFromRecord(rec Record) (*RedemptionToken, error) {
	owner, err := recordString(rec, "user")
	if err != nil {
		return nil, err
	}
	code, err := recordString(rec, "code")
	if err != nil {
		return nil, err
	}
	dateRaw, err := recordString(rec, "date")
	if err != nil {
		return nil, err
	}
	issuedAt, parseErr := time.Parse(tokenTimeLayout, dateRaw)
	if parseErr != nil {
		return nil, malformed("date")
	}
	return &RedemptionToken{Owner: owner, IssuedAt: issuedAt, Code: code}, nil
}

// ToRecord serializes the token. Exact inverse of TokenFromRecord.
func (t *RedemptionToken) ToRecord() Record {
	return Record{
		"user": t.Owner,
		"code": t.Code,
		"date": t.IssuedAt.Format(tokenTimeLayout),
	}
}
