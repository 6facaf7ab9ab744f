package domain

import "time"

// TokenPair is what a successful grant produces.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessTokenID    string
	ExpiresIn        time.Duration
	RefreshExpiresIn time.Duration
	Scope            string
}
