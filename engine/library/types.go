package library

type Wallet struct {
	PrivateKey string
	SeedWords  string
	Account    Account
}

// Account is a hex encoded public key. The registry never interprets it.
type Account = string

type Sha256 = string

// TokenID addresses a post in the registry.
type TokenID = uint64
