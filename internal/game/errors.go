package game

import "errors"

// Sentinel errors for every rejected operation. The HTTP and bot layers
// translate these into responses; the engine itself never panics on bad
// input.
var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerExists       = errors.New("player already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrRoleTaken          = errors.New("role already chosen")
	ErrNoRole             = errors.New("no role chosen")
	ErrJobNotFound        = errors.New("job not found")
	ErrRoleMismatch       = errors.New("job requires a different role")
	ErrInsufficientEnergy = errors.New("not enough energy")
	ErrOnCooldown         = errors.New("still on cooldown")
	ErrArrested           = errors.New("player is under arrest")
	ErrNegativeExperience = errors.New("experience must not be negative")
	ErrInsufficientFunds  = errors.New("not enough money")
	ErrSelfTarget         = errors.New("cannot target yourself")
	ErrTargetArrested     = errors.New("target is already under arrest")
	ErrItemNotFound       = errors.New("item not found")
	ErrStoreNotFound      = errors.New("store not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrInsufficientShares = errors.New("not enough shares")
	ErrCapitalTooSmall    = errors.New("capital below minimum")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidEvidence    = errors.New("evidence must not be negative")
	ErrBonusClaimed       = errors.New("daily bonus already claimed")
	ErrAlreadyFriends     = errors.New("already friends")
)
