package common

import (
	"crypto/sha256"

	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
)

// GetClientIdentifier returns a UUID that uniquely identifies this system.
// It uses the machine's hardware ID to generate a consistent, system-specific
// UUID, falling back to a random ephemeral UUID when the machine ID cannot
// be obtained.
func GetClientIdentifier() uuid.UUID {
	id, err := machineid.ID()
	if err != nil {
		return uuid.New()
	}

	hash := sha256.Sum256([]byte(id))
	return uuid.UUID(hash[:16])
}
