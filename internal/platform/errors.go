package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by drivers when the named resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoStorageProvider means no storage provider matches the requested type.
	ErrNoStorageProvider = errors.New("no compatible storage provider")

	// ErrInvalidJob marks a job spec rejected before reaching the platform.
	ErrInvalidJob = errors.New("invalid job spec")

	// ErrInvalidCommand marks a command that cannot be serialized.
	ErrInvalidCommand = errors.New("invalid command")
)

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// SelectStorageProvider returns the first provider of the given type. When
// name is not empty the provider name must match as well.
func SelectStorageProvider(providers []StorageProvider, providerType, name string) (StorageProvider, error) {
	for _, p := range providers {
		if p.Type != providerType {
			continue
		}
		if name != "" && p.Name != name {
			continue
		}
		return p, nil
	}
	if name != "" {
		return StorageProvider{}, fmt.Errorf("%w: type %q name %q (%d providers listed)", ErrNoStorageProvider, providerType, name, len(providers))
	}
	return StorageProvider{}, fmt.Errorf("%w: type %q (%d providers listed)", ErrNoStorageProvider, providerType, len(providers))
}
