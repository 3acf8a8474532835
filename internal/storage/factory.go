package storage

import "fmt"

// StorageType represents the type of storage backend
type StorageType string

const (
	// StorageTypeDocument represents the single-file JSON document store
	StorageTypeDocument StorageType = "document"
	// StorageTypePostgres represents the hosted PostgreSQL store
	StorageTypePostgres StorageType = "postgres"
)

// GetSupportedTypes returns a list of supported storage types
func GetSupportedTypes() []StorageType {
	return []StorageType{
		StorageTypeDocument,
		StorageTypePostgres,
	}
}

// ValidateStorageType validates if a storage type is supported
func ValidateStorageType(storageType string) (StorageType, error) {
	st := StorageType(storageType)

	for _, supported := range GetSupportedTypes() {
		if st == supported {
			return st, nil
		}
	}

	return "", fmt.Errorf("unsupported storage type: %s. Supported types: %v", storageType, GetSupportedTypes())
}
