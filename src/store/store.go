package store

import (
	"errors"
	"fmt"
	"mrs/src/config"
	"mrs/src/models"
)

// ErrNotFound is returned by lookups when no row matches. The workflow
// layer converts it into its own not-found failure kind.
var ErrNotFound = errors.New("record not found")

// Gateway is the row-oriented persistence boundary. Both backends must be
// safe for concurrent request handlers; neither holds request state.
type Gateway interface {
	// Transact runs fn against a transactional view of the store. Writes
	// are discarded when fn returns an error.
	Transact(fn func(tx Gateway) error) error

	GetBody(id uint) (*models.Body, error)
	GetBodyByTag(tag string) (*models.Body, error)
	CreateBody(b *models.Body) error
	UpdateBody(b *models.Body) error
	DeleteBody(id uint) error
	ListBodies() ([]models.Body, error)

	GetStorageUnit(id uint) (*models.StorageUnit, error)
	CreateStorageUnit(u *models.StorageUnit) error
	UpdateStorageUnit(u *models.StorageUnit) error
	ListStorageUnits() ([]models.StorageUnit, error)

	GetAllocation(id uint) (*models.StorageAllocation, error)
	CreateAllocation(a *models.StorageAllocation) error
	UpdateAllocation(a *models.StorageAllocation) error
	ListAllocations() ([]models.StorageAllocation, error)
	ActiveAllocationsForBody(bodyID uint) ([]models.StorageAllocation, error)

	CreateExit(e *models.BodyExit) error
	ListExits() ([]models.BodyExit, error)

	CreateMovement(m *models.Movement) error
	ListMovements() ([]models.Movement, error)

	CreateDocument(d *models.BodyDocument) error
	ListDocuments(bodyID uint) ([]models.BodyDocument, error)

	GetUserByEmail(email string) (*models.User, error)
	CreateUser(u *models.User) error

	// NextSequence atomically increments and returns the per-day counter
	// for prefix. Backs the date-sequenced identifier schemes.
	NextSequence(prefix string, day string) (int, error)
}

// New selects the backend once at boot. Business logic receives the result
// by injection and never consults the environment again.
func New() (Gateway, error) {
	switch backend := config.StorageBackend(); backend {
	case "postgres":
		return NewGormGateway(), nil
	case "json":
		return NewJSONStore(config.JSONStoreDir())
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
