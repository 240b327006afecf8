package store

import (
	"errors"
	"mrs/src/db"
	"mrs/src/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGateway serves the relational backend. All allocation traffic goes
// through the AllocationRow mapping so column names stay out of the domain.
type GormGateway struct {
	db *gorm.DB
}

func NewGormGateway() *GormGateway {
	return &GormGateway{db: db.GetDb()}
}

// NewGormGatewayWithDB is used by tests to wire a mock connection.
func NewGormGatewayWithDB(d *gorm.DB) *GormGateway {
	return &GormGateway{db: d}
}

func (g *GormGateway) Transact(fn func(tx Gateway) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormGateway{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (g *GormGateway) GetBody(id uint) (*models.Body, error) {
	var body models.Body
	if err := g.db.Where(&models.Body{ID: id}).First(&body).Error; err != nil {
		return nil, notFound(err)
	}
	return &body, nil
}

func (g *GormGateway) GetBodyByTag(tag string) (*models.Body, error) {
	var body models.Body
	if err := g.db.Where(&models.Body{TagNumber: tag}).First(&body).Error; err != nil {
		return nil, notFound(err)
	}
	return &body, nil
}

func (g *GormGateway) CreateBody(b *models.Body) error {
	return g.db.Create(b).Error
}

func (g *GormGateway) UpdateBody(b *models.Body) error {
	return g.db.Save(b).Error
}

func (g *GormGateway) DeleteBody(id uint) error {
	return g.db.Delete(&models.Body{}, id).Error
}

func (g *GormGateway) ListBodies() ([]models.Body, error) {
	var bodies []models.Body
	if err := g.db.Order("id").Find(&bodies).Error; err != nil {
		return nil, err
	}
	return bodies, nil
}

func (g *GormGateway) GetStorageUnit(id uint) (*models.StorageUnit, error) {
	var unit models.StorageUnit
	if err := g.db.Where(&models.StorageUnit{ID: id}).First(&unit).Error; err != nil {
		return nil, notFound(err)
	}
	return &unit, nil
}

func (g *GormGateway) CreateStorageUnit(u *models.StorageUnit) error {
	return g.db.Create(u).Error
}

func (g *GormGateway) UpdateStorageUnit(u *models.StorageUnit) error {
	return g.db.Save(u).Error
}

func (g *GormGateway) ListStorageUnits() ([]models.StorageUnit, error) {
	var units []models.StorageUnit
	if err := g.db.Order("id").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (g *GormGateway) GetAllocation(id uint) (*models.StorageAllocation, error) {
	var row models.AllocationRow
	if err := g.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return row.FromRow(), nil
}

func (g *GormGateway) CreateAllocation(a *models.StorageAllocation) error {
	row := a.ToRow()
	if err := g.db.Create(row).Error; err != nil {
		return err
	}
	a.ID = row.ID
	a.AddedOn = row.AddedOn
	a.ModifiedOn = row.ModifiedOn
	return nil
}

func (g *GormGateway) UpdateAllocation(a *models.StorageAllocation) error {
	row := a.ToRow()
	if err := g.db.Save(row).Error; err != nil {
		return err
	}
	a.ModifiedOn = row.ModifiedOn
	return nil
}

func (g *GormGateway) ListAllocations() ([]models.StorageAllocation, error) {
	var rows []models.AllocationRow
	if err := g.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	allocations := make([]models.StorageAllocation, 0, len(rows))
	for _, row := range rows {
		allocations = append(allocations, *row.FromRow())
	}
	return allocations, nil
}

func (g *GormGateway) ActiveAllocationsForBody(bodyID uint) ([]models.StorageAllocation, error) {
	var rows []models.AllocationRow
	if err := g.db.
		Where("\"SA_Body_FK\" = ? AND \"SA_Status\" = ?", bodyID, "Active").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	allocations := make([]models.StorageAllocation, 0, len(rows))
	for _, row := range rows {
		allocations = append(allocations, *row.FromRow())
	}
	return allocations, nil
}

func (g *GormGateway) CreateExit(e *models.BodyExit) error {
	return g.db.Create(e).Error
}

func (g *GormGateway) ListExits() ([]models.BodyExit, error) {
	var exits []models.BodyExit
	if err := g.db.Order("id").Find(&exits).Error; err != nil {
		return nil, err
	}
	return exits, nil
}

func (g *GormGateway) CreateMovement(m *models.Movement) error {
	return g.db.Create(m).Error
}

func (g *GormGateway) ListMovements() ([]models.Movement, error) {
	var movements []models.Movement
	if err := g.db.Order("id").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (g *GormGateway) CreateDocument(d *models.BodyDocument) error {
	return g.db.Create(d).Error
}

func (g *GormGateway) ListDocuments(bodyID uint) ([]models.BodyDocument, error) {
	var docs []models.BodyDocument
	if err := g.db.Where(&models.BodyDocument{BodyID: bodyID}).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (g *GormGateway) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := g.db.Where(&models.User{Email: email}).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (g *GormGateway) CreateUser(u *models.User) error {
	return g.db.Create(u).Error
}

func (g *GormGateway) NextSequence(prefix string, day string) (int, error) {
	var counter models.SequenceCounter
	err := g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.SequenceCounter{Prefix: prefix, Day: day}).
			First(&counter).
			Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			counter = models.SequenceCounter{Prefix: prefix, Day: day, Value: 1}
			return tx.Create(&counter).Error
		}
		counter.Value++
		return tx.Save(&counter).Error
	})
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}
