package store

import "mrs/src/models"

func (s *JSONStore) GetBody(id uint) (*models.Body, error) {
	var body *models.Body
	err := s.read(func(d *jsonData) (err error) {
		body, err = d.getBody(id)
		return
	})
	return body, err
}

func (s *JSONStore) GetBodyByTag(tag string) (*models.Body, error) {
	var body *models.Body
	err := s.read(func(d *jsonData) (err error) {
		body, err = d.getBodyByTag(tag)
		return
	})
	return body, err
}

func (s *JSONStore) CreateBody(b *models.Body) error {
	return s.write(func(d *jsonData) error { return d.createBody(b) })
}

func (s *JSONStore) UpdateBody(b *models.Body) error {
	return s.write(func(d *jsonData) error { return d.updateBody(b) })
}

func (s *JSONStore) DeleteBody(id uint) error {
	return s.write(func(d *jsonData) error { return d.deleteBody(id) })
}

func (s *JSONStore) ListBodies() ([]models.Body, error) {
	var bodies []models.Body
	err := s.read(func(d *jsonData) error {
		bodies = append([]models.Body{}, d.Bodies...)
		return nil
	})
	return bodies, err
}

func (s *JSONStore) GetStorageUnit(id uint) (*models.StorageUnit, error) {
	var unit *models.StorageUnit
	err := s.read(func(d *jsonData) (err error) {
		unit, err = d.getStorageUnit(id)
		return
	})
	return unit, err
}

func (s *JSONStore) CreateStorageUnit(u *models.StorageUnit) error {
	return s.write(func(d *jsonData) error { return d.createStorageUnit(u) })
}

func (s *JSONStore) UpdateStorageUnit(u *models.StorageUnit) error {
	return s.write(func(d *jsonData) error { return d.updateStorageUnit(u) })
}

func (s *JSONStore) ListStorageUnits() ([]models.StorageUnit, error) {
	var units []models.StorageUnit
	err := s.read(func(d *jsonData) error {
		units = append([]models.StorageUnit{}, d.Units...)
		return nil
	})
	return units, err
}

func (s *JSONStore) GetAllocation(id uint) (*models.StorageAllocation, error) {
	var allocation *models.StorageAllocation
	err := s.read(func(d *jsonData) (err error) {
		allocation, err = d.getAllocation(id)
		return
	})
	return allocation, err
}

func (s *JSONStore) CreateAllocation(a *models.StorageAllocation) error {
	return s.write(func(d *jsonData) error { return d.createAllocation(a) })
}

func (s *JSONStore) UpdateAllocation(a *models.StorageAllocation) error {
	return s.write(func(d *jsonData) error { return d.updateAllocation(a) })
}

func (s *JSONStore) ListAllocations() ([]models.StorageAllocation, error) {
	var allocations []models.StorageAllocation
	err := s.read(func(d *jsonData) (err error) {
		allocations, err = d.listAllocations()
		return
	})
	return allocations, err
}

func (s *JSONStore) ActiveAllocationsForBody(bodyID uint) ([]models.StorageAllocation, error) {
	var allocations []models.StorageAllocation
	err := s.read(func(d *jsonData) (err error) {
		allocations, err = d.activeAllocationsForBody(bodyID)
		return
	})
	return allocations, err
}

func (s *JSONStore) CreateExit(e *models.BodyExit) error {
	return s.write(func(d *jsonData) error { return d.createExit(e) })
}

func (s *JSONStore) ListExits() ([]models.BodyExit, error) {
	var exits []models.BodyExit
	err := s.read(func(d *jsonData) error {
		exits = append([]models.BodyExit{}, d.Exits...)
		return nil
	})
	return exits, err
}

func (s *JSONStore) CreateMovement(m *models.Movement) error {
	return s.write(func(d *jsonData) error { return d.createMovement(m) })
}

func (s *JSONStore) ListMovements() ([]models.Movement, error) {
	var movements []models.Movement
	err := s.read(func(d *jsonData) error {
		movements = append([]models.Movement{}, d.Movements...)
		return nil
	})
	return movements, err
}

func (s *JSONStore) CreateDocument(doc *models.BodyDocument) error {
	return s.write(func(d *jsonData) error { return d.createDocument(doc) })
}

func (s *JSONStore) ListDocuments(bodyID uint) ([]models.BodyDocument, error) {
	var docs []models.BodyDocument
	err := s.read(func(d *jsonData) (err error) {
		docs, err = d.listDocuments(bodyID)
		return
	})
	return docs, err
}

func (s *JSONStore) GetUserByEmail(email string) (*models.User, error) {
	var user *models.User
	err := s.read(func(d *jsonData) (err error) {
		user, err = d.getUserByEmail(email)
		return
	})
	return user, err
}

func (s *JSONStore) CreateUser(u *models.User) error {
	return s.write(func(d *jsonData) error { return d.createUser(u) })
}

func (s *JSONStore) NextSequence(prefix string, day string) (int, error) {
	var seq int
	err := s.write(func(d *jsonData) (err error) {
		seq, err = d.nextSequence(prefix, day)
		return
	})
	return seq, err
}

func (t *jsonTx) GetBody(id uint) (*models.Body, error) { return t.data.getBody(id) }
func (t *jsonTx) GetBodyByTag(tag string) (*models.Body, error) { return t.data.getBodyByTag(tag) }
func (t *jsonTx) CreateBody(b *models.Body) error { return t.data.createBody(b) }
func (t *jsonTx) UpdateBody(b *models.Body) error { return t.data.updateBody(b) }
func (t *jsonTx) DeleteBody(id uint) error { return t.data.deleteBody(id) }
func (t *jsonTx) ListBodies() ([]models.Body, error) { return t.data.Bodies, nil }

func (t *jsonTx) GetStorageUnit(id uint) (*models.StorageUnit, error) {
	return t.data.getStorageUnit(id)
}
func (t *jsonTx) CreateStorageUnit(u *models.StorageUnit) error { return t.data.createStorageUnit(u) }
func (t *jsonTx) UpdateStorageUnit(u *models.StorageUnit) error { return t.data.updateStorageUnit(u) }
func (t *jsonTx) ListStorageUnits() ([]models.StorageUnit, error) {
	return t.data.Units, nil
}

func (t *jsonTx) GetAllocation(id uint) (*models.StorageAllocation, error) {
	return t.data.getAllocation(id)
}
func (t *jsonTx) CreateAllocation(a *models.StorageAllocation) error {
	return t.data.createAllocation(a)
}
func (t *jsonTx) UpdateAllocation(a *models.StorageAllocation) error {
	return t.data.updateAllocation(a)
}
func (t *jsonTx) ListAllocations() ([]models.StorageAllocation, error) {
	return t.data.listAllocations()
}
func (t *jsonTx) ActiveAllocationsForBody(bodyID uint) ([]models.StorageAllocation, error) {
	return t.data.activeAllocationsForBody(bodyID)
}

func (t *jsonTx) CreateExit(e *models.BodyExit) error { return t.data.createExit(e) }
func (t *jsonTx) ListExits() ([]models.BodyExit, error) { return t.data.Exits, nil }
func (t *jsonTx) CreateMovement(m *models.Movement) error { return t.data.createMovement(m) }
func (t *jsonTx) ListMovements() ([]models.Movement, error) { return t.data.Movements, nil }

func (t *jsonTx) CreateDocument(doc *models.BodyDocument) error { return t.data.createDocument(doc) }
func (t *jsonTx) ListDocuments(bodyID uint) ([]models.BodyDocument, error) {
	return t.data.listDocuments(bodyID)
}

func (t *jsonTx) GetUserByEmail(email string) (*models.User, error) {
	return t.data.getUserByEmail(email)
}
func (t *jsonTx) CreateUser(u *models.User) error { return t.data.createUser(u) }

func (t *jsonTx) NextSequence(prefix string, day string) (int, error) {
	return t.data.nextSequence(prefix, day)
}
