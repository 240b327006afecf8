package store

import (
	"encoding/json"
	"fmt"
	"mrs/src/models"
	"os"
	"path"
	"sync"
	"time"
)

// JSONStore is the document-store backend: a single records.json under dir,
// held in memory and flushed on every committed write. A single RWMutex
// gives the single-writer semantics the relational backend gets from its
// transactions.
type JSONStore struct {
	mu   sync.RWMutex
	dir  string
	data *jsonData
}

type jsonData struct {
	LastIDs     map[string]uint        `json:"last_ids"`
	Bodies      []models.Body          `json:"bodies"`
	Units       []models.StorageUnit   `json:"storage_units"`
	Allocations []models.AllocationRow `json:"allocations"`
	Exits       []models.BodyExit      `json:"exits"`
	Movements   []models.Movement      `json:"movements"`
	Documents   []models.BodyDocument  `json:"documents"`
	Users       []models.User          `json:"users"`
	Sequences   map[string]int         `json:"sequences"`
}

func newJSONData() *jsonData {
	return &jsonData{
		LastIDs:   map[string]uint{},
		Sequences: map[string]int{},
	}
}

func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &JSONStore{dir: dir, data: newJSONData()}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) file() string {
	return path.Join(s.dir, "records.json")
}

func (s *JSONStore) load() error {
	b, err := os.ReadFile(s.file())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(b, s.data)
}

func (s *JSONStore) save() error {
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.file() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.file())
}

func (d *jsonData) clone() (*jsonData, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := newJSONData()
	if err := json.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Transact runs fn against a deep copy of the in-memory state and swaps it
// in only when fn succeeds, so a failed workflow leaves nothing behind.
func (s *JSONStore) Transact(fn func(tx Gateway) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	working, err := s.data.clone()
	if err != nil {
		return err
	}
	if err := fn(&jsonTx{data: working}); err != nil {
		return err
	}
	s.data = working
	return s.save()
}

func (s *JSONStore) read(fn func(d *jsonData) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *JSONStore) write(fn func(d *jsonData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.data); err != nil {
		return err
	}
	return s.save()
}

// jsonTx is the transactional view handed to Transact callbacks. The outer
// store holds the write lock for the duration, so no locking happens here.
type jsonTx struct {
	data *jsonData
}

func (t *jsonTx) Transact(fn func(tx Gateway) error) error {
	return fn(t)
}

func (d *jsonData) nextID(collection string) uint {
	d.LastIDs[collection]++
	return d.LastIDs[collection]
}

func (d *jsonData) getBody(id uint) (*models.Body, error) {
	for i := range d.Bodies {
		if d.Bodies[i].ID == id {
			body := d.Bodies[i]
			return &body, nil
		}
	}
	return nil, ErrNotFound
}

func (d *jsonData) getBodyByTag(tag string) (*models.Body, error) {
	for i := range d.Bodies {
		if d.Bodies[i].TagNumber == tag {
			body := d.Bodies[i]
			return &body, nil
		}
	}
	return nil, ErrNotFound
}

func (d *jsonData) createBody(b *models.Body) error {
	b.ID = d.nextID("bodies")
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	d.Bodies = append(d.Bodies, *b)
	return nil
}

func (d *jsonData) updateBody(b *models.Body) error {
	for i := range d.Bodies {
		if d.Bodies[i].ID == b.ID {
			b.UpdatedAt = time.Now()
			d.Bodies[i] = *b
			return nil
		}
	}
	return ErrNotFound
}

func (d *jsonData) deleteBody(id uint) error {
	for i := range d.Bodies {
		if d.Bodies[i].ID == id {
			d.Bodies = append(d.Bodies[:i], d.Bodies[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (d *jsonData) getStorageUnit(id uint) (*models.StorageUnit, error) {
	for i := range d.Units {
		if d.Units[i].ID == id {
			unit := d.Units[i]
			return &unit, nil
		}
	}
	return nil, ErrNotFound
}

func (d *jsonData) createStorageUnit(u *models.StorageUnit) error {
	u.ID = d.nextID("storage_units")
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	d.Units = append(d.Units, *u)
	return nil
}

func (d *jsonData) updateStorageUnit(u *models.StorageUnit) error {
	for i := range d.Units {
		if d.Units[i].ID == u.ID {
			u.UpdatedAt = time.Now()
			d.Units[i] = *u
			return nil
		}
	}
	return ErrNotFound
}

func (d *jsonData) getAllocation(id uint) (*models.StorageAllocation, error) {
	for i := range d.Allocations {
		if d.Allocations[i].ID == id {
			row := d.Allocations[i]
			return row.FromRow(), nil
		}
	}
	return nil, ErrNotFound
}

func (d *jsonData) createAllocation(a *models.StorageAllocation) error {
	row := a.ToRow()
	row.ID = d.nextID("allocations")
	row.AddedOn = time.Now()
	row.ModifiedOn = row.AddedOn
	d.Allocations = append(d.Allocations, *row)
	a.ID = row.ID
	a.AddedOn = row.AddedOn
	a.ModifiedOn = row.ModifiedOn
	return nil
}

func (d *jsonData) updateAllocation(a *models.StorageAllocation) error {
	row := a.ToRow()
	for i := range d.Allocations {
		if d.Allocations[i].ID == row.ID {
			row.ModifiedOn = time.Now()
			d.Allocations[i] = *row
			a.ModifiedOn = row.ModifiedOn
			return nil
		}
	}
	return ErrNotFound
}

func (d *jsonData) listAllocations() ([]models.StorageAllocation, error) {
	allocations := make([]models.StorageAllocation, 0, len(d.Allocations))
	for i := range d.Allocations {
		allocations = append(allocations, *d.Allocations[i].FromRow())
	}
	return allocations, nil
}

func (d *jsonData) activeAllocationsForBody(bodyID uint) ([]models.StorageAllocation, error) {
	var allocations []models.StorageAllocation
	for i := range d.Allocations {
		if d.Allocations[i].BodyID == bodyID && d.Allocations[i].Status == "Active" {
			allocations = append(allocations, *d.Allocations[i].FromRow())
		}
	}
	return allocations, nil
}

func (d *jsonData) createExit(e *models.BodyExit) error {
	e.ID = d.nextID("exits")
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	d.Exits = append(d.Exits, *e)
	return nil
}

func (d *jsonData) createMovement(m *models.Movement) error {
	m.ID = d.nextID("movements")
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	d.Movements = append(d.Movements, *m)
	return nil
}

func (d *jsonData) createDocument(doc *models.BodyDocument) error {
	doc.ID = d.nextID("documents")
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	d.Documents = append(d.Documents, *doc)
	return nil
}

func (d *jsonData) listDocuments(bodyID uint) ([]models.BodyDocument, error) {
	var docs []models.BodyDocument
	for i := range d.Documents {
		if d.Documents[i].BodyID == bodyID {
			docs = append(docs, d.Documents[i])
		}
	}
	return docs, nil
}

func (d *jsonData) getUserByEmail(email string) (*models.User, error) {
	for i := range d.Users {
		if d.Users[i].Email == email {
			user := d.Users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (d *jsonData) createUser(u *models.User) error {
	u.ID = d.nextID("users")
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	d.Users = append(d.Users, *u)
	return nil
}

func (d *jsonData) nextSequence(prefix string, day string) (int, error) {
	key := fmt.Sprintf("%s/%s", prefix, day)
	d.Sequences[key]++
	return d.Sequences[key], nil
}
