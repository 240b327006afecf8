package common

import (
	"errors"
	"log"
	"mrs/src/config"
	"mrs/src/models"
	"mrs/src/store"
	"mrs/src/types"
	"mrs/src/utils"
	"time"
)

const bodyTagPrefix = "BT"

// RegisterBody admits a body into the register. The tag number is a
// date-sequenced identifier whose sequence comes from the persisted per-day
// counter, so tags stay unique under concurrent registration.
func (s *Service) RegisterBody(input *types.RegisterBodyRequestBody) (*models.Body, error) {
	dateOfDeath, err := time.Parse(config.TIME_PARSE_FORMAT, input.DateOfDeath)
	if err != nil {
		return nil, &ValidationError{Problems: []string{"Invalid date of death"}}
	}
	body := &models.Body{
		FullName:       input.FullName,
		Gender:         input.Gender,
		DateOfDeath:    dateOfDeath,
		Source:         input.Source,
		CauseOfDeath:   input.CauseOfDeath,
		NextOfKinName:  input.NextOfKinName,
		NextOfKinPhone: input.NextOfKinPhone,
		Status:         types.BODY_REGISTERED,
		Notes:          input.Notes,
		ProviderID:     1,
		OutletID:       1,
	}
	err = s.store.Transact(func(tx store.Gateway) error {
		seq, err := tx.NextSequence(bodyTagPrefix, time.Now().Format("20060102"))
		if err != nil {
			return &PersistenceError{Op: "next tag sequence", Err: err}
		}
		body.TagNumber = utils.DateSequencedID(bodyTagPrefix, &seq)
		if err := tx.CreateBody(body); err != nil {
			return &PersistenceError{Op: "register body", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Registered body [%d] with tag %s\n", body.ID, body.TagNumber)
	return body, nil
}

func (s *Service) GetBody(id uint) (*models.Body, error) {
	body, err := s.store.GetBody(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Body", ID: id}
		}
		return nil, &PersistenceError{Op: "lookup body", Err: err}
	}
	return body, nil
}

func (s *Service) ListBodies() ([]models.Body, error) {
	bodies, err := s.store.ListBodies()
	if err != nil {
		return nil, &PersistenceError{Op: "list bodies", Err: err}
	}
	return bodies, nil
}

// VerifyBody marks identification as confirmed.
func (s *Service) VerifyBody(id uint, verifiedBy string) (*models.Body, error) {
	var verified *models.Body
	err := s.store.Transact(func(tx store.Gateway) error {
		body, err := tx.GetBody(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Body", ID: id}
			}
			return &PersistenceError{Op: "lookup body", Err: err}
		}
		if body.Verified {
			return &ConflictError{Reason: "body has already been verified"}
		}
		body.Verified = true
		body.VerifiedBy = &verifiedBy
		if body.Status == types.BODY_REGISTERED {
			body.Status = types.BODY_VERIFIED
		}
		if err := tx.UpdateBody(body); err != nil {
			return &PersistenceError{Op: "verify body", Err: err}
		}
		verified = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return verified, nil
}

// UpdateBody applies the provided patch fields.
func (s *Service) UpdateBody(id uint, input *types.UpdateBodyRequestBody) (*models.Body, error) {
	var updated *models.Body
	err := s.store.Transact(func(tx store.Gateway) error {
		body, err := tx.GetBody(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Body", ID: id}
			}
			return &PersistenceError{Op: "lookup body", Err: err}
		}
		if input.FullName != nil {
			body.FullName = *input.FullName
		}
		if input.Gender != nil {
			body.Gender = *input.Gender
		}
		if input.CauseOfDeath != nil {
			body.CauseOfDeath = *input.CauseOfDeath
		}
		if input.NextOfKinName != nil {
			body.NextOfKinName = input.NextOfKinName
		}
		if input.NextOfKinPhone != nil {
			body.NextOfKinPhone = input.NextOfKinPhone
		}
		if input.Notes != nil {
			body.Notes = *input.Notes
		}
		if err := tx.UpdateBody(body); err != nil {
			return &PersistenceError{Op: "update body", Err: err}
		}
		updated = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBody refuses while an active allocation exists; the allocation must
// be released or the exit processed first.
func (s *Service) DeleteBody(id uint) error {
	return s.store.Transact(func(tx store.Gateway) error {
		if _, err := tx.GetBody(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Body", ID: id}
			}
			return &PersistenceError{Op: "lookup body", Err: err}
		}
		active, err := tx.ActiveAllocationsForBody(id)
		if err != nil {
			return &PersistenceError{Op: "list active allocations", Err: err}
		}
		if len(active) > 0 {
			return &ConflictError{Reason: "body has an active storage allocation"}
		}
		if err := tx.DeleteBody(id); err != nil {
			return &PersistenceError{Op: "delete body", Err: err}
		}
		return nil
	})
}

func (s *Service) CreateStorageUnit(input *types.CreateStorageUnitRequestBody) (*models.StorageUnit, error) {
	unit := &models.StorageUnit{
		Code:        input.Code,
		Type:        input.Type,
		Capacity:    input.Capacity,
		Temperature: input.Temperature,
		Status:      types.UNIT_OPERATIONAL,
	}
	if err := s.store.CreateStorageUnit(unit); err != nil {
		return nil, &PersistenceError{Op: "create storage unit", Err: err}
	}
	InvalidateReportCaches()
	return unit, nil
}

func (s *Service) ListStorageUnits() ([]models.StorageUnit, error) {
	units, err := s.store.ListStorageUnits()
	if err != nil {
		return nil, &PersistenceError{Op: "list storage units", Err: err}
	}
	return units, nil
}

// SetUnitStatus moves a unit between operational/maintenance/offline. A
// unit with active allocations cannot go offline.
func (s *Service) SetUnitStatus(id uint, status types.UnitStatus) (*models.StorageUnit, error) {
	var updated *models.StorageUnit
	err := s.store.Transact(func(tx store.Gateway) error {
		unit, err := tx.GetStorageUnit(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Storage unit", ID: id}
			}
			return &PersistenceError{Op: "lookup storage unit", Err: err}
		}
		if status == types.UNIT_OFFLINE {
			occupied, err := activeCountForUnit(tx, id)
			if err != nil {
				return &PersistenceError{Op: "count active allocations", Err: err}
			}
			if occupied > 0 {
				return &ConflictError{Reason: "storage unit has active allocations"}
			}
		}
		unit.Status = status
		if err := tx.UpdateStorageUnit(unit); err != nil {
			return &PersistenceError{Op: "set unit status", Err: err}
		}
		updated = unit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordMovement logs a manual transfer of a body between locations.
func (s *Service) RecordMovement(input *types.CreateMovementRequestBody, movedBy string) (*models.Movement, error) {
	movement := &models.Movement{
		BodyID:       input.BodyID,
		FromLocation: input.FromLocation,
		ToLocation:   input.ToLocation,
		MovedBy:      movedBy,
		Reason:       input.Reason,
		MovedAt:      time.Now(),
	}
	err := s.store.Transact(func(tx store.Gateway) error {
		if _, err := tx.GetBody(input.BodyID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Body", ID: input.BodyID}
			}
			return &PersistenceError{Op: "lookup body", Err: err}
		}
		if err := tx.CreateMovement(movement); err != nil {
			return &PersistenceError{Op: "record movement", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *Service) ListMovements() ([]models.Movement, error) {
	movements, err := s.store.ListMovements()
	if err != nil {
		return nil, &PersistenceError{Op: "list movements", Err: err}
	}
	return movements, nil
}

// AttachDocument stores the metadata row for an uploaded body document. The
// object itself lives in S3 under key.
func (s *Service) AttachDocument(bodyID uint, name, contentType, key, uploadedBy string) (*models.BodyDocument, error) {
	doc := &models.BodyDocument{
		BodyID:      bodyID,
		Name:        name,
		ContentType: contentType,
		ObjectKey:   key,
		UploadedBy:  uploadedBy,
	}
	err := s.store.Transact(func(tx store.Gateway) error {
		if _, err := tx.GetBody(bodyID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Body", ID: bodyID}
			}
			return &PersistenceError{Op: "lookup body", Err: err}
		}
		if err := tx.CreateDocument(doc); err != nil {
			return &PersistenceError{Op: "attach document", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) ListDocuments(bodyID uint) ([]models.BodyDocument, error) {
	docs, err := s.store.ListDocuments(bodyID)
	if err != nil {
		return nil, &PersistenceError{Op: "list documents", Err: err}
	}
	return docs, nil
}
