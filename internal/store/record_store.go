package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"health-records-app/internal/models"
)

// RecordInput carries the caller-supplied fields of a new patient record.
// The required fields are declared first; validation reports the first
// failing field in declaration order.
type RecordInput struct {
	Name        string `validate:"required"`
	Age         string `validate:"required"`
	Contact     string `validate:"required"`
	LastVisit   string `validate:"required,datetime=2006-01-02"`
	Gender      string
	Address     string
	Conditions  string
	Medications string
	DoctorName  string
	Notes       string
}

// RecordSummary is one row of a listing.
type RecordSummary struct {
	ID   uint
	Name string
}

// RecordStore owns the patient records table. Every public method holds
// the store's exclusivity gate for the full operation; no caller may touch
// the backing database directly.
type RecordStore struct {
	mu       sync.Mutex
	db       *gorm.DB
	validate *validator.Validate
	logger   *slog.Logger
}

// OpenRecordStore ensures the backing directory and schema exist and
// returns a ready store. Safe to call on every process start.
func OpenRecordStore(dbPath string, logger *slog.Logger) (*RecordStore, error) {
	s := &RecordStore{
		validate: validator.New(),
		logger:   logger,
	}

	// Initialization runs under the same gate as every other operation.
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.Error("record store location not writable", "path", dbPath, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	db, err := models.InitDB(models.DatabaseConfig{DSN: dbPath})
	if err != nil {
		logger.Error("record store failed to open", "path", dbPath, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.db = db
	return s, nil
}

// Add validates the input, persists a new row and returns its assigned id.
// Ids are monotonically increasing and never reused.
func (s *RecordStore) Add(input RecordInput) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return 0, &ValidationError{Field: schemaField(verrs[0].Field())}
		}
		return 0, &ValidationError{Field: "input"}
	}

	record := models.PatientRecord{
		Name:        input.Name,
		Age:         input.Age,
		Gender:      input.Gender,
		Contact:     input.Contact,
		Address:     input.Address,
		Conditions:  input.Conditions,
		Medications: input.Medications,
		DoctorName:  input.DoctorName,
		LastVisit:   input.LastVisit,
		Notes:       input.Notes,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return 0, s.storageError("add", err)
	}
	return record.ID, nil
}

// List returns the id and name of every record, sorted by name ascending.
// An empty store yields an empty slice, not an error.
func (s *RecordStore) List() ([]RecordSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := []RecordSummary{}
	err := s.db.Model(&models.PatientRecord{}).
		Select("id", "name").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, s.storageError("list", err)
	}
	return rows, nil
}

// Get fetches a single record by id. The caller receives a copy; the store
// keeps no live reference. ErrNotFound is a normal outcome.
func (s *RecordStore) Get(id uint) (*models.PatientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var record models.PatientRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.storageError("get", err)
	}
	return &record, nil
}

// Delete removes the record with the given id. Deleting an id that does
// not exist is a no-op.
func (s *RecordStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Delete(&models.PatientRecord{}, id).Error; err != nil {
		return s.storageError("delete", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *RecordStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *RecordStore) storageError(op string, err error) error {
	s.logger.Error("record store failure", "op", op, "error", err)
	return &StorageError{Op: op, Err: err}
}

// schemaField translates a struct field name into the persisted column name.
func schemaField(field string) string {
	switch field {
	case "Name":
		return "name"
	case "Age":
		return "age"
	case "Contact":
		return "contact"
	case "LastVisit":
		return "last_visit"
	}
	return field
}
