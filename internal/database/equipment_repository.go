package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymstream/models"
)

var ErrEquipmentNotFound = errors.New("equipment not found")

const equipmentColumns = `id, name, description, type, status, purchase_price, purchase_date,
	last_maintenance_date, next_maintenance_date, location, serial_number, warranty_expiry, created_at, updated_at`

// EquipmentRepository persists gym equipment records.
type EquipmentRepository struct {
	db *sql.DB
}

// NewEquipmentRepository creates an equipment repository on the given connection.
func NewEquipmentRepository(db *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// Create inserts a new equipment record.
func (r *EquipmentRepository) Create(e *models.Equipment) error {
	if e.Status == "" {
		e.Status = models.EquipmentAvailable
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	res, err := r.db.Exec(`INSERT INTO equipment (name, description, type, status, purchase_price, purchase_date,
		last_maintenance_date, next_maintenance_date, location, serial_number, warranty_expiry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Description, e.Type, e.Status, e.PurchasePrice, e.PurchaseDate,
		nullTime(e.LastMaintenanceDate), nullTime(e.NextMaintenanceDate), e.Location, e.SerialNumber,
		nullTime(e.WarrantyExpiry), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}
	e.ID, err = res.LastInsertId()
	return err
}

// GetByID returns the equipment with the given ID.
func (r *EquipmentRepository) GetByID(id int64) (models.Equipment, error) {
	row := r.db.QueryRow("SELECT "+equipmentColumns+" FROM equipment WHERE id = ?", id)
	return scanEquipment(row)
}

// List returns all equipment.
func (r *EquipmentRepository) List() ([]models.Equipment, error) {
	return r.query("SELECT " + equipmentColumns + " FROM equipment ORDER BY name, id")
}

// ListByType returns equipment of the given type.
func (r *EquipmentRepository) ListByType(t models.EquipmentType) ([]models.Equipment, error) {
	return r.query("SELECT "+equipmentColumns+" FROM equipment WHERE type = ? ORDER BY name, id", t)
}

// ListByStatus returns equipment in the given status.
func (r *EquipmentRepository) ListByStatus(s models.EquipmentStatus) ([]models.Equipment, error) {
	return r.query("SELECT "+equipmentColumns+" FROM equipment WHERE status = ? ORDER BY name, id", s)
}

// ListByLocation returns equipment at the given location.
func (r *EquipmentRepository) ListByLocation(location string) ([]models.Equipment, error) {
	return r.query("SELECT "+equipmentColumns+" FROM equipment WHERE location = ? ORDER BY name, id", location)
}

// ListNeedingMaintenance returns equipment whose next maintenance is due or
// that is already out of service.
func (r *EquipmentRepository) ListNeedingMaintenance() ([]models.Equipment, error) {
	return r.query("SELECT "+equipmentColumns+` FROM equipment
		WHERE (next_maintenance_date IS NOT NULL AND next_maintenance_date <= ?) OR status IN (?, ?)
		ORDER BY next_maintenance_date, id`,
		time.Now().UTC(), models.EquipmentMaintenance, models.EquipmentOutOfOrder)
}

// ListWarrantyExpiring returns equipment whose warranty expires before the given date.
func (r *EquipmentRepository) ListWarrantyExpiring(before time.Time) ([]models.Equipment, error) {
	return r.query("SELECT "+equipmentColumns+` FROM equipment
		WHERE warranty_expiry IS NOT NULL AND warranty_expiry <= ? ORDER BY warranty_expiry, id`, before)
}

// ListPurchasedBetween returns equipment purchased in the given window.
func (r *EquipmentRepository) ListPurchasedBetween(start, end time.Time) ([]models.Equipment, error) {
	return r.query("SELECT "+equipmentColumns+" FROM equipment WHERE purchase_date BETWEEN ? AND ? ORDER BY purchase_date, id", start, end)
}

// Search matches the term against name, description and serial number.
func (r *EquipmentRepository) Search(term string) ([]models.Equipment, error) {
	pattern := "%" + term + "%"
	return r.query("SELECT "+equipmentColumns+` FROM equipment
		WHERE name LIKE ? OR description LIKE ? OR serial_number LIKE ? ORDER BY name, id`,
		pattern, pattern, pattern)
}

// CountByStatus returns the number of equipment records in the given status.
func (r *EquipmentRepository) CountByStatus(s models.EquipmentStatus) (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM equipment WHERE status = ?", s).Scan(&n); err != nil {
		return 0, fmt.Errorf("count equipment: %w", err)
	}
	return n, nil
}

// Update persists changes to an equipment record.
func (r *EquipmentRepository) Update(e *models.Equipment) error {
	e.UpdatedAt = time.Now().UTC()
	res, err := r.db.Exec(`UPDATE equipment SET name = ?, description = ?, type = ?, status = ?, purchase_price = ?,
		purchase_date = ?, last_maintenance_date = ?, next_maintenance_date = ?, location = ?, serial_number = ?,
		warranty_expiry = ?, updated_at = ? WHERE id = ?`,
		e.Name, e.Description, e.Type, e.Status, e.PurchasePrice, e.PurchaseDate,
		nullTime(e.LastMaintenanceDate), nullTime(e.NextMaintenanceDate), e.Location, e.SerialNumber,
		nullTime(e.WarrantyExpiry), e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return requireRow(res, ErrEquipmentNotFound)
}

// UpdateStatus changes the equipment status.
func (r *EquipmentRepository) UpdateStatus(id int64, status models.EquipmentStatus) (models.Equipment, error) {
	res, err := r.db.Exec("UPDATE equipment SET status = ?, updated_at = ? WHERE id = ?", status, time.Now().UTC(), id)
	if err != nil {
		return models.Equipment{}, fmt.Errorf("update equipment status: %w", err)
	}
	if err := requireRow(res, ErrEquipmentNotFound); err != nil {
		return models.Equipment{}, err
	}
	return r.GetByID(id)
}

// ScheduleMaintenance sets the next maintenance date.
func (r *EquipmentRepository) ScheduleMaintenance(id int64, next time.Time) (models.Equipment, error) {
	res, err := r.db.Exec("UPDATE equipment SET next_maintenance_date = ?, updated_at = ? WHERE id = ?",
		next, time.Now().UTC(), id)
	if err != nil {
		return models.Equipment{}, fmt.Errorf("schedule maintenance: %w", err)
	}
	if err := requireRow(res, ErrEquipmentNotFound); err != nil {
		return models.Equipment{}, err
	}
	return r.GetByID(id)
}

// CompleteMaintenance records maintenance as done and returns the equipment
// to service.
func (r *EquipmentRepository) CompleteMaintenance(id int64) (models.Equipment, error) {
	now := time.Now().UTC()
	res, err := r.db.Exec(`UPDATE equipment SET last_maintenance_date = ?, next_maintenance_date = NULL,
		status = ?, updated_at = ? WHERE id = ?`, now, models.EquipmentAvailable, now, id)
	if err != nil {
		return models.Equipment{}, fmt.Errorf("complete maintenance: %w", err)
	}
	if err := requireRow(res, ErrEquipmentNotFound); err != nil {
		return models.Equipment{}, err
	}
	return r.GetByID(id)
}

// SetWarrantyExpiry updates the warranty expiry date.
func (r *EquipmentRepository) SetWarrantyExpiry(id int64, expiry time.Time) (models.Equipment, error) {
	res, err := r.db.Exec("UPDATE equipment SET warranty_expiry = ?, updated_at = ? WHERE id = ?",
		expiry, time.Now().UTC(), id)
	if err != nil {
		return models.Equipment{}, fmt.Errorf("set warranty expiry: %w", err)
	}
	if err := requireRow(res, ErrEquipmentNotFound); err != nil {
		return models.Equipment{}, err
	}
	return r.GetByID(id)
}

// Delete removes an equipment record.
func (r *EquipmentRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM equipment WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return requireRow(res, ErrEquipmentNotFound)
}

func (r *EquipmentRepository) query(query string, args ...any) ([]models.Equipment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	defer rows.Close()

	items := []models.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func scanEquipment(row rowScanner) (models.Equipment, error) {
	var e models.Equipment
	var last, next, warranty sql.NullTime
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Type, &e.Status, &e.PurchasePrice, &e.PurchaseDate,
		&last, &next, &e.Location, &e.SerialNumber, &warranty, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Equipment{}, ErrEquipmentNotFound
	}
	if err != nil {
		return models.Equipment{}, fmt.Errorf("scan equipment: %w", err)
	}
	e.LastMaintenanceDate = timePtr(last)
	e.NextMaintenanceDate = timePtr(next)
	e.WarrantyExpiry = timePtr(warranty)
	return e, nil
}
