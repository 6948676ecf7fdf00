package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"lightbnb_backend/internal/model"
	"lightbnb_backend/internal/search"
)

const (
	opSearchProperties = "search properties"
	opAddProperty      = "add property"
)

// PropertyRecord is a property row with its average review rating.
// AverageRating is nil for properties without reviews.
type PropertyRecord struct {
	model.Property
	AverageRating *float64 `json:"average_rating" gorm:"column:average_rating"`
}

// PropertyRepository reads and writes properties.
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository returns a repository backed by db.
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Search runs the filtered listing query for criteria and returns a cursor
// over the matching rows. The cursor holds a pooled connection until it is
// exhausted or closed.
func (r *PropertyRepository) Search(ctx context.Context, criteria search.SearchCriteria) (*PropertyCursor, error) {
	plan := search.Build(criteria)

	db := r.db.WithContext(ctx)
	rows, err := db.Raw(plan.SQL(), plan.Params()...).Rows()
	if err != nil {
		return nil, storeError(opSearchProperties, err)
	}

	return &PropertyCursor{db: db, rows: rows}, nil
}

// ListProperties collects every row of a search. Nothing is returned when
// the store fails part way through.
func (r *PropertyRepository) ListProperties(ctx context.Context, criteria search.SearchCriteria) ([]PropertyRecord, error) {
	cursor, err := r.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	records := []PropertyRecord{}
	for cursor.Next() {
		records = append(records, cursor.Record())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// AddProperty inserts p and fills in its generated columns.
func (r *PropertyRepository) AddProperty(ctx context.Context, p *model.Property) (*model.Property, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, storeError(opAddProperty, err)
	}
	return p, nil
}

// GetPropertyWithID looks a property up by id.
func (r *PropertyRepository) GetPropertyWithID(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property
	if err := r.db.WithContext(ctx).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError("get property by id", err)
	}
	return &property, nil
}

// PropertyCursor iterates search results once. It is not restartable.
type PropertyCursor struct {
	db     *gorm.DB
	rows   *sql.Rows
	record PropertyRecord
	err    error
}

// Next advances to the next row. It returns false when the rows are
// exhausted or a read fails; the cursor is closed in both cases.
func (c *PropertyCursor) Next() bool {
	if c.rows == nil {
		return false
	}

	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			c.err = storeError(opSearchProperties, err)
		}
		c.Close()
		return false
	}

	var record PropertyRecord
	if err := c.db.ScanRows(c.rows, &record); err != nil {
		c.err = storeError(opSearchProperties, err)
		c.Close()
		return false
	}
	c.record = record

	return true
}

// Record returns the row read by the last successful Next.
func (c *PropertyCursor) Record() PropertyRecord {
	return c.record
}

// Err returns the first error met while iterating.
func (c *PropertyCursor) Err() error {
	return c.err
}

// Close releases the connection. It is safe to call more than once.
func (c *PropertyCursor) Close() error {
	if c.rows == nil {
		return nil
	}

	err := c.rows.Close()
	c.rows = nil
	if err != nil && c.err == nil {
		c.err = storeError(opSearchProperties, err)
	}

	return err
}
