package repository

import (
	"context"
	"iter"

	"github.com/sefazor/eventrsvp-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// eventRow is one line of the summary query.
type eventRow struct {
	models.Event
	AttendeeCount int64 `gorm:"column:attendee_count"`
	Rsvped        int64 `gorm:"column:rsvped"`
}

func (r eventRow) summary() models.EventSummary {
	return models.EventSummary{
		Event:         r.Event,
		AttendeeCount: r.AttendeeCount,
		RSVPed:        r.Rsvped > 0,
	}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	result := r.db.WithContext(ctx).Create(event)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Delete removes the event together with its attendee set. It returns
// gorm.ErrRecordNotFound if the event does not exist.
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockEvent(tx, id); err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.RSVP{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, id).Error
	})
}

// List streams every event with its attendee count, flagging the ones
// viewerID attends. Each range over the result runs the query again.
// A viewerID of 0 matches no attendee.
func (r *EventRepository) List(ctx context.Context, viewerID uint) iter.Seq2[models.EventSummary, error] {
	return func(yield func(models.EventSummary, error) bool) {
		rows, err := r.summaryQuery(ctx, viewerID).
			Order("events.date, events.time, events.id").
			Rows()
		if err != nil {
			yield(models.EventSummary{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row eventRow
			if err := r.db.ScanRows(rows, &row); err != nil {
				yield(models.EventSummary{}, err)
				return
			}
			if !yield(row.summary(), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.EventSummary{}, err)
		}
	}
}

func (r *EventRepository) GetSummary(ctx context.Context, id, viewerID uint) (*models.EventSummary, error) {
	var row eventRow
	result := r.summaryQuery(ctx, viewerID).Where("events.id = ?", id).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	summary := row.summary()
	return &summary, nil
}

func (r *EventRepository) summaryQuery(ctx context.Context, viewerID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("events").
		Select("events.*, COUNT(rsvps.user_id) AS attendee_count, "+
			"COALESCE(MAX(CASE WHEN rsvps.user_id = ? THEN 1 ELSE 0 END), 0) AS rsvped", viewerID).
		Joins("LEFT JOIN rsvps ON rsvps.event_id = events.id").
		Group("events.id")
}

// lockEvent loads the event row for update inside tx. SQLite ignores the
// locking clause and serializes writers on its own.
func lockEvent(tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}
