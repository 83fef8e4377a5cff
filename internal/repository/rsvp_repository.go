package repository

import (
	"context"

	"github.com/sefazor/eventrsvp-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RSVPRepository struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) *RSVPRepository {
	return &RSVPRepository{db: db}
}

// Toggle flips userID's membership in the event's attendee set inside one
// transaction and reports whether the user is attending afterwards. It
// returns gorm.ErrRecordNotFound if the event does not exist.
func (r *RSVPRepository) Toggle(ctx context.Context, eventID, userID uint) (bool, error) {
	var attending bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockEvent(tx, eventID); err != nil {
			return err
		}

		removed := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.RSVP{})
		if removed.Error != nil {
			return removed.Error
		}
		if removed.RowsAffected > 0 {
			attending = false
			return nil
		}

		rsvp := &models.RSVP{EventID: eventID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rsvp).Error; err != nil {
			return err
		}
		attending = true
		return nil
	})
	return attending, err
}

// ListAttendees returns the users in the event's attendee set, oldest RSVP first.
func (r *RSVPRepository) ListAttendees(ctx context.Context, eventID uint) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Joins("JOIN rsvps ON rsvps.user_id = users.id").
		Where("rsvps.event_id = ?", eventID).
		Order("rsvps.created_at, users.id").
		Find(&users).Error
	return users, err
}

// EventIDsForUser returns the ids of every event userID attends.
func (r *RSVPRepository) EventIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.RSVP{}).
		Where("user_id = ?", userID).
		Order("event_id").
		Pluck("event_id", &ids).Error
	return ids, err
}
