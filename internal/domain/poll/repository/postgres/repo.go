package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pressroom/pressroom/internal/domain/poll/deps"
	"github.com/pressroom/pressroom/internal/domain/poll/entities"
	domainerrors "github.com/pressroom/pressroom/internal/domain/poll/errors"
)

type pollRepository struct {
	db *gorm.DB
}

// NewPollRepository creates a new poll repository
func NewPollRepository(db *gorm.DB) deps.PollRepository {
	return &pollRepository{
		db: db,
	}
}

// Create persists a poll together with its options, atomically. gorm
// inserts the associated options in the same transaction as the poll.
func (r *pollRepository) Create(ctx context.Context, poll *entities.Poll) error {
	result := r.db.WithContext(ctx).Create(poll)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// GetByID retrieves a poll with its options
func (r *pollRepository) GetByID(ctx context.Context, id uint) (*entities.Poll, error) {
	var poll entities.Poll
	result := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id ASC")
		}).
		First(&poll, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPollNotFound
		}
		return nil, domainerrors.ErrDatabaseOperation
	}

	return &poll, nil
}

// Update saves changed fields of an existing poll
func (r *pollRepository) Update(ctx context.Context, poll *entities.Poll) error {
	result := r.db.WithContext(ctx).
		Omit("Options").
		Save(poll)

	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Delete removes a poll, its options and its votes, atomically
func (r *pollRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", id).Delete(&entities.PollVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", id).Delete(&entities.PollOption{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Poll{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrPollNotFound
		}
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// ListActive returns polls whose voting window contains now, with options
func (r *pollRepository) ListActive(ctx context.Context, now time.Time) ([]entities.Poll, error) {
	var polls []entities.Poll
	result := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id ASC")
		}).
		Where("active = ?", true).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Order("created_at DESC").
		Find(&polls)

	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}

	return polls, nil
}

// ListAll returns every poll regardless of window, with options
func (r *pollRepository) ListAll(ctx context.Context) ([]entities.Poll, error) {
	var polls []entities.Poll
	result := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id ASC")
		}).
		Order("created_at DESC").
		Find(&polls)

	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}

	return polls, nil
}

// voteRepository implements deps.VoteRepository
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) deps.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Upsert records the user's vote, replacing any prior vote on the same
// poll. ON CONFLICT on the (poll_id, user_id) unique index makes the
// replace race-safe: the store serializes concurrent writers.
func (r *voteRepository) Upsert(ctx context.Context, vote *entities.PollVote) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "poll_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"option_id", "updated_at"}),
		}).
		Create(vote)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) ||
			errors.Is(result.Error, gorm.ErrCheckConstraintViolated) {
			return domainerrors.ErrVoteRejected
		}
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Delete removes the user's vote if present; absent is not an error
func (r *voteRepository) Delete(ctx context.Context, pollID uint, userID string) error {
	result := r.db.WithContext(ctx).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		Delete(&entities.PollVote{})

	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// CountByOption returns vote counts per option id for a poll
func (r *voteRepository) CountByOption(ctx context.Context, pollID uint) (map[uint]int64, error) {
	var rows []struct {
		OptionID uint
		Count    int64
	}

	result := r.db.WithContext(ctx).
		Model(&entities.PollVote{}).
		Select("option_id, COUNT(*) as count").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows)

	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.OptionID] = row.Count
	}

	return counts, nil
}

// UserChoice returns the option the user voted for, 0 when none
func (r *voteRepository) UserChoice(ctx context.Context, pollID uint, userID string) (uint, error) {
	var vote entities.PollVote
	result := r.db.WithContext(ctx).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		First(&vote)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, domainerrors.ErrDatabaseOperation
	}

	return vote.OptionID, nil
}
