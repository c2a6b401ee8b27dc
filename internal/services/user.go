package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sbilibin2017/user-directory/internal/events"
	"github.com/sbilibin2017/user-directory/internal/logger"
	"github.com/sbilibin2017/user-directory/internal/models"
	"github.com/sbilibin2017/user-directory/internal/repositories"
)

// Error variables
var (
	ErrInvalidPayload         = errors.New("invalid user payload")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	List(ctx context.Context, includeDeleted bool) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Insert(ctx context.Context, payload models.UserPayload) (*models.UserDB, error)
	Update(ctx context.Context, userID int64, payload models.UserPayload) (*models.UserDB, error)
	MarkDeleted(ctx context.Context, userID int64) (*models.UserDB, error)
}

// ViewCache defines the read cache for public views. A Get miss is
// (nil, nil).
type ViewCache interface {
	Get(ctx context.Context, userID int64) (*models.UserView, error)
	Set(ctx context.Context, view models.UserView) error
	Invalidate(ctx context.Context, userID int64) error
}

// EventPublisher defines the lifecycle event sink.
type EventPublisher interface {
	Publish(ctx context.Context, event events.UserEvent) error
}

// UserService carries the user record lifecycle rules: creation against
// the email uniqueness constraint, soft delete, and the update
// conflict-resolution branches. It holds no state of its own and is safe
// for concurrent use; the store's atomicity is the only synchronization.
type UserService struct {
	reader   UserReader
	writer   UserWriter
	cache    ViewCache
	events   EventPublisher
	validate *validator.Validate
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, cache ViewCache, events EventPublisher) *UserService {
	return &UserService{
		reader:   reader,
		writer:   writer,
		cache:    cache,
		events:   events,
		validate: validator.New(),
	}
}

// Create registers a new user. Duplicate detection is left to the store's
// unique constraint so a concurrent create can never slip between a check
// and the write.
func (svc *UserService) Create(ctx context.Context, payload models.UserPayload) (*models.UserView, error) {
	if err := svc.validate.Struct(payload); err != nil {
		logger.Log.Errorw("invalid create payload", "err", err)
		return nil, ErrInvalidPayload
	}

	user, err := svc.writer.Insert(ctx, payload)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		logger.Log.Errorw("email already registered", "email", payload.Email)
		return nil, ErrEmailAlreadyRegistered
	}
	if err != nil {
		logger.Log.Errorw("failed to insert user", "err", err)
		return nil, err
	}

	view := user.View()
	svc.cacheSet(ctx, view)
	svc.publish(ctx, events.EventUserCreated, user)

	return &view, nil
}

// Get returns the public view of a record. A soft-deleted record is still
// returned, with its Deleted flag set, so callers can tell "exists but
// deleted" apart from "never existed".
func (svc *UserService) Get(ctx context.Context, userID int64) (*models.UserView, error) {
	if view, err := svc.cache.Get(ctx, userID); err != nil {
		logger.Log.Errorw("user view cache read failed", "user_id", userID, "err", err)
	} else if view != nil {
		return view, nil
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	view := user.View()
	svc.cacheSet(ctx, view)

	return &view, nil
}

// List returns public views in insertion order, active records only
// unless includeDeleted is set.
func (svc *UserService) List(ctx context.Context, includeDeleted bool) ([]models.UserView, error) {
	users, err := svc.reader.List(ctx, includeDeleted)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}

	return views, nil
}

// Delete soft-deletes a record. Deleting an already-deleted record
// succeeds again with no change.
func (svc *UserService) Delete(ctx context.Context, userID int64) error {
	user, err := svc.writer.MarkDeleted(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to mark user deleted", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	svc.cacheInvalidate(ctx, userID)
	svc.publish(ctx, events.EventUserDeleted, user)

	return nil
}

// Update rewrites the mutable fields of a record. Exactly one of four
// outcomes is produced: malformed payload, unknown id, email conflict, or
// a committed full update. There is no branch that leaves the outcome
// unset, and no partial write.
func (svc *UserService) Update(ctx context.Context, userID int64, payload models.UserPayload) (*models.UserView, error) {
	if err := svc.validate.Struct(payload); err != nil {
		logger.Log.Errorw("invalid update payload", "user_id", userID, "err", err)
		return nil, ErrInvalidPayload
	}

	current, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if current == nil {
		return nil, ErrUserNotFound
	}

	// Keeping the same email never conflicts, even though the address is
	// "already registered" to this record.
	if payload.Email != current.Email {
		holder, err := svc.reader.GetByEmail(ctx, payload.Email)
		if err != nil {
			logger.Log.Errorw("failed to check email holder", "email", payload.Email, "err", err)
			return nil, err
		}
		switch {
		case holder == nil:
			// address is free, commit below
		case holder.UserID == current.UserID:
			// unreachable given the equality check above; kept so a stale
			// index row reports a conflict instead of crashing
			return nil, ErrEmailAlreadyRegistered
		default:
			logger.Log.Errorw("email held by another user",
				"user_id", userID,
				"email", payload.Email,
				"holder_id", holder.UserID,
			)
			return nil, ErrEmailAlreadyRegistered
		}
	}

	updated, err := svc.writer.Update(ctx, userID, payload)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		// a concurrent writer took the address between the check and the
		// commit; the constraint kept the record untouched
		logger.Log.Errorw("email already registered", "user_id", userID, "email", payload.Email)
		return nil, ErrEmailAlreadyRegistered
	}
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "err", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}

	view := updated.View()
	svc.cacheSet(ctx, view)
	svc.publish(ctx, events.EventUserUpdated, updated)

	return &view, nil
}

// cacheSet stores a view, logging instead of failing the command.
func (svc *UserService) cacheSet(ctx context.Context, view models.UserView) {
	if err := svc.cache.Set(ctx, view); err != nil {
		logger.Log.Errorw("failed to cache user view", "user_id", view.UserID, "err", err)
	}
}

// cacheInvalidate drops a view, logging instead of failing the command.
func (svc *UserService) cacheInvalidate(ctx context.Context, userID int64) {
	if err := svc.cache.Invalidate(ctx, userID); err != nil {
		logger.Log.Errorw("failed to invalidate user view", "user_id", userID, "err", err)
	}
}

// publish emits a lifecycle event, logging instead of failing the command.
func (svc *UserService) publish(ctx context.Context, eventType string, user *models.UserDB) {
	event := events.UserEvent{
		Type:       eventType,
		UserID:     user.UserID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}
	if err := svc.events.Publish(ctx, event); err != nil {
		logger.Log.Errorw("failed to publish user event", "type", eventType, "user_id", user.UserID, "err", err)
	}
}
