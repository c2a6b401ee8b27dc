package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/user-directory/internal/events"
	"github.com/sbilibin2017/user-directory/internal/models"
	"github.com/sbilibin2017/user-directory/internal/repositories"
	"github.com/sbilibin2017/user-directory/internal/services"
)

type serviceMocks struct {
	reader *services.MockUserReader
	writer *services.MockUserWriter
	cache  *services.MockViewCache
	events *services.MockEventPublisher
}

func newServiceWithMocks(t *testing.T) (*services.UserService, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		reader: services.NewMockUserReader(ctrl),
		writer: services.NewMockUserWriter(ctrl),
		cache:  services.NewMockViewCache(ctrl),
		events: services.NewMockEventPublisher(ctrl),
	}

	return services.NewUserService(m.reader, m.writer, m.cache, m.events), m
}

func storedUser() *models.UserDB {
	return &models.UserDB{
		UserID:         1,
		FirstName:      "Ann",
		LastName:       "Lee",
		Email:          "a@x.com",
		Password:       "p",
		SubscriptionID: 1,
		CreatedAt:      time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC),
	}
}

func validPayload() models.UserPayload {
	return models.UserPayload{FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Password: "p"}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.writer.EXPECT().Insert(gomock.Any(), validPayload()).Return(storedUser(), nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event events.UserEvent) error {
				assert.Equal(t, events.EventUserCreated, event.Type)
				assert.Equal(t, int64(1), event.UserID)
				assert.Equal(t, "a@x.com", event.Email)
				return nil
			})

		view, err := svc.Create(ctx, validPayload())
		assert.NoError(t, err)
		assert.Equal(t, int64(1), view.UserID)
		assert.Equal(t, "a@x.com", view.Email)
		assert.False(t, view.Deleted)
	})

	t.Run("cache and event failures do not fail the command", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.writer.EXPECT().Insert(gomock.Any(), validPayload()).Return(storedUser(), nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		view, err := svc.Create(ctx, validPayload())
		assert.NoError(t, err)
		assert.NotNil(t, view)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.writer.EXPECT().Insert(gomock.Any(), validPayload()).Return(nil, repositories.ErrDuplicateEmail)

		view, err := svc.Create(ctx, validPayload())
		assert.ErrorIs(t, err, services.ErrEmailAlreadyRegistered)
		assert.Nil(t, view)
	})

	t.Run("missing field", func(t *testing.T) {
		svc, _ := newServiceWithMocks(t)

		payload := validPayload()
		payload.Email = ""

		view, err := svc.Create(ctx, payload)
		assert.ErrorIs(t, err, services.ErrInvalidPayload)
		assert.Nil(t, view)
	})

	t.Run("writer error propagates", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.writer.EXPECT().Insert(gomock.Any(), validPayload()).Return(nil, errors.New("disk full"))

		view, err := svc.Create(ctx, validPayload())
		assert.EqualError(t, err, "disk full")
		assert.Nil(t, view)
	})
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the store", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		cached := storedUser().View()
		m.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(&cached, nil)

		view, err := svc.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, &cached, view)
	})

	t.Run("cache miss reads the store and backfills", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, nil)
		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(storedUser(), nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		view, err := svc.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), view.UserID)
	})

	t.Run("cache error falls through to the store", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, errors.New("redis down"))
		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(storedUser(), nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		view, err := svc.Get(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, view)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.cache.EXPECT().Get(gomock.Any(), int64(42)).Return(nil, nil)
		m.reader.EXPECT().GetByID(gomock.Any(), int64(42)).Return(nil, nil)

		view, err := svc.Get(ctx, 42)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, view)
	})

	t.Run("soft-deleted record is a tombstone, not a miss", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		deleted := storedUser()
		deleted.Deleted = true

		m.cache.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, nil)
		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(deleted, nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		view, err := svc.Get(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, view.Deleted)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("maps records to views", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		second := *storedUser()
		second.UserID = 2
		second.Email = "b@x.com"
		second.Deleted = true

		m.reader.EXPECT().List(gomock.Any(), true).Return([]models.UserDB{*storedUser(), second}, nil)

		views, err := svc.List(ctx, true)
		assert.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Equal(t, int64(1), views[0].UserID)
		assert.True(t, views[1].Deleted)
	})

	t.Run("empty store", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.reader.EXPECT().List(gomock.Any(), false).Return(nil, nil)

		views, err := svc.List(ctx, false)
		assert.NoError(t, err)
		assert.Empty(t, views)
		assert.NotNil(t, views)
	})

	t.Run("reader error propagates", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.reader.EXPECT().List(gomock.Any(), false).Return(nil, errors.New("db error"))

		views, err := svc.List(ctx, false)
		assert.EqualError(t, err, "db error")
		assert.Nil(t, views)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		deleted := storedUser()
		deleted.Deleted = true

		m.writer.EXPECT().MarkDeleted(gomock.Any(), int64(1)).Return(deleted, nil)
		m.cache.EXPECT().Invalidate(gomock.Any(), int64(1)).Return(nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event events.UserEvent) error {
				assert.Equal(t, events.EventUserDeleted, event.Type)
				return nil
			})

		assert.NoError(t, svc.Delete(ctx, 1))
	})

	t.Run("repeated delete still succeeds", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		deleted := storedUser()
		deleted.Deleted = true

		m.writer.EXPECT().MarkDeleted(gomock.Any(), int64(1)).Return(deleted, nil).Times(2)
		m.cache.EXPECT().Invalidate(gomock.Any(), int64(1)).Return(nil).Times(2)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		assert.NoError(t, svc.Delete(ctx, 1))
		assert.NoError(t, svc.Delete(ctx, 1))
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.writer.EXPECT().MarkDeleted(gomock.Any(), int64(42)).Return(nil, nil)

		assert.ErrorIs(t, svc.Delete(ctx, 42), services.ErrUserNotFound)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("missing field", func(t *testing.T) {
		svc, _ := newServiceWithMocks(t)

		payload := validPayload()
		payload.FirstName = ""

		view, err := svc.Update(ctx, 1, payload)
		assert.ErrorIs(t, err, services.ErrInvalidPayload)
		assert.Nil(t, view)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.reader.EXPECT().GetByID(gomock.Any(), int64(42)).Return(nil, nil)

		view, err := svc.Update(ctx, 42, validPayload())
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, view)
	})

	t.Run("unchanged email commits without a holder check", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		payload := validPayload()
		payload.LastName = "Ray"

		updated := storedUser()
		updated.LastName = "Ray"

		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(storedUser(), nil)
		m.writer.EXPECT().Update(gomock.Any(), int64(1), payload).Return(updated, nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		view, err := svc.Update(ctx, 1, payload)
		assert.NoError(t, err)
		assert.Equal(t, "Ray", view.LastName)
	})

	t.Run("new free email commits", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		payload := validPayload()
		payload.Email = "b@x.com"

		updated := storedUser()
		updated.Email = "b@x.com"

		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(storedUser(), nil)
		m.reader.EXPECT().GetByEmail(gomock.Any(), "b@x.com").Return(nil, nil)
		m.writer.EXPECT().Update(gomock.Any(), int64(1), payload).Return(updated, nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event events.UserEvent) error {
				assert.Equal(t, events.EventUserUpdated, event.Type)
				assert.Equal(t, "b@x.com", event.Email)
				return nil
			})

		view, err := svc.Update(ctx, 1, payload)
		assert.NoError(t, err)
		assert.Equal(t, "b@x.com", view.Email)
	})

	t.Run("email held by another record conflicts without writing", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		payload := validPayload()
		payload.Email = "b@x.com"

		holder := storedUser()
		holder.UserID = 2
		holder.Email = "b@x.com"

		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(storedUser(), nil)
		m.reader.EXPECT().GetByEmail(gomock.Any(), "b@x.com").Return(holder, nil)

		view, err := svc.Update(ctx, 1, payload)
		assert.ErrorIs(t, err, services.ErrEmailAlreadyRegistered)
		assert.Nil(t, view)
	})

	t.Run("self-collision is a conflict, not a crash", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		payload := validPayload()
		payload.Email = "b@x.com"

		// a stale index row: the record under update already shows up as
		// the holder of the new address
		holder := storedUser()
		holder.Email = "b@x.com"

		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(storedUser(), nil)
		m.reader.EXPECT().GetByEmail(gomock.Any(), "b@x.com").Return(holder, nil)

		view, err := svc.Update(ctx, 1, payload)
		assert.ErrorIs(t, err, services.ErrEmailAlreadyRegistered)
		assert.Nil(t, view)
	})

	t.Run("racing writer loses to the constraint", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		payload := validPayload()
		payload.Email = "b@x.com"

		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(storedUser(), nil)
		m.reader.EXPECT().GetByEmail(gomock.Any(), "b@x.com").Return(nil, nil)
		m.writer.EXPECT().Update(gomock.Any(), int64(1), payload).Return(nil, repositories.ErrDuplicateEmail)

		view, err := svc.Update(ctx, 1, payload)
		assert.ErrorIs(t, err, services.ErrEmailAlreadyRegistered)
		assert.Nil(t, view)
	})

	t.Run("reader error propagates", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))

		view, err := svc.Update(ctx, 1, validPayload())
		assert.EqualError(t, err, "db error")
		assert.Nil(t, view)
	})
}
