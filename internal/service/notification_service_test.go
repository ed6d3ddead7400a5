package service

import (
	"testing"

	"djibtrade/internal/domain"
	"djibtrade/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newNotifFixture seeds the owner (ID 1) plus three other companies.
func newNotifFixture(t *testing.T, push Pusher) (*NotificationService, *fakeNotificationStore, *fakePreferenceStore, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore(
		&models.User{Email: "vendeur@djibtrade.dj", CompanyName: "Ets Omar Import", Role: domain.RoleUser, IsActive: true},
		&models.User{Email: "a@djibtrade.dj", CompanyName: "A", Role: domain.RoleUser, IsActive: true},
		&models.User{Email: "b@djibtrade.dj", CompanyName: "B", Role: domain.RoleUser, IsActive: true},
		&models.User{Email: "c@djibtrade.dj", CompanyName: "C", Role: domain.RoleUser, IsActive: true},
	)
	store := newFakeNotificationStore()
	prefs := newFakePreferenceStore()
	svc := NewNotificationService(store, prefs, users, push)
	return svc, store, prefs, users
}

func listing() *models.Product {
	return &models.Product{ID: 7, OwnerID: 1, Title: "Riz parfumé 25kg"}
}

func TestFanOutRespectsProductUpdatesOptOut(t *testing.T) {
	svc, store, prefs, _ := newNotifFixture(t, nil)
	prefs.set(3, func(p *models.NotificationPreferences) { p.ProductUpdates = false })

	require.NoError(t, svc.FanOutProductCreated(listing()))

	require.Len(t, store.rows, 3, "owner plus the two opted-in users")

	ownerRows := store.byUser(1)
	require.Len(t, ownerRows, 1)
	assert.Equal(t, domain.NotifySuccess, ownerRows[0].NotificationType)
	assert.Equal(t, "Annonce publiée", ownerRows[0].Title)
	assert.Equal(t, "Votre annonce 'Riz parfumé 25kg' a été publiée avec succès.", ownerRows[0].Message)
	require.NotNil(t, ownerRows[0].RelatedProductID)
	assert.Equal(t, uint(7), *ownerRows[0].RelatedProductID)

	assert.Empty(t, store.byUser(3), "opted-out user gets nothing")

	rows := store.byUser(2)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.NotifyInfo, rows[0].NotificationType)
	assert.Equal(t, "Nouvelle annonce disponible", rows[0].Title)
	assert.Equal(t, "Une nouvelle annonce 'Riz parfumé 25kg' a été publiée. Découvrez-la dès maintenant!", rows[0].Message)
	assert.False(t, rows[0].IsRead)
}

func TestFanOutIsIdempotent(t *testing.T) {
	svc, store, _, _ := newNotifFixture(t, nil)

	p := listing()
	require.NoError(t, svc.FanOutProductCreated(p))
	require.NoError(t, svc.FanOutProductCreated(p))

	assert.Len(t, store.rows, 4, "re-delivering the same event must not duplicate rows")
}

func TestFanOutPushesToOptedInUsersOnly(t *testing.T) {
	push := &fakePusher{}
	svc, _, prefs, _ := newNotifFixture(t, push)
	// Push delivery defaults off; user 2 turns it on.
	prefs.set(2, func(p *models.NotificationPreferences) { p.PushNotifications = true })

	require.NoError(t, svc.FanOutProductCreated(listing()))

	assert.Equal(t, []uint{2}, push.pushed)
}

func TestMarkRead(t *testing.T) {
	svc, store, _, _ := newNotifFixture(t, nil)
	require.NoError(t, svc.FanOutProductCreated(listing()))

	mine := store.byUser(2)
	require.Len(t, mine, 1)

	require.NoError(t, svc.MarkRead(mine[0].ID, 2))
	assert.True(t, store.byUser(2)[0].IsRead)

	// Re-marking stays a success.
	assert.NoError(t, svc.MarkRead(mine[0].ID, 2))
}

func TestMarkReadScopedToCaller(t *testing.T) {
	svc, store, _, _ := newNotifFixture(t, nil)
	require.NoError(t, svc.FanOutProductCreated(listing()))

	foreign := store.byUser(2)[0]
	err := svc.MarkRead(foreign.ID, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound, "someone else's notification reads as missing")
	assert.False(t, store.byUser(2)[0].IsRead)
}

func TestMarkReadMissing(t *testing.T) {
	svc, _, _, _ := newNotifFixture(t, nil)
	assert.ErrorIs(t, svc.MarkRead(99, 1), domain.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	svc, store, _, _ := newNotifFixture(t, nil)

	pid := uint(7)
	seed := []models.Notification{
		{UserID: 2, Title: "n1", NotificationType: domain.NotifyInfo, RelatedProductID: &pid},
		{UserID: 2, Title: "n2", NotificationType: domain.NotifyWarning},
		{UserID: 2, Title: "n3", NotificationType: domain.NotifySuccess},
		{UserID: 2, Title: "n4", NotificationType: domain.NotifyError},
		{UserID: 3, Title: "other", NotificationType: domain.NotifyInfo},
	}
	require.NoError(t, store.CreateBatch(seed))

	count, err := svc.MarkAllRead(2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	for _, n := range store.byUser(2) {
		assert.True(t, n.IsRead)
	}
	assert.False(t, store.byUser(3)[0].IsRead, "other users' rows stay untouched")

	count, err = svc.MarkAllRead(2)
	require.NoError(t, err)
	assert.Zero(t, count, "second pass is a no-op")
}

func TestListMineNewestFirst(t *testing.T) {
	svc, store, _, _ := newNotifFixture(t, nil)

	require.NoError(t, store.CreateBatch([]models.Notification{
		{UserID: 2, Title: "ancienne", NotificationType: domain.NotifyInfo},
	}))
	require.NoError(t, store.CreateBatch([]models.Notification{
		{UserID: 2, Title: "récente", NotificationType: domain.NotifySuccess},
	}))

	list, err := svc.ListMine(2, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "récente", list[0].Title)
}

func TestGetPreferencesCreatesDefaults(t *testing.T) {
	svc, _, prefs, _ := newNotifFixture(t, nil)

	p, err := svc.GetPreferences(2)
	require.NoError(t, err)
	assert.True(t, p.EmailNotifications)
	assert.False(t, p.PushNotifications)
	assert.True(t, p.ProductUpdates)
	assert.False(t, p.MarketingEmails)
	assert.True(t, p.SecurityAlerts)
	assert.Equal(t, 1, prefs.created)

	_, err = svc.GetPreferences(2)
	require.NoError(t, err)
	assert.Equal(t, 1, prefs.created, "the row is created once and then reused")
}

func TestUpdatePreferencesPartialPatch(t *testing.T) {
	svc, _, _, _ := newNotifFixture(t, nil)

	on := true
	p, err := svc.UpdatePreferences(2, PreferencesInput{PushNotifications: &on})
	require.NoError(t, err)
	assert.True(t, p.PushNotifications)
	assert.True(t, p.EmailNotifications, "omitted flags keep their stored value")
	assert.True(t, p.ProductUpdates)

	off := false
	p, err = svc.UpdatePreferences(2, PreferencesInput{ProductUpdates: &off})
	require.NoError(t, err)
	assert.False(t, p.ProductUpdates)
	assert.True(t, p.PushNotifications, "earlier patches persist")
}

func TestHandleUserCreatedSeedsPreferences(t *testing.T) {
	svc, _, prefs, _ := newNotifFixture(t, nil)

	svc.HandleUserCreated(&models.User{ID: 9, Email: "nouveau@djibtrade.dj"})
	assert.Equal(t, 1, prefs.created)
	p, err := svc.GetPreferences(9)
	require.NoError(t, err)
	assert.True(t, p.ProductUpdates)
}
