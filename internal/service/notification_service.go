package service

import (
	"fmt"
	"log"

	"djibtrade/internal/domain"
	"djibtrade/internal/models"
)

// NotificationService broadcasts marketplace events into per-user
// notification rows and owns their read state and per-user preferences.
type NotificationService struct {
	store NotificationStore
	prefs PreferenceStore
	users UserStore
	push  Pusher // optional websocket delivery
}

func NewNotificationService(store NotificationStore, prefs PreferenceStore, users UserStore, push Pusher) *NotificationService {
	return &NotificationService{store: store, prefs: prefs, users: users, push: push}
}

// HandleProductCreated is the product.created subscriber. Fan-out failures
// must not fail the creating request, so they are logged here.
func (s *NotificationService) HandleProductCreated(p *models.Product) {
	if err := s.FanOutProductCreated(p); err != nil {
		log.Printf("[notify] fan-out for product %d failed: %v", p.ID, err)
	}
}

// HandleUserCreated seeds the default preference row for a new account.
func (s *NotificationService) HandleUserCreated(u *models.User) {
	if _, err := s.prefs.GetOrCreate(u.ID); err != nil {
		log.Printf("[notify] seed preferences for user %d failed: %v", u.ID, err)
	}
}

// FanOutProductCreated creates the owner's confirmation plus one info
// notification per opted-in user. The whole recipient list is persisted as a
// single batch, so a creation event yields all of its rows or none.
//
// This walks the full user table on every listing creation, which is fine at
// the current user-base scale and a known limit beyond it.
func (s *NotificationService) FanOutProductCreated(p *models.Product) error {
	productID := p.ID
	batch := []models.Notification{{
		UserID:           p.OwnerID,
		Title:            "Annonce publiée",
		Message:          fmt.Sprintf("Votre annonce '%s' a été publiée avec succès.", p.Title),
		NotificationType: domain.NotifySuccess,
		RelatedProductID: &productID,
	}}

	ids, err := s.users.ListIDsExcept(p.OwnerID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		pref, err := s.prefs.GetOrCreate(id)
		if err != nil {
			return err
		}
		if !pref.ProductUpdates {
			continue
		}
		batch = append(batch, models.Notification{
			UserID:           id,
			Title:            "Nouvelle annonce disponible",
			Message:          fmt.Sprintf("Une nouvelle annonce '%s' a été publiée. Découvrez-la dès maintenant!", p.Title),
			NotificationType: domain.NotifyInfo,
			RelatedProductID: &productID,
		})
	}

	if err := s.store.CreateBatch(batch); err != nil {
		return err
	}
	s.pushBatch(batch)
	return nil
}

// pushBatch delivers persisted notifications to connected recipients that
// opted into push.
func (s *NotificationService) pushBatch(batch []models.Notification) {
	if s.push == nil {
		return
	}
	for i := range batch {
		n := &batch[i]
		pref, err := s.prefs.GetOrCreate(n.UserID)
		if err != nil || !pref.PushNotifications {
			continue
		}
		s.push.Push(n.UserID, n)
	}
}

func (s *NotificationService) ListMine(callerID uint, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListByUserID(callerID, limit, offset)
}

// MarkRead flips one notification of the caller. A notification that does
// not exist and one that belongs to someone else are both not-found: the
// lookup is scoped to the caller by design.
func (s *NotificationService) MarkRead(notificationID, callerID uint) error {
	rows, err := s.store.MarkRead(notificationID, callerID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification of the caller. Calling it with
// nothing unread is a no-op, not an error.
func (s *NotificationService) MarkAllRead(callerID uint) (int64, error) {
	return s.store.MarkAllRead(callerID)
}

func (s *NotificationService) GetPreferences(callerID uint) (*models.NotificationPreferences, error) {
	return s.prefs.GetOrCreate(callerID)
}

// PreferencesInput patches the flags; nil leaves a flag unchanged.
type PreferencesInput struct {
	EmailNotifications *bool `json:"email_notifications"`
	PushNotifications  *bool `json:"push_notifications"`
	ProductUpdates     *bool `json:"product_updates"`
	MarketingEmails    *bool `json:"marketing_emails"`
	SecurityAlerts     *bool `json:"security_alerts"`
}

func (s *NotificationService) UpdatePreferences(callerID uint, in PreferencesInput) (*models.NotificationPreferences, error) {
	pref, err := s.prefs.GetOrCreate(callerID)
	if err != nil {
		return nil, err
	}
	if in.EmailNotifications != nil {
		pref.EmailNotifications = *in.EmailNotifications
	}
	if in.PushNotifications != nil {
		pref.PushNotifications = *in.PushNotifications
	}
	if in.ProductUpdates != nil {
		pref.ProductUpdates = *in.ProductUpdates
	}
	if in.MarketingEmails != nil {
		pref.MarketingEmails = *in.MarketingEmails
	}
	if in.SecurityAlerts != nil {
		pref.SecurityAlerts = *in.SecurityAlerts
	}
	if err := s.prefs.Save(pref); err != nil {
		return nil, err
	}
	return pref, nil
}
