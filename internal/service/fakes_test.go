package service

import (
	"sort"

	"djibtrade/internal/models"

	"gorm.io/gorm"
)

// In-memory fakes for the store interfaces. They mirror the repository
// contracts the services rely on, in particular gorm.ErrRecordNotFound for
// misses and insert-ignore semantics on the notification batch.

type fakeUserStore struct {
	seq   uint
	users map[uint]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uint]*models.User)}
	for _, u := range users {
		_ = s.Create(u)
	}
	return s
}

func (s *fakeUserStore) Create(u *models.User) error {
	if u.ID == 0 {
		s.seq++
		u.ID = s.seq
	} else if u.ID > s.seq {
		s.seq = u.ID
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Update(u *models.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) ListIDsExcept(id uint) ([]uint, error) {
	ids := make([]uint, 0, len(s.users))
	for uid := range s.users {
		if uid != id {
			ids = append(ids, uid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeProductStore struct {
	seq  uint
	rows map[uint]*models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{rows: make(map[uint]*models.Product)}
}

func (s *fakeProductStore) Create(p *models.Product) error {
	s.seq++
	p.ID = s.seq
	cp := *p
	s.rows[p.ID] = &cp
	return nil
}

func (s *fakeProductStore) GetByID(id uint) (*models.Product, error) {
	p, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) Update(p *models.Product) error {
	if _, ok := s.rows[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	s.rows[p.ID] = &cp
	return nil
}

func (s *fakeProductStore) Delete(id uint) error {
	if _, ok := s.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeProductStore) List(categoryID *uint, limit, offset int) ([]models.Product, error) {
	ids := make([]uint, 0, len(s.rows))
	for id, p := range s.rows {
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		ids = append(ids, id)
	}
	// Newest first; IDs are monotonic so they stand in for created_at.
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]models.Product, 0, len(ids))
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, *s.rows[id])
	}
	return out, nil
}

func (s *fakeProductStore) IncrementViews(id uint) error {
	p, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Views++
	return nil
}

type fakeCategoryStore struct {
	ids map[uint]bool
}

func (s *fakeCategoryStore) Exists(id uint) (bool, error) {
	return s.ids[id], nil
}

type fakeNotificationStore struct {
	seq  uint
	rows []models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (s *fakeNotificationStore) CreateBatch(ns []models.Notification) error {
	for _, n := range ns {
		if s.conflicts(n) {
			continue
		}
		s.seq++
		n.ID = s.seq
		s.rows = append(s.rows, n)
	}
	return nil
}

// conflicts mimics the unique (user, product, type) index.
func (s *fakeNotificationStore) conflicts(n models.Notification) bool {
	for _, r := range s.rows {
		if r.UserID == n.UserID && r.NotificationType == n.NotificationType && eqUintPtr(r.RelatedProductID, n.RelatedProductID) {
			return true
		}
	}
	return false
}

func eqUintPtr(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *fakeNotificationStore) ListByUserID(userID uint, limit, offset int) ([]models.Notification, error) {
	mine := s.byUser(userID)
	// Insertion order reversed stands in for created_at DESC.
	for i, j := 0, len(mine)-1; i < j; i, j = i+1, j-1 {
		mine[i], mine[j] = mine[j], mine[i]
	}
	if offset >= len(mine) {
		return nil, nil
	}
	mine = mine[offset:]
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

func (s *fakeNotificationStore) MarkRead(id, userID uint) (int64, error) {
	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].UserID == userID {
			s.rows[i].IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeNotificationStore) MarkAllRead(userID uint) (int64, error) {
	var count int64
	for i := range s.rows {
		if s.rows[i].UserID == userID && !s.rows[i].IsRead {
			s.rows[i].IsRead = true
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) byUser(userID uint) []models.Notification {
	var out []models.Notification
	for _, n := range s.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakePreferenceStore struct {
	seq     uint
	created int
	rows    map[uint]*models.NotificationPreferences
}

func newFakePreferenceStore() *fakePreferenceStore {
	return &fakePreferenceStore{rows: make(map[uint]*models.NotificationPreferences)}
}

func (s *fakePreferenceStore) GetOrCreate(userID uint) (*models.NotificationPreferences, error) {
	if p, ok := s.rows[userID]; ok {
		cp := *p
		return &cp, nil
	}
	s.seq++
	s.created++
	p := models.DefaultPreferences(userID)
	p.ID = s.seq
	s.rows[userID] = p
	cp := *p
	return &cp, nil
}

func (s *fakePreferenceStore) Save(p *models.NotificationPreferences) error {
	cp := *p
	s.rows[p.UserID] = &cp
	return nil
}

// set is a test helper to adjust one user's flags in place.
func (s *fakePreferenceStore) set(userID uint, mut func(*models.NotificationPreferences)) {
	p, _ := s.GetOrCreate(userID)
	mut(p)
	_ = s.Save(p)
}

type fakePusher struct {
	pushed []uint
}

func (f *fakePusher) Push(userID uint, _ interface{}) {
	f.pushed = append(f.pushed, userID)
}
