// Package usecasetest содержит in-memory репозитории для тестов сценариев.
package usecasetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

// Store - общее хранилище всех репозиториев. Один мьютекс на всё.
type Store struct {
	mu            sync.Mutex
	Users         map[uuid.UUID]*entity.User
	Skills        map[uuid.UUID]*entity.Skill
	UserSkills    map[uuid.UUID]*entity.UserSkill
	Listings      map[uuid.UUID]*entity.SkillListing
	Blocks        map[uuid.UUID]*entity.UserBlock
	Proposals     map[uuid.UUID]*entity.TradeProposal
	Trades        map[uuid.UUID]*entity.Trade
	Notifications []*entity.Notification
	Messages      []*entity.Message
}

func NewStore() *Store {
	return &Store{
		Users:      make(map[uuid.UUID]*entity.User),
		Skills:     make(map[uuid.UUID]*entity.Skill),
		UserSkills: make(map[uuid.UUID]*entity.UserSkill),
		Listings:   make(map[uuid.UUID]*entity.SkillListing),
		Blocks:     make(map[uuid.UUID]*entity.UserBlock),
		Proposals:  make(map[uuid.UUID]*entity.TradeProposal),
		Trades:     make(map[uuid.UUID]*entity.Trade),
	}
}

// AddUser кладёт пользователя и возвращает его.
func (s *Store) AddUser(username, firstName, lastName string) *entity.User {
	u := entity.NewUser(username+"@example.com", username, firstName, lastName)
	s.mu.Lock()
	s.Users[u.ID] = u
	s.mu.Unlock()
	return u
}

func (s *Store) AddSkill(name string) *entity.Skill {
	sk, _ := entity.NewSkill(name)
	s.mu.Lock()
	s.Skills[sk.ID] = sk
	s.mu.Unlock()
	return sk
}

// NotificationsFor возвращает уведомления пользователя в порядке создания.
func (s *Store) NotificationsFor(userID uuid.UUID) []*entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Notification
	for _, n := range s.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// TxManager выполняет fn под общим мьютексом, как сериализуемая транзакция.
type TxManager struct {
	store *Store
	txMu  sync.Mutex
}

func (s *Store) TxManager() *TxManager { return &TxManager{store: s} }

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx)
}

func cp[T any](v *T) *T {
	c := *v
	return &c
}

// --- users ---

type UserRepo struct{ s *Store }

func (s *Store) UserRepo() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Users {
		if existing.Email == u.Email {
			return apperror.ErrEmailTaken
		}
		if strings.EqualFold(existing.Username, u.Username) {
			return apperror.ErrUsernameTaken
		}
	}
	r.s.Users[u.ID] = cp(u)
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Users[u.ID]; !ok {
		return apperror.ErrUserNotFound
	}
	r.s.Users[u.ID] = cp(u)
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.Users[id]; ok {
		return cp(u), nil
	}
	return nil, apperror.ErrUserNotFound
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if u.Email == strings.ToLower(email) {
			return cp(u), nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (r *UserRepo) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return cp(u), nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (r *UserRepo) ExistsUsername(ctx context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *UserRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(r.s.Users))
	for id := range r.s.Users {
		ids = append(ids, id)
	}
	return ids, nil
}

// --- skills ---

type SkillRepo struct{ s *Store }

func (s *Store) SkillRepo() *SkillRepo { return &SkillRepo{s: s} }

func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sk, ok := r.s.Skills[id]; ok {
		return cp(sk), nil
	}
	return nil, apperror.ErrSkillNotFound
}

func (r *SkillRepo) FindByName(ctx context.Context, name string) (*entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sk := range r.s.Skills {
		if strings.EqualFold(sk.Name, name) {
			return cp(sk), nil
		}
	}
	return nil, apperror.ErrSkillNotFound
}

func (r *SkillRepo) GetOrCreate(ctx context.Context, skill *entity.Skill) (*entity.Skill, error) {
	if existing, err := r.FindByName(ctx, skill.Name); err == nil {
		return existing, nil
	}
	r.s.mu.Lock()
	r.s.Skills[skill.ID] = cp(skill)
	r.s.mu.Unlock()
	return cp(skill), nil
}

func (r *SkillRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Skill
	for _, sk := range r.s.Skills {
		if search == "" || strings.Contains(strings.ToLower(sk.Name), strings.ToLower(search)) {
			out = append(out, cp(sk))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type UserSkillRepo struct{ s *Store }

func (s *Store) UserSkillRepo() *UserSkillRepo { return &UserSkillRepo{s: s} }

func (r *UserSkillRepo) Add(ctx context.Context, us *entity.UserSkill) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.UserSkills {
		if existing.UserID == us.UserID && existing.SkillID == us.SkillID && existing.Type == us.Type {
			return false, nil
		}
	}
	r.s.UserSkills[us.ID] = cp(us)
	return true, nil
}

func (r *UserSkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserSkill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if us, ok := r.s.UserSkills[id]; ok {
		return cp(us), nil
	}
	return nil, apperror.ErrUserSkillNotFound
}

func (r *UserSkillRepo) ListByUser(ctx context.Context, userID uuid.UUID, skillType *valueobject.SkillType) ([]*entity.UserSkill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.UserSkill
	for _, us := range r.s.UserSkills {
		if us.UserID == userID && (skillType == nil || us.Type == *skillType) {
			out = append(out, cp(us))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillName < out[j].SkillName })
	return out, nil
}

func (r *UserSkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.UserSkills[id]; !ok {
		return apperror.ErrUserSkillNotFound
	}
	delete(r.s.UserSkills, id)
	return nil
}

// --- listings / blocks ---

type ListingRepo struct{ s *Store }

func (s *Store) ListingRepo() *ListingRepo { return &ListingRepo{s: s} }

func (r *ListingRepo) Create(ctx context.Context, l *entity.SkillListing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Listings[l.ID] = cp(l)
	return nil
}

func (r *ListingRepo) Update(ctx context.Context, l *entity.SkillListing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Listings[l.ID]; !ok {
		return apperror.ErrListingNotFound
	}
	r.s.Listings[l.ID] = cp(l)
	return nil
}

func (r *ListingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Listings[id]; !ok {
		return apperror.ErrListingNotFound
	}
	delete(r.s.Listings, id)
	return nil
}

func (r *ListingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.Listings[id]; ok {
		return cp(l), nil
	}
	return nil, apperror.ErrListingNotFound
}

func (r *ListingRepo) List(ctx context.Context, filter repository.ListingFilter) ([]*entity.SkillListing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SkillListing
	for _, l := range r.s.Listings {
		if filter.UserID != nil && l.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		out = append(out, cp(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Limit, filter.Offset), nil
}

type BlockRepo struct{ s *Store }

func (s *Store) BlockRepo() *BlockRepo { return &BlockRepo{s: s} }

func (r *BlockRepo) Create(ctx context.Context, b *entity.UserBlock) (*entity.UserBlock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Blocks {
		if existing.BlockerID == b.BlockerID && existing.BlockedID == b.BlockedID {
			return cp(existing), nil
		}
	}
	r.s.Blocks[b.ID] = cp(b)
	return cp(b), nil
}

func (r *BlockRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserBlock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.Blocks[id]; ok {
		return cp(b), nil
	}
	return nil, apperror.ErrBlockNotFound
}

func (r *BlockRepo) ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*entity.UserBlock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.UserBlock
	for _, b := range r.s.Blocks {
		if b.BlockerID == blockerID {
			out = append(out, cp(b))
		}
	}
	return out, nil
}

func (r *BlockRepo) FindPair(ctx context.Context, blockerID, blockedID uuid.UUID) (*entity.UserBlock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.Blocks {
		if b.BlockerID == blockerID && b.BlockedID == blockedID {
			return cp(b), nil
		}
	}
	return nil, apperror.ErrBlockNotFound
}

func (r *BlockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Blocks[id]; !ok {
		return apperror.ErrBlockNotFound
	}
	delete(r.s.Blocks, id)
	return nil
}

// --- proposals / trades ---

type ProposalRepo struct{ s *Store }

func (s *Store) ProposalRepo() *ProposalRepo { return &ProposalRepo{s: s} }

func (r *ProposalRepo) Create(ctx context.Context, p *entity.TradeProposal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Proposals[p.ID] = cp(p)
	return nil
}

func (r *ProposalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TradeProposal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.Proposals[id]; ok {
		return cp(p), nil
	}
	return nil, apperror.ErrProposalNotFound
}

func (r *ProposalRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TradeProposal, error) {
	return r.FindByID(ctx, id)
}

func (r *ProposalRepo) UpdateStatus(ctx context.Context, p *entity.TradeProposal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.Proposals[p.ID]
	if !ok {
		return apperror.ErrProposalNotFound
	}
	stored.Status = p.Status
	stored.LastStatusUpdate = p.LastStatusUpdate
	return nil
}

func (r *ProposalRepo) ListByUser(ctx context.Context, userID uuid.UUID, box repository.ProposalBox) ([]*entity.TradeProposal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TradeProposal
	for _, p := range r.s.Proposals {
		sent, received := p.ProposerID == userID, p.RecipientID == userID
		switch {
		case box == repository.ProposalBoxSent && sent,
			box == repository.ProposalBoxReceived && received,
			box != repository.ProposalBoxSent && box != repository.ProposalBoxReceived && (sent || received):
			out = append(out, cp(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type TradeRepo struct{ s *Store }

func (s *Store) TradeRepo() *TradeRepo { return &TradeRepo{s: s} }

// Create повторяет UNIQUE(proposal_id).
func (r *TradeRepo) Create(ctx context.Context, t *entity.Trade) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ProposalID != nil {
		for _, existing := range r.s.Trades {
			if existing.ProposalID != nil && *existing.ProposalID == *t.ProposalID {
				return apperror.ErrProposalAlreadyAccepted
			}
		}
	}
	r.s.Trades[t.ID] = cp(t)
	return nil
}

func (r *TradeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trade, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.Trades[id]; ok {
		return cp(t), nil
	}
	return nil, apperror.ErrTradeNotFound
}

func (r *TradeRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Trade, error) {
	return r.FindByID(ctx, id)
}

func (r *TradeRepo) Update(ctx context.Context, t *entity.Trade) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Trades[t.ID]; !ok {
		return apperror.ErrTradeNotFound
	}
	r.s.Trades[t.ID] = cp(t)
	return nil
}

func (r *TradeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Trade, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Trade
	for _, t := range r.s.Trades {
		if t.IsParticipant(userID) {
			out = append(out, cp(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

// --- notifications ---

type NotificationRepo struct{ s *Store }

func (s *Store) NotificationRepo() *NotificationRepo { return &NotificationRepo{s: s} }

// Insert повторяет частичные уникальные индексы trade_active и system_alert.
func (r *NotificationRepo) Insert(ctx context.Context, n *entity.Notification) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Notifications {
		if existing.UserID != n.UserID || existing.Type != n.Type {
			continue
		}
		switch n.Type {
		case valueobject.NotificationTradeActive:
			if sameUUID(existing.TradeID, n.TradeID) {
				return false, nil
			}
		case valueobject.NotificationSystemAlert:
			if existing.MessageText == n.MessageText {
				return false, nil
			}
		}
	}
	r.s.Notifications = append(r.s.Notifications, cp(n))
	return true, nil
}

func sameUUID(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}

func (r *NotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.Notifications {
		if n.ID == id {
			return cp(n), nil
		}
	}
	return nil, apperror.ErrNotificationNotFound
}

func (r *NotificationRepo) List(ctx context.Context, userID uuid.UUID, filter repository.NotificationFilter) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Notification
	for i := len(r.s.Notifications) - 1; i >= 0; i-- {
		n := r.s.Notifications[i]
		if n.UserID == userID && (!filter.UnreadOnly || !n.IsRead) {
			out = append(out, cp(n))
		}
	}
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, n := range r.s.Notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.Notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return apperror.ErrNotificationNotFound
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, n := range r.s.Notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

// --- messages ---

type MessageRepo struct{ s *Store }

func (s *Store) MessageRepo() *MessageRepo { return &MessageRepo{s: s} }

func (r *MessageRepo) Create(ctx context.Context, msg *entity.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	msg.ID = int64(len(r.s.Messages) + 1)
	r.s.Messages = append(r.s.Messages, cp(msg))
	return nil
}

func (r *MessageRepo) Conversation(ctx context.Context, userID, otherID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.s.Messages {
		if (m.SenderID == userID && m.ReceiverID == otherID) || (m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, cp(m))
		}
	}
	return page(out, limit, offset), nil
}

func (r *MessageRepo) Inbox(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Message
	for i := len(r.s.Messages) - 1; i >= 0; i-- {
		m := r.s.Messages[i]
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, cp(m))
		}
	}
	return page(out, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
