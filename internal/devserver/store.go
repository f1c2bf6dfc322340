package devserver

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/uni-jay/ican-portal/internal/client/models"
	"github.com/uni-jay/ican-portal/internal/common"
)

var (
	ErrEmailTaken          = errors.New("Email already registered")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrUnknownUser         = errors.New("User not found")
	ErrUnknownRefreshToken = errors.New("Invalid refresh token")
	ErrUnknownResetToken   = errors.New("Invalid or expired reset code")
	ErrUnknownEvent        = errors.New("Event not found")
	ErrAlreadyRegistered   = errors.New("Already registered for this event")
	ErrInsufficientFunds   = errors.New("Insufficient wallet balance")
	ErrUnknownElection     = errors.New("Election not found")
	ErrElectionClosed      = errors.New("Election is closed")
	ErrUnknownCandidate    = errors.New("Unknown candidate")
	ErrAlreadyVoted        = errors.New("Already voted in this election")
)

const (
	resetTokenTTL   = 30 * time.Minute
	resetCodeBytes  = 6
	chatHistorySize = 50
)

type account struct {
	user models.User
	hash []byte
}

type resetGrant struct {
	userID  string
	expires time.Time
}

// Store keeps every backend record in memory.
type Store struct {
	mu   sync.Mutex
	cost int
	now  func() time.Time

	accounts map[string]*account // by user id
	byEmail  map[string]string   // lower-cased email to user id
	refresh  map[string]string   // refresh token to user id
	resets   map[string]resetGrant

	transactions  map[string][]models.Transaction // by user id
	events        []models.Event
	registrations map[string]map[string]bool // event id to user ids
	modules       []models.CPDModule
	progress      map[string]map[string]int // user id to module progress
	elections     []models.Election
	votes         map[string]map[string]string // election id to user id to candidate id
	chat          []models.ChatMessage
}

func NewStore(bcryptCost int) *Store {
	return &Store{
		cost:          bcryptCost,
		now:           time.Now,
		accounts:      make(map[string]*account),
		byEmail:       make(map[string]string),
		refresh:       make(map[string]string),
		resets:        make(map[string]resetGrant),
		transactions:  make(map[string][]models.Transaction),
		registrations: make(map[string]map[string]bool),
		progress:      make(map[string]map[string]int),
		votes:         make(map[string]map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a new member. The password is stored as a bcrypt hash.
func (s *Store) CreateUser(data models.RegisterData) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), s.cost)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(data.Email)
	if _, ok := s.byEmail[key]; ok {
		return models.User{}, ErrEmailTaken
	}
	u := models.User{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(data.Name),
		Email:          strings.TrimSpace(data.Email),
		Phone:          data.Phone,
		MembershipID:   data.MembershipID,
		MembershipTier: "Associate",
		IsActive:       true,
	}
	s.accounts[u.ID] = &account{user: u, hash: hash}
	s.byEmail[key] = u.ID
	return u, nil
}

// Authenticate returns the member whose email and password match.
func (s *Store) Authenticate(email, password string) (models.User, error) {
	s.mu.Lock()
	acc, ok := s.accounts[s.byEmail[emailKey(email)]]
	var hash []byte
	if ok {
		hash = acc.hash
	}
	s.mu.Unlock()

	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return s.User(acc.user.ID)
}

func (s *Store) User(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return models.User{}, ErrUnknownUser
	}
	return acc.user, nil
}

// UpdateProfile applies the non-empty fields of update.
func (s *Store) UpdateProfile(id string, update models.ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return models.User{}, ErrUnknownUser
	}
	if name := strings.TrimSpace(update.Name); name != "" {
		acc.user.Name = name
	}
	if update.Phone != "" {
		acc.user.Phone = update.Phone
	}
	return acc.user, nil
}

// IssueRefreshToken returns a new opaque refresh token for userID.
func (s *Store) IssueRefreshToken(userID string) string {
	tok := uuid.NewString()
	s.mu.Lock()
	s.refresh[tok] = userID
	s.mu.Unlock()
	return tok
}

// RotateRefreshToken consumes tok and returns its owner and a new token.
func (s *Store) RotateRefreshToken(tok string) (userID, next string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.refresh[tok]
	if !ok {
		return "", "", ErrUnknownRefreshToken
	}
	delete(s.refresh, tok)
	next = uuid.NewString()
	s.refresh[next] = userID
	return userID, next, nil
}

// RevokeRefreshTokens drops every refresh token of userID.
func (s *Store) RevokeRefreshTokens(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tok, owner := range s.refresh {
		if owner == userID {
			delete(s.refresh, tok)
		}
	}
}

// CreateResetToken returns a short hex reset code for the account with
// email, or ErrUnknownUser.
func (s *Store) CreateResetToken(email string) (string, error) {
	tok, err := common.MakeRandHexString(resetCodeBytes)
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[emailKey(email)]
	if !ok {
		return "", ErrUnknownUser
	}
	s.resets[tok] = resetGrant{userID: id, expires: s.now().Add(resetTokenTTL)}
	return tok, nil
}

// ResetPassword consumes tok and sets a new password. All refresh tokens of
// the account are revoked.
func (s *Store) ResetPassword(tok, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	grant, ok := s.resets[tok]
	delete(s.resets, tok)
	if !ok || s.now().After(grant.expires) {
		s.mu.Unlock()
		return ErrUnknownResetToken
	}
	acc, ok := s.accounts[grant.userID]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownUser
	}
	acc.hash = hash
	s.mu.Unlock()

	s.RevokeRefreshTokens(grant.userID)
	return nil
}

func (s *Store) Transactions(userID string) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions[userID])
}

// addTransaction records tx and applies it to the wallet. Callers hold mu.
func (s *Store) addTransaction(acc *account, tx models.Transaction) {
	tx.ID = uuid.NewString()
	tx.CreatedAt = s.now()
	if tx.Status == "" {
		tx.Status = "completed"
	}
	switch tx.Type {
	case "credit":
		acc.user.Balance += tx.Amount
	case "debit":
		acc.user.Balance -= tx.Amount
	}
	s.transactions[acc.user.ID] = append([]models.Transaction{tx}, s.transactions[acc.user.ID]...)
}

// Events lists events with Registered set for userID.
func (s *Store) Events(userID string) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.events)
	for i := range out {
		out[i].Registered = s.registrations[out[i].ID][userID]
	}
	return out
}

// RegisterForEvent books userID on eventID, paying its fee from the wallet
// and crediting its CPD points.
func (s *Store) RegisterForEvent(userID, eventID string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return models.Event{}, ErrUnknownUser
	}
	idx := slices.IndexFunc(s.events, func(e models.Event) bool { return e.ID == eventID })
	if idx < 0 {
		return models.Event{}, ErrUnknownEvent
	}
	ev := s.events[idx]
	if s.registrations[eventID][userID] {
		return models.Event{}, ErrAlreadyRegistered
	}
	if ev.Fee > acc.user.Balance {
		return models.Event{}, ErrInsufficientFunds
	}

	if s.registrations[eventID] == nil {
		s.registrations[eventID] = make(map[string]bool)
	}
	s.registrations[eventID][userID] = true
	if ev.Fee > 0 {
		s.addTransaction(acc, models.Transaction{Type: "debit", Amount: ev.Fee, Description: "Event registration: " + ev.Title})
	}
	acc.user.Points += int64(ev.CPDCredits)

	ev.Registered = true
	return ev, nil
}

// CPDModules lists the catalogue with userID's progress.
func (s *Store) CPDModules(userID string) []models.CPDModule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.modules)
	for i := range out {
		p := s.progress[userID][out[i].ID]
		out[i].Progress = p
		out[i].Completed = p >= 100
	}
	return out
}

// Elections lists elections with HasVoted set for userID.
func (s *Store) Elections(userID string) []models.Election {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Election, len(s.elections))
	for i, el := range s.elections {
		el.Candidates = slices.Clone(el.Candidates)
		_, el.HasVoted = s.votes[el.ID][userID]
		out[i] = el
	}
	return out
}

// CastVote records one ballot per member and election.
func (s *Store) CastVote(userID, electionID, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.elections, func(e models.Election) bool { return e.ID == electionID })
	if idx < 0 {
		return ErrUnknownElection
	}
	el := s.elections[idx]
	if !el.Open {
		return ErrElectionClosed
	}
	if !slices.ContainsFunc(el.Candidates, func(c models.Candidate) bool { return c.ID == candidateID }) {
		return ErrUnknownCandidate
	}
	if _, voted := s.votes[electionID][userID]; voted {
		return ErrAlreadyVoted
	}
	if s.votes[electionID] == nil {
		s.votes[electionID] = make(map[string]string)
	}
	s.votes[electionID][userID] = candidateID
	return nil
}

// ChatMessages returns the chat history, oldest first.
func (s *Store) ChatMessages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.chat)
}

// PostChatMessage appends content signed by userID. Only the most recent
// messages are kept.
func (s *Store) PostChatMessage(userID, content string) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[userID]
	if !ok {
		return models.ChatMessage{}, ErrUnknownUser
	}
	m := models.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   userID,
		SenderName: acc.user.Name,
		Content:    content,
		SentAt:     s.now(),
	}
	s.chat = append(s.chat, m)
	if len(s.chat) > chatHistorySize {
		s.chat = slices.Clone(s.chat[len(s.chat)-chatHistorySize:])
	}
	return m, nil
}
