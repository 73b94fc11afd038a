package impl

import (
	"context"
	"sync"
	"time"

	"pfm/internal/domain/entity"
	"pfm/internal/domain/repository"
	"pfm/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// In-memory fakes for the domain interfaces. They keep the service tests free
// of database and crypto dependencies while preserving real semantics
// (duplicate detection, not-found errors, token round-trips).

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]*entity.User

	failCreate error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate != nil {
		return r.failCreate
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user

	return nil
}

func (r *fakeUserRepo) delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.byID[id]; ok {
		delete(r.byEmail, user.Email)
		delete(r.byID, id)
	}
}

// fakeTxManager runs the callback without a real transaction, handing it a
// factory over the shared fake repositories.
type fakeTxManager struct {
	repo *fakeUserRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeFactory{repo: m.repo})
}

type fakeFactory struct {
	repo *fakeUserRepo
}

func (f *fakeFactory) UserRepo() repository.UserRepository               { return f.repo }
func (f *fakeFactory) TransactionRepo() repository.TransactionRepository { return nil }
func (f *fakeFactory) CategoryRepo() repository.CategoryRepository       { return nil }
func (f *fakeFactory) BudgetRepo() repository.BudgetRepository           { return nil }
func (f *fakeFactory) GoalRepo() repository.GoalRepository               { return nil }

// fakeHasher is a transparent stand-in for bcrypt.
type fakeHasher struct {
	failHash error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.failHash != nil {
		return "", h.failHash
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues readable tokens and verifies its own output.
type fakeTokenService struct {
	mu        sync.Mutex
	issued    map[string]*service.Claims
	failIssue error
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]*service.Claims)}
}

func (s *fakeTokenService) issue(userID uuid.UUID, tokenType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failIssue != nil {
		return "", s.failIssue
	}

	token := tokenType + "-token-" + uuid.NewString()
	s.issued[token] = &service.Claims{UserID: userID, Type: tokenType}

	return token, nil
}

func (s *fakeTokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, service.TokenTypeAccess)
}

func (s *fakeTokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, service.TokenTypeRefresh)
}

func (s *fakeTokenService) IssuePair(userID uuid.UUID) (*service.TokenPair, error) {
	accessToken, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	return &service.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *fakeTokenService) VerifyToken(tokenString string) (*service.Claims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, ok := s.issued[tokenString]
	if !ok {
		return nil, errors.New("token verification failed")
	}

	return claims, nil
}

func (s *fakeTokenService) AccessTokenDuration() time.Duration  { return 15 * time.Minute }
func (s *fakeTokenService) RefreshTokenDuration() time.Duration { return 7 * 24 * time.Hour }
