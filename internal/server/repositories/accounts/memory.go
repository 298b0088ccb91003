package accounts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// MemoryRepository is a process-local Repository. Every read and write is
// atomic under mu, and records are cloned on the way in and out.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Account
	byLogin map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.Account),
		byLogin: make(map[string]string),
	}
}

func loginKey(login string) string {
	return strings.ToLower(login)
}

func (r *MemoryRepository) FindByLogin(ctx context.Context, login string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[loginKey(login)]
	if !ok {
		return nil, notFoundByLogin(login)
	}
	return r.byID[id].Clone(), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.byID[id]
	if !ok {
		return nil, notFoundByID(id)
	}
	return acc.Clone(), nil
}

func (r *MemoryRepository) Insert(ctx context.Context, acc *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := loginKey(acc.Login)
	if _, taken := r.byLogin[key]; taken {
		return nil, loginTaken(acc.Login)
	}

	r.byID[acc.ID] = acc.Clone()
	r.byLogin[key] = acc.ID
	return acc.Clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, acc *models.Account, prevModifiedOn time.Time) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[acc.ID]
	if !ok {
		return nil, notFoundByID(acc.ID)
	}
	if !current.ModifiedOn.Equal(prevModifiedOn) {
		return nil, staleAccount(acc.ID)
	}

	oldKey, newKey := loginKey(current.Login), loginKey(acc.Login)
	if oldKey != newKey {
		if owner, taken := r.byLogin[newKey]; taken && owner != acc.ID {
			return nil, loginTaken(acc.Login)
		}
		delete(r.byLogin, oldKey)
		r.byLogin[newKey] = acc.ID
	}

	r.byID[acc.ID] = acc.Clone()
	return acc.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.byID[id]
	if !ok {
		return notFoundByID(id)
	}
	delete(r.byLogin, loginKey(acc.Login))
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) ListActive(ctx context.Context) ([]*models.Account, error) {
	return r.list(func(a *models.Account) bool { return a.IsActive() }), nil
}

func (r *MemoryRepository) ListOlderThan(ctx context.Context, age int, now time.Time) ([]*models.Account, error) {
	threshold := models.BirthdayThreshold(age, now)
	return r.list(func(a *models.Account) bool {
		return a.Birthday != nil && !models.DateOf(*a.Birthday).After(threshold)
	}), nil
}

func (r *MemoryRepository) list(keep func(*models.Account) bool) []*models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Account, 0, len(r.byID))
	for _, acc := range r.byID {
		if keep(acc) {
			out = append(out, acc.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedOn.Equal(out[j].CreatedOn) {
			return out[i].CreatedOn.Before(out[j].CreatedOn)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
