package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"campustrade/internal/models"

	"github.com/google/uuid"
)

// MockTransactionRepository is an in-memory implementation of
// TransactionRepository. It mirrors the atomicity contract of the GORM
// implementation with a single mutex: every method is one critical
// section, so concurrent confirmations serialize just like the row
// lock does against the real store.
type MockTransactionRepository struct {
	transactions map[string]models.Transaction
	byPost       map[string]string
	// SuccessTrades counts completion-side increments per user, the
	// in-memory stand-in for users.success_trades.
	SuccessTrades map[string]int
	mu            sync.Mutex
}

// NewMockTransactionRepository creates a new instance of MockTransactionRepository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions:  make(map[string]models.Transaction),
		byPost:        make(map[string]string),
		SuccessTrades: make(map[string]int),
	}
}

// CreateForPost adds a new transaction, enforcing one per post.
func (r *MockTransactionRepository) CreateForPost(txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPost[txn.PostID]; ok {
		return fmt.Errorf("post %s already has a transaction: %w", txn.PostID, models.ErrConflict)
	}
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now()
	r.transactions[txn.ID] = *txn
	r.byPost[txn.PostID] = txn.ID
	return nil
}

// GetByID returns a transaction by its ID.
func (r *MockTransactionRepository) GetByID(id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn, ok := r.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction with ID %s: %w", id, models.ErrNotFound)
	}
	return &txn, nil
}

// GetByPostID returns the transaction for a post.
func (r *MockTransactionRepository) GetByPostID(postID string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byPost[postID]
	if !ok {
		return nil, fmt.Errorf("transaction for post %s: %w", postID, models.ErrNotFound)
	}
	txn := r.transactions[id]
	return &txn, nil
}

// Confirm applies one party's confirmation under the repository mutex.
func (r *MockTransactionRepository) Confirm(id, userID string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn, ok := r.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction with ID %s: %w", id, models.ErrNotFound)
	}

	switch userID {
	case txn.SellerID:
		if txn.SellerConfirmed {
			return nil, fmt.Errorf("seller already confirmed transaction %s: %w", id, models.ErrConflict)
		}
		txn.SellerConfirmed = true
	case txn.BuyerID:
		if txn.BuyerConfirmed {
			return nil, fmt.Errorf("buyer already confirmed transaction %s: %w", id, models.ErrConflict)
		}
		txn.BuyerConfirmed = true
	default:
		return nil, fmt.Errorf("user %s is not a participant of transaction %s: %w", userID, id, models.ErrForbidden)
	}

	if txn.SellerConfirmed && txn.BuyerConfirmed && !txn.Completed {
		now := time.Now()
		txn.Completed = true
		txn.CompletedAt = &now
		r.SuccessTrades[txn.SellerID]++
		r.SuccessTrades[txn.BuyerID]++
	}

	r.transactions[id] = txn
	return &txn, nil
}

// ListPendingForUser returns the user's uncompleted transactions,
// newest first.
func (r *MockTransactionRepository) ListPendingForUser(userID string) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []models.Transaction
	for _, txn := range r.transactions {
		if txn.Completed {
			continue
		}
		if txn.SellerID == userID || txn.BuyerID == userID {
			pending = append(pending, txn)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	return pending, nil
}
