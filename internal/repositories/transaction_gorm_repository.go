package repositories

import (
	"errors"
	"fmt"
	"time"

	"campustrade/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMTransactionRepository is a GORM implementation of TransactionRepository.
type GORMTransactionRepository struct {
	db *gorm.DB
}

// NewGORMTransactionRepository creates a new instance of GORMTransactionRepository.
func NewGORMTransactionRepository(db *gorm.DB) *GORMTransactionRepository {
	return &GORMTransactionRepository{
		db: db,
	}
}

// CreateForPost inserts the transaction and transitions its post to
// sold inside a single store transaction.
func (r *GORMTransactionRepository) CreateForPost(txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, "id = ?", txn.PostID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post with ID %s: %w", txn.PostID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to load post %s: %w", txn.PostID, err)
		}

		var count int64
		if err := tx.Model(&models.Transaction{}).
			Where("post_id = ?", txn.PostID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing transaction for post %s: %w", txn.PostID, err)
		}
		if count > 0 {
			return fmt.Errorf("post %s already has a transaction: %w", txn.PostID, models.ErrConflict)
		}

		if err := tx.Create(txn).Error; err != nil {
			// The unique index on post_id backstops racing creates that
			// both passed the count above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("post %s already has a transaction: %w", txn.PostID, models.ErrConflict)
			}
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", txn.PostID).
			Update("status", models.StatusSold).Error; err != nil {
			return fmt.Errorf("failed to mark post %s sold: %w", txn.PostID, err)
		}
		return nil
	})
}

// GetByID retrieves a transaction with its post and participants.
func (r *GORMTransactionRepository) GetByID(id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.
		Preload("Post").
		Preload("Seller").
		Preload("Buyer").
		First(&txn, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	return &txn, nil
}

// GetByPostID retrieves the transaction for a post, if any.
func (r *GORMTransactionRepository) GetByPostID(postID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.
		Preload("Post").
		Preload("Seller").
		Preload("Buyer").
		First(&txn, "post_id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction for post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction for post %s: %w", postID, err)
	}
	return &txn, nil
}

// Confirm applies one party's confirmation. The row is read under a
// row lock inside the transaction, so two concurrent confirmations
// serialize: both flags land and the completion side effect runs once.
func (r *GORMTransactionRepository) Confirm(id, userID string) (*models.Transaction, error) {
	var result *models.Transaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&txn, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("transaction with ID %s: %w", id, models.ErrNotFound)
			}
			return fmt.Errorf("failed to load transaction %s: %w", id, err)
		}

		switch userID {
		case txn.SellerID:
			if txn.SellerConfirmed {
				return fmt.Errorf("seller already confirmed transaction %s: %w", id, models.ErrConflict)
			}
			txn.SellerConfirmed = true
		case txn.BuyerID:
			if txn.BuyerConfirmed {
				return fmt.Errorf("buyer already confirmed transaction %s: %w", id, models.ErrConflict)
			}
			txn.BuyerConfirmed = true
		default:
			return fmt.Errorf("user %s is not a participant of transaction %s: %w", userID, id, models.ErrForbidden)
		}

		if txn.SellerConfirmed && txn.BuyerConfirmed && !txn.Completed {
			now := time.Now()
			txn.Completed = true
			txn.CompletedAt = &now
			for _, participantID := range []string{txn.SellerID, txn.BuyerID} {
				err := tx.Model(&models.User{}).
					Where("id = ?", participantID).
					UpdateColumn("success_trades", gorm.Expr("success_trades + ?", 1)).Error
				if err != nil {
					return fmt.Errorf("failed to increment success_trades for user %s: %w", participantID, err)
				}
			}
		}

		if err := tx.Save(&txn).Error; err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", id, err)
		}
		result = &txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListPendingForUser returns the user's uncompleted transactions,
// newest first, with post and participants attached.
func (r *GORMTransactionRepository) ListPendingForUser(userID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.
		Preload("Post").
		Preload("Seller").
		Preload("Buyer").
		Where("seller_id = ? OR buyer_id = ?", userID, userID).
		Where("completed = ?", false).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions for user %s: %w", userID, err)
	}
	return txns, nil
}
