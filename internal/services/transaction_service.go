package services

import (
	"encoding/json"
	"fmt"
	"log"

	"campustrade/internal/models"
	"campustrade/internal/repositories"
	"campustrade/pkg/rabbitmq"
)

// TransactionService drives the two-sided confirmation handshake that
// finalizes a sale.
type TransactionService struct {
	transactionRepo repositories.TransactionRepository
	postRepo        repositories.PostRepository
	userRepo        repositories.UserRepository
	mqClient        *rabbitmq.Client
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo repositories.TransactionRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		mqClient:        mqClient,
	}
}

// CreateTransaction opens the handshake for a post. The caller must be
// the post's owner, the buyer must be an existing distinct user, and
// the post must not already have a transaction. On success the post is
// atomically marked sold.
func (s *TransactionService) CreateTransaction(postID, sellerID, buyerID string) (*models.Transaction, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != sellerID {
		return nil, fmt.Errorf("only the post owner can create a transaction: %w", models.ErrForbidden)
	}
	if buyerID == sellerID {
		return nil, fmt.Errorf("cannot pick yourself as buyer: %w", models.ErrInvalidArgument)
	}
	if _, err := s.userRepo.GetByID(buyerID); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		PostID:   postID,
		SellerID: sellerID,
		BuyerID:  buyerID,
	}
	if err := s.transactionRepo.CreateForPost(txn); err != nil {
		return nil, err
	}

	s.publishEvent("trade.created", map[string]interface{}{
		"transaction_id": txn.ID,
		"post_id":        txn.PostID,
		"seller_id":      txn.SellerID,
		"buyer_id":       txn.BuyerID,
	})
	return txn, nil
}

// Confirm applies the acting user's confirmation. When the second
// confirmation lands the repository completes the transaction and
// bumps both success_trades counters in the same store transaction;
// this method only reports the outcome.
func (s *TransactionService) Confirm(transactionID, actorID string) (*models.Transaction, error) {
	txn, err := s.transactionRepo.Confirm(transactionID, actorID)
	if err != nil {
		return nil, err
	}

	if txn.Completed {
		event := map[string]interface{}{
			"transaction_id": txn.ID,
			"post_id":        txn.PostID,
			"seller_id":      txn.SellerID,
			"buyer_id":       txn.BuyerID,
		}
		if txn.CompletedAt != nil {
			event["completed_at"] = txn.CompletedAt
		}
		s.publishEvent("trade.completed", event)
	}
	return txn, nil
}

// ListPending returns the user's uncompleted transactions, newest first.
func (s *TransactionService) ListPending(userID string) ([]models.Transaction, error) {
	return s.transactionRepo.ListPendingForUser(userID)
}

// GetTransaction returns a transaction by ID if the actor participates
// in it.
func (s *TransactionService) GetTransaction(transactionID, actorID string) (*models.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if txn.SellerID != actorID && txn.BuyerID != actorID {
		return nil, fmt.Errorf("user %s is not a participant of transaction %s: %w", actorID, transactionID, models.ErrForbidden)
	}
	return txn, nil
}

// publishEvent is fire-and-forget: a broker outage must never fail the
// owning mutation.
func (s *TransactionService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("trade", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
