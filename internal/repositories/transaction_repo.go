package repositories

import "campustrade/internal/models"

// TransactionRepository defines the interface for the sale-confirmation
// records. The multi-step mutations (create + post status flip,
// confirm + counter increments) are atomic at this layer: callers see
// either the full effect or none.
type TransactionRepository interface {
	// CreateForPost inserts the transaction and marks its post sold in
	// one store transaction. Returns ErrConflict if the post already
	// has a transaction.
	CreateForPost(txn *models.Transaction) error
	GetByID(id string) (*models.Transaction, error)
	GetByPostID(postID string) (*models.Transaction, error)
	// Confirm applies one party's confirmation as a transactional
	// read-modify-write. When the second flag lands it also flips
	// completed, stamps the completion time and increments both
	// participants' success_trades, all in the same store transaction
	// so the increments fire exactly once per transaction.
	//
	// Returns ErrForbidden if userID is not a participant and
	// ErrConflict if that party already confirmed.
	Confirm(id, userID string) (*models.Transaction, error)
	// ListPendingForUser returns the user's uncompleted transactions,
	// newest first.
	ListPendingForUser(userID string) ([]models.Transaction, error)
}
