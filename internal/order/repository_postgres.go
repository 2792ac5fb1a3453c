package order

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrder(ord Order) (Order, error) {
	err := r.db.QueryRow(`INSERT INTO orders (reference, user_id, total, status, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, created_at`,
		ord.Reference, ord.UserID, ord.Total, ord.Status).
		Scan(&ord.ID, &ord.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) CreateLineItems(orderID int, items []LineItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		if _, err := tx.Exec(`INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			orderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresRepository) SetStatus(orderID int, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT id, reference, user_id, total, status, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(&ord.ID, &ord.Reference, &ord.UserID, &ord.Total, &ord.Status, &ord.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}
