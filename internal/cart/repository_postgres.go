package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const cartSelect = `
	SELECT ci.id, ci.quantity, ci.created_at,
	       p.id, p.name, p.description, p.price, p.image_url, p.category, p.created_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.user_id = $1
	ORDER BY ci.created_at`

func (r *PostgresRepository) GetCart(userID int) ([]Item, error) {
	rows, err := r.db.Query(cartSelect, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Quantity, &it.CreatedAt,
			&it.Product.ID, &it.Product.Name, &it.Product.Description, &it.Product.Price,
			&it.Product.ImageURL, &it.Product.Category, &it.Product.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) AddItem(userID, productID, quantity int) (Item, error) {
	var it Item
	it.Quantity = quantity
	err := r.db.QueryRow(`INSERT INTO cart_items (user_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at`, userID, productID, quantity).
		Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return Item{}, err
	}

	err = r.db.QueryRow(`SELECT id, name, description, price, image_url, category, created_at FROM products WHERE id = $1`, productID).
		Scan(&it.Product.ID, &it.Product.Name, &it.Product.Description, &it.Product.Price,
			&it.Product.ImageURL, &it.Product.Category, &it.Product.CreatedAt)
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *PostgresRepository) UpdateQuantity(userID, productID, quantity int) error {
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = $1 WHERE user_id = $2 AND product_id = $3`,
		quantity, userID, productID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) RemoveItem(userID, productID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
