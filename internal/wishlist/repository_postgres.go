package wishlist

import (
	"database/sql"

	"github.com/stgcatalog/storefront-backend/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetWishlist(userID int) ([]product.Product, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.name, p.description, p.price, p.image_url, p.category, p.created_at
		FROM wishlist w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]product.Product, 0)
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(userID, productID int) error {
	_, err := r.db.Exec(`INSERT INTO wishlist (user_id, product_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, product_id) DO NOTHING`, userID, productID)
	return err
}

// Remove deletes the entry if present; zero affected rows is still success.
func (r *PostgresRepository) Remove(userID, productID int) error {
	_, err := r.db.Exec(`DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}
