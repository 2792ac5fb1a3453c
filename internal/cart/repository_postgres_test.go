package cart

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func cartRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "quantity", "created_at",
		"p_id", "p_name", "p_description", "p_price", "p_image_url", "p_category", "p_created_at",
	}).
		AddRow(1, 2, now, 10, "Fone Bluetooth", "Fone sem fio", "199.90", "/img/fone.png", "eletrônicos", now).
		AddRow(2, 1, now, 11, "Camiseta", "Camiseta básica", "49.90", "/img/camiseta.png", "roupas", now)
}

func TestGetCart_JoinsProducts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`(?s)SELECT .* FROM cart_items ci.*JOIN products p ON p.id = ci.product_id.*WHERE ci.user_id = \$1.*ORDER BY ci.created_at`).
		WithArgs(7).
		WillReturnRows(cartRows())

	items, err := repo.GetCart(7)
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Product.Name != "Fone Bluetooth" || items[0].Quantity != 2 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if !items[0].Product.Price.Equal(decimal.RequireFromString("199.90")) {
		t.Fatalf("unexpected price %s", items[0].Product.Price)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddItem_InsertsAndResolvesProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT INTO cart_items \(user_id, product_id, quantity, created_at\).*RETURNING id, created_at`).
		WithArgs(7, 10, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, now))
	mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "image_url", "category", "created_at"}).
			AddRow(10, "Fone Bluetooth", "Fone sem fio", "199.90", "/img/fone.png", "eletrônicos", now))

	it, err := repo.AddItem(7, 10, 3)
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if it.ID != 5 || it.Quantity != 3 || it.Product.ID != 10 {
		t.Fatalf("unexpected item: %+v", it)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateQuantity_MissingLine(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE cart_items SET quantity = \$1 WHERE user_id = \$2 AND product_id = \$3`).
		WithArgs(4, 7, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateQuantity(7, 99, 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestClear_DeletesAllLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.Clear(7); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
