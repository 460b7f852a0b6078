package app

import "github.com/dwikikusuma/warung-pos/internal/catalog/domain"

// DefaultProducts is the starter catalog of a small warung, loaded on first
// run when the catalog is empty.
var DefaultProducts = []domain.Product{
	{Name: "Indomie Goreng", Price: 3000, Category: "Makanan"},
	{Name: "Indomie Soto", Price: 3000, Category: "Makanan"},
	{Name: "Indomie Ayam Bawang", Price: 3000, Category: "Makanan"},
	{Name: "Mie Sedaap Goreng", Price: 3000, Category: "Makanan"},

	{Name: "Teh Botol Sosro", Price: 4000, Category: "Minuman"},
	{Name: "Aqua 600ml", Price: 3500, Category: "Minuman"},
	{Name: "Fruit Tea", Price: 4500, Category: "Minuman"},
	{Name: "Coca Cola 250ml", Price: 5000, Category: "Minuman"},
	{Name: "Susu Ultra 250ml", Price: 5000, Category: "Minuman"},
	{Name: "Susu Dancow Sachet", Price: 2500, Category: "Minuman"},

	{Name: "Chitato", Price: 8000, Category: "Snack"},
	{Name: "Taro", Price: 7000, Category: "Snack"},
	{Name: "Oreo", Price: 10000, Category: "Snack"},

	{Name: "Telur 1 Butir", Price: 2500, Category: "Kebutuhan"},
	{Name: "Gula Pasir 1kg", Price: 15000, Category: "Kebutuhan"},
	{Name: "Kopi Kapal Api Sachet", Price: 2000, Category: "Kebutuhan"},
}
