// Command listproducts prints the catalog, newest first. With -detail it
// prints every field of each product.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/home-accessories/backend/internal/db"
	"github.com/home-accessories/backend/internal/models"
	log "github.com/sirupsen/logrus"
)

func main() {
	detail := flag.Bool("detail", false, "print all fields per product")
	flag.Parse()

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		log.Fatal("missing required environment variables: DATABASE_URL")
	}

	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		log.Fatalf("database error: %v", errOpen)
	}

	var products []models.Product
	if errFind := conn.Order("created_at DESC, id DESC").Find(&products).Error; errFind != nil {
		log.Fatalf("query error: %v", errFind)
	}

	fmt.Printf("Found %d products:\n", len(products))
	for i, product := range products {
		if !*detail {
			fmt.Printf("%d. ID: %d, Name: %s, Image: %s\n", i+1, product.ID, product.Name, product.Image)
			continue
		}
		fmt.Printf("%d. ID: %d\n", i+1, product.ID)
		fmt.Printf("   Name: %s\n", product.Name)
		fmt.Printf("   Description: %s\n", product.Description)
		fmt.Printf("   Image: %s\n", product.Image)
		fmt.Printf("   Price: %.2f\n", product.Price)
		fmt.Printf("   Category: %s\n", product.Category)
		fmt.Printf("   KeyFeatures: %s\n", strings.Join(product.KeyFeatures, "; "))
		fmt.Printf("   Material: %s\n", product.Material)
		fmt.Printf("   Compatibility: %s\n", product.Compatibility)
		fmt.Printf("   BestFor: %s\n", product.BestFor)
		fmt.Printf("   Warranty: %s\n", product.Warranty)
		fmt.Printf("   CreatedAt: %s\n", product.CreatedAt)
	}
}
