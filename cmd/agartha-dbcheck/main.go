package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"agartha/internal/server"
)

func main() {
	dbPath := os.Getenv("AGARTHA_DB_PATH")
	if dbPath == "" {
		dbPath = "./data/agartha.db"
	}
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	db, err := server.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	tables, err := listTables(db)
	if err != nil {
		log.Fatalf("list tables failed: %v", err)
	}

	fmt.Println("Tables:")
	for _, name := range tables {
		fmt.Println(" -", name)
	}

	ctx := context.Background()
	store := server.NewSQLiteStore(db)
	ps, err := store.ListPractitioners(ctx)
	if err != nil {
		fmt.Println("Practitioners: unavailable:", err)
		return
	}
	fmt.Println("Practitioners:", len(ps))

	settings, err := store.GetSettings(ctx)
	if err != nil {
		fmt.Println("Settings: unavailable:", err)
		return
	}
	fmt.Println("Settings present:", settings != nil)
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}
