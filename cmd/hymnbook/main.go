package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/mbarreto/hymnbook/internal/book"
	"github.com/mbarreto/hymnbook/internal/cache"
	"github.com/mbarreto/hymnbook/internal/db"
	"github.com/mbarreto/hymnbook/internal/logger"
	"github.com/mbarreto/hymnbook/internal/notify"
)

func main() {
	var (
		dir       string
		useDB     bool
		useCache  bool
		useNotify bool
	)

	flag.StringVar(&dir, "dir", "pdf_books", "Directory with songbook files to process")
	flag.BoolVar(&useDB, "db", false, "Save extracted books to the database")
	flag.BoolVar(&useCache, "cache", false, "Skip files unchanged since the last run")
	flag.BoolVar(&useNotify, "notify", false, "Send the final report to the Telegram channel")
	flag.Parse()

	fmt.Println("============================================================")
	fmt.Println("HYMNAL AND SONGBOOK EXTRACTOR")
	fmt.Println("============================================================")
	fmt.Println()

	ctx := context.Background()

	var store book.Store
	if useDB {
		manager, err := db.NewManager()
		if err != nil {
			log.Fatalf("database unavailable: %v", err)
		}
		defer manager.Close()
		if err := manager.InitSchema(ctx); err != nil {
			log.Fatalf("failed to initialize schema: %v", err)
		}
		store = manager
		fmt.Println("   Database: available")
	} else {
		fmt.Println("   Database: disabled")
	}

	var docCache book.Cache
	if useCache {
		manager, err := cache.NewManager()
		if err != nil {
			log.Fatalf("cache unavailable: %v", err)
		}
		docCache = manager
		fmt.Println("   Cache: available")
	} else {
		fmt.Println("   Cache: disabled")
	}

	var notifier *notify.Telegram
	if useNotify {
		n, err := notify.NewTelegram()
		if err != nil {
			log.Fatalf("notifier unavailable: %v", err)
		}
		notifier = n
		logger.Init(n)
		fmt.Println("   Notifications: available")
	} else {
		fmt.Println("   Notifications: disabled")
	}
	fmt.Println()

	processor := book.NewProcessor(dir, store, docCache)
	if err := processor.ProcessAll(ctx); err != nil {
		log.Fatalf("processing failed: %v", err)
	}

	summary := processor.Reporter().Summary()
	fmt.Println()
	fmt.Println(summary)

	if notifier.Available() {
		if err := notifier.SendMessage(summary); err != nil {
			log.Printf("failed to send report: %v", err)
		}
	}

	fmt.Println("Process finished!")
	fmt.Println("Check the generated files inside the processing directory")
}
