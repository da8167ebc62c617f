package main

import (
	"context"
	"log"

	"github.com/Apurer/petcare-reminders/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("reminders api: %v", err)
	}
}
