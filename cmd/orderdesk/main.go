// The order desk is the operator terminal: it lists orders, drives the
// lifecycle (accept, reject, deliver, delete) and rings a bell when new
// orders arrive.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tacotown/config"
	"tacotown/gateway"
	"tacotown/logger"
	"tacotown/models"
	"tacotown/orderdesk"
	"tacotown/watcher"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}
	cfg := config.Load()
	slogger := logger.New(logger.Options{Service: "tacotown-orderdesk", Env: cfg.AppEnv, Level: cfg.LogLevel})

	client := gateway.NewClient(cfg.APIBaseURL, cfg.OperatorToken)
	desk := orderdesk.New(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := desk.Refresh(ctx); err != nil {
		log.Fatalf("Failed to fetch orders: %v", err)
	}

	w := watcher.New(client, func(count int) {
		fmt.Printf("\a🌮 New order received! You have %d new order(s) waiting.\n", count)
	}, slogger)
	go w.Run(ctx, cfg.PollInterval)

	fmt.Println("Taco Town order desk. Commands: ls [status], accept <id>, reject <id>, deliver <id>, delete <id>, refresh, quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "ls":
			orders := desk.Orders()
			if len(fields) > 1 {
				if st, ok := models.ParseStatus(fields[1]); ok {
					orders = desk.Filter(st)
				}
			}
			printOrders(orders)
		case "accept":
			if len(fields) > 1 {
				err = desk.Accept(ctx, fields[1])
			}
		case "reject":
			if len(fields) > 1 {
				err = desk.Reject(ctx, fields[1])
			}
		case "deliver":
			if len(fields) > 1 {
				err = desk.Deliver(ctx, fields[1])
			}
		case "delete":
			if len(fields) > 1 {
				err = desk.Delete(ctx, fields[1])
			}
		case "refresh":
			err = desk.Refresh(ctx)
			if err == nil {
				err = w.Poll(ctx)
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command")
		}
		if err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func printOrders(orders []models.Order) {
	if len(orders) == 0 {
		fmt.Println("no orders")
		return
	}
	for _, o := range orders {
		fmt.Printf("  %-12s %-10s ₹%-8.2f %s (%s)\n",
			o.OrderID, o.Status, o.TotalAmount, o.CustomerName, o.CreatedAt.Local().Format("02 Jan 15:04"))
	}
}
