// The kiosk is the storefront terminal: browse the menu, build a cart,
// capture delivery details and check out through the order gateway.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tacotown/cart"
	"tacotown/catalog"
	"tacotown/checkout"
	"tacotown/config"
	"tacotown/gateway"
	"tacotown/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}
	cfg := config.Load()
	logger.New(logger.Options{Service: "tacotown-kiosk", Env: cfg.AppEnv, Level: cfg.LogLevel})

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load menu catalog: %v", err)
	}

	cartSlot, detailsSlot := openSlots(cfg)
	store := cart.NewStore(cat, cartSlot)
	store.BindBadge(func(text string, visible bool) {
		if visible {
			fmt.Printf("[cart: %s]\n", text)
		}
	})

	ctx := context.Background()
	store.Restore(ctx)

	co := &checkout.Checkout{
		Cart:        store,
		Gateway:     gateway.NewClient(cfg.APIBaseURL, ""),
		DetailsSlot: detailsSlot,
	}

	fmt.Println("Taco Town kiosk. Commands: menu, add <id>, inc <id>, dec <id>, rm <id>, cart, details <name> <phone> [email], checkout, quit")
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
		case "menu":
			printMenu(cat)
		case "add":
			if len(fields) > 1 {
				err = store.Add(ctx, fields[1])
			}
		case "inc":
			if len(fields) > 1 {
				err = store.ChangeQuantity(ctx, fields[1], 1)
			}
		case "dec":
			if len(fields) > 1 {
				err = store.ChangeQuantity(ctx, fields[1], -1)
			}
		case "rm":
			if len(fields) > 1 {
				err = store.Remove(ctx, fields[1])
			}
		case "cart":
			printCart(store)
		case "details":
			if len(fields) < 3 {
				fmt.Println("usage: details <name> <phone> [email]")
				continue
			}
			d := checkout.Details{Name: fields[1], Phone: fields[2]}
			if len(fields) > 3 {
				d.Email = fields[3]
			}
			err = checkout.SaveDetails(ctx, detailsSlot, d)
		case "checkout":
			order, cerr := co.Submit(ctx)
			if cerr != nil {
				fmt.Printf("checkout failed: %v\n", cerr)
				continue
			}
			fmt.Printf("order placed: %s, total ₹%.2f, status %s\n", order.OrderID, order.TotalAmount, order.Status)
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

// openSlots picks the cart backend: Redis when configured, a local file
// otherwise. Delivery details always live next to the cart.
func openSlots(cfg config.Config) (cart.Slot, cart.Slot) {
	if cfg.RedisURL != "" {
		cartSlot, err := cart.NewRedisSlot(cfg.RedisURL, "tacoCart")
		if err != nil {
			log.Fatalf("Failed to open redis cart slot: %v", err)
		}
		detailsSlot, err := cart.NewRedisSlot(cfg.RedisURL, "tacoCustomerData")
		if err != nil {
			log.Fatalf("Failed to open redis details slot: %v", err)
		}
		return cartSlot, detailsSlot
	}
	return &cart.FileSlot{Path: cfg.CartFile}, &cart.FileSlot{Path: cfg.CartFile + ".customer"}
}

func printMenu(cat *catalog.Catalog) {
	for _, c := range cat.Categories() {
		fmt.Printf("%s\n", c.Name)
		for _, item := range c.Items {
			fmt.Printf("  %-8s %-28s ₹%.0f\n", item.ID, item.Name, item.Price)
		}
	}
}

func printCart(store *cart.Store) {
	lines := store.Lines()
	if len(lines) == 0 {
		fmt.Println("Your cart is empty")
		return
	}
	for _, l := range lines {
		fmt.Printf("  %dx %-28s ₹%.2f\n", l.Quantity, l.Name, l.Price*float64(l.Quantity))
	}
	fmt.Printf("  total: ₹%.2f (%d items)\n", store.Total(), store.Count())
}
