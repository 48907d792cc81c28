package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rl1809/inventory-ledger/internal/adapter/handler"
)

const (
	defaultGRPCAddr = "localhost:50051"
	itemID          = "stress-item"
	initialStock    = 20
	totalRequests   = 50
)

func main() {
	addr := flag.String("addr", defaultGRPCAddr, "inventory gRPC address")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to connect inventory server: %v", err)
	}
	defer conn.Close()

	client := handler.NewInventoryClient(conn)

	// Drain whatever is left of the item, then seed it
	current, err := client.GetQuantity(ctx, &handler.GetQuantityRequest{Item: itemID})
	if err != nil {
		log.Fatalf("failed to read stock: %v", err)
	}
	if current.Quantity != "0" {
		if _, err := client.RemoveItem(ctx, &handler.RemoveItemRequest{Item: itemID, Quantity: current.Quantity}); err != nil {
			log.Fatalf("failed to clear stock: %v", err)
		}
	}
	resp, err := client.AddItem(ctx, &handler.AddItemRequest{Item: itemID, Quantity: strconv.Itoa(initialStock)})
	if err != nil || !resp.Success {
		log.Fatalf("failed to set stock: %v %v", err, resp)
	}

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := client.RemoveItem(ctx, &handler.RemoveItemRequest{Item: itemID, Quantity: "1"})
			if err == nil && resp.Success {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == int32(initialStock) && fail == int32(totalRequests-initialStock) {
		fmt.Printf("PASS: Exactly %d removals succeeded, %d failed\n", initialStock, totalRequests-initialStock)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d fail, got %d/%d\n",
			initialStock, totalRequests-initialStock, success, fail)
	}

	final, err := client.GetQuantity(ctx, &handler.GetQuantityRequest{Item: itemID})
	if err != nil {
		log.Fatalf("failed to read final stock: %v", err)
	}
	fmt.Printf("Final Stock: %s\n", final.Quantity)

	if final.Quantity == "0" {
		fmt.Println("PASS: Stock depleted to 0")
	} else {
		fmt.Printf("FAIL: Expected stock 0, got %s\n", final.Quantity)
	}
}
