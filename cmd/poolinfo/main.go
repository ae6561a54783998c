// poolinfo fetches the four Braiins Pool endpoints once and prints a
// summary. The API key comes from BRAIINS_API_KEY.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shadowylab/braiinspool/pkg/braiins"
)

func main() {
	proxy := flag.String("proxy", "", "optional SOCKS5 proxy (host:port)")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	apiKey := os.Getenv("BRAIINS_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "BRAIINS_API_KEY is not set")
		os.Exit(1)
	}

	opts := []braiins.Option{braiins.WithTimeout(*timeout)}
	if *proxy != "" {
		opts = append(opts, braiins.WithSOCKS5Proxy(*proxy))
	}

	client, err := braiins.New(apiKey, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "client setup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *proxy != "" {
		isTor, err := client.CheckTorConnection(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tor check failed: %v\n", err)
		} else {
			fmt.Printf("🧅 Tor exit: %v\n\n", isTor)
		}
	}

	stats, err := client.PoolStats(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pool stats failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("=== Pool ===")
	fmt.Printf("   5m/60m/24h: %s | %s | %s\n", stats.HashRate5m, stats.HashRate60m, stats.HashRate24h)
	fmt.Printf("   FPPS rate:  %.8f\n", stats.FPPSRate)
	fmt.Printf("   Blocks:     %d\n\n", len(stats.Blocks))

	profile, err := client.UserProfile(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "user profile failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("=== Account ===")
	fmt.Printf("   Confirmed:   %.8f BTC\n", profile.ConfirmedReward)
	fmt.Printf("   Unconfirmed: %.8f BTC\n", profile.UnconfirmedReward)
	fmt.Printf("   Scoring:     %s\n", profile.HashRateScoring)
	fmt.Printf("   Workers:     %d ok / %d low / %d off / %d disabled\n\n",
		profile.OkWorkers, profile.LowWorkers, profile.OffWorkers, profile.DisabledWorkers)

	rewards, err := client.DailyRewards(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "daily rewards failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("=== Daily rewards ===")
	for _, r := range rewards {
		day := time.Unix(r.Date, 0).UTC().Format("2006-01-02")
		fmt.Printf("   %s  %.8f BTC\n", day, r.TotalReward)
	}
	fmt.Println()

	workers, err := client.Workers(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "workers failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("=== Workers ===")
	for id, w := range workers {
		fmt.Printf("   %-24s %-4s %s\n", id, w.State, w.HashRate5m)
	}
}
