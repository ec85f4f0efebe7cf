package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/bayanihan-ph/relief-backend/internal/data/db"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/beneficiary"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/qualification"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/registry"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
	"github.com/bayanihan-ph/relief-backend/internal/services"
)

// rosterprint renders the qualified-beneficiary roster of a calamity as a
// terminal table. It talks straight to the database and skips the cache.
func main() {
	calamityName := flag.String("calamity", "", "calamity name to print the roster for (required)")
	status := flag.String("status", services.StatusAll, "filter rows: all, claimed or unclaimed")
	search := flag.String("search", "", "filter rows by beneficiary name")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using process environment")
	}

	log, err := logger.New("production")
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dbService, err := db.New(log)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	theDB := dbService.DB()

	calamityRepo := registry.NewCalamityRepo(theDB, log)
	qualificationRepo := qualification.NewQualificationRepo(theDB, log)
	beneficiaryRepo := beneficiary.NewBeneficiaryRepo(theDB, log)
	roster := services.NewRosterService(log, calamityRepo, qualificationRepo, beneficiaryRepo, nil)

	ctx := context.Background()

	if *calamityName == "" {
		listCalamities(ctx, calamityRepo)
		os.Exit(2)
	}

	calamity, err := calamityRepo.GetByName(ctx, nil, strings.TrimSpace(*calamityName))
	if err != nil {
		fmt.Printf("calamity %q not found\n", *calamityName)
		listCalamities(ctx, calamityRepo)
		os.Exit(1)
	}

	rows, err := roster.Load(ctx, calamity.ID)
	if err != nil {
		log.Error("failed to load roster", "calamity", calamity.Name, "error", err)
		os.Exit(1)
	}
	rows = services.FilterRows(rows, *search, *status)

	title := color.New(color.FgCyan, color.Bold)
	title.Printf("Qualified beneficiaries: %s\n", calamity.Name)
	fmt.Printf("%d row(s)\n\n", len(rows))

	claimed := color.New(color.FgGreen).SprintFunc()
	unclaimed := color.New(color.FgYellow).SprintFunc()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Name", "Age", "Mobile", "Cost", "Donation Type", "Status", "Date Claimed", "Address"})
	for _, row := range rows {
		statusCell := unclaimed("Unclaimed")
		dateCell := ""
		if row.IsClaimed {
			statusCell = claimed("Claimed")
			if row.DateClaimed != nil {
				dateCell = row.DateClaimed.Format("Jan 2, 2006")
			}
		}
		table.Append([]string{
			fmt.Sprintf("%d", row.Index),
			row.Name,
			fmt.Sprintf("%d", row.Age),
			row.Mobile,
			row.Cost,
			strings.Join(row.DonationTypes, ", "),
			statusCell,
			dateCell,
			row.Address,
		})
	}
	table.Render()
}

func listCalamities(ctx context.Context, repo registry.CalamityRepo) {
	calamities, err := repo.List(ctx, nil)
	if err != nil || len(calamities) == 0 {
		fmt.Println("no calamities on record")
		return
	}
	fmt.Println("known calamities:")
	for _, c := range calamities {
		fmt.Printf("  %s\n", c.Name)
	}
}
