// Package universe maintains the company directory the pipeline screens
// over: a curated seed plus an S&P 500 constituent sync.
package universe

import "github.com/fincentral/backend/internal/contracts"

// SeedCompanies returns the built-in starter universe used before the
// first constituent sync and as the fallback when every upstream source
// is down. Market caps are filled in by the daily quote fetch.
func SeedCompanies() []*contracts.Company {
	seed := []struct {
		ticker, name, sector, industry string
		etf                            bool
	}{
		{"AAPL", "Apple Inc.", "Technology", "Consumer Electronics", false},
		{"MSFT", "Microsoft Corporation", "Technology", "Software - Infrastructure", false},
		{"GOOGL", "Alphabet Inc.", "Communication Services", "Internet Content & Information", false},
		{"AMZN", "Amazon.com Inc.", "Consumer Cyclical", "Internet Retail", false},
		{"NVDA", "NVIDIA Corporation", "Technology", "Semiconductors", false},
		{"META", "Meta Platforms Inc.", "Communication Services", "Internet Content & Information", false},
		{"BRK-B", "Berkshire Hathaway Inc.", "Financial Services", "Insurance - Diversified", false},
		{"JPM", "JPMorgan Chase & Co.", "Financial Services", "Banks - Diversified", false},
		{"V", "Visa Inc.", "Financial Services", "Credit Services", false},
		{"JNJ", "Johnson & Johnson", "Healthcare", "Drug Manufacturers - General", false},
		{"UNH", "UnitedHealth Group Inc.", "Healthcare", "Healthcare Plans", false},
		{"XOM", "Exxon Mobil Corporation", "Energy", "Oil & Gas Integrated", false},
		{"CVX", "Chevron Corporation", "Energy", "Oil & Gas Integrated", false},
		{"PG", "Procter & Gamble Co.", "Consumer Defensive", "Household & Personal Products", false},
		{"KO", "The Coca-Cola Company", "Consumer Defensive", "Beverages - Non-Alcoholic", false},
		{"PEP", "PepsiCo Inc.", "Consumer Defensive", "Beverages - Non-Alcoholic", false},
		{"WMT", "Walmart Inc.", "Consumer Defensive", "Discount Stores", false},
		{"COST", "Costco Wholesale Corporation", "Consumer Defensive", "Discount Stores", false},
		{"HD", "The Home Depot Inc.", "Consumer Cyclical", "Home Improvement Retail", false},
		{"MCD", "McDonald's Corporation", "Consumer Cyclical", "Restaurants", false},
		{"DIS", "The Walt Disney Company", "Communication Services", "Entertainment", false},
		{"NFLX", "Netflix Inc.", "Communication Services", "Entertainment", false},
		{"INTC", "Intel Corporation", "Technology", "Semiconductors", false},
		{"AMD", "Advanced Micro Devices Inc.", "Technology", "Semiconductors", false},
		{"CSCO", "Cisco Systems Inc.", "Technology", "Communication Equipment", false},
		{"ORCL", "Oracle Corporation", "Technology", "Software - Infrastructure", false},
		{"CRM", "Salesforce Inc.", "Technology", "Software - Application", false},
		{"PFE", "Pfizer Inc.", "Healthcare", "Drug Manufacturers - General", false},
		{"MRK", "Merck & Co. Inc.", "Healthcare", "Drug Manufacturers - General", false},
		{"ABBV", "AbbVie Inc.", "Healthcare", "Drug Manufacturers - General", false},
		{"T", "AT&T Inc.", "Communication Services", "Telecom Services", false},
		{"VZ", "Verizon Communications Inc.", "Communication Services", "Telecom Services", false},
		{"BA", "The Boeing Company", "Industrials", "Aerospace & Defense", false},
		{"CAT", "Caterpillar Inc.", "Industrials", "Farm & Heavy Construction Machinery", false},
		{"GE", "GE Aerospace", "Industrials", "Aerospace & Defense", false},
		{"F", "Ford Motor Company", "Consumer Cyclical", "Auto Manufacturers", false},
		{"GM", "General Motors Company", "Consumer Cyclical", "Auto Manufacturers", false},
		{"NEE", "NextEra Energy Inc.", "Utilities", "Utilities - Regulated Electric", false},
		{"DUK", "Duke Energy Corporation", "Utilities", "Utilities - Regulated Electric", false},
		{"SPY", "SPDR S&P 500 ETF Trust", "", "", true},
		{"QQQ", "Invesco QQQ Trust", "", "", true},
		{"IWM", "iShares Russell 2000 ETF", "", "", true},
	}

	out := make([]*contracts.Company, len(seed))
	for i, s := range seed {
		out[i] = &contracts.Company{
			Ticker:   s.ticker,
			Name:     s.name,
			Sector:   s.sector,
			Industry: s.industry,
			IsETF:    s.etf,
			IsActive: true,
		}
	}
	return out
}
