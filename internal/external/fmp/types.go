package fmp

// Wire types for the Financial Modeling Prep v3 API. Numeric fields the
// snapshot treats as optional are pointers so absent JSON keys stay
// distinguishable from real zeros.

type profileResponse struct {
	Symbol            string   `json:"symbol"`
	CompanyName       string   `json:"companyName"`
	Exchange          string   `json:"exchangeShortName"`
	Sector            string   `json:"sector"`
	Industry          string   `json:"industry"`
	Price             *float64 `json:"price"`
	MktCap            *float64 `json:"mktCap"`
	IsETF             bool     `json:"isEtf"`
	IsActivelyTrading bool     `json:"isActivelyTrading"`
}

type quoteResponse struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ChangesPercentage float64 `json:"changesPercentage"`
	MarketCap         float64 `json:"marketCap"`
	Volume            float64 `json:"volume"`
	EPS               float64 `json:"eps"`
	PE                float64 `json:"pe"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
}

type incomeStatement struct {
	Date            string   `json:"date"`
	Revenue         *float64 `json:"revenue"`
	GrossProfit     *float64 `json:"grossProfit"`
	OperatingIncome *float64 `json:"operatingIncome"`
	EBITDA          *float64 `json:"ebitda"`
	SGA             *float64 `json:"sellingGeneralAndAdministrativeExpenses"`
	Depreciation    *float64 `json:"depreciationAndAmortization"`
	NetIncome       *float64 `json:"netIncome"`
	EPS             *float64 `json:"eps"`
	SharesOut       *float64 `json:"weightedAverageShsOut"`
}

type balanceSheet struct {
	Date               string   `json:"date"`
	TotalAssets        *float64 `json:"totalAssets"`
	CurrentAssets      *float64 `json:"totalCurrentAssets"`
	CurrentLiabilities *float64 `json:"totalCurrentLiabilities"`
	TotalLiabilities   *float64 `json:"totalLiabilities"`
	TotalDebt          *float64 `json:"totalDebt"`
	LongTermDebt       *float64 `json:"longTermDebt"`
	Cash               *float64 `json:"cashAndCashEquivalents"`
	Receivables        *float64 `json:"netReceivables"`
	Intangibles        *float64 `json:"goodwillAndIntangibleAssets"`
	PPE                *float64 `json:"propertyPlantEquipmentNet"`
	RetainedEarnings   *float64 `json:"retainedEarnings"`
	TotalEquity        *float64 `json:"totalStockholdersEquity"`
}

type cashFlowStatement struct {
	Date              string   `json:"date"`
	OperatingCashFlow *float64 `json:"operatingCashFlow"`
}

type historicalBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// historical-price-full wraps the bars, newest first.
type historicalResponse struct {
	Symbol     string          `json:"symbol"`
	Historical []historicalBar `json:"historical"`
}

type earningsCalendarEntry struct {
	Date         string   `json:"date"`
	Symbol       string   `json:"symbol"`
	EPSEstimated *float64 `json:"epsEstimated"`
	EPSActual    *float64 `json:"eps"`
}

type indexQuoteResponse struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ChangesPercentage float64 `json:"changesPercentage"`
}

// sector-performance reports the change as a string like "1.23%".
type sectorPerformanceResponse struct {
	Sector            string `json:"sector"`
	ChangesPercentage string `json:"changesPercentage"`
}

type moverResponse struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ChangesPercentage float64 `json:"changesPercentage"`
}

type newsItem struct {
	Symbol        string `json:"symbol"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	Site          string `json:"site"`
	PublishedDate string `json:"publishedDate"`
}

type constituentResponse struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	SubSector string `json:"subSector"`
}
