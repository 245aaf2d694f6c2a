package fmp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/internal/formulas"
)

// statementLimit pulls the two most recent annual periods: index 0 is
// current, index 1 prior.
const statementLimit = 2

func (c *Client) getIncomeStatements(ctx context.Context, ticker string) ([]incomeStatement, error) {
	var out []incomeStatement
	err := c.getJSON(ctx, "/income-statement/"+ticker, annualParams(), &out)
	return out, err
}

func (c *Client) getBalanceSheets(ctx context.Context, ticker string) ([]balanceSheet, error) {
	var out []balanceSheet
	err := c.getJSON(ctx, "/balance-sheet-statement/"+ticker, annualParams(), &out)
	return out, err
}

func (c *Client) getCashFlows(ctx context.Context, ticker string) ([]cashFlowStatement, error) {
	var out []cashFlowStatement
	err := c.getJSON(ctx, "/cash-flow-statement/"+ticker, annualParams(), &out)
	return out, err
}

func annualParams() url.Values {
	params := url.Values{}
	params.Set("period", "annual")
	params.Set("limit", fmt.Sprint(statementLimit))
	return params
}

// BuildSnapshot assembles the normalized fundamental snapshot from the
// profile, quote and the two latest annual statements. A company with no
// statements at all is reported as ErrDataUnavailable; partially missing
// statements simply leave fields nil.
func (c *Client) BuildSnapshot(ctx context.Context, ticker string) (*formulas.FundamentalSnapshot, error) {
	snapshot := &formulas.FundamentalSnapshot{Ticker: ticker}

	quote, err := c.GetQuote(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if quote.Price > 0 {
		snapshot.Price = formulas.Float(quote.Price)
	}
	if quote.MarketCap > 0 {
		snapshot.MarketCap = formulas.Float(quote.MarketCap)
	}
	if quote.EPS != 0 {
		snapshot.EPS = formulas.Float(quote.EPS)
	}
	if quote.SharesOutstanding > 0 {
		snapshot.SharesOutstanding = formulas.Float(quote.SharesOutstanding)
	}

	income, err := c.getIncomeStatements(ctx, ticker)
	if err != nil {
		return nil, err
	}
	balance, err := c.getBalanceSheets(ctx, ticker)
	if err != nil {
		return nil, err
	}
	cashflow, err := c.getCashFlows(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if len(income) == 0 && len(balance) == 0 && len(cashflow) == 0 {
		return nil, fmt.Errorf("statements %s: %w", ticker, contracts.ErrDataUnavailable)
	}

	if len(income) > 0 {
		cur := income[0]
		snapshot.Revenue = cur.Revenue
		snapshot.GrossProfit = cur.GrossProfit
		snapshot.EBIT = cur.OperatingIncome
		snapshot.EBITDA = cur.EBITDA
		snapshot.SGA = cur.SGA
		snapshot.Depreciation = cur.Depreciation
		snapshot.NetIncome = cur.NetIncome
		if snapshot.SharesOutstanding == nil {
			snapshot.SharesOutstanding = cur.SharesOut
		}
		if snapshot.EPS == nil {
			snapshot.EPS = cur.EPS
		}
	}
	if len(income) > 1 {
		prior := income[1]
		snapshot.RevenuePrior = prior.Revenue
		snapshot.GrossProfitPrior = prior.GrossProfit
		snapshot.SGAPrior = prior.SGA
		snapshot.DepreciationPrior = prior.Depreciation
		snapshot.NetIncomePrior = prior.NetIncome
		snapshot.SharesOutstandingPrior = prior.SharesOut
	}

	if len(balance) > 0 {
		cur := balance[0]
		snapshot.TotalAssets = cur.TotalAssets
		snapshot.CurrentAssets = cur.CurrentAssets
		snapshot.CurrentLiabilities = cur.CurrentLiabilities
		snapshot.TotalLiabilities = cur.TotalLiabilities
		snapshot.TotalDebt = cur.TotalDebt
		snapshot.LongTermDebt = cur.LongTermDebt
		snapshot.Cash = cur.Cash
		snapshot.Receivables = cur.Receivables
		snapshot.Intangibles = cur.Intangibles
		snapshot.PPE = cur.PPE
		snapshot.RetainedEarnings = cur.RetainedEarnings
		snapshot.TotalEquity = cur.TotalEquity
	}
	if len(balance) > 1 {
		prior := balance[1]
		snapshot.TotalAssetsPrior = prior.TotalAssets
		snapshot.CurrentAssetsPrior = prior.CurrentAssets
		snapshot.CurrentLiabilitiesPrior = prior.CurrentLiabilities
		snapshot.LongTermDebtPrior = prior.LongTermDebt
		snapshot.ReceivablesPrior = prior.Receivables
		snapshot.PPEPrior = prior.PPE
	}

	if len(cashflow) > 0 {
		snapshot.OperatingCashFlow = cashflow[0].OperatingCashFlow
	}
	if len(cashflow) > 1 {
		snapshot.OperatingCashFlowPrior = cashflow[1].OperatingCashFlow
	}

	return snapshot, nil
}
