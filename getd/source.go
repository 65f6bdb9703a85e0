package getd

import "github.com/stockagent/datapipe/fetch"

//Source is the upstream surface the dataset jobs pull from. The
//concrete implementation is fetch.Provider; jobs depend on this
//interface so tests can stub the network away.
type Source interface {
	StockList() (*fetch.Table, error)
	CompanyInfo(code string) (*fetch.Table, error)
	FinanceAbstract(code string) (*fetch.Table, error)
	DailyKline(code, start, end string) (*fetch.Table, error)
	ValuationDaily(code string) (*fetch.Table, error)
	SectorList() (*fetch.Table, error)
	SectorDaily(boardCode, start, end string) (*fetch.Table, error)
	News(code string) (*fetch.Table, error)
	AnalystRank(year string) (*fetch.Table, error)
	AnalystCoverage(analystID string) (*fetch.Table, error)
}
