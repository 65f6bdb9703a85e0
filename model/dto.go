package model

import (
	"database/sql"
	"fmt"
)

//DBTab identifies a target table.
type DBTab string

const (
	BASICS            DBTab = "basics"
	COMPANY_INFO      DBTab = "company_info"
	FINANCE_INFO      DBTab = "finance_info"
	INDIVIDUAL_STOCK  DBTab = "individual_stock"
	STOCK_A_INDICATOR DBTab = "stock_a_indicator"
	SECTOR            DBTab = "sector"
	STOCK_NEWS        DBTab = "stock_news"
	ANALYST           DBTab = "analyst"
	TECH1             DBTab = "tech1"
	TECH2             DBTab = "tech2"
)

//Categorical signal labels. These are closed sets; nothing else may be
//written to the signal columns.
const (
	SigGoldenCross = "金叉"
	SigDeathCross  = "死叉"
	SigOverbought  = "超买"
	SigOversold    = "超卖"
	SigNeutral     = "中性"
)

//Stock is one element of the symbol universe.
type Stock struct {
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	LatestPrice sql.NullFloat64 `db:"latest_price"`
	ChangePct   sql.NullFloat64 `db:"change_percent"`
}

func (s *Stock) String() string {
	return fmt.Sprintf("%s[%s]", s.Code, s.Name)
}

//Stocks is an order-preserving stock set keyed by code.
type Stocks struct {
	List []*Stock
	idx  map[string]int
}

//Add appends stocks not already present.
func (l *Stocks) Add(stks ...*Stock) {
	if l.idx == nil {
		l.idx = make(map[string]int)
	}
	for _, s := range stks {
		if _, exists := l.idx[s.Code]; !exists {
			l.idx[s.Code] = len(l.List)
			l.List = append(l.List, s)
		}
	}
}

//Size returns the number of stocks in the set.
func (l *Stocks) Size() int {
	return len(l.List)
}

//Codes returns the stock codes in insertion order.
func (l *Stocks) Codes() []string {
	cs := make([]string, len(l.List))
	for i, s := range l.List {
		cs[i] = s.Code
	}
	return cs
}

//CompanyInfo is the per-symbol company profile. Replaced wholesale on
//each run.
type CompanyInfo struct {
	StockCode          string          `db:"stock_code"`
	StockName          sql.NullString  `db:"stock_name"`
	Industry           sql.NullString  `db:"industry"`
	IPODate            sql.NullString  `db:"ipo_date"`
	TotalShares        sql.NullFloat64 `db:"total_shares"`
	FloatShares        sql.NullFloat64 `db:"float_shares"`
	TotalMarketCap100M sql.NullFloat64 `db:"total_market_cap_100M"`
	FloatMarketCap100M sql.NullFloat64 `db:"float_market_cap_100M"`
	SnapDate           string          `db:"snap_date"`
	EtlDate            string          `db:"etl_date"`
	BizDate            int64           `db:"biz_date"`
}

//FinanceInfo is one quarterly report row, keyed (stock_code, report_date).
//Monetary columns are 亿元; yoy/margin/roe/ratio columns are fractions.
type FinanceInfo struct {
	StockCode              string          `db:"stock_code"`
	StockName              sql.NullString  `db:"stock_name"`
	ReportDate             string          `db:"report_date"`
	NetProfit100M          sql.NullFloat64 `db:"net_profit_100M"`
	NetProfitYoy           sql.NullFloat64 `db:"net_profit_yoy"`
	NetProfitExclNr100M    sql.NullFloat64 `db:"net_profit_excl_nr_100M"`
	NetProfitExclNrYoy     sql.NullFloat64 `db:"net_profit_excl_nr_yoy"`
	TotalRevenue100M       sql.NullFloat64 `db:"total_revenue_100M"`
	TotalRevenueYoy        sql.NullFloat64 `db:"total_revenue_yoy"`
	BasicEps               sql.NullFloat64 `db:"basic_eps"`
	NetAssetPs             sql.NullFloat64 `db:"net_asset_ps"`
	CapitalReservePs       sql.NullFloat64 `db:"capital_reserve_ps"`
	RetainedEarningsPs     sql.NullFloat64 `db:"retained_earnings_ps"`
	OpCashFlowPs           sql.NullFloat64 `db:"op_cash_flow_ps"`
	NetMargin              sql.NullFloat64 `db:"net_margin"`
	GrossMargin            sql.NullFloat64 `db:"gross_margin"`
	Roe                    sql.NullFloat64 `db:"roe"`
	RoeDiluted             sql.NullFloat64 `db:"roe_diluted"`
	OpCycle                sql.NullFloat64 `db:"op_cycle"`
	InventoryTurnoverRatio sql.NullFloat64 `db:"inventory_turnover_ratio"`
	InventoryTurnoverDays  sql.NullFloat64 `db:"inventory_turnover_days"`
	ArTurnoverDays         sql.NullFloat64 `db:"ar_turnover_days"`
	CurrentRatio           sql.NullFloat64 `db:"current_ratio"`
	QuickRatio             sql.NullFloat64 `db:"quick_ratio"`
	ConQuickRatio          sql.NullFloat64 `db:"con_quick_ratio"`
	DebtEqRatio            sql.NullFloat64 `db:"debt_eq_ratio"`
	DebtAssetRatio         sql.NullFloat64 `db:"debt_asset_ratio"`
	SnapDate               string          `db:"snap_date"`
	EtlDate                string          `db:"etl_date"`
	BizDate                int64           `db:"biz_date"`
}

//IndividualStock is one forward-adjusted daily quote, keyed
//(Stock_Code, Date). Amount is 亿元.
type IndividualStock struct {
	StockCode          string          `db:"Stock_Code"`
	Date               string          `db:"Date"`
	Open               float64         `db:"Open"`
	Close              float64         `db:"Close"`
	High               float64         `db:"High"`
	Low                float64         `db:"Low"`
	Volume             float64         `db:"Volume"`
	Amount100M         sql.NullFloat64 `db:"Amount_100M"`
	Amplitude          sql.NullFloat64 `db:"Amplitude"`
	PriceChangePercent sql.NullFloat64 `db:"Price_Change_percent"`
	PriceChange        sql.NullFloat64 `db:"Price_Change"`
	TurnoverRate       sql.NullFloat64 `db:"Turnover_Rate"`
	EtlDate            string          `db:"etl_date"`
	BizDate            int64           `db:"biz_date"`
}

//StockAIndicator is one daily valuation row, keyed (stock_code, trade_date).
type StockAIndicator struct {
	StockCode     string          `db:"stock_code"`
	StockName     sql.NullString  `db:"stock_name"`
	TradeDate     string          `db:"trade_date"`
	Pe            sql.NullFloat64 `db:"pe"`
	PeTtm         sql.NullFloat64 `db:"pe_ttm"`
	Pb            sql.NullFloat64 `db:"pb"`
	Ps            sql.NullFloat64 `db:"ps"`
	PsTtm         sql.NullFloat64 `db:"ps_ttm"`
	DvRatio       sql.NullFloat64 `db:"dv_ratio"`
	DvTtm         sql.NullFloat64 `db:"dv_ttm"`
	TotalMv100M   sql.NullFloat64 `db:"total_mv_100M"`
	EarningsYield sql.NullFloat64 `db:"earnings_yield"`
	PbInverse     sql.NullFloat64 `db:"pb_inverse"`
	GrahamIndex   sql.NullFloat64 `db:"graham_index"`
	EtlDate       string          `db:"etl_date"`
}

//SectorDaily is one industry-board daily row, keyed (sector, trade_date).
type SectorDaily struct {
	Sector        string          `db:"sector"`
	TradeDate     string          `db:"trade_date"`
	OpenPrice     float64         `db:"open_price"`
	ClosePrice    float64         `db:"close_price"`
	HighPrice     float64         `db:"high_price"`
	LowPrice      float64         `db:"low_price"`
	ChangePercent sql.NullFloat64 `db:"change_percent"`
	ChangeAmount  sql.NullFloat64 `db:"change_amount"`
	Volume        sql.NullFloat64 `db:"volume"`
	Amount100M    sql.NullFloat64 `db:"amount_100M"`
	Amplitude     sql.NullFloat64 `db:"amplitude"`
	TurnoverRate  sql.NullFloat64 `db:"turnover_rate"`
	EtlDate       string          `db:"etl_date"`
}

//StockNews is one news item within the rolling window. No declared PK;
//the driver replaces the window wholesale.
type StockNews struct {
	StockSymbol  string         `db:"stock_symbol"`
	NewsTitle    string         `db:"news_title"`
	NewsContent  sql.NullString `db:"news_content"`
	PublishTime  string         `db:"publish_time"`
	Source       sql.NullString `db:"source"`
	NewsLink     sql.NullString `db:"news_link"`
	SnapshotTime string         `db:"snapshot_time"`
	EtlDate      string         `db:"etl_date"`
}

//AnalystRating is one coverage row, keyed (stock_code, analyst_id, add_date).
type AnalystRating struct {
	StockCode      string          `db:"stock_code"`
	StockName      sql.NullString  `db:"stock_name"`
	AnalystID      string          `db:"analyst_id"`
	AddDate        string          `db:"add_date"`
	LastRatingDate sql.NullString  `db:"last_rating_date"`
	CurrentRating  sql.NullString  `db:"current_rating"`
	TradePrice     sql.NullFloat64 `db:"trade_price"`
	LatestPrice    sql.NullFloat64 `db:"latest_price"`
	ChangePercent  sql.NullFloat64 `db:"change_percent"`
	AnalystName    sql.NullString  `db:"analyst_name"`
	AnalystUnit    sql.NullString  `db:"analyst_unit"`
	IndustryName   sql.NullString  `db:"industry_name"`
	SnapDate       string          `db:"snap_date"`
	EtlDate        string          `db:"etl_date"`
	BizDate        int64           `db:"biz_date"`
}

//Tech1 is the first derived indicator set, keyed (stock_code, trade_date).
type Tech1 struct {
	TradeDate    string          `db:"trade_date"`
	StockCode    string          `db:"stock_code"`
	Volume       float64         `db:"volume"`
	TurnoverRate sql.NullFloat64 `db:"turnover_rate"`
	RSI          sql.NullFloat64 `db:"RSI"`
	MACDDif      sql.NullFloat64 `db:"MACD_DIF"`
	MACDDea      sql.NullFloat64 `db:"MACD_DEA"`
	MACDHist     sql.NullFloat64 `db:"MACD_HIST"`
	KDJK         sql.NullFloat64 `db:"KDJ_K"`
	KDJD         sql.NullFloat64 `db:"KDJ_D"`
	KDJJ         sql.NullFloat64 `db:"KDJ_J"`
	MACDSignal   string          `db:"macd_signal"`
	RSISignal    string          `db:"rsi_signal"`
	KDJSignal    string          `db:"kdj_signal"`
}

//Tech2 is the second derived indicator set, keyed (stock_code, date).
type Tech2 struct {
	Date        string          `db:"date"`
	StockCode   string          `db:"stock_code"`
	Open        float64         `db:"open"`
	Close       float64         `db:"close"`
	High        float64         `db:"high"`
	Low         float64         `db:"low"`
	Volume      float64         `db:"volume"`
	MA5         sql.NullFloat64 `db:"MA5"`
	MA20        sql.NullFloat64 `db:"MA20"`
	MA60        sql.NullFloat64 `db:"MA60"`
	RSI         sql.NullFloat64 `db:"RSI"`
	MACD        sql.NullFloat64 `db:"MACD"`
	SignalLine  sql.NullFloat64 `db:"Signal_Line"`
	MACDHist    sql.NullFloat64 `db:"MACD_hist"`
	BBUpper     sql.NullFloat64 `db:"BB_upper"`
	BBMiddle    sql.NullFloat64 `db:"BB_middle"`
	BBLower     sql.NullFloat64 `db:"BB_lower"`
	VolumeMA    sql.NullFloat64 `db:"Volume_MA"`
	VolumeRatio sql.NullFloat64 `db:"Volume_Ratio"`
	ATR         sql.NullFloat64 `db:"ATR"`
	Volatility  sql.NullFloat64 `db:"Volatility"`
	ROC         sql.NullFloat64 `db:"ROC"`
	MACDSignal  string          `db:"MACD_signal"`
	RSISignal   string          `db:"RSI_signal"`
}
