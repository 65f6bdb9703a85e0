package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/model"

	//mysql driver
	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gopkg.in/gorp.v2"
)

var (
	instance *Pool
	mu       sync.Mutex
)

//Get returns the process-wide pool, constructing it on first use.
//Construction is double-checked so concurrent drivers share one pool.
func Get() *Pool {
	if instance != nil {
		return instance
	}
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = open()
	}
	return instance
}

func open() *Pool {
	usr := conf.Args.Database.UserName
	pwd := conf.Args.Database.Password
	host := conf.Args.Database.Host
	port := conf.Args.Database.Port
	sch := conf.Args.Database.Schema
	size := conf.Args.Database.PoolSize
	db, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?readTimeout=12h&writeTimeout=12h", usr, pwd, host, port, sch))
	if err != nil {
		logrus.Panicln("sql.Open failed", err)
	}

	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)
	db.SetConnMaxLifetime(time.Minute * 15)

	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.MySQLDialect{Engine: "InnoDB", Encoding: "utf8mb4"}}
	p := &Pool{db: db, DbMap: dbmap, tables: map[model.DBTab]*gorp.TableMap{}}
	p.register()
	return p
}

//register declares every target table with its natural key. The gorp
//TableMap doubles as the authoritative column list for the writer.
func (p *Pool) register() {
	p.add(model.Stock{}, model.BASICS, "code")
	p.add(model.CompanyInfo{}, model.COMPANY_INFO, "stock_code")
	p.add(model.FinanceInfo{}, model.FINANCE_INFO, "stock_code", "report_date")
	p.add(model.IndividualStock{}, model.INDIVIDUAL_STOCK, "Stock_Code", "Date")
	p.add(model.StockAIndicator{}, model.STOCK_A_INDICATOR, "stock_code", "trade_date")
	p.add(model.SectorDaily{}, model.SECTOR, "sector", "trade_date")
	//stock_news has no stable natural key upstream; dedup is done by the
	//driver's rolling-window pre-DELETE.
	p.add(model.StockNews{}, model.STOCK_NEWS)
	p.add(model.AnalystRating{}, model.ANALYST, "stock_code", "analyst_id", "add_date")
	p.add(model.Tech1{}, model.TECH1, "stock_code", "trade_date")
	p.add(model.Tech2{}, model.TECH2, "stock_code", "date")
}

func (p *Pool) add(rec interface{}, tab model.DBTab, keys ...string) {
	tm := p.DbMap.AddTableWithName(rec, string(tab))
	if len(keys) > 0 {
		tm.SetKeys(false, keys...)
	}
	p.tables[tab] = tm
}

//Columns returns the declared column list for a table, in declaration order.
func (p *Pool) Columns(tab model.DBTab) []string {
	tm, ok := p.tables[tab]
	if !ok {
		logrus.Panicf("unregistered table: %s", tab)
	}
	cols := make([]string, 0, len(tm.Columns))
	for _, c := range tm.Columns {
		if !c.Transient {
			cols = append(cols, c.ColumnName)
		}
	}
	return cols
}

//Close tears down the pool. Mainly for tests.
func (p *Pool) Close() error {
	return p.db.Close()
}

//Shutdown closes the process-wide pool if it was ever opened.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		return nil
	}
	e := instance.db.Close()
	instance = nil
	return e
}
